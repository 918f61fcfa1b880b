package classic

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

type fakeTerminal struct {
	width, height int
	cells         map[core.Point]rune
	colors        map[core.Point]termbox.Attribute
	sets          int
	flushes       int
}

func newFakeTerminal(w, h int) *fakeTerminal {
	return &fakeTerminal{
		width:  w,
		height: h,
		cells:  make(map[core.Point]rune),
		colors: make(map[core.Point]termbox.Attribute),
	}
}

func (f *fakeTerminal) Size() (int, int) { return f.width, f.height }

func (f *fakeTerminal) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	f.cells[core.Pt(x, y)] = ch
	f.colors[core.Pt(x, y)] = fg
	f.sets++
}

func (f *fakeTerminal) Flush() error {
	f.flushes++
	return nil
}

func (f *fakeTerminal) row(y int) string {
	buf := make([]rune, f.width)
	for x := range buf {
		buf[x] = f.cells[core.Pt(x, y)]
	}
	return string(buf)
}

// shows reports whether the terminal displays exactly s.
func (f *fakeTerminal) shows(t *testing.T, s *core.Screen, msg string) {
	t.Helper()
	for y := 0; y < s.Height(); y++ {
		require.Equal(t, s.Row(y), f.row(y), "%s: row %d", msg, y)
		for x := 0; x < s.Width(); x++ {
			require.Equal(t, attribute(s.GetCell(x, y).Color), f.colors[core.Pt(x, y)], "%s: color at (%d, %d)", msg, x, y)
		}
	}
}

// fakeEvents mimics termbox polling: poll blocks until an event is sent and
// interrupt blocks until a poll receives it.
type fakeEvents struct {
	ch   chan termbox.Event
	stop chan struct{}
}

func newFakeEvents(evs ...termbox.Event) *fakeEvents {
	f := &fakeEvents{ch: make(chan termbox.Event), stop: make(chan struct{})}
	go func() {
		for _, ev := range evs {
			select {
			case f.ch <- ev:
			case <-f.stop:
				return
			}
		}
	}()
	return f
}

func (f *fakeEvents) poll() termbox.Event { return <-f.ch }

func (f *fakeEvents) interrupt() {
	close(f.stop)
	f.ch <- termbox.Event{Type: termbox.EventInterrupt}
}

func runWithTimeout(t *testing.T, ctx context.Context, d *Driver, events *fakeEvents) (Result, error) {
	t.Helper()
	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := d.run(ctx, events.poll, events.interrupt)
		done <- outcome{res, err}
	}()
	select {
	case o := <-done:
		return o.res, o.err
	case <-time.After(5 * time.Second):
		t.Fatal("session did not shut down")
		return Result{}, nil
	}
}

func newTestDriver(t *testing.T, term Terminal, store *storage.Store) *Driver {
	t.Helper()
	return newDriver(tetris.NewClassic(), Options{
		Config:  config.DefaultTetrisConfig(),
		Runtime: core.RuntimeConfig{Seed: 99},
		Store:   store,
	}, term)
}

func feed(inputs ...input) <-chan input {
	ch := make(chan input, len(inputs))
	for _, in := range inputs {
		ch <- in
	}
	return ch
}

func TestDriverPlaysUntilQuit(t *testing.T) {
	term := newFakeTerminal(80, 24)
	d := newTestDriver(t, term, nil)

	res, err := d.loop(context.Background(), feed(
		input{action: core.ActionMoveLeft},
		input{action: core.ActionHardDrop},
		input{action: core.ActionQuit},
	))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Ticks)
	assert.Equal(t, 1, res.State.Pieces)
	assert.Equal(t, tetris.LockPoints, res.State.Score)
	assert.Zero(t, res.RecordingID)
	assert.GreaterOrEqual(t, term.flushes, 2, "initial frame and final frame")

	found := false
	for y := 0; y < term.height; y++ {
		if strings.Contains(term.row(y), "SCORE") {
			found = true
		}
	}
	assert.True(t, found, "panel was drawn")
}

func TestDriverRedrawsOnlyChanges(t *testing.T) {
	term := newFakeTerminal(80, 24)
	d := newTestDriver(t, term, nil)
	d.game.Reset(d.opts.Runtime)

	require.NoError(t, d.draw())
	full := term.sets
	assert.Equal(t, 80*24, full)

	d.step(core.InputTick(core.ActionMoveLeft))
	require.NoError(t, d.draw())
	assert.Less(t, term.sets-full, 40, "moving a piece touches a handful of cells")
}

func TestDriverSavesRecording(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rec.db"))
	require.NoError(t, err)
	defer store.Close()

	d := newTestDriver(t, newFakeTerminal(80, 24), store)
	res, err := d.loop(context.Background(), feed(
		input{action: core.ActionRotate},
		input{action: core.ActionHardDrop},
		input{action: core.ActionHardDrop},
		input{action: core.ActionQuit},
	))
	require.NoError(t, err)
	require.NotZero(t, res.RecordingID)

	rec, err := store.Recording(res.RecordingID)
	require.NoError(t, err)
	assert.Equal(t, "uhh", rec.Ticks)
	assert.Equal(t, int64(99), rec.Seed)

	_, err = replay.Verify(rec)
	assert.NoError(t, err)
}

func TestDriverStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := newTestDriver(t, newFakeTerminal(80, 24), nil)
	_, err := d.loop(ctx, make(chan input))
	assert.NoError(t, err)
}

func TestDriverStopsWhenInputCloses(t *testing.T) {
	ch := make(chan input)
	close(ch)

	d := newTestDriver(t, newFakeTerminal(80, 24), nil)
	_, err := d.loop(context.Background(), ch)
	assert.NoError(t, err)
}

func TestDriverPropagatesInputError(t *testing.T) {
	boom := errors.New("tty gone")
	d := newTestDriver(t, newFakeTerminal(80, 24), nil)

	_, err := d.loop(context.Background(), feed(input{err: boom}))
	assert.ErrorIs(t, err, boom)
}

func TestRunShutsDownAfterReaderError(t *testing.T) {
	boom := errors.New("read failed")
	events := newFakeEvents(termbox.Event{Type: termbox.EventError, Err: boom})

	d := newTestDriver(t, newFakeTerminal(80, 24), nil)
	_, err := runWithTimeout(t, context.Background(), d, events)
	assert.ErrorIs(t, err, boom)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := newTestDriver(t, newFakeTerminal(80, 24), nil)
	_, err := runWithTimeout(t, ctx, d, newFakeEvents())
	assert.NoError(t, err)
}

func TestRunShutsDownWithUndeliveredEvents(t *testing.T) {
	// More events than the input buffer holds, none consumed.
	var evs []termbox.Event
	for i := 0; i < 40; i++ {
		evs = append(evs, termbox.Event{Type: termbox.EventResize, Width: 80, Height: 24})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := newTestDriver(t, newFakeTerminal(80, 24), nil)
	_, err := runWithTimeout(t, ctx, d, newFakeEvents(evs...))
	assert.NoError(t, err)
}

func TestRunPlaysKeyEvents(t *testing.T) {
	events := newFakeEvents(
		termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace},
		termbox.Event{Type: termbox.EventKey, Ch: 'q'},
	)

	d := newTestDriver(t, newFakeTerminal(80, 24), nil)
	res, err := runWithTimeout(t, context.Background(), d, events)
	require.NoError(t, err)
	assert.Equal(t, 1, res.State.Pieces)
}

func TestDamagedRedrawMatchesFullRender(t *testing.T) {
	term := newFakeTerminal(80, 24)
	d := newTestDriver(t, term, nil)
	d.game.Reset(d.opts.Runtime)
	require.NoError(t, d.draw())

	actions := []core.Action{
		core.ActionMoveLeft, core.ActionMoveRight, core.ActionRotate,
		core.ActionSoftDrop, core.ActionHardDrop, core.ActionHardDrop,
		core.ActionPause, core.ActionRestart,
	}
	script := rand.New(rand.NewSource(5))
	want := core.NewScreen(80, 24)

	for i := 0; i < 600; i++ {
		tick := core.GravityTick()
		if script.Intn(3) > 0 {
			tick = core.InputTick(actions[script.Intn(len(actions))])
		}
		d.step(tick)
		require.NoError(t, d.draw())

		d.game.Render(want)
		term.shows(t, want, fmt.Sprintf("tick %d (%s)", i, tick))
	}
}

func TestDriverResize(t *testing.T) {
	term := newFakeTerminal(80, 24)
	d := newTestDriver(t, term, nil)

	_, err := d.loop(context.Background(), feed(
		input{resize: true, width: 100, height: 30},
		input{action: core.ActionQuit},
	))
	require.NoError(t, err)
	assert.Equal(t, 100, d.screen.Width())
	assert.Equal(t, 30, d.screen.Height())
}
