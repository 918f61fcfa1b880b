// Package classic runs the game on a raw termbox terminal. A dedicated
// goroutine reads terminal events and hands them to the driver loop over a
// channel; the loop is the only goroutine that steps the game, and redraws
// only the cells that changed since the previous frame.
package classic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nsf/termbox-go"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Options configures a classic session.
type Options struct {
	// Piece is the fixed-mode kind letter, recorded with the session.
	Piece string

	Config  config.TetrisConfig
	Runtime core.RuntimeConfig

	// Store receives the session recording on exit. Nil disables recording.
	Store  *storage.Store
	Logger *log.Logger
}

// Result summarizes a finished session.
type Result struct {
	State       core.GameState
	Ticks       int
	RecordingID int64
}

// Terminal is the drawing surface. termbox satisfies it in production.
type Terminal interface {
	Size() (width, height int)
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
	Flush() error
}

type termboxTerminal struct{}

func (termboxTerminal) Size() (int, int) { return termbox.Size() }

func (termboxTerminal) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

func (termboxTerminal) Flush() error { return termbox.Flush() }

// attribute converts a palette color to a termbox 256-color attribute.
func attribute(c core.Color) termbox.Attribute {
	code := c.ANSI()
	if code < 0 {
		return termbox.ColorDefault
	}
	return termbox.Attribute(code + 1)
}

// Damager is implemented by games that can tell which screen areas a step
// touched. ok false means the whole screen may have changed.
type Damager interface {
	Damage(dst *core.Screen, res core.StepResult) (rects []core.Rect, ok bool)
}

// Driver owns the game for the duration of a session.
type Driver struct {
	game       registry.Game
	opts       Options
	term       Terminal
	screen     *core.Screen
	frame      *Frame
	difficulty *config.DifficultyManager
	recorder   *replay.Recorder
	logger     *log.Logger

	state    core.GameState
	anyLock  bool
	overSeen bool
}

func newDriver(game registry.Game, opts Options, surface Terminal) *Driver {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w, h := surface.Size()
	opts.Runtime.ScreenW, opts.Runtime.ScreenH = w, h

	return &Driver{
		game:       game,
		opts:       opts,
		term:       surface,
		screen:     core.NewScreen(w, h),
		frame:      NewFrame(),
		difficulty: config.NewDifficultyManager(opts.Config.Difficulty),
		recorder:   replay.NewRecorder(game.ID(), opts.Piece, opts.Runtime),
		logger:     logger,
	}
}

// Run takes over the terminal and plays one session until the player quits
// or ctx is cancelled.
func Run(ctx context.Context, game registry.Game, opts Options) (Result, error) {
	if err := termbox.Init(); err != nil {
		return Result{}, fmt.Errorf("classic: cannot init terminal: %w", err)
	}
	defer termbox.Close()
	termbox.SetOutputMode(termbox.Output256)
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	d := newDriver(game, opts, termboxTerminal{})
	return d.run(ctx, termbox.PollEvent, termbox.Interrupt)
}

// run plays the session with a reader goroutine fed by poll. interrupt must
// make a blocked poll return EventInterrupt; the reader keeps polling until
// it does, so the interrupt always has a receiver.
func (d *Driver) run(ctx context.Context, poll func() termbox.Event, interrupt func()) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	inputs := make(chan input, 16)
	go pollEvents(ctx, inputs, poll)
	defer func() {
		// Unblock a reader stuck handing over an event, then stop it.
		cancel()
		interrupt()
	}()

	return d.loop(ctx, inputs)
}

func (d *Driver) gravityInterval() time.Duration {
	base := d.opts.Config.Timing.Gravity()
	if base <= 0 {
		base = time.Second
	}
	return d.difficulty.GravityInterval(base, d.state.Lines, d.state.Pieces)
}

func (d *Driver) pollInterval() time.Duration {
	if p := d.opts.Config.Timing.Poll(); p > 0 {
		return p
	}
	return 50 * time.Millisecond
}

// loop is the single writer of the game. Each message from inputs or the
// gravity timer becomes exactly one tick; the frame ticker coalesces redraws.
func (d *Driver) loop(ctx context.Context, inputs <-chan input) (Result, error) {
	d.game.Reset(d.opts.Runtime)
	d.state = d.game.State()
	d.logger.Info("session started", "mode", d.game.ID(), "seed", d.opts.Runtime.Seed, "renderer", "termbox")

	if err := d.draw(); err != nil {
		return d.finish(), err
	}

	gravity := time.NewTimer(d.gravityInterval())
	defer gravity.Stop()
	frames := time.NewTicker(d.pollInterval())
	defer frames.Stop()

	dirty := false
	for {
		select {
		case <-ctx.Done():
			return d.finish(), nil

		case in, ok := <-inputs:
			if !ok {
				return d.finish(), nil
			}
			switch {
			case in.err != nil:
				return d.finish(), in.err
			case in.resize:
				d.opts.Runtime.ScreenW, d.opts.Runtime.ScreenH = in.width, in.height
				d.screen.Resize(in.width, in.height)
				d.frame.Invalidate()
				dirty = true
			case in.action == core.ActionQuit:
				if err := d.draw(); err != nil {
					return d.finish(), err
				}
				return d.finish(), nil
			default:
				wasOver := d.state.GameOver
				d.step(core.InputTick(in.action))
				if wasOver && !d.state.GameOver {
					resetTimer(gravity, d.gravityInterval())
				}
				dirty = true
			}

		case <-gravity.C:
			d.step(core.GravityTick())
			gravity.Reset(d.gravityInterval())
			dirty = true

		case <-frames.C:
			if !dirty {
				continue
			}
			if err := d.draw(); err != nil {
				return d.finish(), err
			}
			dirty = false
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// step delivers one tick to the game and records it.
func (d *Driver) step(t core.Tick) {
	prev := d.state
	res := d.game.Step(t)
	d.recorder.Record(t)
	d.state = res.State
	d.damage(prev, res)
	if res.Locked {
		d.anyLock = true
	}
	if d.state.GameOver && !d.overSeen {
		d.logger.Info("game over",
			"mode", d.game.ID(),
			"score", d.state.Score,
			"lines", d.state.Lines,
			"pieces", d.state.Pieces,
		)
	}
	d.overSeen = d.state.GameOver
}

// damage tells the frame cache where res may have changed the screen.
// Leaving an overlay repaints everything it covered.
func (d *Driver) damage(prev core.GameState, res core.StepResult) {
	dm, ok := d.game.(Damager)
	if !ok || prev.Paused || prev.GameOver {
		d.frame.DamageAll()
		return
	}
	rects, ok := dm.Damage(d.screen, res)
	if !ok {
		d.frame.DamageAll()
		return
	}
	for _, r := range rects {
		d.frame.Damage(r)
	}
}

// draw renders the game and pushes the changed cells to the terminal.
func (d *Driver) draw() error {
	d.game.Render(d.screen)
	d.frame.Diff(d.screen, func(x, y int, c core.Cell) {
		d.term.SetCell(x, y, c.Rune, attribute(c.Color), termbox.ColorDefault)
	})
	if err := d.term.Flush(); err != nil {
		return fmt.Errorf("classic: flush: %w", err)
	}
	return nil
}

// finish stores the recording when the session locked at least one piece.
func (d *Driver) finish() Result {
	res := Result{State: d.state, Ticks: d.recorder.Len()}
	if d.opts.Store == nil || !d.anyLock {
		return res
	}
	rec := d.recorder.Recording(d.state)
	id, err := d.opts.Store.SaveRecording(rec)
	if err != nil {
		d.logger.Error("could not save recording", "error", err)
		return res
	}
	res.RecordingID = id
	d.logger.Info("recording saved", "id", id, "ticks", rec.TickCount(), "score", rec.Score)
	return res
}

// ErrNoTerminal is returned when the classic renderer is requested without
// an interactive terminal.
var ErrNoTerminal = errors.New("classic: not a terminal")

// CheckTerminal reports ErrNoTerminal unless fd is an interactive terminal.
func CheckTerminal(fd int) error {
	if !term.IsTerminal(fd) {
		return ErrNoTerminal
	}
	return nil
}
