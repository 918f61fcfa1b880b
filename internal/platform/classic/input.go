package classic

import (
	"context"
	"fmt"

	"github.com/nsf/termbox-go"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// input is one message from the event goroutine to the driver loop.
type input struct {
	action        core.Action
	resize        bool
	width, height int
	err           error
}

// keyAction maps a termbox key event to a game action.
func keyAction(ev termbox.Event) core.Action {
	switch ev.Key {
	case termbox.KeyArrowLeft:
		return core.ActionMoveLeft
	case termbox.KeyArrowRight:
		return core.ActionMoveRight
	case termbox.KeyArrowUp:
		return core.ActionRotate
	case termbox.KeyArrowDown:
		return core.ActionSoftDrop
	case termbox.KeySpace:
		return core.ActionHardDrop
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return core.ActionQuit
	}

	switch ev.Ch {
	case 'a', 'A':
		return core.ActionMoveLeft
	case 'd', 'D':
		return core.ActionMoveRight
	case 'w', 'W':
		return core.ActionRotate
	case 's', 'S':
		return core.ActionSoftDrop
	case ' ':
		return core.ActionHardDrop
	case 'p', 'P':
		return core.ActionPause
	case 'r', 'R':
		return core.ActionRestart
	case 'q', 'Q':
		return core.ActionQuit
	}
	return core.ActionNone
}

// translate converts a termbox event into a driver message. ok is false for
// events the driver ignores.
func translate(ev termbox.Event) (in input, ok bool) {
	switch ev.Type {
	case termbox.EventKey:
		a := keyAction(ev)
		return input{action: a}, a != core.ActionNone
	case termbox.EventResize:
		return input{resize: true, width: ev.Width, height: ev.Height}, true
	case termbox.EventError:
		return input{err: fmt.Errorf("classic: terminal event error: %w", ev.Err)}, true
	}
	return input{}, false
}

// pollEvents is the only reader of the terminal. It forwards translated
// events to out and returns, closing out, only when poll reports
// EventInterrupt. Once ctx is done, events are dropped instead of
// forwarded.
func pollEvents(ctx context.Context, out chan<- input, poll func() termbox.Event) {
	defer close(out)
	for {
		ev := poll()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		in, ok := translate(ev)
		if !ok {
			continue
		}
		select {
		case out <- in:
		case <-ctx.Done():
		}
	}
}
