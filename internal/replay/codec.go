// Package replay records the tick stream of a session and re-simulates it.
// A session is fully described by its mode, seed, board setup and tick log,
// so replays reproduce the original game exactly.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ErrCorrupt is returned when a tick log or recording cannot be decoded.
var ErrCorrupt = errors.New("replay: corrupt recording")

// Tick log alphabet, one character per tick.
const (
	codeGravity  = 'g'
	codeNone     = '.'
	codeLeft     = 'l'
	codeRight    = 'r'
	codeRotate   = 'u'
	codeSoftDrop = 'd'
	codeHardDrop = 'h'
	codePause    = 'p'
	codeRestart  = 'n'
)

// EncodeTick returns the log character for t. Actions the simulation
// ignores (Quit) encode as a no-op.
func EncodeTick(t core.Tick) byte {
	if t.IsGravity() {
		return codeGravity
	}
	switch t.Action {
	case core.ActionMoveLeft:
		return codeLeft
	case core.ActionMoveRight:
		return codeRight
	case core.ActionRotate:
		return codeRotate
	case core.ActionSoftDrop:
		return codeSoftDrop
	case core.ActionHardDrop:
		return codeHardDrop
	case core.ActionPause:
		return codePause
	case core.ActionRestart:
		return codeRestart
	default:
		return codeNone
	}
}

// DecodeTick parses one log character.
func DecodeTick(c byte) (core.Tick, error) {
	switch c {
	case codeGravity:
		return core.GravityTick(), nil
	case codeNone:
		return core.InputTick(core.ActionNone), nil
	case codeLeft:
		return core.InputTick(core.ActionMoveLeft), nil
	case codeRight:
		return core.InputTick(core.ActionMoveRight), nil
	case codeRotate:
		return core.InputTick(core.ActionRotate), nil
	case codeSoftDrop:
		return core.InputTick(core.ActionSoftDrop), nil
	case codeHardDrop:
		return core.InputTick(core.ActionHardDrop), nil
	case codePause:
		return core.InputTick(core.ActionPause), nil
	case codeRestart:
		return core.InputTick(core.ActionRestart), nil
	default:
		return core.Tick{}, fmt.Errorf("%w: unknown tick code %q", ErrCorrupt, c)
	}
}

// Encode converts a tick sequence to its log form.
func Encode(ticks []core.Tick) string {
	buf := make([]byte, len(ticks))
	for i, t := range ticks {
		buf[i] = EncodeTick(t)
	}
	return string(buf)
}

// Decode parses a tick log.
func Decode(log string) ([]core.Tick, error) {
	ticks := make([]core.Tick, len(log))
	for i := 0; i < len(log); i++ {
		t, err := DecodeTick(log[i])
		if err != nil {
			return nil, fmt.Errorf("tick %d: %w", i, err)
		}
		ticks[i] = t
	}
	return ticks, nil
}
