package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestEncodeDecode(t *testing.T) {
	ticks := []core.Tick{
		core.GravityTick(),
		core.InputTick(core.ActionNone),
		core.InputTick(core.ActionMoveLeft),
		core.InputTick(core.ActionMoveRight),
		core.InputTick(core.ActionRotate),
		core.InputTick(core.ActionSoftDrop),
		core.InputTick(core.ActionHardDrop),
		core.InputTick(core.ActionPause),
		core.InputTick(core.ActionRestart),
	}

	log := Encode(ticks)
	assert.Equal(t, "g.lrudhpn", log)

	got, err := Decode(log)
	require.NoError(t, err)
	assert.Equal(t, ticks, got)
}

func TestQuitEncodesAsNoop(t *testing.T) {
	assert.Equal(t, byte('.'), EncodeTick(core.InputTick(core.ActionQuit)))
}

func TestDecodeRejectsUnknownCode(t *testing.T) {
	_, err := Decode("ggx")
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Contains(t, err.Error(), "tick 2")
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
