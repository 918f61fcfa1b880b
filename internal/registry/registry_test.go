package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string                     { return g.id }
func (g *stubGame) Title() string                  { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)       { g.state = core.GameState{} }
func (g *stubGame) Step(core.Tick) core.StepResult { return core.StepResult{State: g.state} }
func (g *stubGame) Render(*core.Screen)            {}
func (g *stubGame) State() core.GameState          { return g.state }

func stub(id string) Factory {
	return func(Options) (Game, error) { return &stubGame{id: id}, nil }
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", stub("zz-stub"))

	assert.True(t, Exists("zz-stub"))

	g, err := Create("zz-stub", Options{})
	require.NoError(t, err)
	assert.Equal(t, "zz-stub", g.ID())

	var found bool
	for _, m := range List() {
		if m.ID == "zz-stub" {
			found = true
			assert.Equal(t, "Stub zz-stub", m.Title)
		}
	}
	assert.True(t, found, "registered mode should be listed")
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("does-not-exist", Options{})
	require.ErrorIs(t, err, ErrUnknownMode)
	assert.False(t, Exists("does-not-exist"))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", stub("zz-dup"))
	assert.Panics(t, func() {
		Register("zz-dup", stub("zz-dup"))
	})
}

func TestListSorted(t *testing.T) {
	Register("zz-b", stub("zz-b"))
	Register("zz-a", stub("zz-a"))

	list := List()
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestCreatePassesOptions(t *testing.T) {
	var got Options
	Register("zz-opts", func(opts Options) (Game, error) {
		got = opts
		if opts.Piece == "bad" {
			return nil, errors.New("bad piece")
		}
		return &stubGame{id: "zz-opts"}, nil
	})

	_, err := Create("zz-opts", Options{Piece: "T"})
	require.NoError(t, err)
	assert.Equal(t, "T", got.Piece)

	_, err = Create("zz-opts", Options{Piece: "bad"})
	assert.Error(t, err)
}

func TestRegisterRejectsFactoryWithoutDefault(t *testing.T) {
	assert.Panics(t, func() {
		Register("zz-broken", func(Options) (Game, error) { return nil, errors.New("no default") })
	})
	assert.False(t, Exists("zz-broken"))
}
