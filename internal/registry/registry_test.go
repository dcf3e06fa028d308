package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cubeblast/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	assert.True(t, Exists("zz_stub_a"))
	assert.False(t, Exists("zz_missing"))

	g, err := Create("zz_stub_b")
	require.NoError(t, err)
	assert.Equal(t, "zz_stub_b", g.ID())

	_, err = Create("zz_missing")
	assert.Error(t, err)

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	assert.IsIncreasing(t, ids)
	assert.Contains(t, List(), GameInfo{ID: "zz_stub_a", Title: "Stub zz_stub_a"})

	assert.Panics(t, func() {
		Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })
	})
}
