package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cubeblast/internal/core"
	"github.com/vovakirdan/cubeblast/internal/registry"
)

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

var menuConfig = core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 30}

func TestMenuLevelPicker(t *testing.T) {
	m := NewMenuModel(nil, menuConfig)
	require.Len(t, m.items, 1)
	assert.Equal(t, []string{"lvl-1", "lvl-2"}, m.items[0].Levels)
	assert.Contains(t, m.View(), "< lvl-1 >")

	next, _ := m.Update(keyMsg("l"))
	m = next.(MenuModel)
	next, _ = m.Update(keyMsg("l"))
	m = next.(MenuModel)
	assert.Equal(t, "lvl-1", m.items[0].LevelID(), "levels wrap around")

	next, _ = m.Update(keyMsg("h"))
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	assert.NotNil(t, cmd)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "lvl-2", m.Selected().LevelID())
}

func TestMenuResumesSavedProgress(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SetProgress("stub", "lvl-2"))

	m := NewMenuModel(store, menuConfig)
	assert.Equal(t, "lvl-2", m.items[0].LevelID())
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(Env{}, menuConfig)
	update := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		var ok bool
		s, ok = next.(SessionModel)
		require.True(t, ok)
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, screenScores, s.screen)
	assert.Contains(t, s.View(), "HIGH SCORES")

	update(keyMsg("v"))
	assert.Contains(t, s.View(), "RECENT RUNS")

	update(keyMsg("esc"))
	assert.Equal(t, screenMenu, s.screen)

	update(keyMsg("l"))
	update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, s.screen)
	require.NotNil(t, s.game)
	stub := s.game.game.(*stubGame)
	assert.Equal(t, "lvl-2", stub.level)
	assert.Equal(t, 1, stub.resets)

	update(keyMsg("p"))
	update(TickMsg{})
	update(keyMsg("esc"))
	assert.Equal(t, screenMenu, s.screen)
	assert.Nil(t, s.game)

	next, cmd := s.Update(keyMsg("q"))
	assert.NotNil(t, cmd)
	assert.Empty(t, next.(SessionModel).View())
}
