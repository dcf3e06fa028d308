package blast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoplayClearsLevel(t *testing.T) {
	setup(t, redPit, "")
	g := newGame(t, ModeCampaign, 80, 24)
	require.NoError(t, g.Err())

	assert.Equal(t, 1, g.Autoplay(1, 500))
	assert.Equal(t, 60, g.State().Score)
	assert.Equal(t, "01-warmup", g.level.ID)
	assert.Zero(t, g.engine.MovingCount())
}

func TestAutoplayIsDeterministic(t *testing.T) {
	setup(t, "", "", func(o *Options) { o.StartLevel = "01-warmup" })

	play := func() (uint64, int) {
		g := newGame(t, ModeCampaign, 120, 40)
		require.NoError(t, g.Err())
		made := g.Autoplay(6, 3000)
		assert.Equal(t, g.Summary().Blasts, made, "every counted tap blasted")
		return g.engine.Hash(), g.State().Score
	}

	h1, s1 := play()
	h2, s2 := play()
	assert.Equal(t, h1, h2)
	assert.Equal(t, s1, s2)
	assert.Positive(t, s1)
}
