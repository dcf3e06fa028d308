package blast

import (
	platformcore "github.com/vovakirdan/cubeblast/internal/core"
	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

// Autoplay steps the game without a terminal. Whenever the board is idle it
// puts the cursor on the largest match, the first one found on ties, and
// taps it. It stops once taps blasts have settled, when the run is over, or
// after maxSteps steps, and returns the number of taps that blasted a group.
func (g *Game) Autoplay(taps, maxSteps int) int {
	made := 0
	for step := 0; step < maxSteps; step++ {
		if g.gameOver || g.err != nil || g.engine == nil {
			break
		}
		idle := g.engine.MovingCount() == 0
		if made >= taps && idle {
			break
		}

		in := platformcore.NewInputFrame()
		tapped := false
		if made < taps && idle && g.canTap() {
			if c, ok := g.bestMatch(); ok {
				g.cursor = c
				in.Set(platformcore.ActionConfirm)
				tapped = true
			}
		}
		before := g.Summary().Blasts
		g.Step(in)
		if tapped && g.Summary().Blasts > before {
			made++
		}
	}
	return made
}

func (g *Game) bestMatch() (core.Coord, bool) {
	var best core.Group
	for _, grp := range g.engine.Matches().Matches() {
		if grp.Size() > best.Size() {
			best = grp
		}
	}
	if best.Size() == 0 {
		return core.Coord{}, false
	}
	return best.Members[0], true
}
