package blast

import (
	"fmt"
	"math"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/cubeblast/internal/core"
	"github.com/vovakirdan/cubeblast/internal/games/blast/core"
)

const (
	hudHeight = 4
	cellW     = 2 // glyph plus a spacer column
)

// boardLayout places the board on the screen.
type boardLayout struct {
	x, y     int // screen cell of board cell (0,0)
	frame    platformcore.Rect
	tooSmall bool
}

func computeLayout(screenW, screenH, rows, cols int) boardLayout {
	frameW := cols*cellW + 3
	frameH := rows + 2
	availH := screenH - hudHeight - 1 // one status line at the bottom
	if screenW < frameW || availH < frameH {
		return boardLayout{tooSmall: true}
	}
	fx := (screenW - frameW) / 2
	fy := hudHeight + (availH-frameH)/2
	return boardLayout{
		x:     fx + 2,
		y:     fy + 1,
		frame: platformcore.NewRect(fx, fy, frameW, frameH),
	}
}

// cellAt maps a screen cell to the board cell under it. The result may
// lie off the board.
func (l boardLayout) cellAt(p platformcore.Point) core.Coord {
	return core.C(p.Y-l.y, floorDiv(p.X-l.x+1, cellW))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *platformcore.Screen) {
	g.renderHUD(dst)

	switch {
	case g.err != nil:
		g.renderOverlay(dst, "Cannot start", g.err.Error())
		return
	case g.engine == nil:
		return
	case g.layout.tooSmall:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)
	g.renderStatus(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "You Win!", g.reason+" Press R to play again")
	case g.gameOver:
		g.renderOverlay(dst, g.reason, "Press R to retry")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	var hud string
	switch {
	case g.engine == nil:
		hud = " " + g.Title()
	case g.mode == ModeEndless:
		hud = fmt.Sprintf(" %s | Score: %d | Colors: %d | Board: %d",
			g.Title(), g.score, g.colors, g.boards)
	default:
		hud = fmt.Sprintf(" %s | %d/%d %s | Score: %d", g.Title(),
			g.levelIndex+1, len(g.allLevels), g.level.Name, g.score)
		if g.level.TargetScore > 0 {
			hud += fmt.Sprintf(" | Goal: %d/%d", g.levelScore, g.level.TargetScore)
		}
		if g.movesLimit > 0 {
			hud += fmt.Sprintf(" | Moves: %d", g.movesLimit-g.movesUsed)
		}
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawTextWithColor(0, 2, " Arrows: Move | Space/Click: Blast | P: Pause | Esc: Menu", platformcore.ColorGray)
	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', platformcore.ColorGray)
		dst.SetWithColor(x, 3, '─', platformcore.ColorGray)
	}
}

// renderBoard projects every tile's world position onto the cell grid, so
// falling tiles slide down between ticks. Tiles still above the board are
// hidden behind the frame.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	cfg := g.engine.Config()
	l := g.layout

	dst.DrawBox(l.frame, platformcore.ColorGray)
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			dst.SetWithColor(l.x+col*cellW, l.y+row, '·', platformcore.ColorGray)
		}
	}

	g.engine.EachTile(func(_ core.Handle, t core.Tile) {
		rowF, colF := cfg.CellFromWorld(t.Pos)
		row, col := int(math.Round(rowF)), int(math.Round(colF))
		if row < 0 || row >= cfg.Rows || col < 0 || col >= cfg.Cols {
			return
		}
		dst.SetCell(l.x+col*cellW, l.y+row, g.tileCell(t))
	})

	dst.Highlight(l.x+g.cursor.Col*cellW, l.y+g.cursor.Row, true)
}

func (g *Game) tileCell(t core.Tile) platformcore.Cell {
	cell := platformcore.Cell{Rune: '?', Color: tileColor(t)}
	if a, err := g.catalog.Lookup(t.Key()); err == nil {
		cell.Rune = a.Glyph
		cell.Tint = a.Tint
	}
	return cell
}

// tileColor is the palette fallback for terminals without true color.
func tileColor(t core.Tile) platformcore.Color {
	if t.Block == core.BlockLayered {
		if t.Variant == 0 {
			return platformcore.ColorOrange
		}
		return platformcore.ColorGray
	}
	switch t.Color {
	case core.ColorBlue:
		return platformcore.ColorBrightBlue
	case core.ColorGreen:
		return platformcore.ColorBrightGreen
	case core.ColorPink:
		return platformcore.ColorBrightMagenta
	case core.ColorPurple:
		return platformcore.ColorMagenta
	case core.ColorRed:
		return platformcore.ColorBrightRed
	case core.ColorYellow:
		return platformcore.ColorBrightYellow
	default:
		return platformcore.ColorWhite
	}
}

func (g *Game) renderStatus(dst *platformcore.Screen) {
	y := dst.Height() - 1
	if g.banner != "" && g.tick < g.bannerUntil {
		dst.DrawTextCenteredWithColor(y, g.banner, platformcore.ColorBrightYellow)
		return
	}
	if grp, ok := g.engine.Matches().GroupAt(g.cursor); ok && grp.Qualifies {
		dst.DrawTextCenteredWithColor(y, fmt.Sprintf("%s group of %d", grp.Color, grp.Size()), platformcore.ColorGray)
	}
}

func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	box := platformcore.NewRect((dst.Width()-w)/2, (dst.Height()-5)/2, w, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCenteredWithColor(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2)
}
