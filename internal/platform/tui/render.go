package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cubeblast/internal/core"
)

// cellStyle is the part of a cell that decides its escape sequence.
type cellStyle struct {
	color   core.Color
	tint    string
	reverse bool
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{color: c.Color, tint: c.Tint, reverse: c.Reverse}
}

// lipgloss returns the style for a run. A tint wins over the palette color;
// lipgloss degrades it on terminals without true color.
func (s cellStyle) lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle()
	switch {
	case s.tint != "":
		st = st.Foreground(lipgloss.Color(s.tint))
	case s.color.ANSI() != "":
		st = st.Foreground(lipgloss.Color(s.color.ANSI()))
	}
	if s.reverse {
		st = st.Reverse(true)
	}
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same style share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[cellStyle]lipgloss.Style)
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleOf(s.GetCell(x, y))

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start == (cellStyle{}) {
				sb.WriteString(run.String())
				continue
			}
			st, ok := styles[start]
			if !ok {
				st = start.lipgloss()
				styles[start] = st
			}
			sb.WriteString(st.Render(run.String()))
		}
	}
	return sb.String()
}
