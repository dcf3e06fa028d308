package core

// Color is a foreground color from the 16-color ANSI palette plus a few
// 256-color extras. The TUI maps it to a lipgloss color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ANSI returns the terminal color code for c, or "" for the default color.
func (c Color) ANSI() string {
	switch c {
	case ColorOrange:
		return "208"
	case ColorGray:
		return "244"
	case ColorDefault:
		return ""
	}
	// ColorRed..ColorBrightWhite map onto ANSI 1..15 with black skipped.
	codes := [...]string{"1", "2", "3", "4", "5", "6", "7", "9", "10", "11", "12", "13", "14", "15"}
	i := int(c) - int(ColorRed)
	if i < 0 || i >= len(codes) {
		return ""
	}
	return codes[i]
}
