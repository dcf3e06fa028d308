package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)
	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGetOutOfBounds(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	for _, p := range []Point{{-1, 0}, {100, 0}, {0, -1}, {0, 100}} {
		s.Set(p.X, p.Y, 'A')
		s.Highlight(p.X, p.Y, true)
		if s.Get(p.X, p.Y) != ' ' {
			t.Errorf("out of bounds Get(%d, %d) should return space", p.X, p.Y)
		}
	}
}

func TestScreenCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetWithColor(1, 1, '●', ColorBrightRed)
	s.SetCell(2, 1, Cell{Rune: '▓', Color: ColorOrange, Tint: "#a16207"})
	s.Highlight(2, 1, true)

	if got := s.GetCell(1, 1); got.Rune != '●' || got.Color != ColorBrightRed || got.Reverse {
		t.Errorf("GetCell(1, 1) = %+v", got)
	}
	got := s.GetCell(2, 1)
	if got.Tint != "#a16207" || !got.Reverse {
		t.Errorf("GetCell(2, 1) = %+v, expected tinted and reversed", got)
	}

	s.Set(2, 1, 'x')
	if s.GetCell(2, 1).Reverse || s.GetCell(2, 1).Tint != "" {
		t.Error("Set should replace the whole cell")
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(5, 5)
	s.Fill('#')
	if s.Row(4) != "#####" {
		t.Errorf("after Fill, row = %q", s.Row(4))
	}
	s.SetWithColor(0, 0, 'x', ColorRed)
	s.Clear()
	if s.GetCell(0, 0) != blank || s.Row(2) != "     " {
		t.Error("Clear should reset every cell")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextWithColor(2, 1, "Héllo", ColorCyan)
	if !strings.HasPrefix(s.Row(1), "  Héllo") {
		t.Errorf("row 1 = %q", s.Row(1))
	}
	if s.GetCell(6, 1).Rune != 'o' || s.GetCell(6, 1).Color != ColorCyan {
		t.Errorf("multi-byte runes must take one cell each, got %+v", s.GetCell(6, 1))
	}

	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at the right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "★★")
	if s.Get(9, 2) != '★' || s.Get(10, 2) != '★' {
		t.Errorf("centering should count runes, row = %q", s.Row(2))
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')
	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect the outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	want := []string{
		"          ",
		" ┌───┐    ",
		" │   │    ",
		" │   │    ",
		" └───┘    ",
	}
	for y, row := range want {
		if s.Row(y) != row {
			t.Errorf("row %d = %q, expected %q", y, s.Row(y), row)
		}
	}
	if s.GetCell(1, 1).Color != ColorGray {
		t.Error("box should use the given color")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawHLine(2, 2, 5, '-')
	if s.Row(2) != "  -----   " {
		t.Errorf("row 2 = %q", s.Row(2))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got, want := s.String(), "AAAAA\nBBBBB\nCCCCC"; got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("after resize, size = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if s.Row(0) != "Hello   " {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") || s.Row(5) != strings.Repeat(" ", 15) {
		t.Errorf("enlarging keeps what survived the shrink, rows = %q / %q", s.Row(0), s.Row(5))
	}
	if s.Row(-1) != strings.Repeat(" ", 15) {
		t.Errorf("out of bounds row should be spaces, got %q", s.Row(-1))
	}
}
