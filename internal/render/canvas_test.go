package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/siraegi-run/internal/asset"
	"github.com/vovakirdan/siraegi-run/internal/core"
)

func newTestCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := NewCanvas(core.NewScreen(w, h), 10, 20)
	if err != nil {
		t.Fatalf("NewCanvas() failed: %v", err)
	}
	return c
}

func TestNewCanvasValidates(t *testing.T) {
	if _, err := NewCanvas(nil, 10, 20); !errors.Is(err, ErrNoScreen) {
		t.Errorf("nil screen: got %v, expected ErrNoScreen", err)
	}
	if _, err := NewCanvas(core.NewScreen(4, 4), 0, 20); err == nil {
		t.Error("zero cell width should fail")
	}
	if _, err := NewCanvas(core.NewScreen(4, 4), 10, -1); err == nil {
		t.Error("negative cell height should fail")
	}
}

func TestCanvasSizeAndProjection(t *testing.T) {
	c := newTestCanvas(t, 80, 24)

	w, h := c.Size()
	if w != 800 || h != 480 {
		t.Errorf("Size() = %vx%v, expected 800x480", w, h)
	}

	tests := []struct {
		x, y     float64
		col, row int
	}{
		{0, 0, 0, 0},
		{9.9, 19.9, 0, 0},
		{10, 20, 1, 1},
		{-1, -1, -1, -1},
		{795, 470, 79, 23},
	}
	for _, tc := range tests {
		col, row := c.ToCell(tc.x, tc.y)
		if col != tc.col || row != tc.row {
			t.Errorf("ToCell(%v, %v) = (%d, %d), expected (%d, %d)", tc.x, tc.y, col, row, tc.col, tc.row)
		}
	}
}

func TestFillRect(t *testing.T) {
	c := newTestCanvas(t, 10, 5)

	// 25x30 px at (5, 10) touches cols 0..2 and rows 0..1
	c.FillRect(core.NewRect(5, 10, 25, 30), '#', core.ColorRed)

	s := c.Screen()
	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			inside := col <= 2 && row <= 1
			got := s.Get(col, row)
			if inside && got != '#' {
				t.Errorf("cell (%d, %d) should be filled", col, row)
			}
			if !inside && got != ' ' {
				t.Errorf("cell (%d, %d) should be blank, got %q", col, row, got)
			}
		}
	}
	if s.GetCell(0, 0).Color != core.ColorRed {
		t.Error("fill colour not applied")
	}
}

func TestFillRectTinyStillVisible(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.FillRect(core.NewRect(12, 25, 1, 1), '*', core.ColorDefault)

	if c.Screen().Get(1, 1) != '*' {
		t.Error("sub-cell rect should mark its cell")
	}
}

func TestFillRectAlpha(t *testing.T) {
	c := newTestCanvas(t, 4, 2)

	c.FillRectAlpha(core.NewRect(0, 0, 10, 20), core.ColorWhite, 0)
	if c.Screen().Get(0, 0) != ' ' {
		t.Error("zero alpha should draw nothing")
	}

	c.FillRectAlpha(core.NewRect(0, 0, 10, 20), core.ColorWhite, 0.5)
	if c.Screen().Get(0, 0) != '▒' {
		t.Errorf("half alpha should use medium shade, got %q", c.Screen().Get(0, 0))
	}
}

func TestFillCircle(t *testing.T) {
	c := newTestCanvas(t, 20, 10)
	c.FillCircle(100, 100, 30, 'o', core.ColorYellow)

	s := c.Screen()
	if s.Get(10, 5) != 'o' {
		t.Error("circle centre cell should be filled")
	}
	if s.Get(0, 0) != ' ' {
		t.Error("far cell should stay blank")
	}

	// Smaller than one cell: only the centre cell
	c.Clear()
	c.FillCircle(55, 55, 2, 'o', core.ColorYellow)
	if s.Get(5, 2) != 'o' {
		t.Error("tiny circle should still draw its centre cell")
	}
}

func TestDrawSpriteScales(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	sprite := asset.Parse("ab", "AB\nCD")

	// 40x40 px = 4x2 cells, each sprite cell doubles horizontally
	c.DrawSprite(sprite, core.NewRect(0, 0, 40, 40), core.ColorGreen, 1)

	want := []string{"AABB", "CCDD"}
	for row, line := range want {
		if got := c.Screen().Row(row)[:4]; got != line {
			t.Errorf("row %d = %q, expected %q", row, got, line)
		}
	}
}

func TestDrawSpriteTransparentAndAlpha(t *testing.T) {
	c := newTestCanvas(t, 4, 1)
	c.Screen().Fill('.')

	sprite := asset.Parse("gap", "X X")
	c.DrawSprite(sprite, core.NewRect(0, 0, 30, 20), core.ColorDefault, 1)
	if got := c.Screen().Row(0); got != "X.X." {
		t.Errorf("transparent cells should be kept, got %q", got)
	}

	c.Screen().Fill('.')
	c.DrawSprite(sprite, core.NewRect(0, 0, 30, 20), core.ColorDefault, 0.2)
	if got := c.Screen().Row(0); got != "░.░." {
		t.Errorf("faded sprite should use light shade, got %q", got)
	}

	c.Screen().Fill('.')
	c.DrawSprite(sprite, core.NewRect(0, 0, 30, 20), core.ColorDefault, 0)
	if got := c.Screen().Row(0); got != "...." {
		t.Errorf("zero alpha should draw nothing, got %q", got)
	}
}

func TestDrawSpriteNilPlaceholder(t *testing.T) {
	c := newTestCanvas(t, 10, 5)
	c.DrawSprite(nil, core.NewRect(0, 0, 50, 60), core.ColorRed, 1)

	out := c.Screen().String()
	if !strings.Contains(out, "+---+") {
		t.Errorf("placeholder box missing:\n%s", out)
	}
	if c.Screen().Get(2, 1) != PlaceholderChar {
		t.Errorf("placeholder centre missing:\n%s", out)
	}
}

func TestTileSprite(t *testing.T) {
	c := newTestCanvas(t, 7, 3)
	c.TileSprite(asset.Parse("bg", "ab"), 20, core.ColorCyan)

	if got := c.Screen().Row(1); got != "abababa" {
		t.Errorf("tiled row = %q, expected %q", got, "abababa")
	}
	if got := c.Screen().Row(0); strings.TrimSpace(got) != "" {
		t.Errorf("row above tile should be blank, got %q", got)
	}
}

func TestDrawTextAlign(t *testing.T) {
	tests := []struct {
		align Align
		want  string
	}{
		{AlignLeft, "     hi   "},
		{AlignCenter, "    hi    "},
		{AlignRight, "   hi     "},
	}

	for _, tc := range tests {
		c := newTestCanvas(t, 10, 1)
		c.DrawText(50, 0, "hi", tc.align, core.ColorWhite)
		if got := c.Screen().Row(0); got != tc.want {
			t.Errorf("align %d: got %q, expected %q", tc.align, got, tc.want)
		}
	}
}

func TestShade(t *testing.T) {
	c := newTestCanvas(t, 8, 8)

	c.Screen().Fill('x')
	c.Shade(0)
	if strings.Contains(c.Screen().String(), " ") {
		t.Error("zero opacity should not touch the screen")
	}

	c.Shade(0.5)
	blank := strings.Count(c.Screen().String(), " ")
	if blank != 32 {
		t.Errorf("half opacity should blank half the cells, got %d of 64", blank)
	}

	c.Shade(1)
	if strings.Contains(c.Screen().String(), "x") {
		t.Error("full opacity should blank every cell")
	}
}

func TestShadeGlyph(t *testing.T) {
	tests := []struct {
		alpha float64
		want  rune
	}{
		{-1, ' '},
		{0, ' '},
		{0.1, '░'},
		{0.5, '▒'},
		{0.9, '▓'},
		{1, SolidChar},
		{2, SolidChar},
	}
	for _, tc := range tests {
		if got := ShadeGlyph(tc.alpha); got != tc.want {
			t.Errorf("ShadeGlyph(%v) = %q, expected %q", tc.alpha, got, tc.want)
		}
	}
}
