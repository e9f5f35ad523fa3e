// Package render projects the logical pixel world onto a character screen.
// Games draw in pixels; a Canvas maps every shape to the cells it covers.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/siraegi-run/internal/asset"
	"github.com/vovakirdan/siraegi-run/internal/core"
)

// Glyphs used for solid fills and placeholders.
const (
	SolidChar       = '█'
	PlaceholderChar = '?'
)

// Align controls horizontal text placement relative to the anchor x.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ErrNoScreen is returned when a canvas is built without a screen.
var ErrNoScreen = errors.New("render: screen is required")

// Canvas draws pixel-space shapes onto a core.Screen.
type Canvas struct {
	screen *core.Screen
	cellW  float64
	cellH  float64
}

// NewCanvas creates a canvas over screen where each cell covers
// cellW x cellH logical pixels.
func NewCanvas(screen *core.Screen, cellW, cellH float64) (*Canvas, error) {
	if screen == nil {
		return nil, ErrNoScreen
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("render: cell size must be positive, got %vx%v", cellW, cellH)
	}
	return &Canvas{screen: screen, cellW: cellW, cellH: cellH}, nil
}

// Screen returns the underlying screen.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

// CellSize returns the pixel size of one cell.
func (c *Canvas) CellSize() (w, h float64) {
	return c.cellW, c.cellH
}

// Size returns the canvas size in logical pixels.
func (c *Canvas) Size() (w, h float64) {
	return float64(c.screen.Width()) * c.cellW, float64(c.screen.Height()) * c.cellH
}

// ToCell maps a pixel position to the cell that contains it.
func (c *Canvas) ToCell(x, y float64) (col, row int) {
	return int(math.Floor(x / c.cellW)), int(math.Floor(y / c.cellH))
}

// cellSpan returns the cell range [x0, x1) x [y0, y1) covered by r.
// Non-empty rects always cover at least one cell.
func (c *Canvas) cellSpan(r core.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X / c.cellW))
	y0 = int(math.Floor(r.Y / c.cellH))
	x1 = int(math.Ceil(r.Right() / c.cellW))
	y1 = int(math.Ceil(r.Bottom() / c.cellH))
	if r.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if r.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// Clear blanks the screen.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// FillRect fills every cell touched by r.
func (c *Canvas) FillRect(r core.Rect, ch rune, color core.Color) {
	x0, y0, x1, y1 := c.cellSpan(r)
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			c.screen.SetColored(col, row, ch, color)
		}
	}
}

// FillRectAlpha fills r with the shade glyph for alpha. Zero alpha draws nothing.
func (c *Canvas) FillRectAlpha(r core.Rect, color core.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	c.FillRect(r, ShadeGlyph(alpha), color)
}

// FillCircle fills cells whose centres lie inside the circle. A circle
// smaller than a cell still marks the cell under its centre.
func (c *Canvas) FillCircle(cx, cy, radius float64, ch rune, color core.Color) {
	if radius <= 0 {
		return
	}
	x0, y0, x1, y1 := c.cellSpan(core.NewRect(cx-radius, cy-radius, radius*2, radius*2))
	drawn := false
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			px := (float64(col) + 0.5) * c.cellW
			py := (float64(row) + 0.5) * c.cellH
			dx, dy := px-cx, py-cy
			if dx*dx+dy*dy <= radius*radius {
				c.screen.SetColored(col, row, ch, color)
				drawn = true
			}
		}
	}
	if !drawn {
		col, row := c.ToCell(cx, cy)
		c.screen.SetColored(col, row, ch, color)
	}
}

// DrawSprite scales s into the cells covered by r using nearest-neighbour
// sampling. Transparent sprite cells are skipped. Alpha below 1 replaces the
// art with shade glyphs; alpha 0 draws nothing. A nil sprite draws a
// placeholder box instead.
func (c *Canvas) DrawSprite(s *asset.Sprite, r core.Rect, color core.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	if s == nil || s.Width == 0 || s.Height == 0 {
		c.DrawPlaceholder(r, color)
		return
	}

	x0, y0, x1, y1 := c.cellSpan(r)
	w, h := x1-x0, y1-y0
	for row := 0; row < h; row++ {
		sy := row * s.Height / h
		for col := 0; col < w; col++ {
			sx := col * s.Width / w
			ch := s.At(sx, sy)
			if ch == asset.Transparent {
				continue
			}
			if alpha < 1 {
				ch = ShadeGlyph(alpha)
			}
			c.screen.SetColored(x0+col, y0+row, ch, color)
		}
	}
}

// DrawPlaceholder outlines r and marks its centre.
func (c *Canvas) DrawPlaceholder(r core.Rect, color core.Color) {
	x0, y0, x1, y1 := c.cellSpan(r)
	w, h := x1-x0, y1-y0

	switch {
	case w >= 2 && h >= 2:
		for col := x0; col < x1; col++ {
			c.screen.SetColored(col, y0, '-', color)
			c.screen.SetColored(col, y1-1, '-', color)
		}
		for row := y0; row < y1; row++ {
			c.screen.SetColored(x0, row, '|', color)
			c.screen.SetColored(x1-1, row, '|', color)
		}
		c.screen.SetColored(x0, y0, '+', color)
		c.screen.SetColored(x1-1, y0, '+', color)
		c.screen.SetColored(x0, y1-1, '+', color)
		c.screen.SetColored(x1-1, y1-1, '+', color)
		c.screen.SetColored(x0+w/2, y0+h/2, PlaceholderChar, color)
	default:
		c.FillRect(r, PlaceholderChar, color)
	}
}

// TileSprite repeats s at its native cell size across the full width,
// with its top row at pixel y.
func (c *Canvas) TileSprite(s *asset.Sprite, y float64, color core.Color) {
	if s == nil || s.Width == 0 {
		return
	}
	_, row0 := c.ToCell(0, y)
	for row := 0; row < s.Height; row++ {
		for col := 0; col < c.screen.Width(); col++ {
			ch := s.At(col%s.Width, row)
			if ch == asset.Transparent {
				continue
			}
			c.screen.SetColored(col, row0+row, ch, color)
		}
	}
}

// DrawText writes text on the cell row containing pixel y, aligned to pixel x.
func (c *Canvas) DrawText(x, y float64, text string, align Align, color core.Color) {
	col, row := c.ToCell(x, y)
	n := len([]rune(text))
	switch align {
	case AlignCenter:
		col -= n / 2
	case AlignRight:
		col -= n
	}
	c.screen.DrawTextColored(col, row, text, color)
}

// DrawTextAlpha is DrawText that skips fully faded text.
func (c *Canvas) DrawTextAlpha(x, y float64, text string, align Align, color core.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha < 0.5 {
		color = core.ColorGray
	}
	c.DrawText(x, y, text, align, color)
}

// bayer4 is a 4x4 ordered-dither threshold map.
var bayer4 = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Shade darkens the whole screen by blanking a dithered share of cells.
// Opacity 0 leaves the screen untouched; 1 blanks everything.
func (c *Canvas) Shade(opacity float64) {
	if opacity <= 0 {
		return
	}
	threshold := core.ClampF(opacity, 0, 1) * 16
	for row := 0; row < c.screen.Height(); row++ {
		for col := 0; col < c.screen.Width(); col++ {
			if bayer4[row%4][col%4] < threshold {
				c.screen.SetColored(col, row, ' ', core.ColorBlack)
			}
		}
	}
}

// ShadeGlyph maps an opacity to a block glyph, lightest to solid.
func ShadeGlyph(alpha float64) rune {
	switch {
	case alpha <= 0:
		return ' '
	case alpha < 0.34:
		return '░'
	case alpha < 0.67:
		return '▒'
	case alpha < 1:
		return '▓'
	default:
		return SolidChar
	}
}
