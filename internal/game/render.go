package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/siraegi-run/internal/core"
	"github.com/vovakirdan/siraegi-run/internal/render"
)

// HUD and scenery glyphs
const (
	GroundChar    = '═'
	HeartFull     = '♥'
	HeartHalf     = '♡'
	HeartEmpty    = '·'
	ItemChar      = '●'
	ProgressFill  = '='
	ProgressEmpty = '.'
	ProgressMark  = '>'

	progressCells = 20
	hitsPerHeart  = 2
	flashAlpha    = 0.4
)

// Render draws the current state onto the session's screen.
func (s *Session) Render() {
	c := s.canvas
	c.Clear()

	switch s.state {
	case StateStart:
		s.drawTitle()
	case StateIntro:
		s.drawIntro()
	default:
		s.drawWorld()
		s.drawHUD()

		switch s.state {
		case StatePaused:
			s.drawCenteredMessage("PAUSED", "Press P to resume")
		case StateGameOver:
			s.drawCenteredMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Space to restart", int(s.Score())))
		case StateClear:
			s.drawCenteredMessage("CLEAR!", fmt.Sprintf("Score: %d  |  Space to restart", int(s.Score())))
		}
	}
}

// drawWorld draws background, ground, entities, popups and the stage fade.
func (s *Session) drawWorld() {
	c := s.canvas
	st := s.stages.StageConfig()
	w, _ := s.stages.Size()
	ground := s.stages.Ground()

	bgColor, _ := core.ParseColor(st.BackgroundColor)
	_, cellH := c.CellSize()
	c.TileSprite(s.assets.Sprite(st.Background), s.viewport.SafePadding+cellH*2, bgColor)

	// Ground line
	c.FillRect(core.NewRect(0, ground, w, 1), GroundChar, core.ColorGray)

	for _, o := range s.stages.Obstacles() {
		c.DrawSprite(s.assets.Sprite(o.Sprite()), o.Bounds(), o.Color(), o.Alpha())
	}

	for _, it := range s.stages.Items() {
		if sprite := s.assets.Sprite(it.Sprite()); sprite != nil {
			c.DrawSprite(sprite, it.Bounds(), it.Color(), 1)
		} else {
			cx, cy := it.Center()
			c.FillCircle(cx, cy, it.Radius(), ItemChar, it.Color())
		}
	}

	alpha := 1.0
	if s.player.Invincible() && s.player.Flash() {
		alpha = flashAlpha
	}
	playerColor, _ := core.ParseColor(s.cfg.Player.Color)
	c.DrawSprite(s.assets.Sprite(st.PlayerSprite), s.player.Bounds(), playerColor, alpha)

	for _, t := range s.texts {
		c.DrawTextAlpha(t.X, t.Y, t.Text, render.AlignCenter, t.Color, t.Alpha)
	}

	c.Shade(s.stages.FadeOpacity())
}

// drawHUD draws score, hearts, progress and stage below the safe padding.
func (s *Session) drawHUD() {
	c := s.canvas
	cellW, _ := c.CellSize()
	w, _ := s.stages.Size()
	y := s.viewport.SafePadding

	c.DrawText(cellW, y, fmt.Sprintf("SCORE %d", int(s.Score())), render.AlignLeft, core.ColorBrightWhite)
	c.DrawText(cellW*12, y, Hearts(s.hits, s.cfg.Session.MaxHits), render.AlignLeft, core.ColorBrightRed)

	stageText := fmt.Sprintf("STAGE %d %s", s.stages.Stage()+1, s.stages.StageConfig().Name)
	c.DrawText(w/2, y, stageText, render.AlignCenter, core.ColorBrightCyan)

	c.DrawText(w-cellW, y, ProgressBar(s.stages.Progress(), progressCells), render.AlignRight, core.ColorWhite)
}

// Hearts renders the life meter: one heart per two hits of budget, full
// while untouched, half after one hit against it, empty after two.
func Hearts(hits, maxHits int) string {
	count := (maxHits + hitsPerHeart - 1) / hitsPerHeart
	var sb strings.Builder
	for i := 0; i < count; i++ {
		damage := hits - i*hitsPerHeart
		switch {
		case damage <= 0:
			sb.WriteRune(HeartFull)
		case damage == 1:
			sb.WriteRune(HeartHalf)
		default:
			sb.WriteRune(HeartEmpty)
		}
	}
	return sb.String()
}

// ProgressBar renders progress in [0, 1] as a bracketed bar of cells width
// with a marker at the current position.
func ProgressBar(progress float64, cells int) string {
	progress = core.ClampF(progress, 0, 1)
	filled := int(progress * float64(cells))

	bar := make([]rune, cells)
	for i := range bar {
		if i < filled {
			bar[i] = ProgressFill
		} else {
			bar[i] = ProgressEmpty
		}
	}
	bar[min(filled, cells-1)] = ProgressMark
	return "[" + string(bar) + "]"
}

// drawTitle draws the start screen.
func (s *Session) drawTitle() {
	dst := s.canvas.Screen()
	first := s.cfg.Stages[0]
	bgColor, _ := core.ParseColor(first.BackgroundColor)
	_, cellH := s.canvas.CellSize()
	s.canvas.TileSprite(s.assets.Sprite(first.Background), s.viewport.SafePadding+cellH, bgColor)

	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-2, "S I R A E G I   R U N")
	dst.DrawTextCentered(mid, "Press Space to start")
	dst.DrawTextCentered(mid+2, "Q to quit")
}

// drawIntro draws the current story/how-to page.
func (s *Session) drawIntro() {
	intro := s.cfg.Session.Intro
	if s.introPage >= len(intro) {
		return
	}
	page := intro[s.introPage]
	dst := s.canvas.Screen()

	width := len([]rune(page.Title))
	for _, line := range page.Lines {
		width = max(width, len([]rune(line)))
	}
	boxW := min(width+4, dst.Width())
	boxH := len(page.Lines) + 6
	boxX := (dst.Width() - boxW) / 2
	boxY := max(0, (dst.Height()-boxH)/2)

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ')
	dst.DrawBox(boxX, boxY, boxW, boxH)
	dst.DrawTextColored(boxX+(boxW-len([]rune(page.Title)))/2, boxY+1, page.Title, core.ColorBrightYellow)
	for i, line := range page.Lines {
		dst.DrawText(boxX+2, boxY+3+i, line)
	}

	footer := fmt.Sprintf("Space: continue (%d/%d)", s.introPage+1, len(intro))
	dst.DrawTextColored(boxX+(boxW-len(footer))/2, boxY+boxH-2, footer, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (s *Session) drawCenteredMessage(title, subtitle string) {
	dst := s.canvas.Screen()
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ')
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
