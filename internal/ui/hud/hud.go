// Package hud draws the status bar over the playfield: score against the level target,
// level, remaining time, difficulty and the Start/Stop button. It also builds the texts
// of the game-over and victory overlays so every front end words them the same way.
package hud

import (
	"fmt"
	"image/color"

	"chosenoffset.com/kizilcik/internal/core/progress"
	"chosenoffset.com/kizilcik/internal/core/session"
	"chosenoffset.com/kizilcik/internal/render"
)

// Button labels
const (
	LabelStart = "Başlat"
	LabelStop  = "Bitir"
)

const (
	barHeight = 44
	textSize  = 16
	padding   = 10
)

// Rect is a screen rectangle in pixels
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle, edges included
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// HUD manages the heads-up display
type HUD struct {
	renderer     render.Renderer
	screenWidth  int
	screenHeight int
	button       Rect
}

// New creates a HUD for a screen of the given size
func New(r render.Renderer, screenWidth, screenHeight int) *HUD {
	h := &HUD{renderer: r}
	h.SetScreenSize(screenWidth, screenHeight)
	return h
}

// SetScreenSize updates the screen dimensions and moves the button to the right edge
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
	h.button = Rect{X: width - 110, Y: 8, W: 100, H: 28}
}

// Button returns the Start/Stop button area
func (h *HUD) Button() Rect { return h.button }

// ButtonHit reports whether a click at (x, y) presses the Start/Stop button
func (h *HUD) ButtonHit(x, y int) bool {
	return h.button.Contains(x, y)
}

// ButtonLabel is "Bitir" while a game runs and "Başlat" otherwise.
func ButtonLabel(phase progress.Phase) string {
	if phase.Active() {
		return LabelStop
	}
	return LabelStart
}

// StatusLines returns the score, level and time readouts.
func StatusLines(snap session.Snapshot) []string {
	level := snap.Level
	if level == 0 {
		level = 1
	}
	lines := []string{
		fmt.Sprintf("Skor: %d/%d", snap.Score, snap.Target),
		fmt.Sprintf("Seviye: %d", level),
	}
	if snap.Phase == progress.PhaseBossFight {
		lines = append(lines, fmt.Sprintf("Boss: %d/%d", snap.BossHP, snap.BossMaxHP))
	} else {
		lines = append(lines, fmt.Sprintf("Süre: %d", snap.Remaining))
	}
	return lines
}

// ReasonText translates an end-of-game reason for display.
func ReasonText(reason string) string {
	switch reason {
	case progress.ReasonTimeExpired:
		return "Süre doldu!"
	case progress.ReasonStopped:
		return "Oyun Durduruldu"
	case progress.ReasonWon:
		return "Oyunu Kazandın!"
	default:
		return reason
	}
}

// OverlayLines returns the message shown over the field after a game ends, or nil
// while no game has ended.
func OverlayLines(snap session.Snapshot) []string {
	switch snap.Phase {
	case progress.PhaseLost:
		return []string{"Oyun Bitti!", ReasonText(snap.Reason), fmt.Sprintf("Skor: %d", snap.Score)}
	case progress.PhaseWon:
		return []string{"Tebrikler!", ReasonText(snap.Reason), fmt.Sprintf("Final Skoru: %d", snap.Score)}
	default:
		return nil
	}
}

// Draw renders the HUD to the screen
func (h *HUD) Draw(screen render.Image, snap session.Snapshot, difficulty string, muted bool) {
	// Panel background
	h.renderer.FillRect(screen, 0, 0, float32(h.screenWidth), barHeight, color.RGBA{0, 0, 0, 150})

	x := float64(padding)
	for _, line := range StatusLines(snap) {
		h.renderer.DrawText(screen, line, x, 14, color.RGBA{255, 255, 255, 255}, textSize)
		w, _ := h.renderer.MeasureText(line, textSize)
		x += w + 24
	}

	info := difficulty
	if muted {
		info += "  [sessiz]"
	}
	h.renderer.DrawText(screen, info, x, 14, color.RGBA{180, 180, 180, 255}, textSize)

	h.drawButton(screen, ButtonLabel(snap.Phase))
}

func (h *HUD) drawButton(screen render.Image, text string) {
	b := h.button
	fill := color.RGBA{0, 150, 70, 255}
	if text == LabelStop {
		fill = color.RGBA{180, 40, 40, 255}
	}
	h.renderer.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fill)
	h.renderer.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, color.RGBA{255, 255, 255, 200})

	w, th := h.renderer.MeasureText(text, textSize)
	tx := float64(b.X) + (float64(b.W)-w)/2
	ty := float64(b.Y) + (float64(b.H)-th)/2
	h.renderer.DrawText(screen, text, tx, ty, color.RGBA{255, 255, 255, 255}, textSize)
}

// NamedColor resolves the colour names used by floating texts. Unknown names fall
// back to gold.
func NamedColor(name string) color.RGBA {
	switch name {
	case "red":
		return color.RGBA{255, 0, 0, 255}
	case "orange":
		return color.RGBA{255, 165, 0, 255}
	case "grey", "gray":
		return color.RGBA{128, 128, 128, 255}
	case "white":
		return color.RGBA{255, 255, 255, 255}
	case "green":
		return color.RGBA{0, 128, 0, 255}
	case "blue":
		return color.RGBA{0, 0, 255, 255}
	case "black":
		return color.RGBA{0, 0, 0, 255}
	default:
		return color.RGBA{255, 215, 0, 255} // Gold
	}
}
