package game

import (
	"image/color"
	"math"

	"chosenoffset.com/kizilcik/internal/core/entity"
	"chosenoffset.com/kizilcik/internal/core/session"
	"chosenoffset.com/kizilcik/internal/render"
	"chosenoffset.com/kizilcik/internal/ui/hud"
	"chosenoffset.com/kizilcik/internal/ui/label"
)

// Draw renders the latest snapshot to the screen.
func (g *Game) Draw(screen render.Image) {
	snap := g.last
	screen.Fill(backgroundColor)

	g.drawCharacter(screen, snap.Player.Rect, snap.Player.Name, playerFallback)

	for _, p := range snap.Projectiles {
		g.drawHeart(screen, p.Rect)
	}

	for _, t := range snap.Targets {
		g.drawCharacter(screen, t.Rect, t.Name, targetFallback)
		phrase := t.Phrase
		if phrase == "" {
			phrase = "...?"
		}
		g.drawSpeechBubble(screen, phrase, t.CenterX(), t.Y)
	}

	for _, o := range snap.Obstacles {
		g.drawCharacter(screen, o.Rect, o.Name, obstacleFallback)
	}

	if snap.Boss != nil {
		g.drawCharacter(screen, snap.Boss.Rect, snap.Boss.Name, bossFallback)
		g.drawBossHealthBar(screen, snap.Boss)
	}

	g.drawFloatingTexts(screen, snap)

	g.GameHUD.Draw(screen, snap, label.Difficulty(snap.Difficulty), g.Sound != nil && g.Sound.Muted())
	g.drawOverlay(screen, snap)
}

// drawCharacter draws a sprite scaled to r with the name underneath. Characters without
// an image get a plain box.
func (g *Game) drawCharacter(screen render.Image, r entity.Rect, name string, fallback color.Color) {
	if img, ok := g.Assets.Image(name); ok {
		w, h := img.Size()
		opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
		if w > 0 && h > 0 {
			opts.GeoM.Scale(r.W/float64(w), r.H/float64(h))
		}
		opts.GeoM.Translate(r.X, r.Y)
		screen.DrawImage(img, opts)
	} else {
		g.Renderer.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fallback)
	}

	if name == "" {
		return
	}
	tw, _ := g.Renderer.MeasureText(name, nameSize)
	g.Renderer.DrawText(screen, name, r.CenterX()-tw/2, r.Y+r.H+2, nameColor, nameSize)
}

// drawHeart draws a projectile as a heart filling its rectangle: two lobes on top of
// a downward triangle.
func (g *Game) drawHeart(screen render.Image, r entity.Rect) {
	lobe := float32(r.W / 2)
	top := float32(r.Y) + lobe
	cx := float32(r.CenterX())
	g.Renderer.FillCircle(screen, cx-lobe/2, top, lobe/2+1, heartColor)
	g.Renderer.FillCircle(screen, cx+lobe/2, top, lobe/2+1, heartColor)
	g.Renderer.FillTriangle(screen,
		float32(r.X)-1, top,
		float32(r.X+r.W)+1, top,
		cx, float32(r.Y+r.H),
		heartColor)
}

// drawSpeechBubble draws a bubble above (x, y) with a small tail pointing down.
func (g *Game) drawSpeechBubble(screen render.Image, text string, x, y float64) {
	const (
		bubbleWidth  = 80
		bubbleHeight = 20
		tail         = 5
	)
	bx := float32(x - bubbleWidth/2)
	by := float32(y - bubbleHeight - tail - 5)

	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	g.Renderer.FillRect(screen, bx, by, bubbleWidth, bubbleHeight, white)
	g.Renderer.StrokeRect(screen, bx, by, bubbleWidth, bubbleHeight, 1, black)
	g.Renderer.FillTriangle(screen,
		float32(x)-5, by+bubbleHeight,
		float32(x)+5, by+bubbleHeight,
		float32(x), by+bubbleHeight+tail,
		white)

	text = label.Fit(text, 13)
	tw, th := g.Renderer.MeasureText(text, bubbleSize)
	g.Renderer.DrawText(screen, text, x-tw/2, float64(by)+(bubbleHeight-th)/2, black, bubbleSize)
}

// drawBossHealthBar draws the remaining hit points as a bar under the HUD.
func (g *Game) drawBossHealthBar(screen render.Image, b *entity.Boss) {
	const (
		barWidth  = 100
		barHeight = 10
	)
	x := float32(g.ScreenWidth)/2 - barWidth/2
	y := float32(52)

	ratio := 0.0
	if b.MaxHP > 0 {
		ratio = math.Max(0, float64(b.HitPoints)/float64(b.MaxHP))
	}
	g.Renderer.FillRect(screen, x, y, barWidth, barHeight, color.RGBA{0x55, 0x55, 0x55, 255})
	g.Renderer.FillRect(screen, x, y, float32(barWidth*ratio), barHeight, color.RGBA{255, 0, 0, 255})
	g.Renderer.StrokeRect(screen, x, y, barWidth, barHeight, 1, color.RGBA{0, 0, 0, 255})
}

// drawFloatingTexts draws each text rising and fading over its lifetime.
func (g *Game) drawFloatingTexts(screen render.Image, snap session.Snapshot) {
	for _, t := range snap.Texts {
		p := t.Progress(snap.Taken)
		c := hud.NamedColor(t.Color)
		faded := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * (1 - p))}

		tw, th := g.Renderer.MeasureText(t.Text, t.Size)
		y := t.Y - p*floatRise
		g.Renderer.DrawText(screen, t.Text, t.X-tw/2, y-th/2, faded, t.Size)
	}
}

// drawOverlay dims the field and shows the end-of-game message.
func (g *Game) drawOverlay(screen render.Image, snap session.Snapshot) {
	lines := hud.OverlayLines(snap)
	if lines == nil {
		return
	}
	w, h := float64(g.ScreenWidth), float64(g.ScreenHeight)
	g.Renderer.FillRect(screen, 0, 0, float32(w), float32(h), overlayColor)

	lines[0] = label.Upper(lines[0])
	const lineHeight = 50
	startY := h/2 - float64(len(lines)-1)*lineHeight/2
	white := color.RGBA{255, 255, 255, 255}
	for i, line := range lines {
		tw, th := g.Renderer.MeasureText(line, overlaySize)
		g.Renderer.DrawText(screen, line, w/2-tw/2, startY+float64(i)*lineHeight-th/2, white, overlaySize)
	}

	hint := "Enter: yeniden başla   Esc: menü"
	tw, _ := g.Renderer.MeasureText(hint, hintSize)
	g.Renderer.DrawText(screen, hint, w/2-tw/2, h-40, color.RGBA{200, 200, 200, 255}, hintSize)
}
