package terminal

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/kizilcik/internal/core/entity"
	"chosenoffset.com/kizilcik/internal/core/session"
	"chosenoffset.com/kizilcik/internal/ui/hud"
	"chosenoffset.com/kizilcik/internal/ui/label"
)

const (
	heartRune = '♥'
	textRise  = 30 // Pixels a floating text climbs over its lifetime
)

var (
	fieldStyle    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	hudStyle      = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	nameStyle     = fieldStyle.Foreground(tcell.ColorSilver)
	bubbleStyle   = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	heartStyle    = fieldStyle.Foreground(tcell.ColorRed)
	overlayStyle  = tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite).Bold(true)
	playerStyle   = fieldStyle.Foreground(tcell.ColorDodgerBlue).Bold(true)
	targetStyle   = fieldStyle.Foreground(tcell.ColorGreen).Bold(true)
	obstacleStyle = fieldStyle.Foreground(tcell.ColorPurple).Bold(true)
	bossStyle     = fieldStyle.Foreground(tcell.ColorRed).Bold(true)
	startStyle    = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorWhite).Bold(true)
	stopStyle     = tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite).Bold(true)
)

// buttonArea is the Start/Stop button on the HUD row, columns x0 up to x1.
type buttonArea struct {
	x0, x1, y int
}

func (b buttonArea) contains(x, y int) bool {
	return y == b.y && x >= b.x0 && x < b.x1
}

// grid maps field pixels to cells. Row 0 is the HUD; the field fills the rest.
type grid struct {
	cols, rows    int
	width, height float64
}

func (g grid) col(x float64) int {
	return clamp(int(x*float64(g.cols)/g.width), 0, g.cols-1)
}

func (g grid) row(y float64) int {
	return 1 + clamp(int(y*float64(g.rows-1)/g.height), 0, g.rows-2)
}

// cells returns the cell span covered by r, at least one cell each way.
func (g grid) cells(r entity.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = g.col(r.X), g.row(r.Y)
	c1, r1 = g.col(r.X+r.W), g.row(r.Y+r.H)
	if c1 <= c0 {
		c1 = c0 + 1
	}
	if r1 <= r0 {
		r1 = r0 + 1
	}
	return c0, r0, c1, r1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// draw renders the snapshot onto the screen.
func (l *Loop) draw(snap session.Snapshot) {
	s := l.screen
	cols, rows := s.Size()
	s.Clear()
	fill(s, 0, 0, cols, rows, ' ', fieldStyle)

	if cols > 0 && rows > 1 && snap.Width > 0 && snap.Height > 0 {
		g := grid{cols: cols, rows: rows, width: snap.Width, height: snap.Height}

		for _, o := range snap.Obstacles {
			l.drawCharacter(g, o.Rect, o.Name, obstacleStyle)
		}
		for _, t := range snap.Targets {
			l.drawCharacter(g, t.Rect, t.Name, targetStyle)
			phrase := t.Phrase
			if phrase == "" {
				phrase = "...?"
			}
			_, r0, _, _ := g.cells(t.Rect)
			if r0 > 1 {
				drawCentered(s, g.col(t.CenterX()), r0-1, label.Fit(phrase, 13), bubbleStyle)
			}
		}
		if snap.Boss != nil {
			l.drawCharacter(g, snap.Boss.Rect, snap.Boss.Name, bossStyle)
		}
		l.drawCharacter(g, snap.Player.Rect, snap.Player.Name, playerStyle)

		for _, p := range snap.Projectiles {
			s.SetContent(g.col(p.CenterX()), g.row(p.CenterY()), heartRune, nil, heartStyle)
		}

		for _, t := range snap.Texts {
			p := t.Progress(snap.Taken)
			c := hud.NamedColor(t.Color)
			style := fieldStyle.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).Bold(true)
			drawCentered(s, g.col(t.X), g.row(t.Y-p*textRise), t.Text, style)
		}
	}

	l.drawHUD(snap, cols)
	l.drawOverlay(snap, cols, rows)
	s.Show()
}

// drawCharacter fills the character's cells with its initial and writes the name below.
func (l *Loop) drawCharacter(g grid, r entity.Rect, name string, style tcell.Style) {
	ch := l.glyphs.Rune(name)
	c0, r0, c1, r1 := g.cells(r)
	fill(l.screen, c0, r0, c1-c0, r1-r0, ch, style)

	if name != "" && r1 < g.rows {
		drawCentered(l.screen, (c0+c1)/2, r1, label.Fit(name, c1-c0+4), nameStyle)
	}
}

// drawHUD writes the status line and the button on the top row.
func (l *Loop) drawHUD(snap session.Snapshot, cols int) {
	s := l.screen
	fill(s, 0, 0, cols, 1, ' ', hudStyle)

	parts := hud.StatusLines(snap)
	parts = append(parts, label.Difficulty(snap.Difficulty))
	if l.sound != nil && l.sound.Muted() {
		parts = append(parts, "[sessiz]")
	}
	drawText(s, 1, 0, strings.Join(parts, "  "), hudStyle)

	text := "[ " + hud.ButtonLabel(snap.Phase) + " ]"
	style := startStyle
	if snap.Phase.Active() {
		style = stopStyle
	}
	n := utf8.RuneCountInString(text)
	x := cols - n - 1
	if x < 0 {
		x = 0
	}
	drawText(s, x, 0, text, style)
	l.button = buttonArea{x0: x, x1: x + n, y: 0}
}

// drawOverlay shows the end-of-game message in a box in the middle of the field.
func (l *Loop) drawOverlay(snap session.Snapshot, cols, rows int) {
	lines := hud.OverlayLines(snap)
	if lines == nil {
		return
	}
	lines[0] = label.Upper(lines[0])
	lines = append(lines, "", "Enter: yeniden başla  Esc: menü")

	width := 0
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	width += 4
	height := len(lines) + 2
	x := (cols - width) / 2
	y := (rows - height) / 2
	fill(l.screen, x, y, width, height, ' ', overlayStyle)
	for i, line := range lines {
		drawCentered(l.screen, cols/2, y+1+i, line, overlayStyle)
	}
}

func fill(s tcell.Screen, x, y, w, h int, ch rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ch, nil, style)
		}
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawCentered(s tcell.Screen, cx, y int, text string, style tcell.Style) {
	drawText(s, cx-utf8.RuneCountInString(text)/2, y, text, style)
}
