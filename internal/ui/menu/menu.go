// Package menu is the window start screen: pick a difficulty tier and start a game.
package menu

import (
	"image/color"

	"chosenoffset.com/kizilcik/internal/render"
	"chosenoffset.com/kizilcik/internal/ui/label"
)

const (
	listX       = 300
	listY       = 220
	entryHeight = 40
	entryWidth  = 200
)

// Selection is what the menu hands back when a game should start.
type Selection struct {
	Difficulty string
}

// MainMenu represents the start screen.
type MainMenu struct {
	title          string
	difficulties   []string
	selected       int
	renderer       render.Renderer
	input          render.InputManager
	screenWidth    int
	screenHeight   int
	lastMouseClick bool
}

// NewMainMenu creates a menu over the given tiers with current preselected.
func NewMainMenu(title string, difficulties []string, current string, r render.Renderer, input render.InputManager, width, height int) *MainMenu {
	m := &MainMenu{
		title:        title,
		difficulties: difficulties,
		renderer:     r,
		input:        input,
		screenWidth:  width,
		screenHeight: height,
	}
	m.Select(current)
	return m
}

// Select moves the highlight to the named tier; unknown names are ignored.
func (m *MainMenu) Select(name string) {
	for i, d := range m.difficulties {
		if d == name {
			m.selected = i
			return
		}
	}
}

// Selected returns the highlighted tier.
func (m *MainMenu) Selected() string {
	if len(m.difficulties) == 0 {
		return ""
	}
	return m.difficulties[m.selected]
}

// Update updates the menu state based on user input.
// Returns true with the selection when a game should start.
func (m *MainMenu) Update() (bool, Selection) {
	mouseX, mouseY := m.input.GetCursorPosition()
	mousePressed := m.input.IsMouseButtonPressed(render.MouseButtonLeft)

	// Detect mouse click (button pressed this frame but not last frame)
	mouseClicked := mousePressed && !m.lastMouseClick
	m.lastMouseClick = mousePressed

	if mouseClicked {
		for i := range m.difficulties {
			if pointInRect(mouseX, mouseY, entryRect(i)) {
				m.selected = i
				break
			}
		}
		if pointInRect(mouseX, mouseY, m.startRect()) {
			return true, Selection{Difficulty: m.Selected()}
		}
	}

	if n := len(m.difficulties); n > 0 {
		if m.input.IsKeyJustPressed(render.KeyUp) || m.input.IsKeyJustPressed(render.KeyW) {
			m.selected = (m.selected + n - 1) % n
		}
		if m.input.IsKeyJustPressed(render.KeyDown) || m.input.IsKeyJustPressed(render.KeyS) {
			m.selected = (m.selected + 1) % n
		}
	}

	if m.input.IsKeyJustPressed(render.KeyEnter) || m.input.IsKeyJustPressed(render.KeySpace) {
		return true, Selection{Difficulty: m.Selected()}
	}

	return false, Selection{}
}

// Draw renders the menu to the screen.
func (m *MainMenu) Draw(screen render.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	white := color.RGBA{255, 255, 255, 255}
	title := label.Upper(m.title)
	w, _ := m.renderer.MeasureText(title, 48)
	m.renderer.DrawText(screen, title, (float64(m.screenWidth)-w)/2, 80, color.RGBA{220, 20, 60, 255}, 48)
	m.renderer.DrawText(screen, "Zorluk", listX, listY-36, white, 20)

	for i, d := range m.difficulties {
		r := entryRect(i)
		clr := color.RGBA{180, 180, 180, 255}
		if i == m.selected {
			clr = color.RGBA{255, 255, 100, 255}
			m.renderer.DrawText(screen, ">", float64(r.x-20), float64(r.y+8), clr, 20)
		}
		m.renderer.DrawText(screen, label.Difficulty(d), float64(r.x), float64(r.y+8), clr, 20)
	}

	s := m.startRect()
	m.renderer.FillRect(screen, float32(s.x), float32(s.y), float32(s.w), float32(s.h), color.RGBA{0, 150, 70, 255})
	bw, _ := m.renderer.MeasureText("Başlat", 20)
	m.renderer.DrawText(screen, "Başlat", float64(s.x)+(float64(s.w)-bw)/2, float64(s.y+10), white, 20)

	instructionY := float64(m.screenHeight - 60)
	grey := color.RGBA{150, 150, 150, 255}
	m.renderer.DrawText(screen, "Yukarı/Aşağı: zorluk seç, Enter veya Boşluk: başla", 20, instructionY, grey, 14)
	m.renderer.DrawText(screen, "Oyunda: oklar/WASD hareket, Boşluk ateş, M ses, Esc bitir", 20, instructionY+20, grey, 14)
}

func (m *MainMenu) startRect() rect {
	return rect{x: listX, y: listY + len(m.difficulties)*entryHeight + 20, w: entryWidth, h: 40}
}

// Helper types and functions

type rect struct {
	x, y, w, h int
}

func entryRect(i int) rect {
	return rect{x: listX, y: listY + i*entryHeight, w: entryWidth, h: entryHeight - 8}
}

func pointInRect(px, py int, r rect) bool {
	return px >= r.x && px <= r.x+r.w && py >= r.y && py <= r.y+r.h
}
