package game

import (
	"chosenoffset.com/kizilcik/internal/render"
	"chosenoffset.com/kizilcik/internal/ui/menu"
)

// Manager handles the overall game state, switching between the start menu and play.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Screen       Screen
	MainMenu     *menu.MainMenu
	Game         *Game
	InputMgr     render.InputManager
}

// NewManager creates a new game manager that opens on the menu.
func NewManager(input render.InputManager, mainMenu *menu.MainMenu, g *Game, width, height int) *Manager {
	return &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		Screen:       ScreenMenu,
		MainMenu:     mainMenu,
		Game:         g,
		InputMgr:     input,
	}
}

// Update updates the game state. Escape stops a running game, leaves a finished one for
// the menu, and quits from the menu.
func (m *Manager) Update() error {
	switch m.Screen {
	case ScreenMenu:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			return render.ErrQuit
		}
		if started, selection := m.MainMenu.Update(); started {
			m.Game.Start(selection.Difficulty)
			m.Screen = ScreenPlaying
		}
	case ScreenPlaying:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			if m.Game.Active() {
				m.Game.Stop()
			} else {
				m.MainMenu.Select(m.Game.Difficulty())
				m.Screen = ScreenMenu
			}
			return nil
		}
		return m.Game.Update()
	}
	return nil
}

// Draw draws the current screen.
func (m *Manager) Draw(screen render.Image) {
	switch m.Screen {
	case ScreenMenu:
		m.MainMenu.Draw(screen)
	case ScreenPlaying:
		m.Game.Draw(screen)
	}
}

// Layout keeps the logical screen at the playfield size; the window scales it.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}
