package menu

import (
	"testing"

	"chosenoffset.com/kizilcik/internal/render"
	"chosenoffset.com/kizilcik/internal/render/rendertest"
)

var tiers = []string{"easy", "normal", "hard"}

func newTestMenu() (*MainMenu, *rendertest.Input, *rendertest.Renderer) {
	in := rendertest.NewInput()
	r := &rendertest.Renderer{}
	return NewMainMenu("Kızılcık", tiers, "normal", r, in, 800, 600), in, r
}

func TestPreselect(t *testing.T) {
	m, _, _ := newTestMenu()
	if m.Selected() != "normal" {
		t.Errorf("Expected normal, got %q", m.Selected())
	}
	m.Select("nightmare")
	if m.Selected() != "normal" {
		t.Errorf("Unknown tiers must not move the selection, got %q", m.Selected())
	}
}

func TestKeyboardNavigation(t *testing.T) {
	m, in, _ := newTestMenu()

	in.Press(render.KeyDown)
	if started, _ := m.Update(); started {
		t.Fatal("Moving the selection should not start")
	}
	if m.Selected() != "hard" {
		t.Errorf("Expected hard, got %q", m.Selected())
	}

	// Holding the key does not repeat
	in.Frame()
	m.Update()
	if m.Selected() != "hard" {
		t.Errorf("Expected a held key not to move again, got %q", m.Selected())
	}

	in.Release(render.KeyDown)
	in.Press(render.KeyDown)
	m.Update()
	if m.Selected() != "easy" {
		t.Errorf("Expected wrap-around to easy, got %q", m.Selected())
	}
	in.Frame()

	in.Press(render.KeyEnter)
	started, sel := m.Update()
	if !started || sel.Difficulty != "easy" {
		t.Errorf("Expected start on easy, got %v %+v", started, sel)
	}
}

func TestMouseSelectAndStart(t *testing.T) {
	m, in, _ := newTestMenu()

	e := entryRect(2)
	in.Click(e.x+5, e.y+5)
	if started, _ := m.Update(); started {
		t.Fatal("Clicking an entry should not start")
	}
	if m.Selected() != "hard" {
		t.Errorf("Expected hard, got %q", m.Selected())
	}
	in.Frame()
	m.Update()

	s := m.startRect()
	in.Click(s.x+5, s.y+5)
	started, sel := m.Update()
	if !started || sel.Difficulty != "hard" {
		t.Errorf("Expected start on hard, got %v %+v", started, sel)
	}
}

func TestDraw(t *testing.T) {
	m, _, r := newTestMenu()
	screen := rendertest.NewImage(800, 600)
	m.Draw(screen)

	for _, want := range []string{"KIZILCIK", "Kolay", "Normal", "Zor", "Başlat"} {
		if !r.HasText(want) {
			t.Errorf("Expected %q on the menu", want)
		}
	}
	if screen.Filled == nil {
		t.Errorf("Expected the background to be filled")
	}
}
