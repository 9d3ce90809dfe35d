package terminal

import (
	"io"
	"log"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"chosenoffset.com/kizilcik/internal/assets"
	"chosenoffset.com/kizilcik/internal/config"
	"chosenoffset.com/kizilcik/internal/core/progress"
	"chosenoffset.com/kizilcik/internal/core/session"
	"chosenoffset.com/kizilcik/internal/core/spawn"
	"chosenoffset.com/kizilcik/internal/sfx"
	"chosenoffset.com/kizilcik/internal/timing"
)

type countingSink struct{ played int }

func (c *countingSink) Play(sfx.Cue) { c.played++ }
func (c *countingSink) Close() error { return nil }

func newTestLoop(t *testing.T) (*Loop, *timing.ManualClock, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	cfg := config.DefaultConfig()
	logger := log.New(io.Discard, "", 0)
	clock := timing.NewManualClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	sched := timing.NewScheduler()
	glyphs := assets.NewGlyphs(cfg.AllNames())
	s := session.New(session.Options{
		Config:    cfg,
		Rand:      rand.New(rand.NewSource(5)),
		Assets:    spawn.AssetFunc(glyphs.Ready),
		Clock:     clock,
		Scheduler: sched,
		Logger:    logger,
	})
	l := NewLoop(screen, Options{
		Session:   s,
		Scheduler: sched,
		Clock:     clock,
		Glyphs:    glyphs,
		Sound:     sfx.NewPlayer(&countingSink{}, false, logger),
		Logger:    logger,
	})
	return l, clock, screen
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }
func char(r rune) *tcell.EventKey     { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

// rowText reads one screen row back as a string.
func rowText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(screen tcell.SimulationScreen) string {
	_, h := screen.Size()
	var lines []string
	for y := 0; y < h; y++ {
		lines = append(lines, rowText(screen, y))
	}
	return strings.Join(lines, "\n")
}

func TestHeldDirectionDecays(t *testing.T) {
	l, clock, _ := newTestLoop(t)

	l.handleEvent(key(tcell.KeyRight))
	if in := l.input(clock.Now()); !in.Right || in.Left {
		t.Errorf("Expected right to be held, got %+v", in)
	}

	clock.Advance(holdWindow / 2)
	if in := l.input(clock.Now()); !in.Right {
		t.Errorf("Expected right to stay held inside the window")
	}

	clock.Advance(holdWindow)
	if in := l.input(clock.Now()); in.Right {
		t.Errorf("Expected right to be released after the window")
	}

	l.handleEvent(char('d'))
	l.handleEvent(char('A'))
	if in := l.input(clock.Now()); in.Right || !in.Left {
		t.Errorf("Expected the opposite key to cancel right, got %+v", in)
	}
}

func TestFireIsConsumedOnce(t *testing.T) {
	l, clock, _ := newTestLoop(t)

	l.handleEvent(char(' '))
	if in := l.input(clock.Now()); !in.Fire {
		t.Errorf("Expected fire after space")
	}
	if in := l.input(clock.Now()); in.Fire {
		t.Errorf("Expected fire to be consumed by the first frame")
	}
}

func TestKeys(t *testing.T) {
	l, _, _ := newTestLoop(t)
	l.session.Start("")

	if _, exit := l.handleEvent(key(tcell.KeyEscape)); exit {
		t.Fatalf("The first Escape should only stop the game")
	}
	if l.session.Phase() != progress.PhaseLost {
		t.Fatalf("Expected Escape to stop the game, got %s", l.session.Phase())
	}

	l.handleEvent(key(tcell.KeyEnter))
	if l.session.Phase() != progress.PhaseRunning {
		t.Fatalf("Expected Enter to restart, got %s", l.session.Phase())
	}

	l.handleEvent(char('m'))
	if !l.sound.Muted() {
		t.Errorf("Expected m to mute")
	}

	if res, exit := l.handleEvent(char('q')); !exit || res != ResultQuit {
		t.Errorf("Expected q to quit, got %v %v", res, exit)
	}
	if res, exit := l.handleEvent(key(tcell.KeyCtrlC)); !exit || res != ResultQuit {
		t.Errorf("Expected Ctrl-C to quit, got %v %v", res, exit)
	}

	l.session.Stop()
	if res, exit := l.handleEvent(key(tcell.KeyEscape)); !exit || res != ResultMenu {
		t.Errorf("Expected Escape after game over to return to the menu, got %v %v", res, exit)
	}
}

func TestFrameDrawsField(t *testing.T) {
	l, clock, screen := newTestLoop(t)
	l.session.Start("")

	l.frame()
	hudRow := rowText(screen, 0)
	if !strings.Contains(hudRow, "Skor: 0/") || !strings.Contains(hudRow, "Seviye: 1") {
		t.Errorf("Expected the status line on row 0, got %q", hudRow)
	}
	if !strings.Contains(hudRow, "[ Bitir ]") {
		t.Errorf("Expected the stop button while running, got %q", hudRow)
	}

	// The player starts at the bottom centre
	snap := l.last
	g := grid{cols: 80, rows: 25, width: snap.Width, height: snap.Height}
	c0, r0, _, _ := g.cells(snap.Player.Rect)
	if r, _, _, _ := screen.GetContent(c0, r0); r != 'A' {
		t.Errorf("Expected the player's initial A at %d,%d, got %q", c0, r0, r)
	}

	l.handleEvent(char(' '))
	clock.Advance(frameInterval)
	l.frame()
	if len(l.last.Projectiles) != 1 {
		t.Fatalf("Expected 1 projectile, got %d", len(l.last.Projectiles))
	}
	p := l.last.Projectiles[0]
	if r, _, _, _ := screen.GetContent(g.col(p.CenterX()), g.row(p.CenterY())); r != heartRune {
		t.Errorf("Expected a heart at the projectile, got %q", r)
	}
}

func TestButtonClickTogglesGame(t *testing.T) {
	l, _, screen := newTestLoop(t)
	l.session.Start("")
	l.frame()

	b := l.button
	l.handleEvent(tcell.NewEventMouse(b.x0+1, b.y, tcell.Button1, tcell.ModNone))
	if l.session.Phase() != progress.PhaseLost {
		t.Fatalf("Expected the button to stop the game, got %s", l.session.Phase())
	}

	// Holding the button does not toggle again
	l.handleEvent(tcell.NewEventMouse(b.x0+1, b.y, tcell.Button1, tcell.ModNone))
	if l.session.Phase() != progress.PhaseLost {
		t.Fatalf("Expected a held button to be ignored")
	}

	l.frame()
	text := screenText(screen)
	if !strings.Contains(text, "OYUN BİTTİ!") || !strings.Contains(text, "Oyun Durduruldu") {
		t.Errorf("Expected the game-over overlay, got\n%s", text)
	}
	if !strings.Contains(rowText(screen, 0), "[ Başlat ]") {
		t.Errorf("Expected the start button after game over")
	}

	l.handleEvent(tcell.NewEventMouse(b.x0+1, b.y, tcell.ButtonNone, tcell.ModNone))
	l.handleEvent(tcell.NewEventMouse(b.x0+1, b.y, tcell.Button1, tcell.ModNone))
	if l.session.Phase() != progress.PhaseRunning {
		t.Errorf("Expected a second click to start a new game, got %s", l.session.Phase())
	}
}

func TestPublishEveryFrame(t *testing.T) {
	l, clock, _ := newTestLoop(t)
	var got []session.Snapshot
	l.publish = func(s session.Snapshot) { got = append(got, s) }
	l.session.Start("")

	for i := 0; i < 3; i++ {
		clock.Advance(frameInterval)
		l.frame()
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 published snapshots, got %d", len(got))
	}
}

func TestStartForm(t *testing.T) {
	cfg := config.DefaultConfig()
	f := NewStartForm("Kızılcık", cfg.DifficultyNames(), config.DifficultyHard)

	if f.Selected() != config.DifficultyHard {
		t.Errorf("Expected hard preselected, got %q", f.Selected())
	}
	if n := f.form.GetButtonCount(); n != 2 {
		t.Fatalf("Expected 2 buttons, got %d", n)
	}
	if got := f.form.GetButton(0).GetLabel(); got != "Başlat" {
		t.Errorf("Expected Başlat, got %q", got)
	}

	dd, ok := f.form.GetFormItem(0).(*tview.DropDown)
	if !ok {
		t.Fatalf("Expected a difficulty dropdown")
	}
	dd.SetCurrentOption(0)
	if f.Selected() != config.DifficultyEasy {
		t.Errorf("Expected easy after picking the first option, got %q", f.Selected())
	}
	if _, text := dd.GetCurrentOption(); text != "Kolay" {
		t.Errorf("Expected the Turkish label Kolay, got %q", text)
	}

	f.form.GetButton(0).InputHandler()(key(tcell.KeyEnter), func(tview.Primitive) {})
	if !f.start {
		t.Errorf("Expected Başlat to request a start")
	}
	f.form.GetButton(1).InputHandler()(key(tcell.KeyEnter), func(tview.Primitive) {})
	if f.start {
		t.Errorf("Expected Çıkış to cancel the start")
	}
}
