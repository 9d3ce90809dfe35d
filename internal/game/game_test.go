package game

import (
	"errors"
	"io"
	"log"
	"math/rand"
	"testing"
	"time"

	"chosenoffset.com/kizilcik/internal/assets"
	"chosenoffset.com/kizilcik/internal/config"
	"chosenoffset.com/kizilcik/internal/core/progress"
	"chosenoffset.com/kizilcik/internal/core/session"
	"chosenoffset.com/kizilcik/internal/core/spawn"
	"chosenoffset.com/kizilcik/internal/render"
	"chosenoffset.com/kizilcik/internal/render/rendertest"
	"chosenoffset.com/kizilcik/internal/sfx"
	"chosenoffset.com/kizilcik/internal/timing"
	"chosenoffset.com/kizilcik/internal/ui/menu"
)

type countingSink struct{ played int }

func (c *countingSink) Play(sfx.Cue) { c.played++ }
func (c *countingSink) Close() error { return nil }

type harness struct {
	clock     *timing.ManualClock
	input     *rendertest.Input
	renderer  *rendertest.Renderer
	registry  *assets.Registry
	sink      *countingSink
	game      *Game
	manager   *Manager
	published []session.Snapshot
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	logger := log.New(io.Discard, "", 0)
	h := &harness{
		clock:    timing.NewManualClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		input:    rendertest.NewInput(),
		renderer: &rendertest.Renderer{},
		registry: assets.NewRegistry(),
		sink:     &countingSink{},
	}
	sched := timing.NewScheduler()
	s := session.New(session.Options{
		Config:    cfg,
		Rand:      rand.New(rand.NewSource(3)),
		Assets:    spawn.AssetFunc(func(string) bool { return true }),
		Clock:     h.clock,
		Scheduler: sched,
		Logger:    logger,
	})
	h.game = NewGame(Options{
		Session:   s,
		Scheduler: sched,
		Clock:     h.clock,
		Assets:    h.registry,
		Renderer:  h.renderer,
		Input:     h.input,
		Sound:     sfx.NewPlayer(h.sink, false, logger),
		Publish:   func(snap session.Snapshot) { h.published = append(h.published, snap) },
		Logger:    logger,
		Width:     int(cfg.Field.Width),
		Height:    int(cfg.Field.Height),
	})
	mainMenu := menu.NewMainMenu("Kızılcık", cfg.DifficultyNames(), cfg.Difficulty, h.renderer, h.input, 800, 600)
	h.manager = NewManager(h.input, mainMenu, h.game, 800, 600)
	return h
}

// tick runs one frame and clears the just-pressed state.
func (h *harness) tick(t *testing.T) {
	t.Helper()
	if err := h.manager.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	h.input.Frame()
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	h.input.Press(render.KeyEnter)
	h.tick(t)
	h.input.Release(render.KeyEnter)
	if h.manager.Screen != ScreenPlaying || !h.game.Active() {
		t.Fatalf("Expected a running game after Enter on the menu")
	}
}

func TestMenuStartsGame(t *testing.T) {
	h := newHarness(t)
	if h.manager.Screen != ScreenMenu {
		t.Fatalf("Expected to open on the menu")
	}
	h.start(t)

	snap := h.game.Snapshot()
	if snap.Phase != progress.PhaseRunning || snap.Level != 1 {
		t.Errorf("Expected level 1 running, got %s level %d", snap.Phase, snap.Level)
	}
	if snap.Difficulty != config.DifficultyNormal {
		t.Errorf("Expected the preselected difficulty, got %q", snap.Difficulty)
	}
	if snap.RunID == "" {
		t.Errorf("Expected a run id")
	}
}

func TestMovementAndFire(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	x := h.game.Snapshot().Player.X

	h.input.Press(render.KeyRight)
	h.tick(t)
	if got := h.game.Snapshot().Player.X; got != x+5 {
		t.Errorf("Expected the player to move 5px right, got %v -> %v", x, got)
	}
	h.input.Release(render.KeyRight)

	h.input.Press(render.KeySpace)
	h.tick(t)
	if n := len(h.game.Snapshot().Projectiles); n != 1 {
		t.Fatalf("Expected 1 projectile, got %d", n)
	}

	// Holding fire does not shoot again
	h.tick(t)
	if n := len(h.game.Snapshot().Projectiles); n != 1 {
		t.Errorf("Expected fire to be edge-triggered, got %d projectiles", n)
	}
	if h.sink.played == 0 {
		t.Errorf("Expected the fire cue to play")
	}
}

func TestLevelClockRunsInUpdate(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.clock.Advance(time.Second)
	h.tick(t)
	if got := h.game.Snapshot().Remaining; got != 29 {
		t.Errorf("Expected 29s left, got %d", got)
	}
}

func TestButtonTogglesGame(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	b := h.game.GameHUD.Button()

	h.input.Click(b.X+5, b.Y+5)
	h.tick(t)
	snap := h.game.Snapshot()
	if snap.Phase != progress.PhaseLost || snap.Reason != progress.ReasonStopped {
		t.Fatalf("Expected the button to stop the game, got %s (%q)", snap.Phase, snap.Reason)
	}

	h.game.Draw(rendertest.NewImage(800, 600))
	if !h.renderer.HasText("OYUN BİTTİ!") || !h.renderer.HasText("Oyun Durduruldu") {
		t.Errorf("Expected the game-over overlay")
	}

	h.input.Click(b.X+5, b.Y+5)
	h.tick(t)
	if h.game.Snapshot().Phase != progress.PhaseRunning {
		t.Errorf("Expected the button to start a new game")
	}
}

func TestEscapeFlow(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.input.Press(render.KeyEscape)
	h.tick(t)
	if h.game.Active() || h.manager.Screen != ScreenPlaying {
		t.Fatalf("Expected the first Escape to stop the game and keep the overlay")
	}

	h.input.Press(render.KeyEscape)
	h.tick(t)
	if h.manager.Screen != ScreenMenu {
		t.Fatalf("Expected the second Escape to open the menu")
	}

	h.input.Press(render.KeyEscape)
	if err := h.manager.Update(); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected Escape on the menu to quit, got %v", err)
	}
}

func TestEnterRestartsAfterGameOver(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.game.Stop()
	first := h.game.Snapshot().RunID

	h.input.Press(render.KeyEnter)
	h.tick(t)
	snap := h.game.Snapshot()
	if snap.Phase != progress.PhaseRunning || snap.RunID == first {
		t.Errorf("Expected a fresh game, got %s run %s", snap.Phase, snap.RunID)
	}
}

func TestMuteToggle(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.input.Press(render.KeyM)
	h.tick(t)
	if !h.game.Sound.Muted() {
		t.Fatalf("Expected M to mute")
	}

	before := h.sink.played
	h.input.Press(render.KeySpace)
	h.tick(t)
	if h.sink.played != before {
		t.Errorf("Expected no sound while muted")
	}

	h.renderer.Reset()
	h.game.Draw(rendertest.NewImage(800, 600))
	if !h.renderer.HasText("[sessiz]") {
		t.Errorf("Expected the HUD to show mute")
	}
}

func TestPublishEveryFrame(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	n := len(h.published)

	h.tick(t)
	h.tick(t)
	if len(h.published) != n+2 {
		t.Errorf("Expected 2 more snapshots, got %d", len(h.published)-n)
	}
}

func TestDrawUsesSprites(t *testing.T) {
	h := newHarness(t)
	h.registry.Add("Apo", rendertest.NewImage(64, 64))
	h.start(t)

	screen := rendertest.NewImage(800, 600)
	h.game.Draw(screen)
	if screen.Draws != 1 {
		t.Errorf("Expected one sprite draw for the player, got %d", screen.Draws)
	}
	if !h.renderer.HasText("Apo") || !h.renderer.HasText("Skor: 0/20") {
		t.Errorf("Expected the player name and the HUD")
	}
	if screen.Filled != backgroundColor {
		t.Errorf("Expected the field background")
	}
}
