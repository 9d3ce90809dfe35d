package spawn

import (
	"io"
	"log"
	"math"
	"math/rand"
	"testing"

	"chosenoffset.com/kizilcik/internal/config"
	"chosenoffset.com/kizilcik/internal/core/entity"
)

func newTestSpawner(cfg *config.Config, assets AssetChecker) (*Spawner, *entity.World) {
	w := entity.NewWorld(cfg.Field.Width, cfg.Field.Height)
	w.Speeds = entity.Speeds{Target: cfg.Speeds.Target, Obstacle: cfg.Speeds.Obstacle, Player: cfg.Player.BaseSpeed}
	s := New(cfg, rand.New(rand.NewSource(42)), assets, log.New(io.Discard, "", 0))
	return s, w
}

func TestObstacleUniqueness(t *testing.T) {
	cfg := config.DefaultConfig()
	s, w := newTestSpawner(cfg, nil)

	seen := make(map[string]bool)
	for i := 0; i < len(cfg.Names.Obstacles); i++ {
		o := s.Obstacle(w)
		if o == nil {
			t.Fatalf("Expected obstacle %d to spawn", i)
		}
		if seen[o.Name] {
			t.Errorf("Obstacle %s spawned twice", o.Name)
		}
		seen[o.Name] = true
	}

	if len(s.Available()) != 0 {
		t.Errorf("Expected empty pool, got %v", s.Available())
	}
	if o := s.Obstacle(w); o != nil {
		t.Errorf("Expected no-op on exhausted pool, got %s", o.Name)
	}
	if len(w.Obstacles) != len(cfg.Names.Obstacles) {
		t.Errorf("Expected %d obstacles, got %d", len(cfg.Names.Obstacles), len(w.Obstacles))
	}

	s.ResetPool()
	if len(s.Available()) != len(cfg.Names.Obstacles) {
		t.Errorf("Expected pool refilled to %d, got %d", len(cfg.Names.Obstacles), len(s.Available()))
	}
}

func TestAvailableIsACopy(t *testing.T) {
	cfg := config.DefaultConfig()
	s, _ := newTestSpawner(cfg, nil)

	names := s.Available()
	names[0] = "changed"
	if s.Available()[0] == "changed" {
		t.Errorf("Available should not expose the pool")
	}
	if cfg.Names.Obstacles[0] == "changed" {
		t.Errorf("Spawning must not modify the configured roster")
	}
}

func TestTargetPlacement(t *testing.T) {
	cfg := config.DefaultConfig()
	s, w := newTestSpawner(cfg, nil)

	for i := 0; i < 200; i++ {
		r := s.Target(w)
		if r == nil {
			t.Fatalf("Expected target %d to spawn", i)
		}
		if r.Y < 0 || r.Y > w.Height/3 {
			t.Errorf("Target y %v outside the top third", r.Y)
		}
		if r.X < 0 || r.X > w.Width-cfg.CharacterSize {
			t.Errorf("Target x %v outside the field", r.X)
		}
		if math.Abs(r.DX) != cfg.Speeds.Target {
			t.Errorf("Expected |dx| %v, got %v", cfg.Speeds.Target, r.DX)
		}
		if r.Phrase == "" {
			t.Errorf("Expected a phrase on target %s", r.Name)
		}
		if r.Kind != entity.KindTarget {
			t.Errorf("Expected target kind, got %s", r.Kind)
		}
	}
	if len(w.Targets) != 200 {
		t.Errorf("Expected 200 targets, got %d", len(w.Targets))
	}
}

func TestObstaclePlacement(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Names.Obstacles = make([]string, 100)
	for i := range cfg.Names.Obstacles {
		cfg.Names.Obstacles[i] = string(rune('a'+i%26)) + string(rune('A'+i/26))
	}
	s, w := newTestSpawner(cfg, nil)

	for i := 0; i < 100; i++ {
		r := s.Obstacle(w)
		if r == nil {
			t.Fatalf("Expected obstacle %d to spawn", i)
		}
		if r.Y < w.Height/3 || r.Y > 2*w.Height/3-cfg.CharacterSize {
			t.Errorf("Obstacle y %v outside the middle third", r.Y)
		}
		if math.Abs(r.DX) != cfg.Speeds.Obstacle {
			t.Errorf("Expected |dx| %v, got %v", cfg.Speeds.Obstacle, r.DX)
		}
		if r.Phrase != "" {
			t.Errorf("Obstacles should not talk, got %q", r.Phrase)
		}
	}
}

func TestNudge(t *testing.T) {
	cfg := config.DefaultConfig()
	s, w := newTestSpawner(cfg, nil)

	existing := []*entity.Roamer{{Rect: entity.Rect{X: 300, Y: 50, W: 50, H: 50}}}
	r := &entity.Roamer{Rect: entity.Rect{X: 310, Y: 60, W: 50, H: 50}}
	s.nudge(r, existing, w.Width)
	if r.X != 360 && r.X != 260 {
		t.Errorf("Expected a one-size nudge, got x %v", r.X)
	}

	edge := []*entity.Roamer{{Rect: entity.Rect{X: 740, Y: 50, W: 50, H: 50}}}
	r = &entity.Roamer{Rect: entity.Rect{X: 745, Y: 50, W: 50, H: 50}}
	s.nudge(r, edge, w.Width)
	if r.X < 0 || r.X > w.Width-cfg.CharacterSize {
		t.Errorf("Nudge should stay in bounds, got x %v", r.X)
	}

	far := &entity.Roamer{Rect: entity.Rect{X: 10, Y: 10, W: 50, H: 50}}
	s.nudge(far, existing, w.Width)
	if far.X != 10 {
		t.Errorf("Non-overlapping spawn should not move, got x %v", far.X)
	}
}

func TestAssetNotReady(t *testing.T) {
	cfg := config.DefaultConfig()
	s, w := newTestSpawner(cfg, AssetFunc(func(string) bool { return false }))

	if r := s.Target(w); r != nil {
		t.Errorf("Expected no target without an image")
	}
	if r := s.Obstacle(w); r != nil {
		t.Errorf("Expected no obstacle without an image")
	}
	if len(s.Available()) != len(cfg.Names.Obstacles)-1 {
		t.Errorf("A skipped obstacle still uses up its name, pool is %v", s.Available())
	}
	if s.BossReady() {
		t.Errorf("Expected the boss not to be ready without an image")
	}
	if b := s.Boss(w, 1); b != nil {
		t.Errorf("Expected no boss without an image")
	}
	if w.Boss != nil || len(w.Targets) != 0 || len(w.Obstacles) != 0 {
		t.Errorf("Expected an empty field")
	}
}

func TestEmptyRoster(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Names.Targets = nil
	cfg.Names.Obstacles = nil
	cfg.Names.Boss = ""
	s, w := newTestSpawner(cfg, nil)

	if s.Target(w) != nil || s.Obstacle(w) != nil || s.Boss(w, 1) != nil {
		t.Errorf("Expected every spawn to be a no-op")
	}
}

func TestBoss(t *testing.T) {
	cfg := config.DefaultConfig()
	s, w := newTestSpawner(cfg, nil)
	w.Speeds.Obstacle = 3.75

	if !s.BossReady() {
		t.Fatal("Expected the boss to be ready")
	}
	b := s.Boss(w, 2)
	if b == nil {
		t.Fatal("Expected a boss")
	}
	if w.Boss != b {
		t.Errorf("Expected boss to be placed on the field")
	}
	if b.W != 125 || b.H != 125 {
		t.Errorf("Expected 125x125 boss, got %vx%v", b.W, b.H)
	}
	if b.CenterX() != 400 || b.CenterY() != 300 {
		t.Errorf("Expected boss centred at (400, 300), got (%v, %v)", b.CenterX(), b.CenterY())
	}
	if b.HitPoints != 6 || b.MaxHP != 6 {
		t.Errorf("Expected 6 hit points, got %d/%d", b.HitPoints, b.MaxHP)
	}
	if math.Abs(b.Speed-3) > 1e-9 {
		t.Errorf("Expected speed 3, got %v", b.Speed)
	}
	if math.Abs(b.DX) != b.Speed {
		t.Errorf("Expected |dx| equal to speed, got %v", b.DX)
	}
	if b.Name != "Sönmez" {
		t.Errorf("Expected Sönmez, got %s", b.Name)
	}
}

func TestInitialSet(t *testing.T) {
	tests := []struct {
		difficulty string
		targets    int
		obstacles  int
	}{
		{config.DifficultyEasy, 3, 1},
		{config.DifficultyNormal, 2, 2},
		{config.DifficultyHard, 2, 3},
		{"unknown", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			cfg := config.DefaultConfig()
			s, w := newTestSpawner(cfg, nil)
			s.InitialSet(w, tt.difficulty)

			if len(w.Targets) != tt.targets {
				t.Errorf("Expected %d targets, got %d", tt.targets, len(w.Targets))
			}
			if len(w.Obstacles) != tt.obstacles {
				t.Errorf("Expected %d obstacles, got %d", tt.obstacles, len(w.Obstacles))
			}
		})
	}
}

func TestInitialSetStopsAtPoolSize(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Names.Obstacles = []string{"Fatih"}
	s, w := newTestSpawner(cfg, nil)

	s.InitialSet(w, config.DifficultyHard)
	if len(w.Obstacles) != 1 {
		t.Errorf("Expected 1 obstacle from a pool of one, got %d", len(w.Obstacles))
	}
}
