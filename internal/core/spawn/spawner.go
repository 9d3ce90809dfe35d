// Package spawn creates targets, obstacles and the boss. Targets are drawn from a fixed
// roster with repetition; obstacles are drawn from a per-game pool without repetition.
package spawn

import (
	"log"
	"math/rand"

	"chosenoffset.com/kizilcik/internal/config"
	"chosenoffset.com/kizilcik/internal/core/entity"
)

// AssetChecker answers whether the drawable for a character is ready.
type AssetChecker interface {
	Ready(name string) bool
}

// AssetFunc adapts a plain function to AssetChecker.
type AssetFunc func(name string) bool

// Ready implements AssetChecker.
func (f AssetFunc) Ready(name string) bool { return f(name) }

// Spawner places new characters on the field.
type Spawner struct {
	cfg    *config.Config
	rng    *rand.Rand
	assets AssetChecker
	logger *log.Logger

	available []string // Obstacle names not yet spawned this game
}

// New creates a spawner. A nil assets checker treats every image as ready.
func New(cfg *config.Config, rng *rand.Rand, assets AssetChecker, logger *log.Logger) *Spawner {
	if assets == nil {
		assets = AssetFunc(func(string) bool { return true })
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Spawner{
		cfg:    cfg,
		rng:    rng,
		assets: assets,
		logger: logger,
	}
	s.ResetPool()
	return s
}

// ResetPool refills the unique obstacle pool for a new game.
func (s *Spawner) ResetPool() {
	s.available = append(s.available[:0], s.cfg.Names.Obstacles...)
}

// Available returns the obstacle names that can still spawn this game.
func (s *Spawner) Available() []string {
	out := make([]string, len(s.available))
	copy(out, s.available)
	return out
}

// Target adds one target in the top third of the field.
func (s *Spawner) Target(w *entity.World) *entity.Roamer {
	names := s.cfg.Names.Targets
	if len(names) == 0 {
		s.logger.Printf("spawn: no target names configured")
		return nil
	}
	name := names[s.rng.Intn(len(names))]
	if !s.assets.Ready(name) {
		s.logger.Printf("spawn: image for target %s not ready, skipping", name)
		return nil
	}

	size := s.cfg.CharacterSize
	r := &entity.Roamer{
		Rect:  entity.Rect{W: size, H: size},
		Kind:  entity.KindTarget,
		Name:  name,
		Speed: w.Speeds.Target,
	}
	r.X = s.rng.Float64() * (w.Width - size)
	r.Y = s.rng.Float64() * (w.Height / 3)
	if len(s.cfg.Phrases) > 0 {
		r.Phrase = s.cfg.Phrases[s.rng.Intn(len(s.cfg.Phrases))]
	}
	r.DX = s.direction() * r.Speed

	s.nudge(r, w.Targets, w.Width)
	w.Targets = append(w.Targets, r)
	return r
}

// Obstacle adds one obstacle in the middle third of the field, consuming its name
// from the pool. Returns nil once the pool is empty.
func (s *Spawner) Obstacle(w *entity.World) *entity.Roamer {
	if len(s.available) == 0 {
		s.logger.Printf("spawn: no more unique obstacles available")
		return nil
	}

	i := s.rng.Intn(len(s.available))
	name := s.available[i]
	s.available = append(s.available[:i], s.available[i+1:]...)

	if !s.assets.Ready(name) {
		s.logger.Printf("spawn: image for obstacle %s not ready, skipping", name)
		return nil
	}

	size := s.cfg.CharacterSize
	minY := w.Height / 3
	maxY := 2*w.Height/3 - size
	r := &entity.Roamer{
		Rect:  entity.Rect{W: size, H: size},
		Kind:  entity.KindObstacle,
		Name:  name,
		Speed: w.Speeds.Obstacle,
	}
	r.X = s.rng.Float64() * (w.Width - size)
	r.Y = minY + s.rng.Float64()*(maxY-minY)
	r.DX = s.direction() * r.Speed

	s.nudge(r, w.Obstacles, w.Width)
	w.Obstacles = append(w.Obstacles, r)
	s.logger.Printf("spawn: obstacle %s, %d left in pool", name, len(s.available))
	return r
}

// BossReady reports whether the boss can be spawned, without logging.
func (s *Spawner) BossReady() bool {
	name := s.cfg.Names.Boss
	return name != "" && s.assets.Ready(name)
}

// Boss places the boss in the centre of the field with level × base hit points.
// Returns nil when the boss image is not ready.
func (s *Spawner) Boss(w *entity.World, level int) *entity.Boss {
	name := s.cfg.Names.Boss
	if name == "" || !s.assets.Ready(name) {
		s.logger.Printf("spawn: image for boss %q not ready, cannot spawn", name)
		return nil
	}

	size := s.cfg.CharacterSize * s.cfg.Boss.SizeMultiplier
	speed := w.Speeds.Obstacle * s.cfg.Boss.SpeedFactor
	hp := level * s.cfg.Boss.HitPointsPerLevel
	b := &entity.Boss{
		Rect: entity.Rect{
			X: w.Width/2 - size/2,
			Y: w.Height/2 - size/2,
			W: size,
			H: size,
		},
		Name:      name,
		Speed:     speed,
		HitPoints: hp,
		MaxHP:     hp,
	}
	b.DX = s.direction() * speed
	w.Boss = b
	s.logger.Printf("spawn: boss %s for level %d with %d hit points", name, level, hp)
	return b
}

// InitialSet spawns the opening targets and obstacles for a difficulty tier.
func (s *Spawner) InitialSet(w *entity.World, difficulty string) {
	tier, name := s.cfg.Tier(difficulty)
	s.logger.Printf("spawn: initial set for %s: %d targets, %d obstacles", name, tier.Targets, tier.Obstacles)
	for i := 0; i < tier.Targets; i++ {
		s.Target(w)
	}
	for i := 0; i < tier.Obstacles && len(s.available) > 0; i++ {
		s.Obstacle(w)
	}
}

func (s *Spawner) direction() float64 {
	if s.rng.Float64() < 0.5 {
		return 1
	}
	return -1
}

// nudge shifts a fresh character sideways once if it lands on top of another of the
// same kind.
func (s *Spawner) nudge(r *entity.Roamer, others []*entity.Roamer, width float64) {
	size := s.cfg.CharacterSize
	for _, o := range others {
		if abs(r.X-o.X) < size && abs(r.Y-o.Y) < size {
			r.X += size * s.direction()
			r.X = entity.Clamp(r.X, 0, width-size)
			return
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
