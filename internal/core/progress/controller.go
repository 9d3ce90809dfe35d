package progress

import (
	"math"
	"time"

	"chosenoffset.com/kizilcik/internal/config"
	"chosenoffset.com/kizilcik/internal/core/entity"
)

// ScoreTarget returns the score needed to clear a level.
func ScoreTarget(cfg *config.Config, level int) int {
	return cfg.Levels.TargetBase + (level-1)*cfg.Levels.TargetIncrement
}

// SpeedsFor returns the movement speeds for a level: base × growth^(level−1).
func SpeedsFor(cfg *config.Config, level int) entity.Speeds {
	f := math.Pow(cfg.Speeds.Growth, float64(level-1))
	return entity.Speeds{
		Target:   cfg.Speeds.Target * f,
		Obstacle: cfg.Speeds.Obstacle * f,
		Player:   cfg.Player.BaseSpeed * f,
	}
}

// Controller tracks score, level target, the level countdown and the state machine.
type Controller struct {
	cfg   *config.Config
	state State

	score  int
	target int

	levelStart time.Time
	remaining  int  // Whole seconds left in the level
	clockOn    bool // False once the countdown stops (boss stage, timeout, game end)

	last int // Last level begun
}

// NewController creates a controller in the Idle state.
func NewController(cfg *config.Config) *Controller {
	return &Controller{
		cfg:       cfg,
		state:     Idle{},
		target:    ScoreTarget(cfg, 1),
		remaining: durationSeconds(cfg.Levels.Duration),
	}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Phase returns the coarse state flag.
func (c *Controller) Phase() Phase { return c.state.Phase() }

// Level returns the level being played, or the last level reached once the game ended.
func (c *Controller) Level() int {
	if l := LevelOf(c.state); l > 0 {
		return l
	}
	return c.lastLevel()
}

// Score returns the current score.
func (c *Controller) Score() int { return c.score }

// Target returns the score target of the current level.
func (c *Controller) Target() int { return c.target }

// Remaining returns the whole seconds left on the level clock.
func (c *Controller) Remaining() int { return c.remaining }

// ClockRunning reports whether the level countdown is live.
func (c *Controller) ClockRunning() bool { return c.clockOn }

// Apply feeds an event to the state machine and returns the previous and new states.
func (c *Controller) Apply(e Event) (from, to State) {
	from = c.state
	c.state = Next(c.state, e, c.cfg.Levels.Max)
	if !c.state.Phase().Active() || c.state.Phase() == PhaseBossFight {
		c.clockOn = false
	}
	return from, c.state
}

// Reset puts score and level bookkeeping back to the start of a game.
func (c *Controller) Reset() {
	c.score = 0
	c.target = ScoreTarget(c.cfg, 1)
	c.remaining = durationSeconds(c.cfg.Levels.Duration)
	c.clockOn = false
	c.last = 1
}

// BeginLevel recomputes the level target and restarts the countdown at now.
func (c *Controller) BeginLevel(level int, now time.Time) {
	c.target = ScoreTarget(c.cfg, level)
	c.levelStart = now
	c.remaining = durationSeconds(c.cfg.Levels.Duration)
	c.clockOn = true
	c.last = level
}

// StopClock freezes the countdown at its current value.
func (c *Controller) StopClock() { c.clockOn = false }

// ResetScore zeroes the score after a boss is defeated.
func (c *Controller) ResetScore() { c.score = 0 }

// AddPoint increments the score and reports whether the level target is now met.
func (c *Controller) AddPoint() bool {
	c.score++
	return c.score >= c.target
}

// TargetMet reports whether the score has reached the level target.
func (c *Controller) TargetMet() bool { return c.score >= c.target }

// Tick recomputes the remaining time from the level start. It returns true when the
// countdown has just run out; the caller decides between timeout and progression.
func (c *Controller) Tick(now time.Time) bool {
	if !c.clockOn {
		return false
	}
	elapsed := int(now.Sub(c.levelStart) / time.Second)
	c.remaining = durationSeconds(c.cfg.Levels.Duration) - elapsed
	if c.remaining <= 0 {
		c.remaining = 0
		c.clockOn = false
		return true
	}
	return false
}

// BossHP returns the boss hit points for a level.
func (c *Controller) BossHP(level int) int {
	return level * c.cfg.Boss.HitPointsPerLevel
}

func (c *Controller) lastLevel() int {
	if c.last == 0 {
		return 1
	}
	return c.last
}

func durationSeconds(d time.Duration) int {
	return int(d / time.Second)
}
