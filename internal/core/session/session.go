// Package session runs one game: it owns the entity collections, the spawner and the
// progress controller, advances the simulation one frame at a time and reacts to the
// once-per-second level clock.
package session

import (
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"chosenoffset.com/kizilcik/internal/config"
	"chosenoffset.com/kizilcik/internal/core/entity"
	"chosenoffset.com/kizilcik/internal/core/progress"
	"chosenoffset.com/kizilcik/internal/core/spawn"
	"chosenoffset.com/kizilcik/internal/timing"
)

// TimerInterval is how often the level clock is re-evaluated.
const TimerInterval = time.Second

// Input is the per-frame control snapshot from the host. Fire is an edge: the host sets
// it once per press and Step clears it after firing.
type Input struct {
	Up, Down, Left, Right bool
	Fire                  bool
}

// Options configure a new session.
type Options struct {
	Config    *config.Config
	Rand      *rand.Rand
	Assets    spawn.AssetChecker
	Clock     timing.Clock
	Scheduler *timing.Scheduler
	Logger    *log.Logger
}

// Session is a single player's game.
type Session struct {
	cfg     *config.Config
	world   *entity.World
	spawner *spawn.Spawner
	ctrl    *progress.Controller
	clock   timing.Clock
	sched   *timing.Scheduler
	logger  *log.Logger

	timer       *timing.Task
	difficulty  string
	runID       uuid.UUID
	bossWaiting bool // Target met but the boss image is not ready yet

	// OnEvent receives every gameplay event (sounds, HUD flashes).
	OnEvent func(Event)
	// OnGameOver is called once when the game is lost.
	OnGameOver func(reason string)
	// OnGameWon is called once when the last boss falls.
	OnGameWon func(reason string)
}

// New creates an idle session.
func New(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	clock := opts.Clock
	if clock == nil {
		clock = timing.SystemClock{}
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = timing.NewScheduler()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		cfg:        cfg,
		world:      entity.NewWorld(cfg.Field.Width, cfg.Field.Height),
		spawner:    spawn.New(cfg, rng, opts.Assets, logger),
		ctrl:       progress.NewController(cfg),
		clock:      clock,
		sched:      sched,
		logger:     logger,
		difficulty: cfg.Difficulty,
	}
	s.resetPlayer()
	s.applySpeeds(1)
	return s
}

// Start begins a new game at level 1. Calling it again restarts from scratch; the
// previous level clock is cancelled first.
func (s *Session) Start(difficulty string) {
	s.cancelTimer()

	if difficulty != "" {
		s.difficulty = difficulty
	}
	s.runID = uuid.New()
	s.bossWaiting = false
	s.world.Reset()
	s.resetPlayer()
	s.spawner.ResetPool()
	s.ctrl.Reset()

	s.ctrl.Apply(progress.Event{Kind: progress.EventStart})
	s.logger.Printf("session %s: starting game (difficulty %s)", s.shortID(), s.difficulty)

	s.applySpeeds(1)
	s.spawner.InitialSet(s.world, s.difficulty)
	s.beginLevel(1)
}

// Stop ends a running game as lost. It is a no-op when no game is running, apart from
// making sure the level clock is cancelled.
func (s *Session) Stop() {
	if !s.ctrl.Phase().Active() {
		s.cancelTimer()
		return
	}
	_, to := s.ctrl.Apply(progress.Event{Kind: progress.EventStop})
	s.finish(to)
}

// Tick is the level clock callback. It recomputes the remaining time from the level
// start and ends the level when time is up and the target is unmet.
func (s *Session) Tick(now time.Time) {
	if s.ctrl.Phase() != progress.PhaseRunning {
		return
	}
	if !s.ctrl.Tick(now) {
		return
	}
	s.cancelTimer()
	if s.ctrl.TargetMet() {
		// The next Step moves on to the boss.
		return
	}
	_, to := s.ctrl.Apply(progress.Event{Kind: progress.EventTimeExpired})
	s.finish(to)
}

// Difficulty returns the tier used for the current or next game.
func (s *Session) Difficulty() string { return s.difficulty }

// SetDifficulty changes the tier for the next game. It is ignored while a game runs.
func (s *Session) SetDifficulty(name string) bool {
	if s.ctrl.Phase().Active() {
		return false
	}
	s.difficulty = name
	return true
}

// Phase returns the coarse state flag.
func (s *Session) Phase() progress.Phase { return s.ctrl.Phase() }

// State returns the full state machine value.
func (s *Session) State() progress.State { return s.ctrl.State() }

// Score returns the current score.
func (s *Session) Score() int { return s.ctrl.Score() }

// Level returns the current level.
func (s *Session) Level() int { return s.ctrl.Level() }

// Target returns the score target of the current level.
func (s *Session) Target() int { return s.ctrl.Target() }

// Remaining returns the whole seconds left on the level clock.
func (s *Session) Remaining() int { return s.ctrl.Remaining() }

// RunID identifies the current game in logs and snapshots.
func (s *Session) RunID() string {
	if s.runID == uuid.Nil {
		return ""
	}
	return s.runID.String()
}

// Config returns the rules the session runs with.
func (s *Session) Config() *config.Config { return s.cfg }

// beginLevel enters Running(level): speeds, target and a fresh level clock.
func (s *Session) beginLevel(level int) {
	now := s.clock.Now()
	s.applySpeeds(level)
	s.ctrl.BeginLevel(level, now)

	s.cancelTimer()
	s.timer = s.sched.Every("level-clock", TimerInterval, now, s.Tick)

	s.logger.Printf("session %s: level %d, target %d, speeds target=%.2f obstacle=%.2f",
		s.shortID(), level, s.ctrl.Target(), s.world.Speeds.Target, s.world.Speeds.Obstacle)
	s.emit(Event{Kind: EventLevelStarted, Level: level})
}

// enterBossFight stops the level clock and brings in the boss. Without a boss image the
// level keeps running with the clock stopped and the next Step tries again.
func (s *Session) enterBossFight() {
	level := s.ctrl.Level()
	if !s.spawner.BossReady() || s.spawner.Boss(s.world, level) == nil {
		if !s.bossWaiting {
			s.logger.Printf("session %s: boss for level %d not ready, waiting", s.shortID(), level)
			s.bossWaiting = true
			s.cancelTimer()
			s.ctrl.StopClock()
		}
		return
	}
	s.bossWaiting = false
	s.cancelTimer()
	s.ctrl.Apply(progress.Event{Kind: progress.EventTargetReached, BossHP: s.ctrl.BossHP(level)})

	fx := s.cfg.Effects.BossSpawned
	s.addText(fx, s.world.Width/2, s.world.Height/2-50)
	s.emit(Event{Kind: EventBossSpawned, X: s.world.Boss.CenterX(), Y: s.world.Boss.CenterY(), Level: level})
}

// afterBoss handles the state following a cleared boss stage.
func (s *Session) afterBoss(to progress.State) {
	s.world.Boss = nil
	switch next := to.(type) {
	case progress.Won:
		s.finish(next)
	case progress.Running:
		s.ctrl.ResetScore()
		s.beginLevel(next.Level)
	}
}

// finish handles entry into Won or Lost.
func (s *Session) finish(to progress.State) {
	s.cancelTimer()
	reason := progress.ReasonOf(to)
	switch to.(type) {
	case progress.Won:
		s.logger.Printf("session %s: game won with score %d", s.shortID(), s.ctrl.Score())
		s.emit(Event{Kind: EventGameWon, Reason: reason, Level: s.ctrl.Level()})
		if s.OnGameWon != nil {
			s.OnGameWon(reason)
		}
	case progress.Lost:
		s.logger.Printf("session %s: game over (%s) with score %d", s.shortID(), reason, s.ctrl.Score())
		s.emit(Event{Kind: EventGameOver, Reason: reason, Level: s.ctrl.Level()})
		if s.OnGameOver != nil {
			s.OnGameOver(reason)
		}
	}
}

// applySpeeds recomputes the level speed curve and pushes it onto every character
// already on the field, keeping their directions.
func (s *Session) applySpeeds(level int) {
	sp := progress.SpeedsFor(s.cfg, level)
	s.world.Speeds = sp
	s.world.Player.Speed = sp.Player
	for _, t := range s.world.Targets {
		t.SetSpeed(sp.Target)
	}
	for _, o := range s.world.Obstacles {
		o.SetSpeed(sp.Obstacle)
	}
}

func (s *Session) resetPlayer() {
	size := s.cfg.CharacterSize
	s.world.Player = entity.Player{
		Rect: entity.Rect{
			X: s.world.Width/2 - size/2,
			Y: s.world.Height - size - s.cfg.Player.BottomMargin,
			W: size,
			H: size,
		},
		Name:      s.cfg.Player.Name,
		BaseSpeed: s.cfg.Player.BaseSpeed,
		Speed:     s.world.Speeds.Player,
	}
}

func (s *Session) addText(fx config.TextEffect, x, y float64) {
	size := fx.Size
	if size == 0 {
		size = config.DefaultFontSize
	}
	s.world.AddText(entity.FloatingText{
		Text:     fx.Text,
		X:        x,
		Y:        y,
		Color:    fx.Color,
		Size:     size,
		Created:  s.clock.Now(),
		Duration: fx.Duration,
	})
}

func (s *Session) cancelTimer() {
	if s.timer != nil {
		s.timer.Cancel()
		s.timer = nil
	}
}

func (s *Session) emit(e Event) {
	if s.OnEvent != nil {
		s.OnEvent(e)
	}
}

func (s *Session) shortID() string {
	id := s.RunID()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
