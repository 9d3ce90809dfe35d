package session

import (
	"time"

	"chosenoffset.com/kizilcik/internal/core/entity"
	"chosenoffset.com/kizilcik/internal/core/progress"
)

// Snapshot is a detached copy of everything a presentation adapter draws in one frame.
// Mutating it never affects the session.
type Snapshot struct {
	RunID      string         `json:"run_id"`
	Phase      progress.Phase `json:"phase"`
	Level      int            `json:"level"`
	Score      int            `json:"score"`
	Target     int            `json:"target"`
	Remaining  int            `json:"remaining"`
	ClockOn    bool           `json:"clock_running"`
	BossHP     int            `json:"boss_hp,omitempty"`
	BossMaxHP  int            `json:"boss_max_hp,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Difficulty string         `json:"difficulty"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Player      entity.Player         `json:"player"`
	Projectiles []entity.Projectile   `json:"projectiles"`
	Targets     []entity.Roamer       `json:"targets"`
	Obstacles   []entity.Roamer       `json:"obstacles"`
	Boss        *entity.Boss          `json:"boss,omitempty"`
	Texts       []entity.FloatingText `json:"texts"`

	Taken time.Time `json:"taken"`
}

// Snapshot copies the current frame.
func (s *Session) Snapshot() Snapshot {
	w := s.world
	st := s.ctrl.State()
	snap := Snapshot{
		RunID:       s.RunID(),
		Phase:       st.Phase(),
		Level:       s.ctrl.Level(),
		Score:       s.ctrl.Score(),
		Target:      s.ctrl.Target(),
		Remaining:   s.ctrl.Remaining(),
		ClockOn:     s.ctrl.ClockRunning(),
		Reason:      progress.ReasonOf(st),
		Difficulty:  s.difficulty,
		Width:       w.Width,
		Height:      w.Height,
		Player:      w.Player,
		Projectiles: append([]entity.Projectile(nil), w.Projectiles...),
		Targets:     copyRoamers(w.Targets),
		Obstacles:   copyRoamers(w.Obstacles),
		Texts:       append([]entity.FloatingText(nil), w.Texts...),
		Taken:       s.clock.Now(),
	}
	if fight, ok := st.(progress.BossFight); ok {
		snap.BossHP = fight.HP
		snap.BossMaxHP = fight.MaxHP
	}
	if w.Boss != nil {
		b := *w.Boss
		snap.Boss = &b
	}
	return snap
}

func copyRoamers(in []*entity.Roamer) []entity.Roamer {
	out := make([]entity.Roamer, len(in))
	for i, r := range in {
		out[i] = *r
	}
	return out
}
