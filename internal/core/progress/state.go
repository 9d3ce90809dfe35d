// Package progress owns the level → boss → next-level state machine, the score target
// and speed curves, and the drift-free level countdown.
package progress

import "fmt"

// Phase is the coarse state flag shown on the HUD.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseBossFight
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseBossFight:
		return "boss"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText writes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText reads a phase name written by MarshalText.
func (p *Phase) UnmarshalText(b []byte) error {
	for q := PhaseIdle; q <= PhaseLost; q++ {
		if q.String() == string(b) {
			*p = q
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// Active reports whether the simulation runs in this phase.
func (p Phase) Active() bool {
	return p == PhaseRunning || p == PhaseBossFight
}

// State is one of Idle, Running, BossFight, Won or Lost.
type State interface {
	Phase() Phase
	state()
}

// Idle is the state before the first start.
type Idle struct{}

// Running is an ordinary timed level.
type Running struct {
	Level int
}

// BossFight is the boss stage that closes a level.
type BossFight struct {
	Level int
	HP    int
	MaxHP int
}

// Won is reached after defeating the last level's boss.
type Won struct {
	Reason string
}

// Lost ends a game by timeout or by the player stopping it.
type Lost struct {
	Reason string
}

func (Idle) Phase() Phase      { return PhaseIdle }
func (Running) Phase() Phase   { return PhaseRunning }
func (BossFight) Phase() Phase { return PhaseBossFight }
func (Won) Phase() Phase       { return PhaseWon }
func (Lost) Phase() Phase      { return PhaseLost }

func (Idle) state()      {}
func (Running) state()   {}
func (BossFight) state() {}
func (Won) state()       {}
func (Lost) state()      {}

// Reasons carried by the terminal states.
const (
	ReasonTimeExpired = "time expired"
	ReasonStopped     = "stopped by user"
	ReasonWon         = "all levels cleared"
)

// LevelOf returns the level a state is playing, or 0 for Idle, Won and Lost.
func LevelOf(s State) int {
	switch s := s.(type) {
	case Running:
		return s.Level
	case BossFight:
		return s.Level
	default:
		return 0
	}
}

// ReasonOf returns the human-readable reason of a terminal state.
func ReasonOf(s State) string {
	switch s := s.(type) {
	case Won:
		return s.Reason
	case Lost:
		return s.Reason
	default:
		return ""
	}
}
