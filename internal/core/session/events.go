package session

// EventKind classifies gameplay events.
type EventKind int

const (
	EventFire EventKind = iota
	EventTargetHit
	EventBlocked
	EventBossSpawned
	EventBossHit
	EventBossDefeated
	EventLevelStarted
	EventGameOver
	EventGameWon
)

func (k EventKind) String() string {
	switch k {
	case EventFire:
		return "fire"
	case EventTargetHit:
		return "target_hit"
	case EventBlocked:
		return "blocked"
	case EventBossSpawned:
		return "boss_spawned"
	case EventBossHit:
		return "boss_hit"
	case EventBossDefeated:
		return "boss_defeated"
	case EventLevelStarted:
		return "level_started"
	case EventGameOver:
		return "game_over"
	case EventGameWon:
		return "game_won"
	default:
		return "unknown"
	}
}

// Event is something that happened during a frame or on the level clock.
type Event struct {
	Kind   EventKind
	X, Y   float64 // Where it happened, when it happened somewhere
	Name   string  // Character involved, if any
	Level  int
	Reason string // Game over / game won reason
}
