package progress

// EventKind names the inputs of the state machine.
type EventKind int

const (
	EventStart         EventKind = iota // A new game begins
	EventTargetReached                  // Score reached the level target
	EventTimeExpired                    // Level clock hit zero with the target unmet
	EventBossHit                        // A projectile struck the boss
	EventStop                           // The player ended the game
)

// Event is a state machine input.
type Event struct {
	Kind EventKind
	// BossHP is the boss's starting hit points, used with EventTargetReached.
	BossHP int
}

// Next computes the state that follows s on event e. maxLevel bounds the level count.
// Events that do not apply to s leave it unchanged.
func Next(s State, e Event, maxLevel int) State {
	switch cur := s.(type) {
	case Idle, Won, Lost:
		if e.Kind == EventStart {
			return Running{Level: 1}
		}
		return s

	case Running:
		switch e.Kind {
		case EventStart:
			return Running{Level: 1}
		case EventTargetReached:
			return BossFight{Level: cur.Level, HP: e.BossHP, MaxHP: e.BossHP}
		case EventTimeExpired:
			return Lost{Reason: ReasonTimeExpired}
		case EventStop:
			return Lost{Reason: ReasonStopped}
		}
		return s

	case BossFight:
		switch e.Kind {
		case EventStart:
			return Running{Level: 1}
		case EventBossHit:
			hp := cur.HP - 1
			if hp > 0 {
				return BossFight{Level: cur.Level, HP: hp, MaxHP: cur.MaxHP}
			}
			return advance(cur.Level, maxLevel)
		case EventStop:
			return Lost{Reason: ReasonStopped}
		}
		return s
	}
	return s
}

func advance(level, maxLevel int) State {
	if level+1 > maxLevel {
		return Won{Reason: ReasonWon}
	}
	return Running{Level: level + 1}
}
