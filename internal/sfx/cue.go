// Package sfx turns gameplay events into short synthesized sound cues. Cues are built as
// beep streamers and played either live through the beep speaker (terminal) or from
// pre-rendered PCM through an ebiten audio context (window).
package sfx

import "chosenoffset.com/kizilcik/internal/core/session"

// Cue identifies one sound effect
type Cue int

const (
	CueNone Cue = iota
	CueFire
	CueHit
	CueBlocked
	CueBossSpawned
	CueBossHit
	CueBossDefeated
	CueLevelUp
	CueGameOver
	CueGameWon
)

// Cues lists every playable cue
var Cues = []Cue{
	CueFire, CueHit, CueBlocked, CueBossSpawned, CueBossHit,
	CueBossDefeated, CueLevelUp, CueGameOver, CueGameWon,
}

func (c Cue) String() string {
	switch c {
	case CueFire:
		return "fire"
	case CueHit:
		return "hit"
	case CueBlocked:
		return "blocked"
	case CueBossSpawned:
		return "boss_spawned"
	case CueBossHit:
		return "boss_hit"
	case CueBossDefeated:
		return "boss_defeated"
	case CueLevelUp:
		return "level_up"
	case CueGameOver:
		return "game_over"
	case CueGameWon:
		return "game_won"
	default:
		return "none"
	}
}

// CueFor maps a session event to its sound
func CueFor(kind session.EventKind) Cue {
	switch kind {
	case session.EventFire:
		return CueFire
	case session.EventTargetHit:
		return CueHit
	case session.EventBlocked:
		return CueBlocked
	case session.EventBossSpawned:
		return CueBossSpawned
	case session.EventBossHit:
		return CueBossHit
	case session.EventBossDefeated:
		return CueBossDefeated
	case session.EventLevelStarted:
		return CueLevelUp
	case session.EventGameOver:
		return CueGameOver
	case session.EventGameWon:
		return CueGameWon
	default:
		return CueNone
	}
}
