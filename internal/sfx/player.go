package sfx

import (
	"log"
	"sync"

	"chosenoffset.com/kizilcik/internal/core/session"
)

// Player routes session events to a sink and owns the mute switch.
type Player struct {
	mu     sync.Mutex
	sink   Sink
	muted  bool
	logger *log.Logger
}

// NewPlayer wraps sink; a nil sink plays nothing.
func NewPlayer(sink Sink, muted bool, logger *log.Logger) *Player {
	if sink == nil {
		sink = NopSink{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Player{sink: sink, muted: muted, logger: logger}
}

// OnEvent plays the cue for a session event. It is shaped to be set as Session.OnEvent.
func (p *Player) OnEvent(e session.Event) {
	p.Play(CueFor(e.Kind))
}

// Play plays a cue unless muted
func (p *Player) Play(c Cue) {
	if c == CueNone {
		return
	}
	p.mu.Lock()
	muted := p.muted
	p.mu.Unlock()
	if muted {
		return
	}
	p.sink.Play(c)
}

// ToggleMute flips the mute switch and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	if p.muted {
		p.logger.Printf("sound muted")
	} else {
		p.logger.Printf("sound on")
	}
	return p.muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close releases the sink
func (p *Player) Close() error {
	return p.sink.Close()
}
