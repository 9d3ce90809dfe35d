package sfx

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Sink plays cues
type Sink interface {
	Play(c Cue)
	Close() error
}

// NopSink discards every cue
type NopSink struct{}

func (NopSink) Play(Cue)     {}
func (NopSink) Close() error { return nil }

// SpeakerSink synthesizes cues on demand and plays them through the beep speaker.
type SpeakerSink struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// NewSpeakerSink initializes the speaker with a 100ms buffer and starts an empty mixer.
func NewSpeakerSink(volume float64) (*SpeakerSink, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	s := &SpeakerSink{mixer: &beep.Mixer{}, volume: volume}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *SpeakerSink) Play(c Cue) {
	st := Streamer(c, s.volume)
	if st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops playback. The speaker itself is released once the mixer is cleared.
func (s *SpeakerSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	return nil
}

// EbitenSink plays pre-rendered cues through an ebiten audio context.
// There is one player per cue; replaying a cue rewinds it.
type EbitenSink struct {
	players map[Cue]*audio.Player
}

// NewEbitenSink renders every cue up front. ctx must run at SampleRate.
func NewEbitenSink(ctx *audio.Context, volume float64) (*EbitenSink, error) {
	if ctx.SampleRate() != int(SampleRate) {
		return nil, fmt.Errorf("audio context runs at %d Hz, cues need %d Hz", ctx.SampleRate(), int(SampleRate))
	}
	s := &EbitenSink{players: make(map[Cue]*audio.Player)}
	for c, pcm := range Bank(volume) {
		s.players[c] = ctx.NewPlayerFromBytes(pcm)
	}
	return s, nil
}

func (s *EbitenSink) Play(c Cue) {
	p := s.players[c]
	if p == nil {
		return
	}
	_ = p.Rewind()
	p.Play()
}

func (s *EbitenSink) Close() error {
	for c, p := range s.players {
		if err := p.Close(); err != nil {
			return fmt.Errorf("failed to close %s player: %w", c, err)
		}
	}
	return nil
}
