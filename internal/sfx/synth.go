package sfx

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is shared by every sink so rendered cues never need resampling
const SampleRate = beep.SampleRate(44100)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed duration
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s, which is expected to last duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume becomes a silent effect.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is one shaped tone
func note(freq float64, d time.Duration, wave WaveType) beep.Streamer {
	osc := NewOscillator(freq, d, wave, SampleRate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, SampleRate)
}

// sine is a shaped tone from the beep sine generator.
func sine(freq float64, d time.Duration) beep.Streamer {
	tone, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		// Frequencies above Nyquist are rejected; fall back to our own oscillator.
		return note(freq, d, WaveSine)
	}
	return NewEnvelope(beep.Take(SampleRate.N(d), tone), d, 5*time.Millisecond, d/2, SampleRate)
}

// Streamer builds a fresh streamer for a cue at the given volume (0..1).
// It returns nil for CueNone.
func Streamer(c Cue, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueFire:
		s = newVolume(note(950, 70*time.Millisecond, WaveSquare), 0.35)
	case CueHit:
		s = beep.Mix(
			newVolume(sine(880, 150*time.Millisecond), 0.7),
			newVolume(sine(1760, 150*time.Millisecond), 0.3),
		)
	case CueBlocked:
		s = newVolume(note(110, 120*time.Millisecond, WaveSaw), 0.6)
	case CueBossSpawned:
		s = beep.Seq(
			note(220, 150*time.Millisecond, WaveSaw),
			note(165, 150*time.Millisecond, WaveSaw),
			note(110, 300*time.Millisecond, WaveSaw),
		)
	case CueBossHit:
		s = newVolume(note(0, 80*time.Millisecond, WaveNoise), 0.5)
	case CueBossDefeated:
		s = newVolume(beep.Seq(
			note(987.77, 100*time.Millisecond, WaveSquare),
			note(1318.51, 250*time.Millisecond, WaveSquare),
		), 0.4)
	case CueLevelUp:
		s = beep.Seq(
			sine(523.25, 90*time.Millisecond),
			sine(659.25, 90*time.Millisecond),
			sine(783.99, 180*time.Millisecond),
		)
	case CueGameOver:
		s = newVolume(beep.Seq(
			note(440, 200*time.Millisecond, WaveSquare),
			note(330, 200*time.Millisecond, WaveSquare),
			note(220, 400*time.Millisecond, WaveSquare),
		), 0.4)
	case CueGameWon:
		s = beep.Seq(
			sine(523.25, 120*time.Millisecond),
			sine(659.25, 120*time.Millisecond),
			sine(783.99, 120*time.Millisecond),
			sine(1046.5, 360*time.Millisecond),
		)
	default:
		return nil
	}
	return newVolume(s, vol)
}
