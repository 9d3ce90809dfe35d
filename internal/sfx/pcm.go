package sfx

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

const renderChunk = 512

// Render drains s into 16-bit little-endian stereo PCM, the format ebiten's audio
// context plays.
func Render(s beep.Streamer) []byte {
	if s == nil {
		return nil
	}
	var out []byte
	buf := make([][2]float64, renderChunk)
	frame := make([]byte, 4)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(frame[0:], uint16(toInt16(buf[i][0])))
			binary.LittleEndian.PutUint16(frame[2:], uint16(toInt16(buf[i][1])))
			out = append(out, frame...)
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}

// Bank pre-renders every cue.
func Bank(vol float64) map[Cue][]byte {
	bank := make(map[Cue][]byte, len(Cues))
	for _, c := range Cues {
		bank[c] = Render(Streamer(c, vol))
	}
	return bank
}
