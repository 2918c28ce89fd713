package assets

import (
	"encoding/binary"
	"math"
	"time"
)

// Note is one segment of a synthesized cue.
type Note struct {
	Freq     float64 // Hz
	Duration time.Duration
}

// Built-in cues: a short high click, a short low click and a rising
// two-note chime for a point.
var (
	LeftHitNotes  = []Note{{Freq: 880, Duration: 45 * time.Millisecond}}
	RightHitNotes = []Note{{Freq: 440, Duration: 45 * time.Millisecond}}
	ScoreNotes    = []Note{
		{Freq: 523.25, Duration: 120 * time.Millisecond},
		{Freq: 783.99, Duration: 220 * time.Millisecond},
	}
)

// Synthesize renders notes as 16-bit little-endian stereo PCM, the format
// ebiten's audio players take. Each note is a sine wave with a linear
// fade-out so it ends without a click.
func Synthesize(sampleRate int, volume float64, notes ...Note) []byte {
	total := 0
	for _, n := range notes {
		total += samplesFor(sampleRate, n.Duration)
	}

	out := make([]byte, 0, total*4)
	for _, n := range notes {
		count := samplesFor(sampleRate, n.Duration)
		for i := range count {
			env := 1 - float64(i)/float64(count)
			v := volume * env * math.Sin(2*math.Pi*n.Freq*float64(i)/float64(sampleRate))
			s := uint16(int16(math.Round(v * math.MaxInt16)))
			out = binary.LittleEndian.AppendUint16(out, s) // left
			out = binary.LittleEndian.AppendUint16(out, s) // right
		}
	}
	return out
}

func samplesFor(sampleRate int, d time.Duration) int {
	return int(int64(sampleRate) * int64(d) / int64(time.Second))
}
