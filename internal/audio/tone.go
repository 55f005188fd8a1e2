package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// Note is one step of a generated chime.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// CoinChime is the two-note pickup sound of the demo.
var CoinChime = []Note{
	{Freq: 988, Duration: 80 * time.Millisecond},
	{Freq: 1319, Duration: 220 * time.Millisecond},
}

// WriteChime renders notes one after another as sine tones at the given
// volume (0-1) and writes them as a mono 16-bit WAV file.
func WriteChime(path string, notes []Note, volume float64, sampleRate int) error {
	sr := beep.SampleRate(sampleRate)
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.Freq)
		if err != nil {
			return fmt.Errorf("note %vHz: %w", n.Freq, err)
		}
		parts = append(parts, beep.Take(sr.N(n.Duration), tone))
	}

	var s beep.Streamer = beep.Seq(parts...)
	if volume <= 0 {
		s = &effects.Volume{Streamer: s, Base: 2, Silent: true}
	} else {
		s = &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return wav.Encode(f, s, beep.Format{SampleRate: sr, NumChannels: 1, Precision: 2})
}
