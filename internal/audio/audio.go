// Package audio plays short sound clips through the beep speaker.
//
// Audio is optional: if the device cannot be opened or a clip cannot be
// decoded, a warning is logged and playback calls become no-ops.
package audio

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"chosenoffset.com/framekit/internal/logger"
)

var (
	initOnce   sync.Once
	initErr    error
	deviceRate beep.SampleRate
	ready      bool
	readyMu    sync.RWMutex
)

// Init opens the audio device. Only the first call has an effect; later
// calls return the first result.
func Init(sampleRate int, buffer time.Duration) error {
	initOnce.Do(func() {
		sr := beep.SampleRate(sampleRate)
		if err := speaker.Init(sr, sr.N(buffer)); err != nil {
			initErr = fmt.Errorf("failed to open audio device: %w", err)
			return
		}
		readyMu.Lock()
		deviceRate = sr
		ready = true
		readyMu.Unlock()
	})
	return initErr
}

func device() (beep.SampleRate, bool) {
	readyMu.RLock()
	defer readyMu.RUnlock()
	return deviceRate, ready
}

// Clip is a decoded sound held in memory. A nil *Clip is valid and silent.
type Clip struct {
	name string
	buf  *beep.Buffer
	log  *slog.Logger

	mu   sync.Mutex
	loop bool
	ctrl *beep.Ctrl
}

// Load decodes a WAV file. On failure it logs a warning and returns nil.
func Load(path string, log *slog.Logger) *Clip {
	if log == nil {
		log = logger.L()
	}
	clip, err := Decode(path)
	if err != nil {
		log.Warn("audio clip not loaded", "path", path, "error", err)
		return nil
	}
	clip.log = log
	return clip
}

// Decode reads a WAV file fully into memory.
func Decode(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open clip %s: %w", path, err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode clip %s: %w", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to read clip %s: %w", path, err)
	}
	return &Clip{name: path, buf: buf, log: logger.L()}, nil
}

// FromBuffer wraps already decoded samples.
func FromBuffer(name string, buf *beep.Buffer) *Clip {
	return &Clip{name: name, buf: buf, log: logger.L()}
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	if c == nil {
		return 0
	}
	return c.buf.Format().SampleRate.D(c.buf.Len())
}

// SetLoop makes the next Play repeat the clip until Stop.
func (c *Clip) SetLoop(loop bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.loop = loop
	c.mu.Unlock()
}

// Play starts the clip from the beginning, replacing a previous playback of
// the same clip.
func (c *Clip) Play() {
	if c == nil {
		return
	}
	rate, ok := device()
	if !ok {
		c.log.Debug("audio device not open, clip skipped", "clip", c.name)
		return
	}
	c.Stop()

	c.mu.Lock()
	var s beep.Streamer = c.buf.Streamer(0, c.buf.Len())
	if c.loop {
		s = beep.Loop(-1, c.buf.Streamer(0, c.buf.Len()))
	}
	if src := c.buf.Format().SampleRate; src != rate {
		s = beep.Resample(4, src, rate, s)
	}
	ctrl := &beep.Ctrl{}
	ctrl.Streamer = beep.Seq(s, beep.Callback(func() {
		// runs on the speaker goroutine once a non-looping clip ends
		c.mu.Lock()
		if c.ctrl == ctrl {
			c.ctrl = nil
		}
		c.mu.Unlock()
	}))
	c.ctrl = ctrl
	c.mu.Unlock()

	speaker.Play(ctrl)
}

// Pause suspends or resumes the current playback.
func (c *Clip) Pause(paused bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	ctrl := c.ctrl
	c.mu.Unlock()
	if ctrl == nil {
		return
	}
	speaker.Lock()
	ctrl.Paused = paused
	speaker.Unlock()
}

// Stop ends the current playback.
func (c *Clip) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	ctrl := c.ctrl
	c.ctrl = nil
	c.mu.Unlock()
	if ctrl == nil {
		return
	}
	speaker.Lock()
	ctrl.Streamer = nil
	speaker.Unlock()
}

// Playing reports whether the clip has an active, unpaused playback.
func (c *Clip) Playing() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	ctrl := c.ctrl
	c.mu.Unlock()
	if ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return ctrl.Streamer != nil && !ctrl.Paused
}
