package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

// mixRate is the fixed speaker mix rate; decoded streams at other rates
// are resampled to it so the speaker never needs re-initialization.
const mixRate = beep.SampleRate(44100)

const resampleQuality = 4

// Speaker plays tracks through the system audio device via beep.
// The decode path is mp3 only.
type Speaker struct {
	mu     sync.Mutex
	stream beep.StreamSeekCloser
	ctrl   *beep.Ctrl
}

// Verify Speaker implements Device at compile time.
var _ Device = (*Speaker)(nil)

// NewSpeaker initializes the system audio device.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(mixRate, mixRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init audio device: %w", err)
	}
	return &Speaker{}, nil
}

// Load stops whatever is playing and starts the track at path.
func (s *Speaker) Load(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".mp3" {
		return fmt.Errorf("unsupported format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	stream, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	var streamer beep.Streamer = stream
	if format.SampleRate != mixRate {
		streamer = beep.Resample(resampleQuality, format.SampleRate, mixRate, stream)
	}

	ctrl := &beep.Ctrl{Streamer: streamer}
	s.stream = stream
	s.ctrl = ctrl
	speaker.Play(ctrl)
	return nil
}

// Pause suspends the output without releasing the stream.
func (s *Speaker) Pause() {
	s.setPaused(true)
}

// Resume continues a paused stream.
func (s *Speaker) Resume() {
	s.setPaused(false)
}

func (s *Speaker) setPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
}

// Stop halts the output and releases the current stream.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Close releases the audio device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	speaker.Close()
	return nil
}

func (s *Speaker) clearLocked() {
	speaker.Clear()
	if s.stream != nil {
		_ = s.stream.Close()
		s.stream = nil
	}
	s.ctrl = nil
}
