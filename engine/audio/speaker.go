package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/plus3/tickloop/engine/config"
	"go.uber.org/zap"
)

const resampleQuality = 4

// Speaker is the beep backed Device. The speaker is initialized lazily on the
// first Open or Stream.
type Speaker struct {
	mu          sync.Mutex
	sampleRate  beep.SampleRate
	cfg         config.AudioConfig
	log         *zap.Logger
	initialized bool
}

func NewSpeaker(cfg config.AudioConfig, log *zap.Logger) *Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Speaker{
		sampleRate: beep.SampleRate(cfg.SampleRate),
		cfg:        cfg,
		log:        log,
	}
}

func (s *Speaker) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(s.cfg.Buffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	s.initialized = true
	s.log.Debug("speaker initialized",
		zap.Int("sample_rate", int(s.sampleRate)),
		zap.Duration("buffer", s.cfg.Buffer))
	return nil
}

// Close shuts the speaker down if it was initialized.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		speaker.Close()
		s.initialized = false
	}
}

func (s *Speaker) Open(path string) (Clip, error) {
	if err := s.init(); err != nil {
		return nil, err
	}

	streamer, format, err := decode(path)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &clip{speaker: s, buffer: buffer, volume: 1}, nil
}

func (s *Speaker) Stream(path string) (Track, error) {
	if err := s.init(); err != nil {
		return nil, err
	}

	streamer, format, err := decode(path)
	if err != nil {
		return nil, err
	}
	return &track{speaker: s, streamer: streamer, format: format}, nil
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// withVolume scales s by a linear volume in [0, 1].
func withVolume(s beep.Streamer, v float64) beep.Streamer {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(math.Max(v, 1e-6)),
		Silent:   v <= 0,
	}
}

type clip struct {
	speaker *Speaker
	buffer  *beep.Buffer

	mu     sync.Mutex
	volume float64
}

func (c *clip) Play() {
	c.mu.Lock()
	v := c.volume
	c.mu.Unlock()

	s := c.buffer.Streamer(0, c.buffer.Len())
	resampled := beep.Resample(resampleQuality, c.buffer.Format().SampleRate, c.speaker.sampleRate, s)
	speaker.Play(withVolume(resampled, v))
}

func (c *clip) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = clampVolume(v)
}

func (c *clip) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

type track struct {
	speaker  *Speaker
	streamer beep.StreamSeekCloser
	format   beep.Format

	mu   sync.Mutex
	ctrl *beep.Ctrl
}

func (t *track) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctrl != nil {
		speaker.Lock()
		_ = t.streamer.Seek(0)
		t.ctrl.Paused = false
		speaker.Unlock()
		return
	}

	t.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, t.streamer), Paused: false}
	speaker.Play(beep.Resample(resampleQuality, t.format.SampleRate, t.speaker.sampleRate, t.ctrl))
}

func (t *track) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctrl == nil {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
}

func (t *track) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !t.ctrl.Paused
}
