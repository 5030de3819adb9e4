package engine

import (
	"sync"

	"github.com/plus3/tickloop/engine/audio"
)

// Sound is a short effect. It is decoded by Initialize, usually through
// Engine.LoadAllResources.
type Sound struct {
	resourceBase
	device audio.Device

	mu     sync.Mutex
	clip   audio.Clip
	volume float64
}

func newSound(file, name string, device audio.Device) *Sound {
	return &Sound{resourceBase: resourceBase{file: file, name: name}, device: device, volume: 1}
}

func (s *Sound) Kind() Kind { return KindSound }

func (s *Sound) Initialize() error {
	clip, err := s.device.Open(s.file)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	clip.SetVolume(s.volume)
	s.clip = clip
	return nil
}

func (s *Sound) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clip != nil
}

// Play starts the sound from the beginning, initializing it on first use.
func (s *Sound) Play() error {
	if !s.Initialized() {
		if err := s.Initialize(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	clip := s.clip
	s.mu.Unlock()
	clip.Play()
	return nil
}

func (s *Sound) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = v
	if s.clip != nil {
		s.clip.SetVolume(v)
		s.volume = s.clip.Volume()
	}
}

func (s *Sound) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Music is a looping background track.
type Music struct {
	resourceBase
	track audio.Track
}

func newMusic(file, name string, device audio.Device) (*Music, error) {
	track, err := device.Stream(file)
	if err != nil {
		return nil, err
	}
	return &Music{resourceBase: resourceBase{file: file, name: name}, track: track}, nil
}

func (m *Music) Kind() Kind { return KindMusic }

func (m *Music) Play()         { m.track.Play() }
func (m *Music) Stop()         { m.track.Stop() }
func (m *Music) Playing() bool { return m.track.Playing() }
