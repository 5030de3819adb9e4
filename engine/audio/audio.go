// Package audio plays sound effects and looping music tracks.
package audio

import "errors"

var ErrUnsupportedFormat = errors.New("audio: unsupported file format")

// Device opens audio files for playback.
type Device interface {
	// Open decodes the whole file into memory. The returned clip can be
	// played any number of times, overlapping itself.
	Open(path string) (Clip, error)
	// Stream prepares a track that is decoded while it plays.
	Stream(path string) (Track, error)
}

// Clip is a short, fully buffered sound.
type Clip interface {
	Play()
	SetVolume(v float64)
	Volume() float64
}

// Track is a looping music stream.
type Track interface {
	Play()
	Stop()
	Playing() bool
}

// Nop is a Device that accepts any file and plays nothing.
type Nop struct{}

func (Nop) Open(string) (Clip, error)    { return &nopClip{volume: 1}, nil }
func (Nop) Stream(string) (Track, error) { return &nopTrack{}, nil }

type nopClip struct{ volume float64 }

func (c *nopClip) Play()               {}
func (c *nopClip) SetVolume(v float64) { c.volume = clampVolume(v) }
func (c *nopClip) Volume() float64     { return c.volume }

type nopTrack struct{ playing bool }

func (t *nopTrack) Play()         { t.playing = true }
func (t *nopTrack) Stop()         { t.playing = false }
func (t *nopTrack) Playing() bool { return t.playing }

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
