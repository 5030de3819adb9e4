package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest lists the resources a game loads at startup.
//
//	resources:
//	  - kind: sprite
//	    path: sprites/hero.png
//	    speed: 0.25
//	    animate: true
//	  - kind: sound
//	    path: sounds/jump.wav
//	    volume: 0.5
type Manifest struct {
	Resources []ManifestEntry `yaml:"resources"`
}

type ManifestEntry struct {
	Kind    string   `yaml:"kind"`
	Path    string   `yaml:"path"`
	Speed   float64  `yaml:"speed,omitempty"`
	Animate bool     `yaml:"animate,omitempty"`
	Volume  *float64 `yaml:"volume,omitempty"`
}

func ReadManifest(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", file, err)
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	for i, entry := range m.Resources {
		if _, err := ParseKind(entry.Kind); err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}
	}
	return &m, nil
}

// LoadManifest loads every entry into r, applying the per-entry settings.
func (r *Resources) LoadManifest(m *Manifest) error {
	for _, entry := range m.Resources {
		kind, err := ParseKind(entry.Kind)
		if err != nil {
			return err
		}
		res, err := r.Load(kind, entry.Path)
		if err != nil {
			return err
		}

		switch res := res.(type) {
		case *Sprite:
			res.SetAnimationSpeed(entry.Speed)
			res.SetAnimateOnUpdate(entry.Animate)
		case *Sound:
			if entry.Volume != nil {
				res.SetVolume(*entry.Volume)
			}
		}
	}
	return nil
}
