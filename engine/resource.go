package engine

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/plus3/tickloop/engine/audio"
	"go.uber.org/zap"
)

type Kind int

const (
	KindSprite Kind = iota
	KindSound
	KindMusic
)

func (k Kind) String() string {
	switch k {
	case KindSprite:
		return "sprite"
	case KindSound:
		return "sound"
	case KindMusic:
		return "music"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindSprite, KindSound, KindMusic} {
		if strings.EqualFold(k.String(), s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("engine: unknown resource kind %q", s)
}

// Resource is a loaded asset. Its name is derived once from the file name and
// never changes.
type Resource interface {
	Kind() Kind
	Name() string
	File() string
}

// Workspace is the directory resource paths are resolved against.
type Workspace struct {
	Root string
}

// Resolve validates a workspace-relative path and returns the file path and
// the derived lookup name. Both slash styles are accepted.
func (w Workspace) Resolve(rel string) (file, name string, err error) {
	clean := path.Clean(strings.ReplaceAll(rel, `\`, "/"))
	switch {
	case rel == "" || clean == ".":
		return "", "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	case path.IsAbs(clean) || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "":
		return "", "", fmt.Errorf("%w: %q is absolute", ErrInvalidPath, rel)
	case clean == ".." || strings.HasPrefix(clean, "../"):
		return "", "", fmt.Errorf("%w: %q leaves the workspace", ErrInvalidPath, rel)
	}

	name = NameOf(clean)
	if name == "" {
		return "", "", fmt.Errorf("%w: %q has no file name", ErrInvalidPath, rel)
	}
	return filepath.Join(w.Root, filepath.FromSlash(clean)), name, nil
}

// NameOf derives a resource name: the last path segment up to its first dot.
func NameOf(p string) string {
	base := p
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

type resourceBase struct {
	file string
	name string
}

func (r resourceBase) Name() string { return r.name }
func (r resourceBase) File() string { return r.file }

// Resources is the flat list of loaded assets, searched by case-insensitive
// name and kind.
type Resources struct {
	workspace Workspace
	device    audio.Device
	log       *zap.Logger

	mu    sync.RWMutex
	items []Resource
}

func NewResources(ws Workspace, device audio.Device, log *zap.Logger) *Resources {
	if device == nil {
		device = audio.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resources{workspace: ws, device: device, log: log}
}

func (r *Resources) Workspace() Workspace { return r.workspace }

// Load constructs a resource of the given kind from a workspace-relative path
// and appends it.
func (r *Resources) Load(kind Kind, rel string) (Resource, error) {
	file, name, err := r.workspace.Resolve(rel)
	if err != nil {
		return nil, err
	}

	var res Resource
	switch kind {
	case KindSprite:
		res, err = newSprite(file, name)
	case KindSound:
		res = newSound(file, name, r.device)
	case KindMusic:
		res, err = newMusic(file, name, r.device)
	default:
		err = fmt.Errorf("engine: unknown resource kind %v", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", kind, rel, err)
	}

	r.Add(res)
	r.log.Debug("resource loaded", zap.Stringer("kind", kind), zap.String("name", name), zap.String("file", file))
	return res, nil
}

func (r *Resources) Add(res Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, res)
}

func (r *Resources) Remove(res Resource) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item == res {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the first resource of kind whose name matches, ignoring case.
func (r *Resources) Find(name string, kind Kind) (Resource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Kind() == kind && strings.EqualFold(item.Name(), name) {
			return item, true
		}
	}
	return nil, false
}

func (r *Resources) Sprite(name string) (*Sprite, bool) {
	res, ok := r.Find(name, KindSprite)
	if !ok {
		return nil, false
	}
	return res.(*Sprite), true
}

func (r *Resources) Sound(name string) (*Sound, bool) {
	res, ok := r.Find(name, KindSound)
	if !ok {
		return nil, false
	}
	return res.(*Sound), true
}

func (r *Resources) Music(name string) (*Music, bool) {
	res, ok := r.Find(name, KindMusic)
	if !ok {
		return nil, false
	}
	return res.(*Music), true
}

// All returns the resources in load order.
func (r *Resources) All() []Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Resource(nil), r.items...)
}

func (r *Resources) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// LoadAll decodes every sound that has not been initialized yet.
func (r *Resources) LoadAll() error {
	for _, res := range r.All() {
		if s, ok := res.(*Sound); ok && !s.Initialized() {
			if err := s.Initialize(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Animate advances every sprite that animates on update.
func (r *Resources) Animate() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.items {
		if s, ok := res.(*Sprite); ok && s.AnimateOnUpdate() {
			s.AdvanceAnimation()
		}
	}
}
