// Package assets answers whether the image of a character is ready to draw. The
// window build loads PNG files through the render backend; the terminal build draws
// letters and uses a glyph table instead.
package assets

import (
	"errors"
	"log"
	"sort"
	"sync"

	"chosenoffset.com/kizilcik/internal/render"
	"chosenoffset.com/kizilcik/internal/ui/label"
)

var errNoFile = errors.New("image file not found")

// Registry holds the character images that loaded successfully.
type Registry struct {
	mu      sync.RWMutex
	images  map[string]render.Image
	missing map[string]error
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		images:  make(map[string]render.Image),
		missing: make(map[string]error),
	}
}

// Load scans dir and loads an image for every name. Names without a file, or whose
// file fails to decode, are logged and recorded as missing; only an unreadable
// directory is an error.
func Load(dir string, names []string, loader render.ResourceLoader, logger *log.Logger) (*Registry, error) {
	if logger == nil {
		logger = log.Default()
	}
	found, err := ScanDirectory(dir)
	if err != nil {
		return nil, err
	}

	r := NewRegistry()
	for _, name := range names {
		entry, ok := found[label.Key(name)]
		if !ok {
			logger.Printf("assets: no image for %s in %s", name, dir)
			r.markMissing(name, errNoFile)
			continue
		}
		img, err := loader.LoadImage(entry.Path)
		if err != nil {
			logger.Printf("assets: failed to load image %s: %v", entry.Path, err)
			r.markMissing(name, err)
			continue
		}
		r.Add(name, img)
	}
	logger.Printf("assets: %d of %d character images ready", r.Len(), len(names))
	return r, nil
}

// Add registers the image for a character.
func (r *Registry) Add(name string, img render.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := label.Key(name)
	r.images[key] = img
	delete(r.missing, key)
}

// Ready reports whether the character's image is loaded.
func (r *Registry) Ready(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.images[label.Key(name)]
	return ok
}

// Image returns the character's image.
func (r *Registry) Image(name string) (render.Image, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.images[label.Key(name)]
	return img, ok
}

// Len returns the number of loaded images.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.images)
}

// Missing returns the folded names that have no image, sorted.
func (r *Registry) Missing() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.missing))
	for name := range r.missing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) markMissing(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missing[label.Key(name)] = err
}
