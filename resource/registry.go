// Package resource holds the images and fonts a drawing script
// refers to by id. Registry implements the interpreter's resolver
// boundary: lookups return a ready-to-use handle or report a miss.
package resource

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"sort"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/crypto/blake2b"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Image is a decoded image registered under an id.
type Image struct {
	ID   string
	Data image.Image
}

// Font is a parsed font face registered under an id.
type Font struct {
	ID   string
	Face *font.Face
}

// ErrEmptyID is returned when a resource is registered without an id.
var ErrEmptyID = errors.New("resource: empty id")

// Registry stores images and fonts by id. A stream frame is an image
// whose entry the host replaces between passes.
//
// Registry is safe for concurrent use. A render pass only reads from it;
// hosts may replace entries between passes.
type Registry struct {
	mu      sync.RWMutex
	images map[string]Image
	fonts  map[string]Font
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		images: make(map[string]Image),
		fonts:  make(map[string]Font),
	}
}

// PutImage registers img under id, replacing any previous image.
func (r *Registry) PutImage(id string, img image.Image) error {
	if id == "" {
		return ErrEmptyID
	}
	r.mu.Lock()
	r.images[id] = Image{ID: id, Data: img}
	r.mu.Unlock()
	return nil
}

// LoadImage decodes an image from rd and registers it under id.
// PNG, JPEG, GIF, BMP, TIFF and WebP are recognised.
func (r *Registry) LoadImage(id string, rd io.Reader) error {
	img, _, err := image.Decode(rd)
	if err != nil {
		return fmt.Errorf("resource: decode image %q: %w", id, err)
	}
	return r.PutImage(id, img)
}

// AddImageBytes decodes data and registers it under its content id,
// which is returned.
func (r *Registry) AddImageBytes(data []byte) (string, error) {
	id := ContentID(data)
	if err := r.LoadImage(id, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return id, nil
}

// PutFont registers a parsed face under id.
func (r *Registry) PutFont(id string, face *font.Face) error {
	if id == "" {
		return ErrEmptyID
	}
	if face == nil {
		return fmt.Errorf("resource: nil face for font %q", id)
	}
	r.mu.Lock()
	r.fonts[id] = Font{ID: id, Face: face}
	r.mu.Unlock()
	return nil
}

// LoadFont parses TrueType or OpenType data and registers it under id.
func (r *Registry) LoadFont(id string, data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("resource: parse font %q: %w", id, err)
	}
	return r.PutFont(id, face)
}

// LoadDefaultFont registers the Go Regular font under id.
func (r *Registry) LoadDefaultFont(id string) error {
	return r.LoadFont(id, goregular.TTF)
}

// ResolveImage returns the image registered under id.
func (r *Registry) ResolveImage(id string) (Image, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.images[id]
	return img, ok
}

// ResolveFont returns the font registered under id.
func (r *Registry) ResolveFont(id string) (Font, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fonts[id]
	return f, ok
}

// Remove deletes the image and font registered under id. Removing an unknown id is a
// no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.images, id)
	delete(r.fonts, id)
}

// Images returns the sorted ids of registered images.
func (r *Registry) Images() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.images)
}

// Fonts returns the sorted ids of registered fonts.
func (r *Registry) Fonts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.fonts)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContentID returns the hex BLAKE2b-256 digest of data, used as the id of
// resources registered by content.
func ContentID(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
