// Package viz holds the visualization registry: the table mapping a type key
// used in article placeholders to a widget and its display metadata.
package viz

import (
	"fmt"
	"io"
	"regexp"
	"sort"
)

// Widget renders one visualization into w. fullscreen selects the enlarged
// layout used by the overlay.
type Widget interface {
	Render(w io.Writer, fullscreen bool) error
}

// WidgetFunc adapts a function to the Widget interface.
type WidgetFunc func(w io.Writer, fullscreen bool) error

// Render calls f.
func (f WidgetFunc) Render(w io.Writer, fullscreen bool) error { return f(w, fullscreen) }

// Accent is the styling applied to a visualization's chrome.
type Accent struct {
	Gradient string `json:"gradient"`
	Border   string `json:"border"`
}

// FallbackAccent is used for chrome around unresolved visualizations.
var FallbackAccent = Accent{
	Gradient: "bg-gradient-to-r from-gray-600 to-gray-700",
	Border:   "border-gray-100",
}

// Descriptor is one registry entry.
type Descriptor struct {
	TypeKey     string `json:"type_key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Accent      Accent `json:"accent"`
	Widget      Widget `json:"-"`
}

var validKey = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Registry is an immutable lookup table of descriptors.
type Registry struct {
	byKey map[string]Descriptor
	order []string
}

// NewRegistry builds a registry from descs. Keys must be unique and match the
// placeholder key alphabet; every descriptor needs a widget.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{byKey: make(map[string]Descriptor, len(descs))}
	for _, d := range descs {
		if !validKey.MatchString(d.TypeKey) {
			return nil, fmt.Errorf("invalid visualization key %q", d.TypeKey)
		}
		if _, dup := r.byKey[d.TypeKey]; dup {
			return nil, fmt.Errorf("duplicate visualization key %q", d.TypeKey)
		}
		if d.Widget == nil {
			return nil, fmt.Errorf("visualization %q has no widget", d.TypeKey)
		}
		r.byKey[d.TypeKey] = d
		r.order = append(r.order, d.TypeKey)
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics on error. Intended for static tables.
func MustRegistry(descs ...Descriptor) *Registry {
	r, err := NewRegistry(descs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the descriptor for key. It never panics, including on a nil
// registry.
func (r *Registry) Lookup(key string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	d, ok := r.byKey[key]
	return d, ok
}

// Has reports whether key resolves.
func (r *Registry) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Keys returns all registered keys, sorted.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	keys := append([]string(nil), r.order...)
	sort.Strings(keys)
	return keys
}

// Descriptors returns the entries in registration order.
func (r *Registry) Descriptors() []Descriptor {
	if r == nil {
		return nil
	}
	out := make([]Descriptor, len(r.order))
	for i, k := range r.order {
		out[i] = r.byKey[k]
	}
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}
