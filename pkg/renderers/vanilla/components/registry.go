package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-jsonfields/pkg/model"
	rendertemplate "github.com/goliatone/go-jsonfields/pkg/render/template"
)

// Renderer writes the markup for one field into buf.
type Renderer func(buf *bytes.Buffer, field model.Field, data ComponentData) error

// ComponentData carries helpers and per-field state for component renderers.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// Target is set when the runtime picks the control up.
	Target bool
}

// Component renders one kind of widget.
type Component struct {
	// Element is the HTML element the component emits. Selectors match on
	// it, so a json widget rendered as an input is never a target.
	Element     string
	Render      Renderer
	Stylesheets []string
}

// Registry maps widgets onto components. Widgets without an entry use the
// fallback widget's component.
type Registry struct {
	mu         sync.RWMutex
	components map[model.Widget]Component
	fallback   model.Widget
}

// New creates an empty registry that resolves unknown widgets to fallback.
func New(fallback model.Widget) *Registry {
	return &Registry{
		components: make(map[model.Widget]Component),
		fallback:   normalize(fallback),
	}
}

// Clone returns a copy that can be changed without affecting r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New(r.fallback)
	for widget, component := range r.components {
		cloned.components[widget] = cloneComponent(component)
	}
	return cloned
}

// Register binds component to widget, replacing any previous binding.
func (r *Registry) Register(widget model.Widget, component Component) error {
	if widget = normalize(widget); widget == "" {
		return fmt.Errorf("components: widget is required")
	}
	if component.Render == nil {
		return fmt.Errorf("components: widget %q has no renderer", widget)
	}
	component.Element = strings.ToLower(strings.TrimSpace(component.Element))
	if component.Element == "" {
		return fmt.Errorf("components: widget %q has no element", widget)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[widget] = cloneComponent(component)
	return nil
}

// Lookup returns the component for widget, falling back to the registry
// default.
func (r *Registry) Lookup(widget model.Widget) (Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	component, ok := r.components[normalize(widget)]
	if !ok {
		component, ok = r.components[r.fallback]
	}
	if !ok {
		return Component{}, fmt.Errorf("components: no component for widget %q", widget)
	}
	return cloneComponent(component), nil
}

// Widgets returns the registered widget names, sorted.
func (r *Registry) Widgets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for widget := range r.components {
		names = append(names, string(widget))
	}
	slices.Sort(names)
	return names
}

func cloneComponent(src Component) Component {
	out := src
	out.Stylesheets = slices.Clone(src.Stylesheets)
	return out
}

func normalize(widget model.Widget) model.Widget {
	return model.Widget(strings.ToLower(strings.TrimSpace(string(widget))))
}
