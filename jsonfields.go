// Package jsonfields pretty-prints the JSON fields of admin change forms.
//
// A target field is a textarea whose name ends with one of the configured
// suffixes (station_fields, metadata, tags, notes, messages, custom_car_info
// by default). When such a field changes and holds valid JSON, its value is
// replaced by the two-space indented rendering; anything else is left exactly
// as typed, without feedback.
//
// The root package re-exports the common entry points. The building blocks
// live under pkg/: jsonfmt (parsing and rendering), selector (which fields are
// targets), formatter (the change behaviour over the dom contract) and the
// renderers that produce pages carrying the browser runtime.
package jsonfields

import (
	"context"

	"github.com/goliatone/go-jsonfields/pkg/dom"
	"github.com/goliatone/go-jsonfields/pkg/formatter"
	"github.com/goliatone/go-jsonfields/pkg/jsonfmt"
	"github.com/goliatone/go-jsonfields/pkg/model"
	"github.com/goliatone/go-jsonfields/pkg/render"
	"github.com/goliatone/go-jsonfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-jsonfields/pkg/selector"
)

// Selector aliases selector.Selector.
type Selector = selector.Selector

// Formatter aliases formatter.Formatter.
type Formatter = formatter.Formatter

// RenderOptions describes per-request overrides for rendering.
type RenderOptions = render.RenderOptions

// Format returns the indented rendering of raw, or raw unchanged when it is
// not valid JSON.
func Format(raw string) string {
	return jsonfmt.Format(raw)
}

// Pretty is Format that also reports whether raw parsed.
func Pretty(raw string) jsonfmt.Result {
	return jsonfmt.Pretty(raw)
}

// DefaultSelector returns the built-in target-field selector.
func DefaultSelector() Selector {
	return selector.Default()
}

// LoadSelector reads a selector from a JSON, YAML or TOML file.
func LoadSelector(path string) (Selector, error) {
	return selector.LoadFile(path)
}

// NewFormatter exposes the formatter constructor from the top-level module.
func NewFormatter(options ...formatter.Option) *Formatter {
	return formatter.New(options...)
}

// Install registers the default formatter on doc. Target fields are bound
// when doc fires DOMContentLoaded.
func Install(doc dom.Document) *Formatter {
	f := formatter.New()
	f.Install(doc)
	return f
}

// RenderHTML renders form as an HTML page with the vanilla renderer. The page
// carries the browser runtime when any field is a target.
func RenderHTML(ctx context.Context, form model.FormModel, options RenderOptions, rendererOptions ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(rendererOptions...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, options)
}
