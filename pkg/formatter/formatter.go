// Package formatter wires JSON pretty-printing onto the target fields of a
// page. Once the document is ready every control matched by the selector gets
// a change listener that replaces its value with the indented rendering when
// the value parses as JSON and leaves it alone otherwise. Controls added after
// the scan are not covered.
package formatter

import (
	"github.com/goliatone/go-jsonfields/pkg/dom"
	"github.com/goliatone/go-jsonfields/pkg/jsonfmt"
	"github.com/goliatone/go-jsonfields/pkg/selector"
)

// Option configures a Formatter.
type Option func(*Formatter)

// WithSelector overrides the default target-field selector.
func WithSelector(sel selector.Selector) Option {
	return func(f *Formatter) {
		f.selector = sel
	}
}

// WithIndent overrides the two-space indentation.
func WithIndent(indent string) Option {
	return func(f *Formatter) {
		f.indent = indent
	}
}

// Formatter attaches the formatting behaviour to documents.
type Formatter struct {
	selector selector.Selector
	indent   string
}

// New returns a Formatter using selector.Default unless overridden.
func New(options ...Option) *Formatter {
	f := &Formatter{
		selector: selector.Default(),
		indent:   jsonfmt.Indent,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Selector returns the selector in use.
func (f *Formatter) Selector() selector.Selector {
	return f.selector
}

// Install defers Attach until the document fires DOMContentLoaded.
func (f *Formatter) Install(doc dom.Document) {
	doc.AddEventListener(dom.EventDOMContentLoaded, func() {
		f.Attach(doc)
	})
}

// Attach scans the document now and registers a change listener on every
// matching control. It returns the controls it attached to.
func (f *Formatter) Attach(doc dom.Document) []dom.Element {
	var attached []dom.Element
	for _, el := range doc.FormControls() {
		if !f.Matches(el) {
			continue
		}
		el.AddEventListener(dom.EventChange, f.onChange)
		attached = append(attached, el)
	}
	return attached
}

// Matches reports whether el is a target field.
func (f *Formatter) Matches(el dom.Element) bool {
	return f.selector.Match(el.TagName(), el.Name())
}

// Apply formats the value of el in place. It reports whether the value was
// replaced; malformed JSON leaves el untouched.
func (f *Formatter) Apply(el dom.Element) bool {
	result := jsonfmt.PrettyIndent(el.Value(), f.indent)
	if !result.OK {
		return false
	}
	el.SetValue(result.Value)
	return true
}

func (f *Formatter) onChange(el dom.Element) {
	f.Apply(el)
}
