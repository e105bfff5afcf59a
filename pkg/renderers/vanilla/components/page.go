package components

import (
	"slices"

	"github.com/goliatone/go-jsonfields/pkg/model"
	"github.com/goliatone/go-jsonfields/pkg/selector"
)

// Page collects what a rendered page needs besides its field markup: the
// stylesheets of the components in use and the names of the target fields.
type Page struct {
	sel         selector.Selector
	stylesheets []string
	seen        map[string]struct{}
	targets     []string
}

// NewPage starts collecting for a page using sel.
func NewPage(sel selector.Selector) *Page {
	return &Page{sel: sel, seen: make(map[string]struct{})}
}

// Add records that field renders with component and reports whether the
// field is a target.
func (p *Page) Add(field model.Field, component Component) bool {
	for _, href := range component.Stylesheets {
		if href == "" {
			continue
		}
		if _, ok := p.seen[href]; ok {
			continue
		}
		p.seen[href] = struct{}{}
		p.stylesheets = append(p.stylesheets, href)
	}
	if !p.sel.Match(component.Element, field.Name) {
		return false
	}
	p.targets = append(p.targets, field.Name)
	return true
}

// Stylesheets returns component stylesheets in first-use order.
func (p *Page) Stylesheets() []string {
	return slices.Clone(p.stylesheets)
}

// Targets returns the target field names in page order.
func (p *Page) Targets() []string {
	return slices.Clone(p.targets)
}

// NeedsRuntime reports whether the page has a target field.
func (p *Page) NeedsRuntime() bool {
	return len(p.targets) > 0
}
