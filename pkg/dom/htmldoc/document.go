// Package htmldoc is an in-memory dom.Document backed by golang.org/x/net/html.
// It reproduces the parts of browser event dispatch the field formatter relies
// on: DOMContentLoaded fires once, change fires on blur only when the value
// moved since the last commit, and script assignments never fire events.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-jsonfields/pkg/dom"
)

// Document is a parsed HTML page.
type Document struct {
	root      *html.Node
	controls  []*Control
	byNode    map[*html.Node]*Control
	listeners map[string][]func()
	loaded    bool
}

var _ dom.Document = (*Document)(nil)

// Parse reads an HTML page and indexes its form controls.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	doc := &Document{
		root:      root,
		byNode:    make(map[*html.Node]*Control),
		listeners: make(map[string][]func()),
	}
	doc.reindex()
	return doc, nil
}

// ParseString is Parse over a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// AddEventListener registers fn for a document event. Listeners for
// DOMContentLoaded added after Load never run, as in a browser.
func (d *Document) AddEventListener(event string, fn func()) {
	if fn == nil {
		return
	}
	if event == dom.EventDOMContentLoaded && d.loaded {
		return
	}
	d.listeners[event] = append(d.listeners[event], fn)
}

// Load dispatches DOMContentLoaded. Only the first call has an effect.
func (d *Document) Load() {
	if d.loaded {
		return
	}
	d.loaded = true
	listeners := d.listeners[dom.EventDOMContentLoaded]
	delete(d.listeners, dom.EventDOMContentLoaded)
	for _, fn := range listeners {
		fn()
	}
}

// Loaded reports whether Load ran.
func (d *Document) Loaded() bool {
	return d.loaded
}

// FormControls implements dom.Document.
func (d *Document) FormControls() []dom.Element {
	out := make([]dom.Element, 0, len(d.controls))
	for _, control := range d.controls {
		out = append(out, control)
	}
	return out
}

// Controls returns the concrete controls in document order.
func (d *Document) Controls() []*Control {
	return append([]*Control(nil), d.controls...)
}

// Find returns the first control whose name attribute equals name.
func (d *Document) Find(name string) (*Control, bool) {
	for _, control := range d.controls {
		if control.Name() == name {
			return control, true
		}
	}
	return nil, false
}

// AppendTextarea adds a textarea to the first form of the page (or the body
// when there is no form) and returns its control.
func (d *Document) AppendTextarea(name, value string) *Control {
	node := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Textarea,
		Data:     atom.Textarea.String(),
		Attr:     []html.Attribute{{Key: "name", Val: name}},
	}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: value})

	parent := findElement(d.root, atom.Form)
	if parent == nil {
		parent = findElement(d.root, atom.Body)
	}
	if parent == nil {
		parent = d.root
	}
	parent.AppendChild(node)

	d.reindex()
	return d.byNode[node]
}

// Render writes the page with the current control values.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("htmldoc: render: %w", err)
	}
	return nil
}

// String renders the page, returning "" if rendering fails.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) reindex() {
	controls := make([]*Control, 0, len(d.controls))
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isControl(n.DataAtom) {
			control, ok := d.byNode[n]
			if !ok {
				control = newControl(n)
				d.byNode[n] = control
			}
			controls = append(controls, control)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(d.root)
	d.controls = controls
}

func isControl(a atom.Atom) bool {
	switch a {
	case atom.Textarea, atom.Input, atom.Select:
		return true
	default:
		return false
	}
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, a); found != nil {
			return found
		}
	}
	return nil
}
