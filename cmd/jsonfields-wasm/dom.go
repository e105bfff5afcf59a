//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"

	"github.com/goliatone/go-jsonfields/pkg/dom"
)

const controlQuery = "input, select, textarea"

// document adapts the browser document to dom.Document. Callbacks stay
// registered for the lifetime of the page, so they are never released.
type document struct {
	value js.Value
	funcs []js.Func
}

var _ dom.Document = (*document)(nil)

func newDocument(value js.Value) *document {
	return &document{value: value}
}

func (d *document) AddEventListener(event string, fn func()) {
	if fn == nil {
		return
	}
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	d.funcs = append(d.funcs, cb)
	d.value.Call("addEventListener", event, cb)
}

func (d *document) FormControls() []dom.Element {
	nodes := d.value.Call("querySelectorAll", controlQuery)
	n := nodes.Get("length").Int()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &element{value: nodes.Index(i), doc: d})
	}
	return out
}

// loading reports whether DOMContentLoaded is still ahead.
func (d *document) loading() bool {
	return d.value.Get("readyState").String() == "loading"
}

type element struct {
	value js.Value
	doc   *document
}

var _ dom.Element = (*element)(nil)

func (e *element) TagName() string {
	return strings.ToLower(e.value.Get("tagName").String())
}

func (e *element) Name() string {
	name := e.value.Call("getAttribute", "name")
	if name.IsNull() || name.IsUndefined() {
		return ""
	}
	return name.String()
}

func (e *element) Value() string {
	return e.value.Get("value").String()
}

func (e *element) SetValue(value string) {
	e.value.Set("value", value)
}

func (e *element) AddEventListener(event string, fn dom.Listener) {
	if fn == nil {
		return
	}
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn(e)
		return nil
	})
	e.doc.funcs = append(e.doc.funcs, cb)
	e.value.Call("addEventListener", event, cb)
}
