//go:build js && wasm

package main

import (
	"syscall/js"
	"testing"

	"github.com/goliatone/go-jsonfields/pkg/dom"
	"github.com/goliatone/go-jsonfields/pkg/formatter"
)

// fakeControl builds a plain JS object with the element surface the adapter
// reads. Listeners registered through addEventListener are kept in listeners.
func fakeControl(t *testing.T, tag string, attrs map[string]any, listeners map[string]js.Value) js.Value {
	t.Helper()
	obj := js.Global().Get("Object").New()
	obj.Set("tagName", tag)
	obj.Set("value", "")

	getAttribute := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if value, ok := attrs[args[0].String()]; ok {
			return value
		}
		return nil
	})
	addEventListener := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if listeners != nil {
			listeners[args[0].String()] = args[1]
		}
		return nil
	})
	t.Cleanup(func() {
		getAttribute.Release()
		addEventListener.Release()
	})
	obj.Set("getAttribute", getAttribute)
	obj.Set("addEventListener", addEventListener)
	return obj
}

func fakeDocument(t *testing.T, readyState string, controls ...js.Value) js.Value {
	t.Helper()
	doc := js.Global().Get("Object").New()
	doc.Set("readyState", readyState)

	list := js.Global().Get("Array").New()
	for _, control := range controls {
		list.Call("push", control)
	}
	query := js.FuncOf(func(js.Value, []js.Value) any { return list })
	noop := js.FuncOf(func(js.Value, []js.Value) any { return nil })
	t.Cleanup(func() {
		query.Release()
		noop.Release()
	})
	doc.Set("querySelectorAll", query)
	doc.Set("addEventListener", noop)
	return doc
}

func TestElementNameWithoutAttribute(t *testing.T) {
	el := &element{value: fakeControl(t, "TEXTAREA", nil, nil), doc: newDocument(js.Null())}
	if got := el.Name(); got != "" {
		t.Fatalf("expected empty name for a null attribute, got %q", got)
	}
	if got := el.TagName(); got != "textarea" {
		t.Fatalf("expected lower-case tag, got %q", got)
	}
}

func TestElementValueRoundTrip(t *testing.T) {
	el := &element{value: fakeControl(t, "TEXTAREA", map[string]any{"name": "metadata"}, nil), doc: newDocument(js.Null())}
	if el.Name() != "metadata" {
		t.Fatalf("expected metadata, got %q", el.Name())
	}
	el.SetValue(`{"a":1}`)
	if el.Value() != `{"a":1}` {
		t.Fatalf("unexpected value %q", el.Value())
	}
}

func TestDocumentAttachFormatsOnChange(t *testing.T) {
	listeners := map[string]js.Value{}
	metadata := fakeControl(t, "TEXTAREA", map[string]any{"name": "metadata"}, listeners)
	description := fakeControl(t, "TEXTAREA", map[string]any{"name": "description"}, nil)
	doc := newDocument(fakeDocument(t, "complete", metadata, description))
	t.Cleanup(func() {
		for _, fn := range doc.funcs {
			fn.Release()
		}
	})

	if doc.loading() {
		t.Fatalf("expected a completed document")
	}
	if got := len(doc.FormControls()); got != 2 {
		t.Fatalf("expected 2 controls, got %d", got)
	}

	attached := formatter.New().Attach(doc)
	if len(attached) != 1 || attached[0].Name() != "metadata" {
		t.Fatalf("expected only metadata attached, got %d", len(attached))
	}
	change, ok := listeners[dom.EventChange]
	if !ok {
		t.Fatalf("expected a change listener on metadata")
	}

	metadata.Set("value", `{"a":[1]}`)
	change.Invoke()
	if want := "{\n  \"a\": [\n    1\n  ]\n}"; metadata.Get("value").String() != want {
		t.Fatalf("expected %q, got %q", want, metadata.Get("value").String())
	}
}
