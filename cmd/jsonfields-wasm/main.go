//go:build js && wasm

// Command jsonfields-wasm is the page behaviour compiled to WebAssembly. It
// attaches the formatter to the hosting document and stays resident so the
// change listeners keep working.
package main

import (
	"log"
	"syscall/js"

	"github.com/goliatone/go-jsonfields/pkg/formatter"
	"github.com/goliatone/go-jsonfields/pkg/jsonfmt"
	"github.com/goliatone/go-jsonfields/pkg/selector"
)

// configGlobal optionally holds a selector document (JSON) set by the page
// before the module starts.
const configGlobal = "jsonfieldsConfig"

func main() {
	sel, err := pageSelector()
	if err != nil {
		log.Printf("jsonfields: %v; using default selector", err)
		sel = selector.Default()
	}

	doc := newDocument(js.Global().Get("document"))
	fmtr := formatter.New(formatter.WithSelector(sel))
	if doc.loading() {
		fmtr.Install(doc)
	} else {
		// The module can start after DOMContentLoaded has fired.
		fmtr.Attach(doc)
	}

	js.Global().Set("jsonfieldsFormat", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return ""
		}
		return jsonfmt.Format(args[0].String())
	}))

	select {}
}

func pageSelector() (selector.Selector, error) {
	raw := js.Global().Get(configGlobal)
	if raw.IsUndefined() || raw.IsNull() {
		return selector.Default(), nil
	}
	text := raw.String()
	if raw.Type() == js.TypeObject {
		text = js.Global().Get("JSON").Call("stringify", raw).String()
	}
	return selector.Load([]byte(text), configGlobal+".json")
}
