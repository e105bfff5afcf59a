package jsonfields

import (
	"io/fs"

	"github.com/goliatone/go-jsonfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-jsonfields/pkg/renderers/vanilla/components"
)

// RuntimeScript returns the browser runtime bound to sel. Serve it when pages
// are rendered with vanilla.WithRuntimeScriptSrc.
//
// Typical mount:
//
//	mux.HandleFunc("/runtime/jsonfields.js", func(w http.ResponseWriter, r *http.Request) {
//	  w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
//	  io.WriteString(w, jsonfields.RuntimeScript(jsonfields.DefaultSelector()))
//	})
func RuntimeScript(sel Selector) string {
	return components.RuntimeScript(sel)
}

// AssetsFS exposes the admin stylesheet used by rendered pages.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
