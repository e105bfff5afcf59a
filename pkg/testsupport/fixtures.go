// Package testsupport holds the golden-file helpers shared by package tests.
// Setting UPDATE_GOLDENS rewrites goldens from the current output instead of
// comparing against them.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jsonfields/pkg/dom/htmldoc"
	"github.com/goliatone/go-jsonfields/pkg/model"
)

// UpdateGoldens reports whether goldens should be rewritten.
func UpdateGoldens() bool {
	return os.Getenv("UPDATE_GOLDENS") != ""
}

// Golden is a file under the package testdata directory.
type Golden struct {
	t    *testing.T
	path string
}

// NewGolden returns the golden testdata/name.
func NewGolden(t *testing.T, name string) Golden {
	return Golden{t: t, path: filepath.Join("testdata", filepath.FromSlash(name))}
}

// Path returns the file path relative to the package directory.
func (g Golden) Path() string {
	return g.path
}

// Bytes reads the golden, failing the test when it is missing.
func (g Golden) Bytes() []byte {
	g.t.Helper()
	data, err := os.ReadFile(g.path)
	if err != nil {
		g.t.Fatalf("read golden: %v", err)
	}
	return data
}

// String reads the golden as text.
func (g Golden) String() string {
	g.t.Helper()
	return string(g.Bytes())
}

// AssertString fails the test when got differs from the golden text.
func (g Golden) AssertString(got string) {
	g.t.Helper()
	if UpdateGoldens() {
		g.write([]byte(got))
		return
	}
	if diff := cmp.Diff(g.String(), got); diff != "" {
		g.t.Fatalf("%s mismatch (-want +got):\n%s", g.path, diff)
	}
}

// AssertFormModel compares got with the form model stored as JSON. The
// comparison is on decoded values, so golden formatting does not matter.
func (g Golden) AssertFormModel(got model.FormModel) {
	g.t.Helper()
	if UpdateGoldens() {
		payload, err := json.MarshalIndent(got, "", "  ")
		if err != nil {
			g.t.Fatalf("marshal form model: %v", err)
		}
		g.write(append(payload, '\n'))
		return
	}

	var want model.FormModel
	if err := json.Unmarshal(g.Bytes(), &want); err != nil {
		g.t.Fatalf("decode %s: %v", g.path, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		g.t.Fatalf("%s mismatch (-want +got):\n%s", g.path, diff)
	}
}

// Document parses the golden as an HTML page.
func (g Golden) Document() *htmldoc.Document {
	g.t.Helper()
	doc, err := htmldoc.Parse(strings.NewReader(g.String()))
	if err != nil {
		g.t.Fatalf("parse %s: %v", g.path, err)
	}
	return doc
}

func (g Golden) write(data []byte) {
	g.t.Helper()
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		g.t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(g.path, data, 0o644); err != nil {
		g.t.Fatalf("write golden: %v", err)
	}
}
