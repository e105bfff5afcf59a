package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-jsonfields/pkg/dom/htmldoc"
	"github.com/goliatone/go-jsonfields/pkg/renderers/tui"
)

// defaultsDriver accepts every default unless an answer is scripted for the
// prompt message.
type defaultsDriver struct {
	answers map[string]string
	keep    bool
}

func (d *defaultsDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	return cfg.Default, nil
}

func (d *defaultsDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	if strings.HasPrefix(cfg.Message, "Keep changes") {
		return d.keep, nil
	}
	return cfg.Default, nil
}

func (d *defaultsDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (d *defaultsDriver) TextArea(_ context.Context, cfg tui.TextAreaConfig) (string, error) {
	if answer, ok := d.answers[cfg.Message]; ok {
		return answer, nil
	}
	return cfg.Default, nil
}

func (d *defaultsDriver) Info(context.Context, string) error { return nil }

func execute(t *testing.T, opts *Options, stdin string, args ...string) (string, string, error) {
	t.Helper()
	if opts == nil {
		opts = &Options{}
	}
	cmd := newRootCommand(opts)
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

const page = `<!DOCTYPE html>
<html><head><title>Car</title></head><body><form>
<input name="make" value="Volvo">
<textarea name="metadata">{"a":1,"b":[true]}</textarea>
<textarea name="notes">not json</textarea>
<textarea name="description">{"x":1}</textarea>
</form></body></html>`

func TestFormatValidInput(t *testing.T) {
	out, _, err := execute(t, nil, `{"a":1,"b":[1,2,3]}`, "format")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2,\n    3\n  ]\n}\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestFormatInvalidInputIsEchoed(t *testing.T) {
	out, _, err := execute(t, nil, `{invalid json`, "format")
	if err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if out != `{invalid json` {
		t.Fatalf("expected input echoed, got %q", out)
	}

	_, _, err = execute(t, nil, `{invalid json`, "format", "--strict")
	if exitCode(err) != 1 {
		t.Fatalf("expected exit code 1 with --strict, got %v", err)
	}
}

func TestFormatFileWithTabs(t *testing.T) {
	path := writeFile(t, "in.json", `[{"k":null}]`)
	out, _, err := execute(t, nil, "", "format", "--tab", path)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if want := "[\n\t{\n\t\t\"k\": null\n\t}\n]\n"; out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}

	_, _, err = execute(t, nil, "", "format", filepath.Join(t.TempDir(), "missing.json"))
	if exitCode(err) != 2 {
		t.Fatalf("expected exit code 2 for a missing file, got %v", err)
	}
}

func parseOutput(t *testing.T, out string) *htmldoc.Document {
	t.Helper()
	doc, err := htmldoc.ParseString(out)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return doc
}

func valueOf(t *testing.T, doc *htmldoc.Document, name string) string {
	t.Helper()
	control, ok := doc.Find(name)
	if !ok {
		t.Fatalf("control %q missing", name)
	}
	return control.Value()
}

func TestApplyFormatsTargets(t *testing.T) {
	out, stderr, err := execute(t, nil, page, "apply")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	doc := parseOutput(t, out)

	if got, want := valueOf(t, doc, "metadata"), "{\n  \"a\": 1,\n  \"b\": [\n    true\n  ]\n}"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := valueOf(t, doc, "notes"); got != "not json" {
		t.Fatalf("expected invalid text kept, got %q", got)
	}
	if got := valueOf(t, doc, "description"); got != `{"x":1}` {
		t.Fatalf("expected non-target untouched, got %q", got)
	}
	if !strings.Contains(stderr, "targets=2") || !strings.Contains(stderr, "reformatted=1") {
		t.Fatalf("expected summary log line, got %q", stderr)
	}
}

func TestApplyWithSelectorConfig(t *testing.T) {
	config := writeFile(t, "selector.yaml", "suffixes:\n  - description\n")
	out, _, err := execute(t, nil, page, "--config", config, "--log-level", "error", "apply")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	doc := parseOutput(t, out)
	if got := valueOf(t, doc, "description"); got != "{\n  \"x\": 1\n}" {
		t.Fatalf("expected description formatted, got %q", got)
	}
	if got := valueOf(t, doc, "metadata"); got != `{"a":1,"b":[true]}` {
		t.Fatalf("expected metadata untouched, got %q", got)
	}
}

func TestMissingConfigIsUsageError(t *testing.T) {
	_, _, err := execute(t, nil, page, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "apply")
	if exitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
}

func TestInspectTable(t *testing.T) {
	out, _, err := execute(t, nil, page, "inspect")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "Form controls (Total: 4, JSON fields: 2)") {
		t.Fatalf("expected summary heading, got:\n%s", out)
	}
	for _, want := range []string{"metadata", "description", "JSON Field", "not json"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI styling when not writing to a terminal")
	}
}

func TestPreviewTruncates(t *testing.T) {
	if got := preview("{\n  \"a\": 1\n}"); got != "{ ..." {
		t.Fatalf("unexpected multi-line preview %q", got)
	}
	long := strings.Repeat("x", maxPreviewRunes+5)
	if got := preview(long); got != strings.Repeat("x", maxPreviewRunes)+"..." {
		t.Fatalf("unexpected long preview %q", got)
	}
	if contentKind("  ", false) != "empty" || contentKind("[]", false) != "json" || contentKind("x", false) != "text" {
		t.Fatalf("unexpected content kinds")
	}
}

func TestEditWritesPage(t *testing.T) {
	opts := &Options{prompts: &defaultsDriver{answers: map[string]string{"notes": `["n"]`}}}
	path := writeFile(t, "page.html", page)

	out, _, err := execute(t, opts, "", "edit", "--yes", "-o", "-", path)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	doc := parseOutput(t, out)
	if got := valueOf(t, doc, "notes"); got != "[\n  \"n\"\n]" {
		t.Fatalf("expected notes formatted, got %q", got)
	}
	if got := valueOf(t, doc, "metadata"); got != `{"a":1,"b":[true]}` {
		t.Fatalf("expected unedited metadata kept, got %q", got)
	}
}

func TestEditInPlaceAndDiscard(t *testing.T) {
	path := writeFile(t, "page.html", page)

	opts := &Options{prompts: &defaultsDriver{answers: map[string]string{"metadata": `{}`}, keep: false}}
	if _, _, err := execute(t, opts, "", "edit", path); err != nil {
		t.Fatalf("edit: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != page {
		t.Fatalf("expected discarded edit to leave the file alone")
	}

	opts = &Options{prompts: &defaultsDriver{answers: map[string]string{"metadata": `{ }`}, keep: true}}
	if _, _, err := execute(t, opts, "", "edit", path); err != nil {
		t.Fatalf("edit: %v", err)
	}
	data, _ = os.ReadFile(path)
	doc := parseOutput(t, string(data))
	if got := valueOf(t, doc, "metadata"); got != "{}" {
		t.Fatalf("expected metadata rewritten in place, got %q", got)
	}
}

func TestRenderVanilla(t *testing.T) {
	out, _, err := execute(t, nil, "", "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<form id="car_form"`) || !strings.Contains(out, "JSON.stringify(JSON.parse(field.value), null, 2)") {
		t.Fatalf("expected car form with inline runtime, got:\n%s", out)
	}

	out, _, err = execute(t, nil, "", "render", "--runtime-src", "/static/jsonfields.js")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<script src="/static/jsonfields.js"></script>`) {
		t.Fatalf("expected runtime reference")
	}
}

func TestRenderTUIAcceptsDefaults(t *testing.T) {
	opts := &Options{prompts: &defaultsDriver{}}
	out, _, err := execute(t, opts, "", "render", "--renderer", "tui")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `"metadata": "{\n  \"fuel\": \"hybrid\",\n  \"seats\": 5\n}"`) {
		t.Fatalf("expected metadata formatted in answers, got:\n%s", out)
	}
	if !strings.Contains(out, `"registration_number": "ABC123"`) {
		t.Fatalf("expected defaults kept, got:\n%s", out)
	}
}

func TestRenderUnknownRenderer(t *testing.T) {
	_, _, err := execute(t, nil, "", "render", "--renderer", "pdf")
	if exitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
}

func TestScriptUsesSelector(t *testing.T) {
	config := writeFile(t, "selector.toml", "suffixes = [\"payload\"]\n")
	out, _, err := execute(t, nil, "", "--config", config, "script")
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if !strings.Contains(out, `textarea[name$=\"payload\"]`) {
		t.Fatalf("expected configured selector, got:\n%s", out)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, handler, log) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
