package vanilla_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jsonfields/pkg/dom/htmldoc"
	"github.com/goliatone/go-jsonfields/pkg/formatter"
	"github.com/goliatone/go-jsonfields/pkg/model"
	"github.com/goliatone/go-jsonfields/pkg/render"
	"github.com/goliatone/go-jsonfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-jsonfields/pkg/selector"
)

func sampleForm() model.FormModel {
	return model.FormModel{
		ID:     "car_form",
		Title:  "Change car",
		Method: "POST",
		Fieldsets: []model.Fieldset{
			{
				Title: "Basic Information",
				Fields: []model.Field{
					{Name: "make", Label: "Make", Widget: model.WidgetInput, Value: "Volvo"},
					{Name: "year", Widget: model.WidgetNumber, Value: "2019"},
					{Name: "is_active", Label: "Active", Widget: model.WidgetCheckbox, Value: "true"},
					{
						Name:    "organization",
						Widget:  model.WidgetSelect,
						Value:   "2",
						Options: []model.Option{{Value: "1", Label: "Northwind"}, {Value: "2", Label: "Contoso"}},
					},
				},
			},
			{
				Title:       "Additional Information",
				Description: `Free-form <b>JSON</b><script>alert(1)</script>`,
				Collapsed:   true,
				Fields: []model.Field{
					model.JSONField("metadata", "Metadata", map[string]any{}),
					model.JSONField("tags", "Tags", []any{}),
					{Name: "description", Widget: model.WidgetTextarea, Value: `{"x":1}`},
				},
			},
		},
	}
}

func renderPage(t *testing.T, r *vanilla.Renderer, form model.FormModel, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	r, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderProducesParsableControls(t *testing.T) {
	page := renderPage(t, newRenderer(t), sampleForm(), render.RenderOptions{})

	doc, err := htmldoc.ParseString(page)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}

	got := map[string]string{}
	for _, el := range doc.FormControls() {
		if el.Name() == "" {
			continue
		}
		got[el.TagName()+":"+el.Name()] = el.Value()
	}

	want := map[string]string{
		"input:make":           "Volvo",
		"input:year":           "2019",
		"input:is_active":      "",
		"select:organization":  "2",
		"textarea:metadata":    "{}",
		"textarea:tags":        "[]",
		"textarea:description": `{"x":1}`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("controls mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEmbedsRuntimeForTargets(t *testing.T) {
	page := renderPage(t, newRenderer(t), sampleForm(), render.RenderOptions{})

	if !strings.Contains(page, `textarea[name$=\"metadata\"]`) {
		t.Fatalf("expected inline runtime with default selector, got:\n%s", page)
	}
	if strings.Count(page, "JSON.stringify(JSON.parse(field.value), null, 2)") != 1 {
		t.Fatalf("expected runtime to be emitted exactly once")
	}
	if !strings.Contains(page, `name="metadata" id="id_metadata"`) {
		t.Fatalf("expected metadata textarea markup")
	}
	if !strings.Contains(page, `data-json-field="true"`) {
		t.Fatalf("expected target textareas to be flagged")
	}
}

func TestRenderWithoutTargetsSkipsRuntime(t *testing.T) {
	form := model.FormModel{
		ID: "plain",
		Fieldsets: []model.Fieldset{{Fields: []model.Field{
			{Name: "description", Widget: model.WidgetTextarea, Value: "{}"},
		}}},
	}
	page := renderPage(t, newRenderer(t), form, render.RenderOptions{})
	if strings.Contains(page, "<script") {
		t.Fatalf("expected no script for a page without target fields")
	}
}

func TestRenderRuntimeScriptSrc(t *testing.T) {
	r := newRenderer(t, vanilla.WithRuntimeScriptSrc("/runtime/jsonfields.js"), vanilla.WithoutInlineStyle())
	page := renderPage(t, r, sampleForm(), render.RenderOptions{})

	if !strings.Contains(page, `<script src="/runtime/jsonfields.js"></script>`) {
		t.Fatalf("expected runtime script reference, got:\n%s", page)
	}
	if strings.Contains(page, "JSON.parse") {
		t.Fatalf("expected runtime not to be inlined")
	}
	if strings.Contains(page, "<style>") {
		t.Fatalf("expected inline style to be dropped")
	}
}

func TestRenderSanitizesDescription(t *testing.T) {
	page := renderPage(t, newRenderer(t), sampleForm(), render.RenderOptions{})
	if strings.Contains(page, "alert(1)") {
		t.Fatalf("expected script in description to be removed")
	}
	if !strings.Contains(page, "Free-form <b>JSON</b>") {
		t.Fatalf("expected inline formatting to survive sanitising")
	}
}

func TestRenderAppliesValuesAndMethod(t *testing.T) {
	page := renderPage(t, newRenderer(t), sampleForm(), render.RenderOptions{
		Method: "GET",
		Values: map[string]string{"metadata": `{"a":1}`},
	})

	doc, err := htmldoc.ParseString(page)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	metadata, ok := doc.Find("metadata")
	if !ok {
		t.Fatalf("metadata not rendered")
	}
	if metadata.Value() != `{"a":1}` {
		t.Fatalf("expected prefilled value kept verbatim, got %q", metadata.Value())
	}
	if !strings.Contains(page, `method="get"`) {
		t.Fatalf("expected method override")
	}
}

func TestRenderHiddenFields(t *testing.T) {
	page := renderPage(t, newRenderer(t), sampleForm(), render.RenderOptions{
		HiddenFields: []render.HiddenField{
			render.CSRFToken("csrfmiddlewaretoken", `tok"en`),
			render.Hidden("_save", "Save"),
		},
	})

	doc, err := htmldoc.ParseString(page)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	token, ok := doc.Find("csrfmiddlewaretoken")
	if !ok {
		t.Fatalf("csrf token not rendered")
	}
	if token.TagName() != "input" || token.Value() != `tok"en` {
		t.Fatalf("unexpected token control %s=%q", token.TagName(), token.Value())
	}
	if strings.Index(page, `name="_save"`) > strings.Index(page, `name="csrfmiddlewaretoken"`) {
		t.Fatalf("expected hidden fields sorted by name")
	}
}

func TestRenderCustomSelector(t *testing.T) {
	sel := selector.Selector{Elements: []string{"textarea"}, Suffixes: []string{"description"}}
	page := renderPage(t, newRenderer(t), sampleForm(), render.RenderOptions{Selector: &sel})

	if !strings.Contains(page, `textarea[name$=\"description\"]`) {
		t.Fatalf("expected custom selector in runtime")
	}
	if strings.Contains(page, `textarea[name$=\"metadata\"]`) {
		t.Fatalf("expected default suffixes to be replaced")
	}
}

func TestRenderRejectsInvalidSelector(t *testing.T) {
	sel := selector.Selector{Elements: []string{"textarea"}, Suffixes: []string{""}}
	_, err := newRenderer(t).Render(context.Background(), sampleForm(), render.RenderOptions{Selector: &sel})
	if err == nil {
		t.Fatalf("expected invalid selector error")
	}
}

func TestRenderedPageFormatsOnChange(t *testing.T) {
	page := renderPage(t, newRenderer(t), sampleForm(), render.RenderOptions{})

	doc, err := htmldoc.ParseString(page)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	formatter.New().Install(doc)
	doc.Load()

	tags, _ := doc.Find("tags")
	tags.Commit(`["fleet","red"]`)
	if tags.Value() != "[\n  \"fleet\",\n  \"red\"\n]" {
		t.Fatalf("expected tags to be formatted, got %q", tags.Value())
	}

	description, _ := doc.Find("description")
	description.Commit(`{"y":2}`)
	if description.Value() != `{"y":2}` {
		t.Fatalf("expected description untouched, got %q", description.Value())
	}
}
