package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jsonfields/pkg/model"
)

func TestJSONFieldFormatsInitialValue(t *testing.T) {
	field := model.JSONField("metadata", "Metadata", map[string]any{"b": 1})
	if field.Widget != model.WidgetJSON {
		t.Fatalf("expected json widget, got %q", field.Widget)
	}
	if field.Value != "{\n  \"b\": 1\n}" {
		t.Fatalf("unexpected value %q", field.Value)
	}

	raw := model.JSONField("tags", "Tags", `["a","b"]`)
	if raw.Value != "[\n  \"a\",\n  \"b\"\n]" {
		t.Fatalf("unexpected string value %q", raw.Value)
	}

	invalid := model.JSONField("notes", "Notes", "{oops")
	if invalid.Value != "{oops" {
		t.Fatalf("expected invalid text kept, got %q", invalid.Value)
	}

	empty := model.JSONField("messages", "Messages", []any{})
	if empty.Value != "[]" {
		t.Fatalf("expected empty list, got %q", empty.Value)
	}
}

func TestCompactJSONFieldKeepsOneLine(t *testing.T) {
	field := model.CompactJSONField("tags", "Tags", "[ 1,\n 2 ]")
	if field.Widget != model.WidgetJSON || field.Value != "[1,2]" {
		t.Fatalf("unexpected field %+v", field)
	}
	if got := model.CompactJSONField("notes", "Notes", "{oops").Value; got != "{oops" {
		t.Fatalf("expected invalid text kept, got %q", got)
	}
}

func TestFormModelFieldsAndValues(t *testing.T) {
	form := model.FormModel{
		ID: "car",
		Fieldsets: []model.Fieldset{
			{Title: "Basic", Fields: []model.Field{{Name: "make", Widget: model.WidgetInput}}},
			{Title: "Extra", Fields: []model.Field{model.JSONField("metadata", "Metadata", "{}")}},
		},
	}

	var names []string
	for _, field := range form.Fields() {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"make", "metadata"}, names); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	updated := form.WithValues(map[string]string{"make": "Volvo", "unknown": "x"})
	if got, _ := updated.Field("make"); got.Value != "Volvo" {
		t.Fatalf("expected make=Volvo, got %q", got.Value)
	}
	if got, _ := form.Field("make"); got.Value != "" {
		t.Fatalf("expected original form untouched, got %q", got.Value)
	}

	meta, ok := form.Field("metadata")
	if !ok || !meta.Multiline() || meta.ID() != "id_metadata" {
		t.Fatalf("unexpected metadata field %#v", meta)
	}
}
