package model

import (
	"encoding/json"

	"github.com/goliatone/go-jsonfields/pkg/jsonfmt"
)

// Widget selects how a field is rendered.
type Widget string

const (
	WidgetInput    Widget = "input"
	WidgetNumber   Widget = "number"
	WidgetCheckbox Widget = "checkbox"
	WidgetSelect   Widget = "select"
	WidgetFile     Widget = "file"
	WidgetTextarea Widget = "textarea"
	WidgetJSON     Widget = "json"
)

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is a single named control.
type Field struct {
	Name     string            `json:"name"`
	Label    string            `json:"label,omitempty"`
	Widget   Widget            `json:"widget"`
	Value    string            `json:"value,omitempty"`
	HelpText string            `json:"helpText,omitempty"`
	ReadOnly bool              `json:"readOnly,omitempty"`
	Options  []Option          `json:"options,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ID returns the element id used in rendered markup.
func (f Field) ID() string {
	return "id_" + f.Name
}

// Multiline reports whether the field renders as a textarea.
func (f Field) Multiline() bool {
	return f.Widget == WidgetTextarea || f.Widget == WidgetJSON
}

// Fieldset groups fields under a heading. Collapsed fieldsets start closed.
type Fieldset struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Collapsed   bool    `json:"collapsed,omitempty"`
	Fields      []Field `json:"fields"`
}

// FormModel is the top-level form description renderers consume.
type FormModel struct {
	ID        string            `json:"id"`
	Title     string            `json:"title,omitempty"`
	Action    string            `json:"action,omitempty"`
	Method    string            `json:"method,omitempty"`
	Fieldsets []Fieldset        `json:"fieldsets"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Fields flattens the fieldsets in order.
func (m FormModel) Fields() []Field {
	var out []Field
	for _, set := range m.Fieldsets {
		out = append(out, set.Fields...)
	}
	return out
}

// Field looks a field up by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields() {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// WithValues returns a copy of the form whose fields take the supplied
// values. Unknown names are ignored.
func (m FormModel) WithValues(values map[string]string) FormModel {
	if len(values) == 0 {
		return m
	}
	out := m
	out.Fieldsets = make([]Fieldset, len(m.Fieldsets))
	for idx, set := range m.Fieldsets {
		set.Fields = append([]Field(nil), set.Fields...)
		for fieldIdx, field := range set.Fields {
			if value, ok := values[field.Name]; ok {
				set.Fields[fieldIdx].Value = value
			}
		}
		out.Fieldsets[idx] = set
	}
	return out
}

// JSONField builds a json widget whose initial value is the indented
// rendering of value. Strings are treated as JSON text; anything else is
// marshalled first. Text that does not parse is kept as given.
func JSONField(name, label string, value any) Field {
	return Field{
		Name:   name,
		Label:  label,
		Widget: WidgetJSON,
		Value:  jsonText(value, jsonfmt.Indent),
	}
}

// CompactJSONField is JSONField with the value on a single line, the way a
// stored column is first shown before anyone edits it.
func CompactJSONField(name, label string, value any) Field {
	field := JSONField(name, label, nil)
	field.Value = jsonText(value, "")
	return field
}

func jsonText(value any, indent string) string {
	var raw string
	switch typed := value.(type) {
	case nil:
		return "null"
	case string:
		raw = typed
	case []byte:
		raw = string(typed)
	case json.RawMessage:
		raw = string(typed)
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		raw = string(data)
	}
	return jsonfmt.PrettyIndent(raw, indent).Value
}
