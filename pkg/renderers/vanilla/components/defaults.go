package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-jsonfields/pkg/model"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry returns the components the vanilla renderer ships
// with. Unknown widgets render as text inputs.
func NewDefaultRegistry() *Registry {
	registry := New(model.WidgetInput)
	defaults := []struct {
		widget    model.Widget
		element   string
		template  string
		inputType string
	}{
		{model.WidgetInput, "input", "input.tmpl", "text"},
		{model.WidgetNumber, "input", "input.tmpl", "number"},
		{model.WidgetFile, "input", "input.tmpl", "file"},
		{model.WidgetCheckbox, "input", "checkbox.tmpl", "checkbox"},
		{model.WidgetSelect, "select", "select.tmpl", ""},
		{model.WidgetTextarea, "textarea", "textarea.tmpl", ""},
		{model.WidgetJSON, "textarea", "textarea.tmpl", ""},
	}
	for _, entry := range defaults {
		err := registry.Register(entry.widget, Component{
			Element: entry.element,
			Render:  templateComponentRenderer(templatePrefix+entry.template, entry.inputType),
		})
		if err != nil {
			panic(err)
		}
	}
	return registry
}

func templateComponentRenderer(templateName, inputType string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		rendered, err := data.Template.RenderTemplate(templateName, fieldPayload(field, data, inputType))
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

func fieldPayload(field model.Field, data ComponentData, inputType string) map[string]any {
	label := field.Label
	if strings.TrimSpace(label) == "" {
		label = labelFromName(field.Name)
	}

	options := make([]any, 0, len(field.Options))
	for _, option := range field.Options {
		options = append(options, map[string]any{
			"value":    option.Value,
			"label":    option.Label,
			"selected": option.Value == field.Value,
		})
	}

	return map[string]any{
		"name":       field.Name,
		"id":         field.ID(),
		"label":      label,
		"value":      field.Value,
		"input_type": inputType,
		"readonly":   field.ReadOnly,
		"checked":    isTruthy(field.Value),
		"options":    options,
		"help":       SanitizeHelp(field.HelpText),
		"json":       field.Widget == model.WidgetJSON,
		"target":     data.Target,
		"rows":       rowsFor(field),
	}
}

func labelFromName(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	if len(words) == 0 {
		return ""
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ")
}

func rowsFor(field model.Field) int {
	lines := strings.Count(field.Value, "\n") + 1
	switch {
	case lines < 4:
		return 4
	case lines > 20:
		return 20
	default:
		return lines
	}
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "on", "yes":
		return true
	default:
		return false
	}
}
