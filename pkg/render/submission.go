package render

import (
	"fmt"
	"slices"
	"strings"
)

// HiddenField is a hidden input emitted before the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for name with value formatted by fmt.Sprint.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: name, Value: fmt.Sprint(value)}
}

// CSRFToken returns the hidden field carrying token. Callers pick the name
// their backend checks, such as "csrfmiddlewaretoken".
func CSRFToken(name, token string) HiddenField {
	return HiddenField{Name: name, Value: token}
}

// HiddenInputs prepares fields for rendering: names are trimmed, blank names
// dropped, the last value for a repeated name wins, and the result is sorted
// by name so pages render the same way every time.
func HiddenInputs(fields ...HiddenField) []HiddenField {
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		byName[name] = field.Value
	}
	if len(byName) == 0 {
		return nil
	}

	out := make([]HiddenField, 0, len(byName))
	for name, value := range byName {
		out = append(out, HiddenField{Name: name, Value: value})
	}
	slices.SortFunc(out, func(a, b HiddenField) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
