// Package selector decides which form controls receive JSON formatting. A
// control qualifies when its element is one of Elements and its name
// attribute ends with one of Suffixes, the same rule as the CSS attribute
// selector element[name$="suffix"].
package selector

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSuffixes lists the JSON columns of the car admin form.
var DefaultSuffixes = []string{
	"station_fields",
	"metadata",
	"tags",
	"notes",
	"messages",
	"custom_car_info",
}

// DefaultElements restricts matching to multi-line text controls.
var DefaultElements = []string{"textarea"}

// Selector matches form controls by element name and name-attribute suffix.
type Selector struct {
	Elements []string `json:"elements" yaml:"elements" toml:"elements"`
	Suffixes []string `json:"suffixes" yaml:"suffixes" toml:"suffixes"`
}

// Default returns the selector used by the car admin page.
func Default() Selector {
	return Selector{
		Elements: append([]string(nil), DefaultElements...),
		Suffixes: append([]string(nil), DefaultSuffixes...),
	}
}

// Match reports whether a control with the given tag and name attribute is a
// target field. Tags compare case-insensitively, names case-sensitively.
func (s Selector) Match(tag, name string) bool {
	if name == "" || !s.matchElement(tag) {
		return false
	}
	for _, suffix := range s.Suffixes {
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func (s Selector) matchElement(tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, element := range s.Elements {
		if strings.EqualFold(strings.TrimSpace(element), tag) {
			return true
		}
	}
	return false
}

// CSS renders the selector as a CSS selector list suitable for
// document.querySelectorAll.
func (s Selector) CSS() string {
	parts := make([]string, 0, len(s.Elements)*len(s.Suffixes))
	for _, element := range s.Elements {
		element = strings.ToLower(strings.TrimSpace(element))
		for _, suffix := range s.Suffixes {
			parts = append(parts, fmt.Sprintf(`%s[name$="%s"]`, element, suffix))
		}
	}
	return strings.Join(parts, ", ")
}

// Validate rejects selectors that could never match. An empty suffix is an
// error because [name$=""] matches nothing in CSS.
func (s Selector) Validate() error {
	var errs []error
	if len(s.Elements) == 0 {
		errs = append(errs, errors.New("selector: at least one element is required"))
	}
	for idx, element := range s.Elements {
		if strings.TrimSpace(element) == "" {
			errs = append(errs, fmt.Errorf("selector: element %d is empty", idx))
		}
	}
	if len(s.Suffixes) == 0 {
		errs = append(errs, errors.New("selector: at least one suffix is required"))
	}
	for idx, suffix := range s.Suffixes {
		if suffix == "" {
			errs = append(errs, fmt.Errorf("selector: suffix %d is empty", idx))
		}
		if strings.ContainsAny(suffix, "\"\\\n") {
			errs = append(errs, fmt.Errorf("selector: suffix %q contains characters that cannot be quoted", suffix))
		}
	}
	return errors.Join(errs...)
}
