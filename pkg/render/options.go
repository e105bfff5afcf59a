package render

import "github.com/goliatone/go-jsonfields/pkg/selector"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model.
	Method string
	// Values pre-populates controls by field name. JSON fields keep the
	// supplied text as is; formatting only happens on change in the page.
	Values map[string]string
	// HiddenFields are emitted as hidden inputs; see HiddenInputs.
	HiddenFields []HiddenField
	// Selector replaces the default target-field selector embedded in the
	// page runtime.
	Selector *selector.Selector
}

// ResolveSelector returns the selector from options or the default one.
func (o RenderOptions) ResolveSelector() selector.Selector {
	if o.Selector != nil {
		return *o.Selector
	}
	return selector.Default()
}
