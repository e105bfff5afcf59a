// Package dom is the slice of the browser document model the field formatter
// depends on. The same contract is implemented by the in-memory document in
// htmldoc and by the syscall/js bridge used in the WebAssembly build.
package dom

// Event names understood by Document and Element implementations.
const (
	EventChange           = "change"
	EventDOMContentLoaded = "DOMContentLoaded"
)

// Listener receives the element an event was dispatched to.
type Listener func(Element)

// Element is a form control holding a string value.
type Element interface {
	// TagName returns the lower-case element name (textarea, input, select).
	TagName() string
	// Name returns the name attribute, or "" when absent.
	Name() string
	Value() string
	// SetValue replaces the value the way a script assignment does: no
	// events are dispatched.
	SetValue(value string)
	AddEventListener(event string, fn Listener)
}

// Document owns the form controls of a page.
type Document interface {
	AddEventListener(event string, fn func())
	// FormControls returns the controls currently in the document, in
	// document order.
	FormControls() []Element
}
