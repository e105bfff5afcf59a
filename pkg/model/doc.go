// Package model describes admin forms for the renderers: ordered fieldsets
// of named controls carrying their current string values. JSON-backed
// columns use the json widget, which renders as a textarea and opts the
// control into client-side formatting when its name matches the selector.
package model
