package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-jsonfields/pkg/dom/htmldoc"
	"github.com/goliatone/go-jsonfields/pkg/formatter"
)

// Change describes the outcome of editing one target field.
type Change struct {
	Name   string
	Before string
	Input  string
	After  string
}

// Formatted reports whether the formatter rewrote the submitted text.
func (c Change) Formatted() bool {
	return c.After != c.Input
}

// Modified reports whether the field ends with a different value.
func (c Change) Modified() bool {
	return c.After != c.Before
}

// Editor edits the target fields of a parsed page in the terminal. Each
// answer is committed on the control, which fires change the way leaving
// the field does in a browser.
type Editor struct {
	settings
}

// NewEditor constructs an Editor with defaults (survey driver, no confirm).
func NewEditor(options ...Option) *Editor {
	return &Editor{settings: newSettings(options)}
}

// Edit loads doc with the formatter installed and prompts for every target
// field in document order. doc must not have been loaded yet.
func (e *Editor) Edit(ctx context.Context, doc *htmldoc.Document) ([]Change, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if doc == nil {
		return nil, errors.New("tui: document is nil")
	}
	if doc.Loaded() {
		return nil, errors.New("tui: document already loaded")
	}

	sel := e.resolveSelector(nil)
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	fmtr := formatter.New(formatter.WithSelector(sel))
	fmtr.Install(doc)
	doc.Load()

	var changes []Change
	for _, control := range doc.Controls() {
		if !fmtr.Matches(control) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return changes, err
		}

		before := control.Value()
		answer, err := e.driver.TextArea(ctx, TextAreaConfig{
			Message:   e.message(control.Name()),
			Default:   before,
			Extension: "json",
		})
		if err != nil {
			return changes, fmt.Errorf("tui: field %q: %w", control.Name(), err)
		}
		control.Commit(answer)
		changes = append(changes, Change{
			Name:   control.Name(),
			Before: before,
			Input:  answer,
			After:  control.Value(),
		})
	}

	if len(changes) == 0 {
		if err := e.driver.Info(ctx, e.info("no JSON fields on this page")); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if e.confirm {
		keep, err := e.driver.Confirm(ctx, ConfirmConfig{
			Message: e.message(fmt.Sprintf("Keep changes to %d field(s)?", countModified(changes))),
			Default: true,
		})
		if err != nil {
			return changes, err
		}
		if !keep {
			return changes, ErrDiscarded
		}
	}
	return changes, nil
}

func countModified(changes []Change) int {
	n := 0
	for _, change := range changes {
		if change.Modified() {
			n++
		}
	}
	return n
}
