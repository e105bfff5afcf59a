// Package tui collects form values in the terminal. Target fields are run
// through the same formatter the page uses, so a JSON answer comes back
// indented while anything that does not parse is kept as typed.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-jsonfields/pkg/dom"
	"github.com/goliatone/go-jsonfields/pkg/formatter"
	"github.com/goliatone/go-jsonfields/pkg/jsonfmt"
	"github.com/goliatone/go-jsonfields/pkg/model"
	"github.com/goliatone/go-jsonfields/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	settings
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	cfg := newSettings(options)
	switch cfg.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", cfg.outputFormat)
	}
	return &Renderer{settings: cfg}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every editable field and serializes the answers.
// Read-only fields keep their current value; file fields are skipped.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	sel := r.resolveSelector(opts.Selector)
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	fmtr := formatter.New(formatter.WithSelector(sel))

	form = form.WithValues(opts.Values)
	state := NewState()

	for _, set := range form.Fieldsets {
		if set.Title != "" {
			if err := r.driver.Info(ctx, r.info(set.Title)); err != nil {
				return nil, err
			}
		}
		for _, field := range set.Fields {
			if err := r.promptField(ctx, fmtr, field, state); err != nil {
				return nil, fmt.Errorf("tui: field %q: %w", field.Name, err)
			}
		}
	}

	return r.serialize(state)
}

func (r *Renderer) promptField(ctx context.Context, fmtr *formatter.Formatter, field model.Field, state *State) error {
	if field.ReadOnly {
		state.Set(field.Name, field.Value)
		return nil
	}
	switch field.Widget {
	case model.WidgetFile:
		return nil
	case model.WidgetCheckbox:
		return r.promptCheckbox(ctx, field, state)
	case model.WidgetNumber:
		return r.promptNumber(ctx, field, state)
	case model.WidgetSelect:
		return r.promptSelect(ctx, field, state)
	case model.WidgetTextarea, model.WidgetJSON:
		return r.promptText(ctx, fmtr, field, state)
	default:
		return r.promptInput(ctx, field, state)
	}
}

func (r *Renderer) promptInput(ctx context.Context, field model.Field, state *State) error {
	answer, err := r.driver.Input(ctx, InputConfig{
		Message: r.message(displayLabel(field)),
		Default: field.Value,
		Help:    field.HelpText,
	})
	if err != nil {
		return err
	}
	state.Set(field.Name, answer)
	return nil
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, state *State) error {
	answer, err := r.driver.Input(ctx, InputConfig{
		Message:   r.message(displayLabel(field)),
		Default:   field.Value,
		Help:      field.HelpText,
		Validator: validateNumber,
	})
	if err != nil {
		return err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		state.Set(field.Name, nil)
		return nil
	}
	if err := validateNumber(answer); err != nil {
		return fmt.Errorf("expected number, got %q", answer)
	}
	value, _ := strconv.ParseFloat(answer, 64)
	state.Set(field.Name, value)
	return nil
}

func (r *Renderer) promptCheckbox(ctx context.Context, field model.Field, state *State) error {
	answer, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.message(displayLabel(field)),
		Default: isTruthy(field.Value),
		Help:    field.HelpText,
	})
	if err != nil {
		return err
	}
	state.Set(field.Name, answer)
	return nil
}

func (r *Renderer) promptSelect(ctx context.Context, field model.Field, state *State) error {
	labels := make([]string, 0, len(field.Options))
	defaultIndex := -1
	for idx, option := range field.Options {
		label := option.Label
		if label == "" {
			label = option.Value
		}
		labels = append(labels, label)
		if option.Value == field.Value {
			defaultIndex = idx
		}
	}
	if len(labels) == 0 {
		state.Set(field.Name, field.Value)
		return nil
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.message(displayLabel(field)),
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         field.HelpText,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Options) {
		return fmt.Errorf("selection %d out of range", idx)
	}
	state.Set(field.Name, field.Options[idx].Value)
	return nil
}

func (r *Renderer) promptText(ctx context.Context, fmtr *formatter.Formatter, field model.Field, state *State) error {
	ext := "txt"
	if field.Widget == model.WidgetJSON {
		ext = "json"
	}
	answer, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message:   r.message(displayLabel(field)),
		Default:   field.Value,
		Help:      field.HelpText,
		Extension: ext,
	})
	if err != nil {
		return err
	}

	control := &answerControl{name: field.Name, value: answer}
	if fmtr.Matches(control) {
		fmtr.Apply(control)
	}
	state.Set(field.Name, control.value)
	return nil
}

func (r *Renderer) serialize(state *State) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(state)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(state)), nil
	default:
		return []byte(jsonfmt.Encode(state.Object(), jsonfmt.Indent) + "\n"), nil
	}
}

// answerControl presents a prompt answer as a textarea so the formatter can
// decide on it the way it does in the page.
type answerControl struct {
	name  string
	value string
}

func (c *answerControl) TagName() string { return "textarea" }

func (c *answerControl) Name() string { return c.name }

func (c *answerControl) Value() string { return c.value }

func (c *answerControl) SetValue(value string) { c.value = value }

func (c *answerControl) AddEventListener(string, dom.Listener) {}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func validateNumber(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.New("enter a number")
	}
	return nil
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "on", "yes":
		return true
	default:
		return false
	}
}

func encodeForm(state *State) string {
	values := url.Values{}
	for _, name := range state.Names() {
		value, _ := state.Get(name)
		values.Set(name, scalarText(value))
	}
	return values.Encode()
}

func prettyPrint(state *State) string {
	var b strings.Builder
	for _, name := range state.Names() {
		value, _ := state.Get(name)
		text := scalarText(value)
		if !strings.Contains(text, "\n") {
			fmt.Fprintf(&b, "%s=%s\n", name, text)
			continue
		}
		fmt.Fprintf(&b, "%s=\n", name)
		for _, line := range strings.Split(text, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	return b.String()
}

func scalarText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return jsonfmt.Encode(v, "")
	default:
		return fmt.Sprint(v)
	}
}
