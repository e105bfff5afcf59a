// Package vanilla renders admin forms as plain HTML pages. Pages that contain
// target fields carry the JSON field runtime, either inline or as a script
// reference, so the browser formats those fields on change.
package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-jsonfields/pkg/model"
	"github.com/goliatone/go-jsonfields/pkg/render"
	rendertemplate "github.com/goliatone/go-jsonfields/pkg/render/template"
	"github.com/goliatone/go-jsonfields/pkg/render/template/pongo"
	"github.com/goliatone/go-jsonfields/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-jsonfields/pkg/selector"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	runtimeSrc       string
	stylesheets      []string
	inlineStyle      bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithRuntimeScriptSrc references the JSON field runtime by URL instead of
// inlining it. The script served at src must match the selector in use.
func WithRuntimeScriptSrc(src string) Option {
	return func(cfg *config) {
		cfg.runtimeSrc = strings.TrimSpace(src)
	}
}

// WithStylesheets adds stylesheet links to every page.
func WithStylesheets(hrefs ...string) Option {
	return func(cfg *config) {
		cfg.stylesheets = append(cfg.stylesheets, hrefs...)
	}
}

// WithoutInlineStyle drops the embedded stylesheet from the page head.
func WithoutInlineStyle() Option {
	return func(cfg *config) {
		cfg.inlineStyle = false
	}
}

// Renderer renders form models as HTML.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	runtimeSrc  string
	stylesheets []string
	inlineStyle bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStyle: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:   templates,
		registry:    cfg.registry,
		runtimeSrc:  cfg.runtimeSrc,
		stylesheets: cfg.stylesheets,
		inlineStyle: cfg.inlineStyle,
	}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sel := options.ResolveSelector()
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	form = form.WithValues(options.Values)

	method := strings.ToLower(strings.TrimSpace(options.Method))
	if method == "" {
		method = strings.ToLower(strings.TrimSpace(form.Method))
	}
	if method == "" {
		method = "post"
	}

	page := components.NewPage(sel)
	fieldsets := make([]any, 0, len(form.Fieldsets))
	for _, set := range form.Fieldsets {
		fields := make([]any, 0, len(set.Fields))
		for _, field := range set.Fields {
			component, err := r.registry.Lookup(field.Widget)
			if err != nil {
				return nil, fmt.Errorf("vanilla renderer: field %q: %w", field.Name, err)
			}
			data := components.ComponentData{
				Template: r.templates,
				Target:   page.Add(field, component),
			}
			var buf bytes.Buffer
			if err := component.Render(&buf, field, data); err != nil {
				return nil, fmt.Errorf("vanilla renderer: field %q: %w", field.Name, err)
			}
			fields = append(fields, map[string]any{
				"name": field.Name,
				"html": buf.String(),
			})
		}
		fieldsets = append(fieldsets, map[string]any{
			"title":       set.Title,
			"description": components.SanitizeHelp(set.Description),
			"collapsed":   set.Collapsed,
			"fields":      fields,
		})
	}

	stylesheets := append(append([]string(nil), r.stylesheets...), page.Stylesheets()...)

	payload := map[string]any{
		"form": map[string]any{
			"id":     form.ID,
			"title":  form.Title,
			"action": form.Action,
			"method": method,
		},
		"hidden":       hiddenPayload(options.HiddenFields),
		"fieldsets":    fieldsets,
		"stylesheets":  toAnySlice(stylesheets),
		"scripts":      r.scriptPayload(page, sel),
		"inline_style": r.inlineStylesheet(),
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// scriptPayload emits the runtime once, and only for pages with a target.
func (r *Renderer) scriptPayload(page *components.Page, sel selector.Selector) []any {
	if !page.NeedsRuntime() {
		return nil
	}
	script := map[string]any{"src": r.runtimeSrc, "inline": "", "defer": false}
	if r.runtimeSrc == "" {
		script["inline"] = components.RuntimeScript(sel)
	}
	return []any{script}
}

func (r *Renderer) inlineStylesheet() string {
	if !r.inlineStyle {
		return ""
	}
	return defaultStylesheet()
}

func hiddenPayload(fields []render.HiddenField) []any {
	inputs := render.HiddenInputs(fields...)
	out := make([]any, 0, len(inputs))
	for _, field := range inputs {
		out = append(out, map[string]any{"name": field.Name, "value": field.Value})
	}
	return out
}

func toAnySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, value := range values {
		out = append(out, value)
	}
	return out
}
