package tui

import "github.com/goliatone/go-jsonfields/pkg/selector"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
}

// Option configures the TUI renderer and editor.
type Option func(*settings)

type settings struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	selector     *selector.Selector
	confirm      bool
}

func newSettings(options []Option) settings {
	cfg := settings{outputFormat: OutputFormatJSON}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.driver == nil {
		cfg.driver = newSurveyDriver()
	}
	return cfg
}

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *settings) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *settings) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *settings) {
		s.theme = theme
	}
}

// WithSelector overrides the target-field selector. RenderOptions.Selector
// still wins for a single Render call.
func WithSelector(sel selector.Selector) Option {
	return func(s *settings) {
		s.selector = &sel
	}
}

// WithConfirm asks for confirmation before Editor.Edit returns its changes.
func WithConfirm(enabled bool) Option {
	return func(s *settings) {
		s.confirm = enabled
	}
}

func (s settings) message(text string) string {
	return s.theme.PromptPrefix + text
}

func (s settings) info(text string) string {
	return s.theme.InfoPrefix + text
}

func (s settings) resolveSelector(override *selector.Selector) selector.Selector {
	switch {
	case override != nil:
		return *override
	case s.selector != nil:
		return *s.selector
	default:
		return selector.Default()
	}
}
