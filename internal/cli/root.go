// Package cli implements the jsonfields command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-jsonfields/pkg/renderers/tui"
	"github.com/goliatone/go-jsonfields/pkg/selector"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Environment variables consulted for flag defaults.
const (
	EnvConfig   = "JSONFIELDS_CONFIG"
	EnvLogLevel = "JSONFIELDS_LOG_LEVEL"
	EnvAddr     = "JSONFIELDS_ADDR"
)

// ExitError signals a non-zero exit code with an optional message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Options holds the persistent flag values shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string

	// prompts replaces the survey driver in tests.
	prompts tui.PromptDriver
}

// NewRootCommand creates the root cobra command with all subcommands.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&Options{})
}

func newRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jsonfields",
		Short:   "Pretty-print JSON admin fields",
		Version: Version,
		Long: `jsonfields formats the JSON textareas of an admin change form. Fields whose
name ends with station_fields, metadata, tags, notes, messages or
custom_car_info are re-rendered with two-space indentation when they hold
valid JSON and left exactly as typed when they do not.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", os.Getenv(EnvConfig), "Selector file (JSON, YAML or TOML)")
	flags.StringVar(&opts.LogLevel, "log-level", envOr(EnvLogLevel, "info"), "Log level: debug, info, warn, error")

	cmd.AddCommand(
		newFormatCommand(opts),
		newApplyCommand(opts),
		newInspectCommand(opts),
		newEditCommand(opts),
		newRenderCommand(opts),
		newScriptCommand(opts),
		newServeCommand(opts),
	)
	return cmd
}

func (o *Options) selector() (selector.Selector, error) {
	if strings.TrimSpace(o.ConfigPath) == "" {
		return selector.Default(), nil
	}
	sel, err := selector.LoadFile(o.ConfigPath)
	if err != nil {
		return selector.Selector{}, &ExitError{Code: 2, Message: err.Error()}
	}
	return sel, nil
}

func (o *Options) logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// readInput reads the named file, or in when name is empty or "-".
func readInput(in io.Reader, name string) ([]byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return data, nil
}

// writeOutput writes data to the named file, or to out when name is empty
// or "-".
func writeOutput(out io.Writer, name string, data []byte) error {
	if name == "" || name == "-" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
