package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	aqtable "github.com/aquasecurity/table"
	"github.com/aquasecurity/tml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/goliatone/go-jsonfields/pkg/dom/htmldoc"
	"github.com/goliatone/go-jsonfields/pkg/jsonfmt"
	"github.com/goliatone/go-jsonfields/pkg/selector"
)

const maxPreviewRunes = 40

func newInspectCommand(root *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [page.html]",
		Short: "List the form controls of a page and which ones are JSON fields",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := root.selector()
			if err != nil {
				return err
			}
			doc, err := loadPage(cmd.InOrStdin(), pageName(args))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			writeInspectTable(out, doc, sel, isTerminal(out))
			return nil
		},
	}
}

// isTerminal reports whether w is stdout attached to a TTY.
func isTerminal(w io.Writer) bool {
	return w == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

var (
	targetColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
	invalidColor = color.New(color.FgYellow).SprintFunc()
)

func writeInspectTable(w io.Writer, doc *htmldoc.Document, sel selector.Selector, terminal bool) {
	controls := doc.Controls()
	targets := 0
	for _, control := range controls {
		if sel.Match(control.TagName(), control.Name()) {
			targets++
		}
	}

	title := fmt.Sprintf("Form controls (Total: %d, JSON fields: %d)", len(controls), targets)
	if terminal {
		_ = tml.Fprintf(w, "<underline><bold>%s</bold></underline>\n\n", title)
	} else {
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, strings.Repeat("=", utf8.RuneCountInString(title)))
		fmt.Fprintln(w)
	}

	tw := aqtable.New(w)
	if terminal {
		tw.SetHeaderStyle(aqtable.StyleBold)
		tw.SetLineStyle(aqtable.StyleDim)
	}
	tw.SetBorders(true)
	tw.SetRowLines(false)
	tw.SetHeaders("Name", "Element", "JSON Field", "Content", "Value")

	for _, control := range controls {
		name := control.Name()
		if name == "" {
			name = "-"
		}
		target := "no"
		if sel.Match(control.TagName(), control.Name()) {
			target = "yes"
			if terminal {
				target = targetColor(target)
			}
		}
		tw.AddRow(name, control.TagName(), target, contentKind(control.Value(), terminal), preview(control.Value()))
	}
	tw.Render()
}

// contentKind classifies a value the way the formatter would treat it.
func contentKind(value string, terminal bool) string {
	switch {
	case strings.TrimSpace(value) == "":
		return "empty"
	case jsonfmt.Pretty(value).OK:
		return "json"
	case terminal:
		return invalidColor("text")
	default:
		return "text"
	}
}

func preview(value string) string {
	line, _, multiline := strings.Cut(value, "\n")
	if utf8.RuneCountInString(line) > maxPreviewRunes {
		runes := []rune(line)
		return string(runes[:maxPreviewRunes]) + "..."
	}
	if multiline {
		return line + " ..."
	}
	return line
}
