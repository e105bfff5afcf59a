package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-jsonfields/pkg/jsonfmt"
)

type formatOptions struct {
	indent string
	tab    bool
	strict bool
	output string
}

func newFormatCommand(_ *Options) *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format JSON text the way a target field does",
		Long: `format reads JSON text from a file or stdin and prints the indented
rendering. Text that does not parse is printed unchanged and the command
still succeeds, unless --strict is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(cmd.InOrStdin(), name)
			if err != nil {
				return err
			}

			indent := opts.indent
			if opts.tab {
				indent = "\t"
			}
			result := jsonfmt.PrettyIndent(string(data), indent)
			if !result.OK && opts.strict {
				return &ExitError{Code: 1, Message: "input is not valid JSON"}
			}

			out := result.Value
			if result.OK && !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, []byte(out))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.indent, "indent", jsonfmt.Indent, "Indentation for each nesting level")
	flags.BoolVar(&opts.tab, "tab", false, "Indent with a tab instead of --indent")
	flags.BoolVar(&opts.strict, "strict", false, "Exit 1 when the input is not valid JSON")
	flags.StringVarP(&opts.output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
