package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-jsonfields/pkg/renderers/vanilla/components"
)

func newScriptCommand(root *Options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Print the browser runtime for the configured selector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := root.selector()
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, []byte(components.RuntimeScript(sel)+"\n"))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
