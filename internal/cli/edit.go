package cli

import (
	"bytes"
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-jsonfields/pkg/renderers/tui"
)

func newEditCommand(root *Options) *cobra.Command {
	var (
		output string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "edit <page.html>",
		Short: "Edit the JSON fields of a page in the terminal",
		Long: `edit prompts for every JSON field of the page in document order. Each
answer is committed on its field, so valid JSON comes back indented and
anything else is kept as typed. The edited page is written out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := root.selector()
			if err != nil {
				return err
			}
			log := root.logger(cmd.ErrOrStderr())

			doc, err := loadPage(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			editor := tui.NewEditor(
				tui.WithPromptDriver(root.prompts),
				tui.WithSelector(sel),
				tui.WithConfirm(!yes),
			)
			changes, err := editor.Edit(cmd.Context(), doc)
			switch {
			case errors.Is(err, tui.ErrAborted):
				return &ExitError{Code: 130, Message: "aborted"}
			case errors.Is(err, tui.ErrDiscarded):
				log.Info("changes discarded")
				return nil
			case err != nil:
				return err
			}

			for _, change := range changes {
				log.Debug("field", "name", change.Name, "modified", change.Modified(), "formatted", change.Formatted())
			}

			var buf bytes.Buffer
			if err := doc.Render(&buf); err != nil {
				return err
			}
			if output == "" {
				output = args[0]
			}
			if err := writeOutput(cmd.OutOrStdout(), output, buf.Bytes()); err != nil {
				return err
			}
			log.Info("edited", "fields", len(changes), "output", output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "Write to file (\"-\" for stdout) instead of the input page")
	flags.BoolVarP(&yes, "yes", "y", false, "Keep changes without asking")
	return cmd
}
