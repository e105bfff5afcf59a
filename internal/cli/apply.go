package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-jsonfields/pkg/dom"
	"github.com/goliatone/go-jsonfields/pkg/formatter"
)

func newApplyCommand(root *Options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "apply [page.html]",
		Short: "Format every target field of an HTML page",
		Long: `apply loads an HTML page, installs the formatter, fires the page-ready
event and then a change event on every control, as if each field had been
edited and left. The resulting page is written out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := root.selector()
			if err != nil {
				return err
			}
			log := root.logger(cmd.ErrOrStderr())

			doc, err := loadPage(cmd.InOrStdin(), pageName(args))
			if err != nil {
				return err
			}

			fmtr := formatter.New(formatter.WithSelector(sel))
			fmtr.Install(doc)
			doc.Load()

			targets, formatted := 0, 0
			for _, control := range doc.Controls() {
				before := control.Value()
				control.DispatchEvent(dom.EventChange)
				if !fmtr.Matches(control) {
					continue
				}
				targets++
				if control.Value() != before {
					formatted++
				}
				log.Debug("field", "name", control.Name(), "changed", control.Value() != before)
			}
			log.Info("applied", "targets", targets, "reformatted", formatted)

			var buf bytes.Buffer
			if err := doc.Render(&buf); err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
