package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-jsonfields/internal/caradmin"
	"github.com/goliatone/go-jsonfields/pkg/render"
	"github.com/goliatone/go-jsonfields/pkg/renderers/tui"
	"github.com/goliatone/go-jsonfields/pkg/renderers/vanilla"
)

func newRenderCommand(root *Options) *cobra.Command {
	var (
		rendererName string
		runtimeSrc   string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the car admin form",
		Long: `render prints the car admin change form. The vanilla renderer produces an
HTML page carrying the JSON field runtime; the tui renderer asks for each
value in the terminal and prints the answers as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := root.selector()
			if err != nil {
				return err
			}

			registry, err := newRendererRegistry(root, runtimeSrc)
			if err != nil {
				return err
			}
			renderer, err := registry.Resolve(rendererName)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}

			form := caradmin.Form(caradmin.SampleCar(), caradmin.SampleOrganizations())
			out, err := renderer.Render(cmd.Context(), form, render.RenderOptions{Selector: &sel})
			if err != nil {
				return fmt.Errorf("rendering form: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&rendererName, "renderer", "vanilla", "Renderer to use: vanilla, tui")
	flags.StringVar(&runtimeSrc, "runtime-src", "", "Reference the runtime by URL instead of inlining it")
	flags.StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func newRendererRegistry(root *Options, runtimeSrc string) (*render.Registry, error) {
	html, err := vanilla.New(vanilla.WithRuntimeScriptSrc(runtimeSrc))
	if err != nil {
		return nil, err
	}
	terminal, err := tui.New(tui.WithPromptDriver(root.prompts))
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(html, terminal)
}
