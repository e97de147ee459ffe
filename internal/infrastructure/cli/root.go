package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/laptopprice/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	return newRootCommand(container), nil
}

func newRootCommand(container *app.Container) *cobra.Command {
	root := &cobra.Command{
		Use:   "laptopprice",
		Short: "Estimate laptop prices from a hardware configuration",
		Long: "laptopprice encodes a laptop configuration, runs it through a pre-trained " +
			"regression model and prints the estimated price.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newEstimateCommand(container))
	root.AddCommand(newSessionCommand(container))
	root.AddCommand(newOptionsCommand())
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newVersionCommand())
	return root
}

// openPipeline loads both artifacts behind a spinner on stderr.
func openPipeline(cmd *cobra.Command, container *app.Container) (*app.Pipeline, error) {
	spinner := NewSpinner(cmd.ErrOrStderr(), "Loading model artifacts...")
	spinner.Start()
	defer spinner.Stop()
	return container.OpenPipeline(cmd.Context())
}
