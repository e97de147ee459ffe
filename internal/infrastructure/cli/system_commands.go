package cli

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/laptopprice/internal/app"
	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/version"
)

// ============================================================================
// Version Command
// ============================================================================

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return displayVersionInformation(cmd.OutOrStdout())
		},
	}
}

func displayVersionInformation(out io.Writer) error {
	fmt.Fprintf(out, "laptopprice version %s\n", version.Version)

	if version.Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", version.Commit)
	}

	if version.BuildDate != "" {
		fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
	}

	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(out, "Feature columns: %d\n", domain.FeatureCount)

	return nil
}

// ============================================================================
// Options Command
// ============================================================================

func newOptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List accepted labels and codes for every category",
		RunE: func(cmd *cobra.Command, args []string) error {
			RenderOptions(cmd.OutOrStdout())
			return nil
		},
	}
}

// ============================================================================
// Doctor Command
// ============================================================================

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and model artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return errors.New("doctor service unavailable")
			}
			report, err := container.DoctorService.Run(cmd.Context())
			RenderDoctorReport(cmd.OutOrStdout(), report)
			if err != nil {
				return err
			}
			if !report.Ready() {
				return errors.New("diagnostics found errors; estimates cannot be served")
			}
			return nil
		},
	}
}
