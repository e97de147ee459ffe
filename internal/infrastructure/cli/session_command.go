package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/laptopprice/internal/app"
	"github.com/doeshing/laptopprice/internal/domain"
)

const sessionHelp = "Commands: estimate (or Enter), history, summary, export csv|json, quit"

func newSessionCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Interactive estimate form with a per-session history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := openPipeline(cmd, container)
			if err != nil {
				return err
			}
			defer pipeline.Close()

			out := cmd.OutOrStdout()
			return runSession(cmd.Context(), NewPrompter(cmd.InOrStdin(), out), out, pipeline)
		},
	}
}

// runSession reads commands until quit or end of input. Prediction failures
// are shown and the loop continues.
func runSession(ctx context.Context, p *Prompter, out io.Writer, pipeline *app.Pipeline) error {
	fmt.Fprintln(out, "Laptop price estimator. Press Enter on any field to keep its preselected value.")
	fmt.Fprintln(out, sessionHelp)

	last := domain.DefaultSelection()
	for {
		line, err := p.Line("\n> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(strings.ToLower(line))
		verb := "estimate"
		if len(fields) > 0 {
			verb = fields[0]
		}

		switch verb {
		case "estimate", "e":
			sel, err := p.Selection(last)
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			if err != nil {
				return err
			}
			canonical, err := sel.Canonicalize()
			if err != nil {
				fmt.Fprintf(out, "Invalid selection: %v\n", err)
				continue
			}
			fmt.Fprintln(out)
			RenderResult(out, pipeline.Service.Run(ctx, pipeline.Log, canonical))
			last = canonical
		case "history", "h":
			entries, err := pipeline.Log.List()
			if err != nil {
				fmt.Fprintf(out, "History unavailable: %v\n", err)
				continue
			}
			RenderHistory(out, entries)
		case "summary", "s":
			entries, err := pipeline.Log.List()
			if err != nil {
				fmt.Fprintf(out, "History unavailable: %v\n", err)
				continue
			}
			RenderSummary(out, entries)
		case "export":
			format := "csv"
			if len(fields) > 1 {
				format = fields[1]
			}
			entries, err := pipeline.Log.List()
			if err == nil {
				err = ExportEntries(out, entries, format)
			}
			if err != nil {
				fmt.Fprintf(out, "Export failed: %v\n", err)
			}
		case "help", "?":
			fmt.Fprintln(out, sessionHelp)
		case "quit", "exit", "q":
			return nil
		default:
			fmt.Fprintf(out, "Unknown command %q. %s\n", line, sessionHelp)
		}
	}
}
