package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/laptopprice/internal/app"
	"github.com/doeshing/laptopprice/internal/domain"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var errPredictionFailed = errors.New("prediction failed")

func newEstimateCommand(container *app.Container) *cobra.Command {
	sel := domain.DefaultSelection()
	var output string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the price of one configuration",
		Long: "Estimate the price of one configuration. Categorical flags accept a label " +
			"(case and spacing are ignored) or its numeric code; see 'laptopprice options'.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output = strings.ToLower(output)
			if output != outputText && output != outputJSON {
				return fmt.Errorf("unsupported --output %q (use text or json)", output)
			}
			canonical, err := sel.Canonicalize()
			if err != nil {
				return err
			}

			pipeline, err := openPipeline(cmd, container)
			if err != nil {
				return err
			}
			defer pipeline.Close()

			res := pipeline.Service.Run(cmd.Context(), pipeline.Log, canonical)
			out := cmd.OutOrStdout()
			if output == outputJSON {
				if err := RenderResultJSON(out, res); err != nil {
					return err
				}
			} else {
				RenderResult(out, res)
			}
			if res.Err != nil {
				return errPredictionFailed
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&sel.Core, "core", sel.Core, "Processor core layout")
	flags.StringVar(&sel.RAM, "ram", sel.RAM, "Memory size and type")
	flags.StringVar(&sel.SSD, "ssd", sel.SSD, "Storage capacity")
	flags.StringVar(&sel.Display, "display", sel.Display, "Display type")
	flags.StringVar(&sel.Graphics, "graphics", sel.Graphics, "Graphics vendor")
	flags.StringVar(&sel.OS, "os", sel.OS, "Operating system")
	flags.IntVar(&sel.Generation, "generation", sel.Generation, fmt.Sprintf("Processor generation (%d-%d)", domain.MinGeneration, domain.MaxGeneration))
	flags.IntVar(&sel.Warranty, "warranty", sel.Warranty, fmt.Sprintf("Warranty in years (%d-%d)", domain.MinWarranty, domain.MaxWarranty))
	flags.Float64Var(&sel.Rating, "rating", sel.Rating, fmt.Sprintf("User rating (%.1f-%.1f)", domain.MinRating, domain.MaxRating))
	flags.StringVarP(&output, "output", "o", outputText, "Output format (text|json)")
	return cmd
}
