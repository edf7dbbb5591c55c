package cmd

import (
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/analysis"
	"github.com/KaramelBytes/chartloom-cli/internal/chart"
	"github.com/spf13/cobra"
)

var (
	bldInput  inputFlags
	bldKind   string
	bldX      string
	bldY      []string
	bldColor  string
	bldFormat string
	bldOutput string
)

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Build a chart spec from selected columns",
	Long: `Build validates the selected axes against the cleaned dataset and prints the chart spec.
Without --kind the recommended chart type is used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if bldX == "" {
			return fmt.Errorf("--x is required")
		}
		req := chart.Request{X: bldX, Y: bldY, Color: bldColor}
		if bldKind != "" {
			k, err := chart.ParseKind(bldKind)
			if err != nil {
				return err
			}
			req.Kind = k
		}
		format, err := outputFormat(cmd, bldFormat)
		if err != nil {
			return err
		}
		s, err := bldInput.open(cmd, args[0])
		if err != nil {
			return err
		}
		spec, err := s.Build(req)
		if err != nil {
			return err
		}
		out, err := render(spec, format, func() string { return analysis.SpecMarkdown(spec) })
		if err != nil {
			return err
		}
		return emit(cmd, out, bldOutput, "chart spec")
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	bldInput.register(buildCmd.Flags())
	buildCmd.Flags().StringVarP(&bldKind, "kind", "k", "", "chart kind: Bar, Histogram, Scatter, Line, Pie, Area, Bubble, Waterfall (recommended if omitted)")
	buildCmd.Flags().StringVar(&bldX, "x", "", "independent axis column")
	buildCmd.Flags().StringSliceVar(&bldY, "y", nil, "dependent axis column(s), comma-separated")
	buildCmd.Flags().StringVar(&bldColor, "color", "", "categorical column used for color")
	buildCmd.Flags().StringVarP(&bldFormat, "format", "f", "markdown", "output format: markdown, json or yaml")
	buildCmd.Flags().StringVarP(&bldOutput, "output", "o", "", "optional path to write the chart spec")
}
