package cmd

import (
	"github.com/huangsam/motionchart/core"
	"github.com/huangsam/motionchart/internal/contract"
	"github.com/spf13/cobra"
)

// renderCmd draws a single frame of the chart.
var renderCmd = &cobra.Command{
	Use:   "render [dataset]",
	Short: "Render one frame of the motion chart.",
	Long: `Load the dataset and draw the chart at a single time slice.

The dataset is a JSON object mapping time keys to lists of entities. It is
read from the argument when given, else from data/motion-chart.json below
--base-dir or --base-url.

Examples:
  # Summarize the first slice as a table
  motionchart render

  # Draw 2000 as an SVG, highlighting one category
  motionchart render --time 2000 --highlight europe --output svg --output-file world.svg

  # Add the tooltip of one point to the frame
  motionchart render --time 2000 --hover NOR --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRender(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot render chart", err)
		}
	},
}
