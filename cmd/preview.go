package cmd

import (
	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/internal/preview"
	"github.com/spf13/cobra"
)

// previewCmd opens the interactive terminal chart.
var previewCmd = &cobra.Command{
	Use:   "preview [dataset]",
	Short: "Explore the motion chart interactively in the terminal.",
	Long: `Open a full-screen chart driven by the keyboard and mouse.

Keys: space plays or pauses, left and right scrub, r resets, c cycles the
highlighted category and q quits. Hover a point for its tooltip and click a
legend entry to highlight its category.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := preview.Execute(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot preview chart", err)
		}
	},
}
