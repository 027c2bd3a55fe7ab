package cmd

import (
	"github.com/huangsam/motionchart/core"
	"github.com/huangsam/motionchart/internal/contract"
	"github.com/spf13/cobra"
)

// inspectCmd summarizes a dataset without drawing it.
var inspectCmd = &cobra.Command{
	Use:   "inspect [dataset]",
	Short: "Summarize the time slices of a dataset.",
	Long: `Load the dataset and report its slices in timeline order, the number of
entities and malformed records, the categories and the metric ranges that
drive the chart scales.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInspect(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot inspect dataset", err)
		}
	},
}
