// Package cmd defines the command-line interface for motionchart.
package cmd

import (
	"github.com/huangsam/motionchart/core"
	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("base-url", "", "Fetch data/motion-chart.json relative to this http(s) URL")
	rootCmd.PersistentFlags().String("base-dir", ".", "Read data/motion-chart.json relative to this directory")
	rootCmd.PersistentFlags().String("fetch-timeout", contract.DefaultFetchTimeout.String(), "Timeout for fetching a remote dataset")
	rootCmd.PersistentFlags().String("title", "", "Chart title")
	rootCmd.PersistentFlags().String("subtitle", "", "Chart subtitle")
	rootCmd.PersistentFlags().String("x-label", "", "X axis title")
	rootCmd.PersistentFlags().String("y-label", "", "Y axis title")
	rootCmd.PersistentFlags().String("interval", core.DefaultTickInterval.String(), "Autoplay step duration")
	rootCmd.PersistentFlags().Float64("label-threshold", core.DefaultLabelThreshold, "Label points whose size metric exceeds this value")
	rootCmd.PersistentFlags().Float64("dim-opacity", core.DefaultDimOpacity, "Opacity of points outside the highlighted category")
	rootCmd.PersistentFlags().Float64("viewport-width", contract.DefaultViewportWidth, "Viewport width in pixels")
	rootCmd.PersistentFlags().Float64("viewport-height", contract.DefaultViewportHeight, "Viewport height in pixels")
	rootCmd.PersistentFlags().Float64("x-floor", core.DefaultXFloor, "Lowest x value kept on the log axis")
	rootCmd.PersistentFlags().Float64("y-padding", core.DefaultYPadding, "Fraction of the y range added above and below the data")
	rootCmd.PersistentFlags().Float64("max-radius", core.DefaultMaxRadius, "Radius in pixels of the largest point")
	rootCmd.PersistentFlags().String("resize-debounce", "", "Coalesce bursts of resizes within this window (empty = redraw on every change)")
	rootCmd.PersistentFlags().String("legend-breakpoints", "", "Comma-separated size legend values (fixed legend mode)")
	rootCmd.PersistentFlags().String("legend-mode", string(schema.FixedLegend), "Size legend mode: fixed or derived")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or yaml or csv or svg or png or jpeg or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
	// The legend mode lives in the legend section of the config file
	if err := viper.BindPFlag("legend.mode", rootCmd.PersistentFlags().Lookup("legend-mode")); err != nil {
		contract.LogFatal("Error binding legend flag", err)
	}

	// Flags of renderCmd, playCmd and previewCmd are bound in sharedSetupWrapper
	renderCmd.Flags().String("time", "", "Time key of the slice to render (default: the first)")
	renderCmd.Flags().String("highlight", "", "Category to highlight")
	renderCmd.Flags().String("hover", "", "Point id to hover, adding its tooltip")

	playCmd.Flags().String("time", "", "Time key to start playing from (default: the first)")
	playCmd.Flags().String("highlight", "", "Category to highlight")
	playCmd.Flags().String("frames-dir", "", "Write every frame as an image into this directory")
	playCmd.Flags().Int("max-frames", contract.DefaultMaxFrames, "Stop after this many frames (0 = whole timeline)")

	previewCmd.Flags().String("time", "", "Time key to open at (default: the first)")
	previewCmd.Flags().String("highlight", "", "Category to highlight")
}
