package cmd

import (
	"os"
	"os/signal"

	"github.com/huangsam/motionchart/core"
	"github.com/huangsam/motionchart/internal/contract"
	"github.com/spf13/cobra"
)

// playCmd animates the chart through its timeline.
var playCmd = &cobra.Command{
	Use:   "play [dataset]",
	Short: "Play the motion chart through time.",
	Long: `Start autoplay and write one frame per time slice until the last slice
is reached, --max-frames is hit or the command is interrupted.

Text output redraws the summary table in place and follows terminal resizes.
With --frames-dir every frame is also written as a numbered image.

Examples:
  # Watch the timeline in the terminal
  motionchart play --interval 500ms

  # Export every frame as PNG for a video encoder
  motionchart play --output png --frames-dir frames/

  # Stream frame reports as JSON, starting from 2000
  motionchart play --time 2000 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt)
		defer stop()
		if err := core.ExecutePlay(ctx, cfg); err != nil && ctx.Err() == nil {
			contract.LogFatal("Cannot play chart", err)
		}
	},
}
