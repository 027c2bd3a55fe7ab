// Package outwriter has output and writer logic.
package outwriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	header io.Writer
}

// NewOutWriter creates a new instance of the output writer. Headers go to stderr.
func NewOutWriter() *OutWriter {
	return &OutWriter{header: os.Stderr}
}

// WriteFrame prints a rendered frame using the configured output format.
func (ow *OutWriter) WriteFrame(ctx context.Context, report schema.FrameReport, categories []string, cfg *contract.Config, duration time.Duration) error {
	return WriteFrameReport(ctx, report, categories, cfg, duration)
}

// WriteSummary prints a dataset summary using the configured output format.
func (ow *OutWriter) WriteSummary(summary schema.DatasetSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteDatasetSummary(summary, cfg, duration)
}

// NewPlayback starts recording a playback session.
func (ow *OutWriter) NewPlayback(categories []string, cfg *contract.Config) *PlaybackWriter {
	return NewPlaybackWriter(os.Stdout, categories, cfg)
}

// LogDatasetHeader prints a concise, 2-line header describing the loaded dataset.
func (ow *OutWriter) LogDatasetHeader(cfg *contract.Config, source string, ds *schema.Dataset) {
	keys := ds.Keys()
	first, last := "", ""
	if len(keys) > 0 {
		first, last = keys[0], keys[len(keys)-1]
	}
	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(ow.header, "📂 Dataset: %s (%d slices)\n", source, ds.Len())
		_, _ = fmt.Fprintf(ow.header, "📅 Timeline: %s → %s\n", first, last)
		return
	}
	_, _ = fmt.Fprintf(ow.header, "Dataset: %s (%d slices)\n", source, ds.Len())
	_, _ = fmt.Fprintf(ow.header, "Timeline: %s -> %s\n", first, last)
}

// LogPlaybackHeader prints the playback parameters.
func (ow *OutWriter) LogPlaybackHeader(cfg *contract.Config, interval time.Duration, frames int) {
	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(ow.header, "▶️  Playing %d frames every %v\n", frames, interval)
		return
	}
	_, _ = fmt.Fprintf(ow.header, "Playing %d frames every %v\n", frames, interval)
}
