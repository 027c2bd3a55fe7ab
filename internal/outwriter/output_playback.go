package outwriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
)

// PlaybackWriter records the frames of a headless playback session.
// Tables and images are written as frames arrive; parquet rows and the
// JSON/YAML/CSV documents are flushed by Close.
type PlaybackWriter struct {
	mu         sync.Mutex
	cfg        *contract.Config
	categories []string
	out        io.Writer
	reports    []schema.FrameReport
	written    int
	lastSeq    uint64
}

// NewPlaybackWriter writes tables to out.
func NewPlaybackWriter(out io.Writer, categories []string, cfg *contract.Config) *PlaybackWriter {
	return &PlaybackWriter{cfg: cfg, categories: categories, out: out}
}

// Write records one frame. Frames older than the last written one are dropped.
func (pw *PlaybackWriter) Write(ctx context.Context, report schema.FrameReport) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if report.Frame.Seq != 0 && report.Frame.Seq <= pw.lastSeq {
		return nil
	}
	pw.lastSeq = report.Frame.Seq
	pw.written++

	if pw.cfg.FramesDir != "" {
		if err := pw.writeImage(ctx, report); err != nil {
			return err
		}
	}

	switch pw.cfg.Output {
	case schema.TextOut, "":
		if pw.cfg.FramesDir != "" {
			return nil
		}
		return writeFrameTable(pw.out, report, pw.categories, pw.cfg, 0)
	default:
		pw.reports = append(pw.reports, report)
		return nil
	}
}

// writeImage stores the frame as frame-NNNN.svg (or png/jpeg) in the frames directory.
func (pw *PlaybackWriter) writeImage(ctx context.Context, report schema.FrameReport) error {
	ext := "svg"
	if pw.cfg.Output == schema.PNGOut || pw.cfg.Output == schema.JPEGOut {
		ext = string(pw.cfg.Output)
	}
	path := filepath.Join(pw.cfg.FramesDir, fmt.Sprintf("frame-%04d-%s.%s", pw.written, sanitize(report.Frame.TimeKey), ext))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	defer func() { _ = f.Close() }()

	svg := FrameSVG(report.Frame)
	if ext == "svg" {
		_, err = io.WriteString(f, svg)
		return err
	}
	return RasterizeSVG(ctx, svg, report.Frame.Width, report.Frame.Height, pw.cfg.Output, f)
}

// Written returns how many frames were recorded.
func (pw *PlaybackWriter) Written() int {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return pw.written
}

// Close writes the buffered frames for document formats and prints a summary line.
func (pw *PlaybackWriter) Close(duration time.Duration) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	var err error
	switch pw.cfg.Output {
	case schema.JSONOut:
		err = writeWithFile(pw.cfg.OutputFile, func(w io.Writer) error { return writeJSON(w, pw.reports) }, "Wrote JSON")
	case schema.YAMLOut:
		err = writeWithFile(pw.cfg.OutputFile, func(w io.Writer) error { return writeYAML(w, pw.reports) }, "Wrote YAML")
	case schema.CSVOut:
		err = writeWithFile(pw.cfg.OutputFile, func(w io.Writer) error { return writeFrameCSV(w, pw.reports...) }, "Wrote CSV")
	case schema.ParquetOut:
		err = writeFrameParquet(pw.reports, pw.cfg.OutputFile)
	}
	if err != nil {
		return err
	}

	if pw.cfg.FramesDir != "" {
		fmt.Fprintf(os.Stderr, "💾 Wrote %d frames to %s\n", pw.written, pw.cfg.FramesDir)
	}
	fmt.Fprintf(os.Stderr, "Played %d frames in %v\n", pw.written, duration)
	return nil
}

// sanitize keeps time keys safe for file names.
func sanitize(key string) string {
	out := []rune(key)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
