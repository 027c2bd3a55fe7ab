// Package core has the chart engine: scales, rendering, playback and the
// executors behind each command.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/internal/dataset"
	"github.com/huangsam/motionchart/internal/outwriter"
	"github.com/huangsam/motionchart/internal/termsize"
	"github.com/huangsam/motionchart/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// LoadEngine builds an engine from the config and loads its dataset.
// The engine is closed again when the load fails.
func LoadEngine(ctx context.Context, cfg *contract.Config, sched Scheduler) (*Engine, error) {
	opts := OptionsFromConfig(cfg)
	opts.Scheduler = sched
	e, err := New(opts)
	if err != nil {
		return nil, err
	}
	provider, err := dataset.NewProvider(cfg)
	if err != nil {
		e.Close()
		return nil, err
	}
	if err := e.Load(ctx, provider); err != nil {
		e.Close()
		return nil, err
	}
	if !shouldSuppressHeader(ctx) {
		outwriter.NewOutWriter().LogDatasetHeader(cfg, provider.Source(), e.Dataset())
	}
	return e, nil
}

// RenderReport loads the dataset, applies the configured time key, highlight
// and hover, and returns the resulting frame report with the legend order.
func RenderReport(ctx context.Context, cfg *contract.Config) (schema.FrameReport, []string, error) {
	e, err := LoadEngine(ctx, cfg, NewManualScheduler())
	if err != nil {
		return schema.FrameReport{}, nil, err
	}
	defer e.Close()
	if err := ApplySelection(e, cfg); err != nil {
		return schema.FrameReport{}, nil, err
	}
	return e.Report(), e.Categories(), nil
}

// PointTrail follows one point through the timeline and returns its row for
// every slice it is drawn in. Scales are dataset-wide, so the pixel
// positions of the rows share one coordinate space.
func PointTrail(ctx context.Context, cfg *contract.Config, id string) ([]schema.PointRow, error) {
	e, err := LoadEngine(ctx, cfg, NewManualScheduler())
	if err != nil {
		return nil, err
	}
	defer e.Close()

	var trail []schema.PointRow
	for i := range e.Dataset().Len() {
		e.Scrub(i)
		for _, row := range e.Report().Rows {
			if row.ID == id {
				trail = append(trail, row)
				break
			}
		}
	}
	if len(trail) == 0 {
		return nil, fmt.Errorf("point %q is not drawn in any slice", id)
	}
	return trail, nil
}

// ExecuteRender renders a single frame and prints it in the configured format.
// It serves as the main entry point for the 'render' command.
func ExecuteRender(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, categories, err := RenderReport(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteFrame(ctx, report, categories, cfg, duration)
}

// ExecuteInspect loads the dataset and prints its summary.
// It serves as the main entry point for the 'inspect' command.
func ExecuteInspect(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	summary, err := InspectDataset(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteSummary(summary, cfg, duration)
}

// InspectDataset loads the configured dataset and summarizes it.
func InspectDataset(ctx context.Context, cfg *contract.Config) (schema.DatasetSummary, error) {
	provider, err := dataset.NewProvider(cfg)
	if err != nil {
		return schema.DatasetSummary{}, err
	}
	ds, err := provider.Load(ctx)
	if err != nil {
		return schema.DatasetSummary{}, fmt.Errorf("load %s: %w", provider.Source(), err)
	}
	if ds.Len() == 0 {
		return schema.DatasetSummary{}, contract.ErrNoSlices
	}
	return Summarize(ds, provider.Source()), nil
}

// ExecutePlay runs autoplay on the runtime timer and records every slice it
// visits until playback pauses, the frame limit is hit or ctx is done.
// It serves as the main entry point for the 'play' command.
func ExecutePlay(ctx context.Context, cfg *contract.Config) error {
	return executePlay(ctx, cfg, TimerScheduler{}, termsize.NewWatcher())
}

func executePlay(ctx context.Context, cfg *contract.Config, sched Scheduler, watcher *termsize.Watcher) error {
	start := time.Now()
	e, err := LoadEngine(ctx, cfg, sched)
	if err != nil {
		return err
	}
	defer e.Close()
	if err := ApplySelection(e, cfg); err != nil {
		return err
	}

	ds := e.Dataset()
	total := playFrameCount(e.State().ActiveIndex, ds.Len(), cfg.MaxFrames)
	ow := outwriter.NewOutWriter()
	if !shouldSuppressHeader(ctx) {
		ow.LogPlaybackHeader(cfg, e.TickInterval(), total)
	}
	pw := ow.NewPlayback(e.Categories(), cfg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan schema.Frame, ds.Len()+1)
	unsubscribe := e.Subscribe(func(f schema.Frame) {
		select {
		case frames <- f:
		case <-ctx.Done():
		}
	})
	defer unsubscribe()

	e.Play()
	if watcher != nil && cfg.FramesDir == "" {
		followTerminal(ctx, e, watcher, cfg.ResizeDebounce)
	}
	lastIndex := -1
	for pw.Written() < total {
		var f schema.Frame
		select {
		case <-ctx.Done():
			_ = pw.Close(time.Since(start))
			return ctx.Err()
		case f = <-frames:
		}
		if f.Index == lastIndex {
			continue // Resize or hover redraw of a recorded slice
		}
		lastIndex = f.Index
		slice, _ := ds.Slice(f.Index)
		report := BuildReport(f, slice)
		report.SliceCount = ds.Len()
		if err := pw.Write(ctx, report); err != nil {
			return err
		}
		if f.Playback != schema.Playing {
			break
		}
	}
	cancel()
	return pw.Close(time.Since(start))
}

// playFrameCount is the number of slices autoplay visits from index.
// Playing from the last slice rewinds and plays the whole timeline.
func playFrameCount(index, length, limit int) int {
	n := length - index
	if index >= length-1 {
		n = length
	}
	if limit > 0 && limit < n {
		n = limit
	}
	return n
}

// followTerminal keeps the viewport in step with the terminal while ctx lives.
func followTerminal(ctx context.Context, e *Engine, watcher *termsize.Watcher, debounce time.Duration) {
	if _, ok := watcher.Current(); !ok {
		return
	}
	sizes := make(chan Size)
	go func() {
		defer close(sizes)
		for s := range watcher.Watch(ctx) {
			w, h := s.Pixels()
			select {
			case sizes <- Size{Width: w, Height: h}:
			case <-ctx.Done():
				return
			}
		}
	}()
	go NewResizeAdapter(e, nil, debounce).Run(ctx, sizes)
}

// ApplySelection moves the engine to the configured slice, then applies the
// highlight and hover on top of it.
func ApplySelection(e *Engine, cfg *contract.Config) error {
	if cfg.TimeKey != "" {
		if err := e.ScrubToKey(cfg.TimeKey); err != nil {
			return err
		}
	}
	if cfg.Highlight != "" {
		if err := e.SetHighlight(cfg.Highlight); err != nil {
			return err
		}
	}
	if cfg.Hover != "" {
		if err := e.HoverPoint(cfg.Hover); err != nil {
			return err
		}
	}
	return nil
}
