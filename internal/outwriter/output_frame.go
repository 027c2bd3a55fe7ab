package outwriter

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/internal/parquet"
	"github.com/huangsam/motionchart/schema"
)

// ErrParquetNeedsFile is returned when parquet output would go to stdout.
var ErrParquetNeedsFile = errors.New("parquet output requires --output-file")

// WriteFrameReport outputs a rendered frame, dispatching based on the output format configured.
func WriteFrameReport(ctx context.Context, report schema.FrameReport, categories []string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, report)
		}, "Wrote YAML"); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFrameCSV(w, report)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.SVGOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := io.WriteString(w, FrameSVG(report.Frame))
			return err
		}, "Wrote SVG"); err != nil {
			return fmt.Errorf("error writing SVG output: %w", err)
		}
	case schema.PNGOut, schema.JPEGOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return RasterizeSVG(ctx, FrameSVG(report.Frame), report.Frame.Width, report.Frame.Height, cfg.Output, w)
		}, "Wrote "+string(cfg.Output)); err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
	case schema.ParquetOut:
		if err := writeFrameParquet([]schema.FrameReport{report}, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFrameTable(w, report, categories, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeFrameParquet flattens the rows of every report into one parquet file.
func writeFrameParquet(reports []schema.FrameReport, outputFile string) error {
	if outputFile == "" {
		return ErrParquetNeedsFile
	}
	now := time.Now().UTC()
	var records []parquet.PointRecord
	for _, r := range reports {
		records = append(records, parquet.ConvertFrameReport(r, now)...)
	}
	return parquet.WritePointRecordsParquet(records, outputFile)
}

// writeFrameTable generates and writes the human-readable table.
func writeFrameTable(w io.Writer, report schema.FrameReport, categories []string, cfg *contract.Config, duration time.Duration) error {
	frame := report.Frame
	if _, err := fmt.Fprintf(w, "%s\n", frameHeading(frame, cfg)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "ID", "Label", "Category", "X", "Y", "Size", "Radius", "State"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := GetMaxTableLabelWidth(cfg)
	highlight := hasHighlightedRow(report.Rows)
	var data [][]string
	for i, r := range report.Rows {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.ID,
			schema.TruncateLabel(r.Label, labelWidth),
			contract.GetCategoryLabel(r.Category, categories),
			schema.FormatCompact(r.XMetric),
			schema.FormatCompact(r.YMetric),
			schema.FormatCompact(r.SizeMetric),
			fmtPixel(r.R),
			rowState(r, highlight),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if frame.Tooltip != nil {
		tip := frame.Tooltip
		if _, err := fmt.Fprintf(w, "Tooltip: %s (%s) x=%s y=%s size=%s\n", tip.Label, tip.Category,
			schema.FormatCompact(tip.XMetric), schema.FormatCompact(tip.YMetric), schema.FormatCompact(tip.SizeMetric)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Showing %d points at %s (slice %d of %d, %d skipped)\n",
		len(report.Rows), frame.TimeKey, frame.Index+1, report.SliceCount, report.Skipped); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rendered in %v. Viewport: %gx%g\n", duration, frame.Width, frame.Height); err != nil {
		return err
	}
	return nil
}

// frameHeading returns the title line of a frame table.
func frameHeading(frame schema.Frame, cfg *contract.Config) string {
	title := frame.Title
	if title == "" {
		title = "Motion chart"
	}
	state := contract.GetPlaybackLabel(frame.Playback)
	if cfg.UseEmojis {
		return fmt.Sprintf("📈 %s @ %s [%s]", title, frame.TimeKey, state)
	}
	return fmt.Sprintf("%s @ %s [%s]", title, frame.TimeKey, state)
}

// rowState describes how a point is emphasised in the frame.
func rowState(r schema.PointRow, highlight bool) string {
	switch {
	case r.Hovered:
		return "hovered"
	case r.Highlighted:
		return "highlighted"
	case highlight:
		return "dimmed"
	default:
		return ""
	}
}

func hasHighlightedRow(rows []schema.PointRow) bool {
	for _, r := range rows {
		if r.Highlighted {
			return true
		}
	}
	return false
}

// writeFrameCSV writes one line per drawn point of each frame under a single header.
// Ranks restart with every frame.
func writeFrameCSV(w io.Writer, reports ...schema.FrameReport) error {
	header := []string{"time", "rank", "id", "label", "category", "x_metric", "y_metric", "size_metric", "x", "y", "r", "opacity", "highlighted", "hovered"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, report := range reports {
			if err := writeFrameCSVRows(cw, report.Rows); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeFrameCSVRows(cw *csv.Writer, rows []schema.PointRow) error {
	for i, r := range rows {
		rec := []string{
			r.TimeKey,
			strconv.Itoa(i + 1),
			r.ID,
			r.Label,
			r.Category,
			fmtRaw(r.XMetric),
			fmtRaw(r.YMetric),
			fmtRaw(r.SizeMetric),
			fmtRaw(r.X),
			fmtRaw(r.Y),
			fmtRaw(r.R),
			fmtRaw(r.Opacity),
			strconv.FormatBool(r.Highlighted),
			strconv.FormatBool(r.Hovered),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
