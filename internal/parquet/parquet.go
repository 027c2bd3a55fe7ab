// Package parquet provides data structures and functions for exporting rendered
// chart frames to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/motionchart/schema"
)

// PointRecord is one drawn point of one rendered frame.
type PointRecord struct {
	// Seq is the emitting engine's frame sequence number
	Seq int64 `parquet:"seq,snappy"`

	// RenderedAt is when the frame was exported (stored as TIMESTAMP with nanosecond precision)
	RenderedAt time.Time `parquet:"rendered_at,snappy"`

	// TimeKey is the key of the active time slice
	TimeKey string `parquet:"time_key,snappy,dict"`

	// SliceIndex is the position of the active slice in the timeline
	SliceIndex int32 `parquet:"slice_index,snappy"`

	PointID  string `parquet:"point_id,snappy,dict"`
	Label    string `parquet:"label,snappy"`
	Category string `parquet:"category,snappy,dict"`

	XMetric    float64 `parquet:"x_metric,snappy"`
	YMetric    float64 `parquet:"y_metric,snappy"`
	SizeMetric float64 `parquet:"size_metric,snappy"`

	// X, Y and R are the projected circle in pixels
	X       float64 `parquet:"x,snappy"`
	Y       float64 `parquet:"y,snappy"`
	R       float64 `parquet:"r,snappy"`
	Opacity float64 `parquet:"opacity,snappy"`

	// Highlight is the highlighted category of the frame (nullable)
	Highlight *string `parquet:"highlight,optional,snappy"`

	Hovered bool `parquet:"hovered"`
}

// SliceRecord describes one time slice of an inspected dataset.
type SliceRecord struct {
	Source    string `parquet:"source,snappy,dict"`
	TimeKey   string `parquet:"time_key,snappy"`
	Points    int32  `parquet:"points,snappy"`
	Valid     int32  `parquet:"valid,snappy"`
	Malformed int32  `parquet:"malformed,snappy"`
}

// WritePointRecordsParquet writes a slice of PointRecord structs to a Parquet file.
func WritePointRecordsParquet(data []PointRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSliceRecordsParquet writes a slice of SliceRecord structs to a Parquet file.
func WriteSliceRecordsParquet(data []SliceRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet infers the schema from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertFrameReport converts the rows of a rendered frame to PointRecord for Parquet export.
func ConvertFrameReport(report schema.FrameReport, renderedAt time.Time) []PointRecord {
	var highlight *string
	for _, r := range report.Rows {
		if r.Highlighted {
			c := r.Category
			highlight = &c
			break
		}
	}

	result := make([]PointRecord, len(report.Rows))
	for i, r := range report.Rows {
		result[i] = PointRecord{
			Seq:        int64(report.Frame.Seq),
			RenderedAt: renderedAt,
			TimeKey:    r.TimeKey,
			SliceIndex: int32(report.Frame.Index),
			PointID:    r.ID,
			Label:      r.Label,
			Category:   r.Category,
			XMetric:    r.XMetric,
			YMetric:    r.YMetric,
			SizeMetric: r.SizeMetric,
			X:          r.X,
			Y:          r.Y,
			R:          r.R,
			Opacity:    r.Opacity,
			Highlight:  highlight,
			Hovered:    r.Hovered,
		}
	}
	return result
}

// ConvertDatasetSummary converts the per-slice counts of a summary to SliceRecord for Parquet export.
func ConvertDatasetSummary(summary schema.DatasetSummary) []SliceRecord {
	result := make([]SliceRecord, len(summary.Slices))
	for i, s := range summary.Slices {
		result[i] = SliceRecord{
			Source:    summary.Source,
			TimeKey:   s.Key,
			Points:    int32(s.Points),
			Valid:     int32(s.Valid),
			Malformed: int32(s.Malformed),
		}
	}
	return result
}
