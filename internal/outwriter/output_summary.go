package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/internal/parquet"
	"github.com/huangsam/motionchart/schema"
)

// WriteDatasetSummary outputs a dataset summary, dispatching based on the output format configured.
func WriteDatasetSummary(summary schema.DatasetSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, summary)
		}, "Wrote YAML"); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, summary)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return ErrParquetNeedsFile
		}
		if err := parquet.WriteSliceRecordsParquet(parquet.ConvertDatasetSummary(summary), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.SVGOut, schema.PNGOut, schema.JPEGOut:
		return fmt.Errorf("output %q is not supported for dataset summaries", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, summary, duration)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryTable prints the overall extremes followed by one row per slice.
func writeSummaryTable(w io.Writer, s schema.DatasetSummary, duration time.Duration) error {
	overview := tablewriter.NewWriter(w)
	overview.Header([]string{"Metric", "Min", "Max"})
	overview.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := overview.Bulk([][]string{
		{"x", schema.FormatCompact(s.XMin), schema.FormatCompact(s.XMax)},
		{"y", schema.FormatCompact(s.YMin), schema.FormatCompact(s.YMax)},
		{"size", schema.FormatCompact(s.SizeMin), schema.FormatCompact(s.SizeMax)},
	}); err != nil {
		return err
	}
	if err := overview.Render(); err != nil {
		return err
	}

	slices := tablewriter.NewWriter(w)
	slices.Header([]string{"Time", "Points", "Valid", "Malformed"})
	slices.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, row := range s.Slices {
		malformed := strconv.Itoa(row.Malformed)
		if row.Malformed > 0 {
			malformed = contract.ErrorColor.Sprint(malformed)
		}
		data = append(data, []string{row.Key, strconv.Itoa(row.Points), strconv.Itoa(row.Valid), malformed})
	}
	if err := slices.Bulk(data); err != nil {
		return err
	}
	if err := slices.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%d slices (%s to %s), %d points for %d entities, %d malformed\n",
		s.SliceCount, s.FirstKey, s.LastKey, s.Points, s.Entities, s.Malformed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Categories: %s\n", strings.Join(s.Categories, ", ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Inspected %s in %v\n", s.Source, duration); err != nil {
		return err
	}
	return nil
}

// writeSummaryCSV writes the per-slice counts.
func writeSummaryCSV(w io.Writer, s schema.DatasetSummary) error {
	header := []string{"source", "time", "points", "valid", "malformed"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range s.Slices {
			rec := []string{s.Source, row.Key, strconv.Itoa(row.Points), strconv.Itoa(row.Valid), strconv.Itoa(row.Malformed)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
