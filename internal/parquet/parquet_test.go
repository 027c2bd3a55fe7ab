package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/motionchart/schema"
)

func sampleReport() schema.FrameReport {
	return schema.FrameReport{
		Frame: schema.Frame{Seq: 7, TimeKey: "2000", Index: 1},
		Rows: []schema.PointRow{
			{TimeKey: "2000", ID: "CHN", Label: "China", Category: "asia", XMetric: 3000, YMetric: 71, SizeMetric: 1.26e9, X: 400, Y: 200, R: 38, Opacity: 1, Highlighted: true},
			{TimeKey: "2000", ID: "FRA", Label: "France", Category: "europe", XMetric: 28000, YMetric: 79, SizeMetric: 6e7, X: 800, Y: 120, R: 8, Opacity: 0.15, Hovered: true},
		},
		SliceCount: 3,
	}
}

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestPointRecordStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(PointRecord))
	for _, col := range []string{"seq", "rendered_at", "time_key", "slice_index", "point_id", "label", "category", "x_metric", "y_metric", "size_metric", "x", "y", "r", "opacity", "highlight", "hovered"} {
		_, ok := s.Lookup(col)
		assert.True(t, ok, "column %s should exist", col)
	}
}

func TestConvertFrameReport(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	records := ConvertFrameReport(sampleReport(), at)
	require.Len(t, records, 2)

	assert.Equal(t, int64(7), records[0].Seq)
	assert.Equal(t, int32(1), records[0].SliceIndex)
	assert.Equal(t, at, records[1].RenderedAt)
	require.NotNil(t, records[1].Highlight)
	assert.Equal(t, "asia", *records[1].Highlight)
	assert.True(t, records[1].Hovered)

	plain := sampleReport()
	plain.Rows[0].Highlighted = false
	assert.Nil(t, ConvertFrameReport(plain, at)[0].Highlight)
}

func TestWritePointRecordsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.parquet")
	data := ConvertFrameReport(sampleReport(), time.Now().UTC())
	require.NoError(t, WritePointRecordsParquet(data, path))

	got := readAll[PointRecord](t, path)
	require.Len(t, got, len(data))
	for i := range data {
		assert.Equal(t, data[i].PointID, got[i].PointID)
		assert.Equal(t, data[i].Category, got[i].Category)
		assert.InDelta(t, data[i].SizeMetric, got[i].SizeMetric, 1)
		assert.InDelta(t, data[i].R, got[i].R, 1e-9)
		assert.Equal(t, data[i].Hovered, got[i].Hovered)
		require.NotNil(t, got[i].Highlight)
		assert.Equal(t, "asia", *got[i].Highlight)
	}
}

func TestWriteSliceRecordsParquet(t *testing.T) {
	summary := schema.DatasetSummary{
		Source: "data.json",
		Slices: []schema.SliceSummary{
			{Key: "1990", Points: 3, Valid: 3},
			{Key: "2000", Points: 4, Valid: 3, Malformed: 1},
		},
	}
	path := filepath.Join(t.TempDir(), "slices.parquet")
	require.NoError(t, WriteSliceRecordsParquet(ConvertDatasetSummary(summary), path))

	got := readAll[SliceRecord](t, path)
	require.Len(t, got, 2)
	assert.Equal(t, "2000", got[1].TimeKey)
	assert.Equal(t, int32(1), got[1].Malformed)
	assert.Equal(t, "data.json", got[0].Source)
}

func TestWriteParquetEmptyAndBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WritePointRecordsParquet(nil, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	err = WritePointRecordsParquet(nil, filepath.Join(t.TempDir(), "missing", "x.parquet"))
	assert.ErrorContains(t, err, "failed to create output file")
}
