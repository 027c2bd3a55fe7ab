package outwriter

import (
	"github.com/fatih/color"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
)

func init() {
	color.NoColor = true
}

// sampleReport is a two point frame with the asia category highlighted and B hovered.
func sampleReport() schema.FrameReport {
	frame := schema.Frame{
		Seq:      3,
		Title:    "World <health>",
		TimeKey:  "2000",
		Index:    1,
		Playback: schema.Paused,
		Width:    960,
		Height:   600,
		Axes: []schema.Primitive{
			{Key: "axis-x", Kind: schema.LineKind, X: 60, Y: 550, X2: 930, Y2: 550, Stroke: "#333333", StrokeWidth: 1, Opacity: 1},
			{Key: "title", Kind: schema.TextKind, X: 60, Y: 22, Text: "World <health>", FontSize: 18, Fill: "#333333", Opacity: 1},
		},
		Points: []schema.Primitive{
			{Key: "pt-A", Kind: schema.CircleKind, X: 400, Y: 200, R: 30, Fill: "#1f77b4", Opacity: 1, Category: "asia", PointID: "A"},
			{Key: "pt-B", Kind: schema.CircleKind, X: 800, Y: 120, R: 6, Fill: "#ff7f0e", Opacity: 0.15, Category: "europe", PointID: "B"},
		},
		Legend: []schema.Primitive{
			{Key: "legend-cat-asia", Kind: schema.RectKind, X: 850, Y: 64, Width: 10, Height: 10, Fill: "#1f77b4", Opacity: 1, Category: "asia"},
		},
		Tooltip: &schema.Tooltip{PointID: "B", Label: "Bravo", Category: "europe", TimeKey: "2000", XMetric: 30000, YMetric: 78, SizeMetric: 5.2e7, X: 600, Y: 132},
	}
	return schema.FrameReport{
		Frame: frame,
		Rows: []schema.PointRow{
			{TimeKey: "2000", ID: "A", Label: "Alpha", Category: "asia", XMetric: 2000, YMetric: 65, SizeMetric: 1.1e9, X: 400, Y: 200, R: 30, Opacity: 1, Highlighted: true},
			{TimeKey: "2000", ID: "B", Label: "Bravo", Category: "europe", XMetric: 30000, YMetric: 78, SizeMetric: 5.2e7, X: 800, Y: 120, R: 6, Opacity: 0.15, Hovered: true},
		},
		SliceCount: 3,
		Skipped:    1,
	}
}

func sampleSummary() schema.DatasetSummary {
	return schema.DatasetSummary{
		Source:     "data/motion-chart.json",
		SliceCount: 2,
		FirstKey:   "1990",
		LastKey:    "2000",
		Points:     5,
		Malformed:  1,
		Entities:   2,
		Categories: []string{"asia", "europe"},
		XMin:       500, XMax: 30000,
		YMin: 50, YMax: 78,
		SizeMin: 5e7, SizeMax: 1.1e9,
		Slices: []schema.SliceSummary{
			{Key: "1990", Points: 2, Valid: 2},
			{Key: "2000", Points: 3, Valid: 2, Malformed: 1},
		},
	}
}

func testConfig(output schema.OutputMode, outputFile string) *contract.Config {
	return &contract.Config{Output: output, OutputFile: outputFile, Width: 120}
}
