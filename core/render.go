package core

import (
	"fmt"
	"sort"

	"github.com/huangsam/motionchart/schema"
)

// Render defaults.
const (
	DefaultDimOpacity     = 0.15
	DefaultBaseOpacity    = 0.85
	DefaultLabelThreshold = 1e8
)

// Fixed drawing colours.
const (
	gridColor      = "#e5e5e5"
	axisColor      = "#444444"
	textColor      = "#333333"
	legendStroke   = "#666666"
	pointStroke    = "#ffffff"
	emphasisStroke = "#111111"
	watermarkColor = "#cccccc"
	fallbackFill   = "#999999"
)

// RenderOptions holds everything the pipeline needs besides slice, scales and view.
type RenderOptions struct {
	Title             string
	Subtitle          string
	XLabel            string
	YLabel            string
	LabelThreshold    float64           // Points above this size metric get an inline label
	DimOpacity        float64           // Opacity of points outside the highlighted category
	BaseOpacity       float64           // Opacity of points when nothing is highlighted
	LegendBreakpoints []float64         // Resolved size legend buckets, ascending
	Categories        []string          // Dataset categories in legend order
	Palette           map[string]string // Category to fill colour
}

func (o RenderOptions) colorFor(category string) string {
	if c, ok := o.Palette[category]; ok {
		return c
	}
	return fallbackFill
}

// BuildPalette assigns palette colours to categories in the given order.
func BuildPalette(categories []string) map[string]string {
	palette := make(map[string]string, len(categories))
	for i, c := range categories {
		palette[c] = schema.CategoryPalette[i%len(schema.CategoryPalette)]
	}
	return palette
}

// Render converts one slice into a frame. It is a pure function of its inputs.
// A null scale produces a frame without primitives.
func Render(slice schema.TimeSlice, index int, scales Scales, view schema.ViewState, opts RenderOptions) schema.Frame {
	frame := schema.Frame{
		Title:     opts.Title,
		Subtitle:  opts.Subtitle,
		TimeKey:   slice.Key,
		Index:     index,
		Playback:  view.Playback,
		Highlight: view.HighlightedCategory,
		Hovered:   view.HoveredPointID,
		Width:     view.ViewportWidth,
		Height:    view.ViewportHeight,
	}
	if !scales.Valid() {
		return frame
	}

	frame.Axes = append(renderAxes(scales, opts), renderWatermark(slice.Key, scales))
	frame.Points, frame.Labels = renderPoints(slice, scales, view, opts)
	frame.Legend = renderLegend(scales, view, opts)

	if view.HasHover() {
		for _, p := range slice.Points {
			if p.ID == view.HoveredPointID && p.Valid() {
				frame.Tooltip = BuildTooltip(p, slice.Key, view)
				break
			}
		}
	}
	return frame
}

// SortForPaint orders points largest first so small shapes stay on top.
// Ties are broken by id to keep the order deterministic.
func SortForPaint(points []schema.DataPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].SizeMetric != points[j].SizeMetric {
			return points[i].SizeMetric > points[j].SizeMetric
		}
		return points[i].ID < points[j].ID
	})
}

// renderPoints emits one circle per valid point plus labels for large points.
func renderPoints(slice schema.TimeSlice, scales Scales, view schema.ViewState, opts RenderOptions) ([]schema.Primitive, []schema.Primitive) {
	points := slice.ValidPoints()
	SortForPaint(points)

	circles := make([]schema.Primitive, 0, len(points))
	var labels []schema.Primitive
	for _, p := range points {
		c := schema.Primitive{
			Key:         "pt-" + p.ID,
			Kind:        schema.CircleKind,
			X:           scales.X(p.XMetric),
			Y:           scales.Y(p.YMetric),
			R:           scales.R(p.SizeMetric),
			Fill:        opts.colorFor(p.Category),
			Stroke:      pointStroke,
			StrokeWidth: 0.5,
			Opacity:     opts.BaseOpacity,
			Category:    p.Category,
			PointID:     p.ID,
		}
		if view.HasHighlight() {
			if p.Category == view.HighlightedCategory {
				c.Opacity = 1
				c.Stroke = emphasisStroke
				c.StrokeWidth = 2
			} else {
				c.Opacity = opts.DimOpacity
			}
		}
		if p.ID == view.HoveredPointID {
			c.Stroke = emphasisStroke
			c.StrokeWidth = 2
		}
		circles = append(circles, c)

		if p.SizeMetric > opts.LabelThreshold {
			labels = append(labels, schema.Primitive{
				Key:      "label-" + p.ID,
				Kind:     schema.TextKind,
				X:        c.X,
				Y:        c.Y - c.R - 4,
				Text:     p.DisplayLabel(),
				FontSize: 11,
				Fill:     textColor,
				Anchor:   "middle",
				Opacity:  c.Opacity,
				Category: p.Category,
				PointID:  p.ID,
			})
		}
	}
	return circles, labels
}

// renderAxes draws grid, axis lines, tick labels, axis titles and headings.
func renderAxes(scales Scales, opts RenderOptions) []schema.Primitive {
	plot := scales.Plot
	var out []schema.Primitive

	for i, v := range scales.XTicks {
		x := scales.X(v)
		out = append(out,
			schema.Primitive{Key: fmt.Sprintf("grid-x-%d", i), Kind: schema.LineKind, X: x, Y: plot.Y, X2: x, Y2: plot.Bottom(), Stroke: gridColor, StrokeWidth: 1, Opacity: 1},
			schema.Primitive{Key: fmt.Sprintf("tick-x-%d", i), Kind: schema.TextKind, X: x, Y: plot.Bottom() + 16, Text: schema.FormatCompact(v), FontSize: 10, Fill: textColor, Anchor: "middle", Opacity: 1},
		)
	}
	for i, v := range scales.YTicks {
		y := scales.Y(v)
		out = append(out,
			schema.Primitive{Key: fmt.Sprintf("grid-y-%d", i), Kind: schema.LineKind, X: plot.X, Y: y, X2: plot.Right(), Y2: y, Stroke: gridColor, StrokeWidth: 1, Opacity: 1},
			schema.Primitive{Key: fmt.Sprintf("tick-y-%d", i), Kind: schema.TextKind, X: plot.X - 6, Y: y + 3, Text: schema.FormatCompact(v), FontSize: 10, Fill: textColor, Anchor: "end", Opacity: 1},
		)
	}

	out = append(out,
		schema.Primitive{Key: "axis-x", Kind: schema.LineKind, X: plot.X, Y: plot.Bottom(), X2: plot.Right(), Y2: plot.Bottom(), Stroke: axisColor, StrokeWidth: 1, Opacity: 1},
		schema.Primitive{Key: "axis-y", Kind: schema.LineKind, X: plot.X, Y: plot.Y, X2: plot.X, Y2: plot.Bottom(), Stroke: axisColor, StrokeWidth: 1, Opacity: 1},
	)
	if opts.XLabel != "" {
		out = append(out, schema.Primitive{Key: "axis-x-title", Kind: schema.TextKind, X: plot.X + plot.W/2, Y: plot.Bottom() + 36, Text: opts.XLabel, FontSize: 12, Fill: textColor, Anchor: "middle", Opacity: 1})
	}
	if opts.YLabel != "" {
		out = append(out, schema.Primitive{Key: "axis-y-title", Kind: schema.TextKind, X: plot.X, Y: plot.Y - 10, Text: opts.YLabel, FontSize: 12, Fill: textColor, Anchor: "start", Opacity: 1})
	}
	if opts.Title != "" {
		out = append(out, schema.Primitive{Key: "title", Kind: schema.TextKind, X: plot.X, Y: 22, Text: opts.Title, FontSize: 18, Fill: textColor, Anchor: "start", Opacity: 1})
	}
	if opts.Subtitle != "" {
		out = append(out, schema.Primitive{Key: "subtitle", Kind: schema.TextKind, X: plot.X, Y: 40, Text: opts.Subtitle, FontSize: 12, Fill: legendStroke, Anchor: "start", Opacity: 1})
	}
	return out
}

// renderWatermark draws the active time key large behind the points.
func renderWatermark(key string, scales Scales) schema.Primitive {
	plot := scales.Plot
	size := plot.H / 3
	return schema.Primitive{
		Key:      "watermark",
		Kind:     schema.TextKind,
		X:        plot.Right() - 12,
		Y:        plot.Bottom() - 12,
		Text:     key,
		FontSize: size,
		Fill:     watermarkColor,
		Anchor:   "end",
		Opacity:  0.5,
	}
}
