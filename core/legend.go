package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/huangsam/motionchart/schema"
)

// Legend layout.
const (
	maxLegendBuckets = 4   // Size circles drawn at most
	legendEntryWidth = 110 // Width reserved for one category swatch and label
)

// ResolveLegendBreakpoints picks the size legend buckets.
// Fixed mode returns the configured breakpoints unchanged. Derived mode
// spreads round values geometrically between the dataset's size extremes.
func ResolveLegendBreakpoints(b Bounds, mode schema.LegendMode, fixed []float64) []float64 {
	if mode != schema.DerivedLegend {
		out := make([]float64, 0, len(fixed))
		for _, v := range fixed {
			if v > 0 && isFinite(v) {
				out = append(out, v)
			}
		}
		sort.Float64s(out)
		return out
	}

	if b.SizeMax <= 0 {
		return nil
	}
	lo := b.SizeMin
	if lo <= 0 {
		lo = b.SizeMax
	}

	var out []float64
	seen := make(map[float64]struct{})
	for v := niceFloor(b.SizeMax); v >= lo*0.999 && len(out) < maxLegendBuckets; v /= 10 {
		r := niceFloor(v)
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) == 0 {
		out = append(out, niceFloor(b.SizeMax))
	}
	sort.Float64s(out)
	return out
}

// niceFloor rounds down to 1, 2 or 5 times a power of ten.
func niceFloor(v float64) float64 {
	if v <= 0 {
		return 0
	}
	base := math.Pow(10, floorLog10(v))
	switch f := v / base; {
	case f >= 5:
		return 5 * base
	case f >= 2:
		return 2 * base
	default:
		return base
	}
}

// renderLegend draws nested size circles anchored at the bottom right of the
// plot and one swatch per category at the top right.
func renderLegend(scales Scales, view schema.ViewState, opts RenderOptions) []schema.Primitive {
	var out []schema.Primitive
	plot := scales.Plot

	var biggest float64
	for _, b := range opts.LegendBreakpoints {
		biggest = math.Max(biggest, scales.R(b))
	}
	if biggest > 0 {
		cx := plot.Right() - biggest - 8
		baseY := plot.Bottom() - 8
		// Largest first so smaller circles stay visible inside.
		for i := len(opts.LegendBreakpoints) - 1; i >= 0; i-- {
			b := opts.LegendBreakpoints[i]
			r := scales.R(b)
			if r <= 0 {
				continue
			}
			out = append(out, schema.Primitive{
				Key:         fmt.Sprintf("legend-size-%d", i),
				Kind:        schema.CircleKind,
				X:           cx,
				Y:           baseY - r,
				R:           r,
				Stroke:      legendStroke,
				StrokeWidth: 1,
				Opacity:     1,
			})
			out = append(out, schema.Primitive{
				Key:      fmt.Sprintf("legend-size-label-%d", i),
				Kind:     schema.TextKind,
				X:        cx,
				Y:        baseY - 2*r - 2,
				Text:     schema.FormatCompact(b),
				FontSize: 9,
				Fill:     legendStroke,
				Anchor:   "middle",
				Opacity:  1,
			})
		}
	}

	const swatch = 10.0
	y := plot.Y + 4
	for _, c := range opts.Categories {
		opacity := 1.0
		if view.HasHighlight() && view.HighlightedCategory != c {
			opacity = opts.DimOpacity
		}
		out = append(out, schema.Primitive{
			Key:      "legend-cat-" + c,
			Kind:     schema.RectKind,
			X:        plot.Right() - legendEntryWidth,
			Y:        y,
			Width:    swatch,
			Height:   swatch,
			Fill:     opts.colorFor(c),
			Opacity:  opacity,
			Category: c,
		})
		out = append(out, schema.Primitive{
			Key:      "legend-cat-label-" + c,
			Kind:     schema.TextKind,
			X:        plot.Right() - legendEntryWidth + swatch + 4,
			Y:        y + swatch - 1,
			Text:     c,
			FontSize: 10,
			Fill:     textColor,
			Anchor:   "start",
			Opacity:  opacity,
			Category: c,
		})
		y += swatch + 6
	}
	return out
}
