package core

import (
	"math"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
)

// Default scale settings.
const (
	DefaultXFloor    = 1.0
	DefaultYPadding  = 0.05
	DefaultMaxRadius = 40.0
)

// Margin is the space carved from the viewport around the plot area.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// DefaultMargin leaves room for the title, tick labels and axis titles.
var DefaultMargin = Margin(contract.DefaultMargins)

// ScaleOptions tunes how domains map onto the viewport.
type ScaleOptions struct {
	Margin    Margin
	XFloor    float64 // Positive lower clamp applied before the log transform
	YPadding  float64 // Fraction of the y span added above and below
	MaxRadius float64 // Radius of the largest size metric in pixels
}

// DefaultScaleOptions returns the stock scale settings.
func DefaultScaleOptions() ScaleOptions {
	return ScaleOptions{
		Margin:    DefaultMargin,
		XFloor:    DefaultXFloor,
		YPadding:  DefaultYPadding,
		MaxRadius: DefaultMaxRadius,
	}
}

func (o ScaleOptions) withDefaults() ScaleOptions {
	if o.XFloor <= 0 || !isFinite(o.XFloor) {
		o.XFloor = DefaultXFloor
	}
	if o.YPadding < 0 || !isFinite(o.YPadding) {
		o.YPadding = DefaultYPadding
	}
	if o.MaxRadius <= 0 || !isFinite(o.MaxRadius) {
		o.MaxRadius = DefaultMaxRadius
	}
	return o
}

// Bounds are the data domains of a whole dataset.
// They depend only on the dataset, never on which slice is active.
type Bounds struct {
	XMin    float64 `json:"xMin"`
	XMax    float64 `json:"xMax"`
	YMin    float64 `json:"yMin"`
	YMax    float64 `json:"yMax"`
	SizeMin float64 `json:"sizeMin"` // Smallest positive size metric, 0 if none
	SizeMax float64 `json:"sizeMax"`
}

// ComputeBounds scans every valid point of every slice.
func ComputeBounds(ds *schema.Dataset, opts ScaleOptions) Bounds {
	opts = opts.withDefaults()
	var (
		seen             bool
		xMin, xMax       float64
		yMin, yMax       float64
		sizeMin, sizeMax float64
	)
	if ds != nil {
		for _, s := range ds.Slices {
			for _, p := range s.Points {
				if !p.Valid() {
					continue
				}
				x := math.Max(p.XMetric, opts.XFloor)
				if !seen {
					xMin, xMax = x, x
					yMin, yMax = p.YMetric, p.YMetric
					seen = true
				}
				xMin = math.Min(xMin, x)
				xMax = math.Max(xMax, x)
				yMin = math.Min(yMin, p.YMetric)
				yMax = math.Max(yMax, p.YMetric)
				sizeMax = math.Max(sizeMax, p.SizeMetric)
				if p.SizeMetric > 0 && (sizeMin == 0 || p.SizeMetric < sizeMin) {
					sizeMin = p.SizeMetric
				}
			}
		}
	}

	if !seen {
		return Bounds{XMin: opts.XFloor, XMax: opts.XFloor * 10, YMin: 0, YMax: 1}
	}

	if xMax <= xMin {
		xMax = xMin * 10
	}

	span := yMax - yMin
	if span == 0 {
		yMin--
		yMax++
	} else {
		pad := span * opts.YPadding
		yMin -= pad
		yMax += pad
	}

	return Bounds{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax, SizeMin: sizeMin, SizeMax: sizeMax}
}

// Rect is a pixel rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Scales maps metrics to pixels: log for x, linear for y and sqrt for radius.
// The zero value is the null scale and reports Valid() == false.
type Scales struct {
	Bounds    Bounds    `json:"bounds"`
	Plot      Rect      `json:"plot"`
	XTicks    []float64 `json:"xTicks"`
	YTicks    []float64 `json:"yTicks"`
	MaxRadius float64   `json:"maxRadius"`
	xFloor    float64
	valid     bool
}

// Valid reports whether the scale can be drawn with.
func (s Scales) Valid() bool {
	return s.valid
}

// X maps an x metric to a horizontal pixel. Values at or below the floor clamp to it.
func (s Scales) X(v float64) float64 {
	if !s.valid {
		return 0
	}
	v = math.Max(v, s.xFloor)
	lo, hi := math.Log10(s.Bounds.XMin), math.Log10(s.Bounds.XMax)
	t := 0.5
	if hi > lo {
		t = (math.Log10(v) - lo) / (hi - lo)
	}
	return s.Plot.X + t*s.Plot.W
}

// Y maps a y metric to a vertical pixel, larger values higher up.
func (s Scales) Y(v float64) float64 {
	if !s.valid {
		return 0
	}
	t := 0.5
	if s.Bounds.YMax > s.Bounds.YMin {
		t = (v - s.Bounds.YMin) / (s.Bounds.YMax - s.Bounds.YMin)
	}
	return s.Plot.Bottom() - t*s.Plot.H
}

// R maps a size metric to a radius so that area is proportional to the metric.
func (s Scales) R(v float64) float64 {
	if !s.valid || s.Bounds.SizeMax <= 0 || v <= 0 || !isFinite(v) {
		return 0
	}
	return math.Sqrt(v/s.Bounds.SizeMax) * s.MaxRadius
}

// ComputeScales derives scales for a dataset and viewport.
// A viewport with a non-positive dimension, or one consumed by margins,
// yields the null scale.
func ComputeScales(ds *schema.Dataset, width, height float64, opts ScaleOptions) Scales {
	return ScalesFromBounds(ComputeBounds(ds, opts), width, height, opts)
}

// ScalesFromBounds derives scales from precomputed bounds.
func ScalesFromBounds(b Bounds, width, height float64, opts ScaleOptions) Scales {
	opts = opts.withDefaults()
	if width <= 0 || height <= 0 || !isFinite(width) || !isFinite(height) {
		return Scales{}
	}
	m := opts.Margin
	plot := Rect{X: m.Left, Y: m.Top, W: width - m.Left - m.Right, H: height - m.Top - m.Bottom}
	if plot.W <= 0 || plot.H <= 0 {
		return Scales{}
	}

	// The largest bubble never exceeds a quarter of the shorter plot side.
	maxRadius := math.Min(opts.MaxRadius, math.Min(plot.W, plot.H)/4)

	return Scales{
		Bounds:    b,
		Plot:      plot,
		XTicks:    LogTicks(b.XMin, b.XMax),
		YTicks:    LinearTicks(b.YMin, b.YMax, 5),
		MaxRadius: maxRadius,
		xFloor:    opts.XFloor,
		valid:     true,
	}
}

// LogTicks returns powers of ten inside [lo, hi], adding 2x and 5x steps
// when the domain spans fewer than three decades.
func LogTicks(lo, hi float64) []float64 {
	if lo <= 0 || hi <= lo || !isFinite(lo) || !isFinite(hi) {
		return nil
	}
	first := floorLog10(lo)
	last := ceilLog10(hi)
	multipliers := []float64{1}
	if last-first < 3 {
		multipliers = []float64{1, 2, 5}
	}
	var ticks []float64
	for e := first; e <= last && len(ticks) < 64; e++ {
		base := math.Pow(10, e)
		for _, m := range multipliers {
			v := base * m
			if v >= lo && v <= hi {
				ticks = append(ticks, v)
			}
		}
	}
	return ticks
}

// LinearTicks returns roughly count evenly spaced round values inside [lo, hi].
func LinearTicks(lo, hi float64, count int) []float64 {
	if hi <= lo || count <= 0 || !isFinite(lo) || !isFinite(hi) {
		return nil
	}
	step := niceStep((hi - lo) / float64(count))
	start := math.Ceil(lo/step) * step
	var ticks []float64
	for v := start; v <= hi+step*1e-9 && len(ticks) < 64; v += step {
		// Snap to the step grid to keep labels free of float noise.
		ticks = append(ticks, math.Round(v/step)*step)
	}
	return ticks
}

// niceStep rounds a raw step to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	base := math.Pow(10, floorLog10(raw))
	switch f := raw / base; {
	case f <= 1:
		return base
	case f <= 2:
		return 2 * base
	case f <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

// floorLog10 returns floor(log10(v)) for v > 0. math.Log10 can land just
// below an integer at exact powers of ten, so the result is corrected.
func floorLog10(v float64) float64 {
	e := math.Floor(math.Log10(v))
	if math.Pow(10, e+1) <= v {
		e++
	}
	if math.Pow(10, e) > v {
		e--
	}
	return e
}

// ceilLog10 returns ceil(log10(v)) for v > 0.
func ceilLog10(v float64) float64 {
	e := floorLog10(v)
	if math.Pow(10, e) < v {
		e++
	}
	return e
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
