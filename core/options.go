package core

import (
	"time"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
)

// Options configures an Engine.
type Options struct {
	Title    string
	Subtitle string
	XLabel   string
	YLabel   string

	TickInterval      time.Duration
	LabelThreshold    float64
	DimOpacity        float64
	LegendMode        schema.LegendMode
	LegendBreakpoints []float64 // Used in fixed legend mode
	Scale             ScaleOptions

	Width  float64 // Initial viewport width
	Height float64 // Initial viewport height

	Scheduler Scheduler       // Tick source; nil uses the runtime timer
	Dataset   *schema.Dataset // Optional pre-supplied dataset
}

// DefaultOptions returns the stock engine configuration.
func DefaultOptions() Options {
	return Options{
		XLabel:            "Income per person (log)",
		YLabel:            "Life expectancy",
		TickInterval:      DefaultTickInterval,
		LabelThreshold:    DefaultLabelThreshold,
		DimOpacity:        DefaultDimOpacity,
		LegendMode:        schema.FixedLegend,
		LegendBreakpoints: schema.DefaultLegendBreakpoints,
		Scale:             DefaultScaleOptions(),
		Width:             contract.DefaultViewportWidth,
		Height:            contract.DefaultViewportHeight,
	}
}

// withDefaults fills in render tuning left unset. A zero dim opacity would
// hide the points it is meant to keep visible for comparison.
func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.LabelThreshold <= 0 || !isFinite(o.LabelThreshold) {
		o.LabelThreshold = DefaultLabelThreshold
	}
	if o.DimOpacity <= 0 || o.DimOpacity > 1 || !isFinite(o.DimOpacity) {
		o.DimOpacity = DefaultDimOpacity
	}
	if o.LegendMode == "" {
		o.LegendMode = schema.FixedLegend
	}
	o.Scale = o.Scale.withDefaults()
	return o
}

// OptionsFromConfig maps a validated config onto engine options.
// Empty axis labels keep their defaults.
func OptionsFromConfig(cfg *contract.Config) Options {
	opts := DefaultOptions()
	opts.Title = cfg.Title
	opts.Subtitle = cfg.Subtitle
	if cfg.XLabel != "" {
		opts.XLabel = cfg.XLabel
	}
	if cfg.YLabel != "" {
		opts.YLabel = cfg.YLabel
	}
	if cfg.TickInterval > 0 {
		opts.TickInterval = cfg.TickInterval
	}
	opts.LabelThreshold = cfg.LabelThreshold
	opts.DimOpacity = cfg.DimOpacity
	if cfg.LegendMode != "" {
		opts.LegendMode = cfg.LegendMode
	}
	if len(cfg.LegendBreakpoints) > 0 {
		opts.LegendBreakpoints = cfg.LegendBreakpoints
	}
	opts.Scale = ScaleOptions{
		Margin:    Margin(cfg.Margins),
		XFloor:    cfg.XFloor,
		YPadding:  cfg.YPadding,
		MaxRadius: cfg.MaxRadius,
	}.withDefaults()
	if cfg.ViewportWidth > 0 {
		opts.Width = cfg.ViewportWidth
	}
	if cfg.ViewportHeight > 0 {
		opts.Height = cfg.ViewportHeight
	}
	return opts
}
