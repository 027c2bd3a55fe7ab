package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := &contract.Config{
		Title:             "World",
		YLabel:            "Years",
		TickInterval:      time.Second,
		LabelThreshold:    5e8,
		DimOpacity:        0.3,
		LegendMode:        schema.DerivedLegend,
		LegendBreakpoints: []float64{1e3},
		Margins:           contract.Margins{Top: 10, Right: 10, Bottom: 10, Left: 10},
		XFloor:            100,
		ViewportWidth:     320,
	}

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, "World", opts.Title)
	assert.Equal(t, "Income per person (log)", opts.XLabel)
	assert.Equal(t, "Years", opts.YLabel)
	assert.Equal(t, time.Second, opts.TickInterval)
	assert.Equal(t, 5e8, opts.LabelThreshold)
	assert.Equal(t, 0.3, opts.DimOpacity)
	assert.Equal(t, schema.DerivedLegend, opts.LegendMode)
	assert.Equal(t, []float64{1e3}, opts.LegendBreakpoints)
	assert.Equal(t, Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}, opts.Scale.Margin)
	assert.Equal(t, 100.0, opts.Scale.XFloor)
	assert.Equal(t, DefaultMaxRadius, opts.Scale.MaxRadius)
	assert.Equal(t, 320.0, opts.Width)
	assert.Equal(t, float64(contract.DefaultViewportHeight), opts.Height)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultTickInterval, opts.TickInterval)
	assert.Equal(t, schema.FixedLegend, opts.LegendMode)
	assert.Equal(t, DefaultMargin, opts.Scale.Margin)
	assert.Nil(t, opts.Scheduler)
}
