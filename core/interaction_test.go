package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/motionchart/schema"
)

func TestBuildTooltipPlacement(t *testing.T) {
	p := pt("A", "asia", 1000, 60, 1e9)
	tests := []struct {
		name         string
		px, py       float64
		expectX      float64
		expectY      float64
		viewW, viewH float64
	}{
		{name: "below right of pointer", px: 100, py: 100, expectX: 112, expectY: 112, viewW: 960, viewH: 600},
		{name: "flips left near right edge", px: 900, py: 100, expectX: 900 - 12 - TooltipWidth, expectY: 112, viewW: 960, viewH: 600},
		{name: "flips up near bottom edge", px: 100, py: 580, expectX: 112, expectY: 580 - 12 - TooltipHeight, viewW: 960, viewH: 600},
		{name: "clamped inside tiny viewport", px: 10, py: 10, expectX: 0, expectY: 0, viewW: 50, viewH: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := schema.NewViewState(tt.viewW, tt.viewH)
			view.PointerX, view.PointerY = tt.px, tt.py
			tip := BuildTooltip(p, "1990", view)
			assert.Equal(t, tt.expectX, tip.X)
			assert.Equal(t, tt.expectY, tip.Y)
			assert.Equal(t, "A", tip.Label)
			assert.Equal(t, "asia", tip.Category)
		})
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	frame := schema.Frame{Points: []schema.Primitive{
		{Key: "pt-big", Kind: schema.CircleKind, X: 100, Y: 100, R: 50, PointID: "big"},
		{Key: "pt-small", Kind: schema.CircleKind, X: 110, Y: 100, R: 10, PointID: "small"},
	}}

	id, ok := HitTest(frame, 112, 100)
	require.True(t, ok)
	assert.Equal(t, "small", id)

	id, ok = HitTest(frame, 70, 100)
	require.True(t, ok)
	assert.Equal(t, "big", id)

	_, ok = HitTest(frame, 300, 300)
	assert.False(t, ok)
}

func TestHitTestTinyBubble(t *testing.T) {
	frame := schema.Frame{Points: []schema.Primitive{
		{Key: "pt-dot", Kind: schema.CircleKind, X: 10, Y: 10, R: 0.5, PointID: "dot"},
	}}
	id, ok := HitTest(frame, 12, 10)
	require.True(t, ok)
	assert.Equal(t, "dot", id)
}

func TestLegendHitTest(t *testing.T) {
	frame := renderFixture(t, schema.NewViewState(960, 600), nil)
	swatch, ok := findPrimitive(frame.Legend, "legend-cat-europe")
	require.True(t, ok)

	got, ok := LegendHitTest(frame, swatch.X+40, swatch.Y+swatch.Height/2)
	require.True(t, ok)
	assert.Equal(t, "europe", got)

	_, ok = LegendHitTest(frame, 0, 0)
	assert.False(t, ok)
}
