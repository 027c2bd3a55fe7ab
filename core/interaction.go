package core

import (
	"math"

	"github.com/huangsam/motionchart/schema"
)

// Tooltip placement relative to the pointer.
const (
	TooltipOffset = 12.0
	TooltipWidth  = 180.0
	TooltipHeight = 80.0
)

// BuildTooltip projects a point into tooltip content placed next to the pointer.
// The box flips to the other side of the pointer when it would leave the viewport.
func BuildTooltip(p schema.DataPoint, timeKey string, view schema.ViewState) *schema.Tooltip {
	x := view.PointerX + TooltipOffset
	y := view.PointerY + TooltipOffset
	if view.ViewportWidth > 0 && x+TooltipWidth > view.ViewportWidth {
		x = view.PointerX - TooltipOffset - TooltipWidth
	}
	if view.ViewportHeight > 0 && y+TooltipHeight > view.ViewportHeight {
		y = view.PointerY - TooltipOffset - TooltipHeight
	}
	return &schema.Tooltip{
		PointID:    p.ID,
		Label:      p.DisplayLabel(),
		Category:   p.Category,
		TimeKey:    timeKey,
		XMetric:    p.XMetric,
		YMetric:    p.YMetric,
		SizeMetric: p.SizeMetric,
		X:          math.Max(0, x),
		Y:          math.Max(0, y),
	}
}

// HitTest returns the id of the topmost point under the pointer.
// Points are painted in frame order, so the last containing circle wins.
func HitTest(frame schema.Frame, x, y float64) (string, bool) {
	for i := len(frame.Points) - 1; i >= 0; i-- {
		p := frame.Points[i]
		if p.Kind != schema.CircleKind || p.PointID == "" {
			continue
		}
		// Tiny bubbles stay hoverable through a minimum hit radius.
		r := math.Max(p.R, 3)
		if math.Hypot(x-p.X, y-p.Y) <= r {
			return p.PointID, true
		}
	}
	return "", false
}

// LegendHitTest returns the category whose legend swatch or label is under the pointer.
func LegendHitTest(frame schema.Frame, x, y float64) (string, bool) {
	for _, p := range frame.Legend {
		if p.Kind != schema.RectKind || p.Category == "" {
			continue
		}
		if x >= p.X && x <= p.X+legendEntryWidth && y >= p.Y && y <= p.Y+p.Height {
			return p.Category, true
		}
	}
	return "", false
}
