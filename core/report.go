package core

import (
	"github.com/huangsam/motionchart/schema"
)

// BuildReport joins the circles of a frame with the slice's point metrics.
func BuildReport(frame schema.Frame, slice schema.TimeSlice) schema.FrameReport {
	byID := make(map[string]schema.DataPoint, len(slice.Points))
	skipped := 0
	for _, p := range slice.Points {
		if !p.Valid() {
			skipped++
			continue
		}
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}

	report := schema.FrameReport{Frame: frame, Skipped: skipped, Rows: make([]schema.PointRow, 0, len(frame.Points))}
	for _, c := range frame.Points {
		p, ok := byID[c.PointID]
		if !ok {
			continue
		}
		report.Rows = append(report.Rows, schema.PointRow{
			TimeKey:     frame.TimeKey,
			ID:          p.ID,
			Label:       p.DisplayLabel(),
			Category:    p.Category,
			XMetric:     p.XMetric,
			YMetric:     p.YMetric,
			SizeMetric:  p.SizeMetric,
			X:           c.X,
			Y:           c.Y,
			R:           c.R,
			Opacity:     c.Opacity,
			Highlighted: frame.Highlight != "" && p.Category == frame.Highlight,
			Hovered:     frame.Hovered != "" && p.ID == frame.Hovered,
		})
	}
	return report
}
