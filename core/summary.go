package core

import (
	"math"

	"github.com/huangsam/motionchart/schema"
)

// Summarize counts slices, points and malformed records and reports the raw
// metric extremes over every valid point. Extremes are zero when no point is valid.
func Summarize(ds *schema.Dataset, source string) schema.DatasetSummary {
	summary := schema.DatasetSummary{
		Source:     source,
		SliceCount: ds.Len(),
		Categories: ds.Categories(),
	}
	if ds.Len() == 0 {
		return summary
	}
	summary.FirstKey = ds.Slices[0].Key
	summary.LastKey = ds.Slices[ds.LastIndex()].Key

	entities := make(map[string]struct{})
	seen := false
	for _, s := range ds.Slices {
		row := schema.SliceSummary{Key: s.Key, Points: len(s.Points)}
		for _, p := range s.Points {
			if !p.Valid() {
				row.Malformed++
				continue
			}
			row.Valid++
			entities[p.ID] = struct{}{}
			if !seen {
				summary.XMin, summary.XMax = p.XMetric, p.XMetric
				summary.YMin, summary.YMax = p.YMetric, p.YMetric
				summary.SizeMin, summary.SizeMax = p.SizeMetric, p.SizeMetric
				seen = true
				continue
			}
			summary.XMin = math.Min(summary.XMin, p.XMetric)
			summary.XMax = math.Max(summary.XMax, p.XMetric)
			summary.YMin = math.Min(summary.YMin, p.YMetric)
			summary.YMax = math.Max(summary.YMax, p.YMetric)
			summary.SizeMin = math.Min(summary.SizeMin, p.SizeMetric)
			summary.SizeMax = math.Max(summary.SizeMax, p.SizeMetric)
		}
		summary.Points += row.Points
		summary.Malformed += row.Malformed
		summary.Slices = append(summary.Slices, row)
	}
	summary.Entities = len(entities)
	return summary
}
