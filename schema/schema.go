// Package schema has models, constants and shared types for all parts of motionchart.
package schema

import (
	"math"
	"sort"
)

// DataPoint is a single plotted entity at one time value.
// Points with a non-finite metric, a negative size, or a missing id or
// category are kept in the dataset but never rendered.
type DataPoint struct {
	ID         string  `json:"id" yaml:"id"`                 // Stable identity across time slices
	Label      string  `json:"label" yaml:"label"`           // Display name used for labels and tooltips
	XMetric    float64 `json:"xMetric" yaml:"xMetric"`       // Horizontal metric (log axis)
	YMetric    float64 `json:"yMetric" yaml:"yMetric"`       // Vertical metric (linear axis)
	SizeMetric float64 `json:"sizeMetric" yaml:"sizeMetric"` // Area metric (sqrt radius)
	Category   string  `json:"category" yaml:"category"`     // Grouping used for colour and highlight
}

// Valid reports whether the point can be drawn.
func (p DataPoint) Valid() bool {
	if p.ID == "" || p.Category == "" {
		return false
	}
	if !isFinite(p.XMetric) || !isFinite(p.YMetric) || !isFinite(p.SizeMetric) {
		return false
	}
	return p.SizeMetric >= 0
}

// DisplayLabel returns the label, falling back to the id.
func (p DataPoint) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

// TimeSlice holds the points valid at one time value.
type TimeSlice struct {
	Key    string      `json:"key" yaml:"key"`     // Time value as it appeared in the input
	Points []DataPoint `json:"points" yaml:"points"`
}

// ValidPoints returns the drawable subset of the slice, preserving order.
func (s TimeSlice) ValidPoints() []DataPoint {
	out := make([]DataPoint, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

// Dataset is an ordered collection of time slices with unique keys.
// It is immutable once handed to an engine.
type Dataset struct {
	Slices []TimeSlice `json:"slices" yaml:"slices"`
}

// Len returns the number of time slices.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Slices)
}

// LastIndex returns the index of the final slice, or -1 for an empty dataset.
func (d *Dataset) LastIndex() int {
	return d.Len() - 1
}

// Slice returns the slice at index i, clamped into range.
func (d *Dataset) Slice(i int) (TimeSlice, bool) {
	if d.Len() == 0 {
		return TimeSlice{}, false
	}
	return d.Slices[ClampIndex(i, d.Len())], true
}

// Keys returns the time keys in order.
func (d *Dataset) Keys() []string {
	keys := make([]string, 0, d.Len())
	if d == nil {
		return keys
	}
	for _, s := range d.Slices {
		keys = append(keys, s.Key)
	}
	return keys
}

// IndexOf returns the index of the slice with the given key.
func (d *Dataset) IndexOf(key string) (int, bool) {
	if d == nil {
		return 0, false
	}
	for i, s := range d.Slices {
		if s.Key == key {
			return i, true
		}
	}
	return 0, false
}

// Categories returns the sorted set of categories over all valid points.
func (d *Dataset) Categories() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, s := range d.Slices {
		for _, p := range s.Points {
			if p.Valid() {
				seen[p.Category] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// FindPoint returns the point with the given id in slice i.
func (d *Dataset) FindPoint(i int, id string) (DataPoint, bool) {
	s, ok := d.Slice(i)
	if !ok {
		return DataPoint{}, false
	}
	for _, p := range s.Points {
		if p.ID == id && p.Valid() {
			return p, true
		}
	}
	return DataPoint{}, false
}

// ClampIndex clamps i into [0, n-1]. For n <= 0 it returns 0.
func ClampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
