package core

import (
	"math"

	"github.com/huangsam/motionchart/schema"
)

func pt(id, category string, x, y, size float64) schema.DataPoint {
	return schema.DataPoint{ID: id, Label: id, XMetric: x, YMetric: y, SizeMetric: size, Category: category}
}

// fixtureDataset has three slices of three entities in two categories.
func fixtureDataset() *schema.Dataset {
	return &schema.Dataset{Slices: []schema.TimeSlice{
		{Key: "1990", Points: []schema.DataPoint{
			pt("A", "asia", 1000, 60, 1e9),
			pt("B", "europe", 20000, 75, 5e7),
			pt("C", "asia", 500, 50, 2e8),
		}},
		{Key: "2000", Points: []schema.DataPoint{
			pt("A", "asia", 2000, 65, 1.1e9),
			pt("B", "europe", 30000, 78, 5.2e7),
			pt("C", "asia", 800, 55, 2.2e8),
		}},
		{Key: "2010", Points: []schema.DataPoint{
			pt("A", "asia", 5000, 70, 1.2e9),
			pt("B", "europe", 45000, 80, 5.5e7),
			pt("C", "asia", 1500, 60, 2.5e8),
		}},
	}}
}

// malformedPoint carries a NaN metric and must never be drawn.
func malformedPoint() schema.DataPoint {
	return pt("BAD", "asia", math.NaN(), 60, 1e9)
}

// testOptions returns engine options on a manual scheduler.
func testOptions(sched Scheduler, ds *schema.Dataset) Options {
	opts := DefaultOptions()
	opts.Title = "World"
	opts.Scheduler = sched
	opts.Dataset = ds
	return opts
}

func findPrimitive(ps []schema.Primitive, key string) (schema.Primitive, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p, true
		}
	}
	return schema.Primitive{}, false
}
