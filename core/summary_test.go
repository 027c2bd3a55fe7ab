package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/motionchart/schema"
)

func TestSummarize(t *testing.T) {
	ds := fixtureDataset()
	ds.Slices[1].Points = append(ds.Slices[1].Points, malformedPoint())

	s := Summarize(ds, "fixture.json")
	assert.Equal(t, "fixture.json", s.Source)
	assert.Equal(t, 3, s.SliceCount)
	assert.Equal(t, "1990", s.FirstKey)
	assert.Equal(t, "2010", s.LastKey)
	assert.Equal(t, 10, s.Points)
	assert.Equal(t, 1, s.Malformed)
	assert.Equal(t, 3, s.Entities)
	assert.Equal(t, []string{"asia", "europe"}, s.Categories)
	assert.Equal(t, 500.0, s.XMin)
	assert.Equal(t, 45000.0, s.XMax)
	assert.Equal(t, 50.0, s.YMin)
	assert.Equal(t, 80.0, s.YMax)
	assert.Equal(t, 5e7, s.SizeMin)
	assert.Equal(t, 1.2e9, s.SizeMax)

	require.Len(t, s.Slices, 3)
	assert.Equal(t, schema.SliceSummary{Key: "2000", Points: 4, Valid: 3, Malformed: 1}, s.Slices[1])
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, "none")
	assert.Equal(t, 0, s.SliceCount)
	assert.Empty(t, s.Slices)
	assert.Empty(t, s.FirstKey)
}
