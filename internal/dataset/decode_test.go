package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/motionchart/internal/contract"
)

const sampleJSON = `{
  "2000": [
    {"id": "CHN", "label": "China", "xMetric": 3678, "yMetric": 71.4, "sizeMetric": 1262645000, "category": "asia"},
    {"id": "NOR", "label": "Norway", "xMetric": 58000, "yMetric": 78.6, "sizeMetric": 4491000, "category": "europe"}
  ],
  "1990": [
    {"id": "CHN", "label": "China", "xMetric": 1516, "yMetric": 68.0, "sizeMetric": 1135185000, "category": "asia"},
    {"id": "NOR", "xMetric": 44000, "yMetric": 76.5, "sizeMetric": 4241000, "category": "europe"}
  ],
  "900": []
}`

func TestDecodeJSONSortsNumericKeys(t *testing.T) {
	ds, err := DecodeJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, []string{"900", "1990", "2000"}, ds.Keys())
	assert.Empty(t, ds.Slices[0].Points)

	p := ds.Slices[1].Points[1]
	assert.Equal(t, "NOR", p.ID)
	assert.Equal(t, "", p.Label)
	assert.Equal(t, "NOR", p.DisplayLabel())
	assert.True(t, p.Valid())
}

func TestDecodeJSONLexicalKeys(t *testing.T) {
	ds, err := DecodeJSON(strings.NewReader(`{"b": [], "a": [], "2001": []}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"2001", "a", "b"}, ds.Keys())
}

func TestDecodeJSONMalformedRecords(t *testing.T) {
	input := `{"1": [
		{"id": "ok", "xMetric": 1, "yMetric": 2, "sizeMetric": 3, "category": "c"},
		{"id": "missing-x", "yMetric": 2, "sizeMetric": 3, "category": "c"},
		{"id": "text-y", "xMetric": 1, "yMetric": "high", "sizeMetric": 3, "category": "c"},
		{"id": "negative", "xMetric": 1, "yMetric": 2, "sizeMetric": -3, "category": "c"},
		{"xMetric": 1, "yMetric": 2, "sizeMetric": 3, "category": "c"},
		42
	]}`
	ds, err := DecodeJSON(strings.NewReader(input))
	require.NoError(t, err)
	points := ds.Slices[0].Points
	require.Len(t, points, 6)
	assert.Len(t, ds.Slices[0].ValidPoints(), 1)
	assert.True(t, math.IsNaN(points[1].XMetric))
	assert.True(t, math.IsNaN(points[2].YMetric))
	assert.True(t, math.IsNaN(points[5].SizeMetric))
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{name: "empty object", input: `{}`, sentinel: contract.ErrNoSlices},
		{name: "duplicate numeric keys", input: `{"1990": [], "1990.0": []}`, sentinel: contract.ErrDuplicateKey},
		{name: "duplicate after trim", input: `{"a": [], " a": []}`, sentinel: contract.ErrDuplicateKey},
		{name: "array root", input: `[]`},
		{name: "object value", input: `{"1990": {"id": "x"}}`},
		{name: "truncated", input: `{"1990": [`},
		{name: "empty input", input: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	input := `
"2010":
  - {id: USA, label: United States, xMetric: 49000, yMetric: 78.5, sizeMetric: 309000000, category: americas}
"2005":
  - id: USA
    xMetric: 44000
    yMetric: 77.8
    sizeMetric: 295500000
    category: americas
  - not-a-record
`
	ds, err := DecodeYAML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"2005", "2010"}, ds.Keys())
	require.Len(t, ds.Slices[0].Points, 2)
	assert.True(t, ds.Slices[0].Points[0].Valid())
	assert.False(t, ds.Slices[0].Points[1].Valid())
	assert.Equal(t, 309000000.0, ds.Slices[1].Points[0].SizeMetric)
}

func TestDecodeYAMLErrors(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader(""))
	assert.ErrorIs(t, err, contract.ErrNoSlices)

	_, err = DecodeYAML(strings.NewReader("- 1\n- 2\n"))
	assert.Error(t, err)

	_, err = DecodeYAML(strings.NewReader("\"1\": scalar\n"))
	assert.Error(t, err)
}
