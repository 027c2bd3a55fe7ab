package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"zero", 0, "0"},
		{"small integer", 40, "40"},
		{"two decimals", 0.126, "0.13"},
		{"trailing zeros trimmed", 2.50, "2.5"},
		{"thousands", 1500, "1.5k"},
		{"exact thousand", 1000, "1k"},
		{"millions", 4_900_000, "4.9M"},
		{"billions", 1_340_000_000, "1.3B"},
		{"trillions", 2e12, "2T"},
		{"negative", -2500, "-2.5k"},
		{"nan", math.NaN(), "NaN"},
		{"positive infinity", math.Inf(1), "∞"},
		{"negative infinity", math.Inf(-1), "-∞"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCompact(tt.input))
		})
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		maxWidth int
		expected string
	}{
		{"fits", "Norway", 10, "Norway"},
		{"exact", "Norway", 6, "Norway"},
		{"truncated", "United States", 8, "Unite..."},
		{"multibyte", "Côte d'Ivoire", 7, "Côte..."},
		{"width too small to truncate", "Norway", 3, "Norway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateLabel(tt.label, tt.maxWidth))
		})
	}
}
