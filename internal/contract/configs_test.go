package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/motionchart/schema"
)

// validRawInput returns the raw input produced by the stock flag defaults.
func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Title:          "World development",
		Interval:       "300ms",
		LabelThreshold: 1e8,
		DimOpacity:     0.15,
		ViewportWidth:  960,
		ViewportHeight: 600,
		XFloor:         1,
		YPadding:       0.05,
		MaxRadius:      40,
		Output:         "text",
		Emoji:          "no",
		Color:          "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "pdf" }, expectError: true},
		{name: "uppercase output", mutate: func(in *ConfigRawInput) { in.Output = "SVG" }},
		{name: "bad interval", mutate: func(in *ConfigRawInput) { in.Interval = "soon" }, expectError: true},
		{name: "interval too short", mutate: func(in *ConfigRawInput) { in.Interval = "1ms" }, expectError: true},
		{name: "dim opacity above one", mutate: func(in *ConfigRawInput) { in.DimOpacity = 1.5 }, expectError: true},
		{name: "zero dim opacity", mutate: func(in *ConfigRawInput) { in.DimOpacity = 0 }, expectError: true},
		{name: "zero label threshold", mutate: func(in *ConfigRawInput) { in.LabelThreshold = 0 }, expectError: true},
		{name: "negative label threshold", mutate: func(in *ConfigRawInput) { in.LabelThreshold = -1 }, expectError: true},
		{name: "zero viewport width", mutate: func(in *ConfigRawInput) { in.ViewportWidth = 0 }, expectError: true},
		{name: "huge viewport height", mutate: func(in *ConfigRawInput) { in.ViewportHeight = MaxViewportSize + 1 }, expectError: true},
		{name: "zero x floor", mutate: func(in *ConfigRawInput) { in.XFloor = 0 }, expectError: true},
		{name: "negative y padding", mutate: func(in *ConfigRawInput) { in.YPadding = -0.1 }, expectError: true},
		{name: "zero max radius", mutate: func(in *ConfigRawInput) { in.MaxRadius = 0 }, expectError: true},
		{name: "invalid legend mode", mutate: func(in *ConfigRawInput) { in.Legend.Mode = "auto" }, expectError: true},
		{name: "derived legend mode", mutate: func(in *ConfigRawInput) { in.Legend.Mode = "Derived" }},
		{name: "bad breakpoint list", mutate: func(in *ConfigRawInput) { in.LegendBreakpoints = "1e6,lots" }, expectError: true},
		{name: "negative breakpoint", mutate: func(in *ConfigRawInput) { in.Legend.Breakpoints = []float64{-5} }, expectError: true},
		{name: "bad resize debounce", mutate: func(in *ConfigRawInput) { in.ResizeDebounce = "-1s" }, expectError: true},
		{name: "bad fetch timeout", mutate: func(in *ConfigRawInput) { in.FetchTimeout = "0s" }, expectError: true},
		{name: "bad emoji", mutate: func(in *ConfigRawInput) { in.Emoji = "maybe" }, expectError: true},
		{name: "negative max frames", mutate: func(in *ConfigRawInput) { in.MaxFrames = -2 }, expectError: true},
		{name: "ftp base url", mutate: func(in *ConfigRawInput) { in.BaseURL = "ftp://example.com" }, expectError: true},
		{name: "http base url", mutate: func(in *ConfigRawInput) { in.BaseURL = "https://example.com/charts/" }},
		{name: "dataset url without host", mutate: func(in *ConfigRawInput) { in.DatasetPathStr = "http://" }, expectError: true},
		{name: "negative margin", mutate: func(in *ConfigRawInput) {
			v := -1.0
			in.Margins.Left = &v
		}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, 300*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, schema.FixedLegend, cfg.LegendMode)
	assert.Equal(t, schema.DefaultLegendBreakpoints, cfg.LegendBreakpoints)
	assert.Equal(t, DefaultMargins, cfg.Margins)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, time.Duration(0), cfg.ResizeDebounce)
	assert.Equal(t, ".", cfg.BaseDir)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)
}

func TestProcessLegendPrecedence(t *testing.T) {
	input := validRawInput()
	input.Legend.Breakpoints = []float64{50, 5}
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []float64{5, 50}, cfg.LegendBreakpoints, "config file list is sorted")

	input.LegendBreakpoints = "1e3, 1e2, 1e3"
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []float64{100, 1000}, cfg.LegendBreakpoints, "flag wins and duplicates collapse")
}

func TestProcessMarginsOverride(t *testing.T) {
	input := validRawInput()
	top := 10.0
	input.Margins.Top = &top
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 10.0, cfg.Margins.Top)
	assert.Equal(t, DefaultMargins.Left, cfg.Margins.Left)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{LegendBreakpoints: []float64{1, 2}}
	clone := cfg.Clone()
	clone.LegendBreakpoints[0] = 99
	assert.Equal(t, 1.0, cfg.LegendBreakpoints[0])
}

func TestIsRemotePath(t *testing.T) {
	assert.True(t, IsRemotePath("https://example.com/data.json"))
	assert.True(t, IsRemotePath("http://localhost:8080"))
	assert.False(t, IsRemotePath("data/motion-chart.json"))
	assert.False(t, IsRemotePath(""))
}

func TestRevalidateDataset(t *testing.T) {
	cfg := &Config{DatasetPath: "data/motion-chart.json"}
	require.NoError(t, RevalidateDataset(cfg, " other.yaml "))
	assert.Equal(t, "other.yaml", cfg.DatasetPath)

	require.NoError(t, RevalidateDataset(cfg, "https://example.com/world.json"))
	assert.Equal(t, "https://example.com/world.json", cfg.DatasetPath)

	assert.ErrorContains(t, RevalidateDataset(cfg, "https://"), "invalid dataset url")
	assert.Equal(t, "https://example.com/world.json", cfg.DatasetPath, "rejected paths leave the config alone")
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "out/chart"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "out/chart", profile.Prefix)
}
