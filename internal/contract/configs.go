package contract

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/motionchart/schema"
)

// Default values for configuration.
const (
	DefaultDataPath       = "data/motion-chart.json"
	DefaultFetchTimeout   = 10 * time.Second
	DefaultViewportWidth  = 960
	DefaultViewportHeight = 600
	MaxViewportSize       = 10000
	MinTickInterval       = 10 * time.Millisecond
	DefaultMaxFrames      = 0 // 0 = play the whole timeline
)

// Margins holds the validated plot margins in pixels.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins leave room for the title, tick labels and axis titles.
var DefaultMargins = Margins{Top: 60, Right: 30, Bottom: 50, Left: 60}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// LegendRawInput holds the size legend section of the YAML config file.
type LegendRawInput struct {
	Mode        string    `mapstructure:"mode"`
	Breakpoints []float64 `mapstructure:"breakpoints"`
}

// MarginsRawInput holds the margins section of the YAML config file.
// Use float64 pointers so unset sides keep their defaults.
type MarginsRawInput struct {
	Top    *float64 `mapstructure:"top"`
	Right  *float64 `mapstructure:"right"`
	Bottom *float64 `mapstructure:"bottom"`
	Left   *float64 `mapstructure:"left"`
}

// Config holds the runtime configuration for the chart.
// This struct remains the "final, validated" config.
type Config struct {
	DatasetPath  string // File path or http(s) URL; empty means DefaultDataPath under the base
	BaseURL      string
	BaseDir      string
	FetchTimeout time.Duration

	Title    string
	Subtitle string
	XLabel   string
	YLabel   string

	TickInterval      time.Duration
	LegendMode        schema.LegendMode
	LegendBreakpoints []float64
	LabelThreshold    float64
	DimOpacity        float64

	ViewportWidth  float64
	ViewportHeight float64
	Margins        Margins
	XFloor         float64
	YPadding       float64
	MaxRadius      float64
	ResizeDebounce time.Duration

	TimeKey   string // Slice to render; empty means the first
	Highlight string
	Hover     string
	FramesDir string
	MaxFrames int

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DatasetPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	BaseURL           string  `mapstructure:"base-url"`
	BaseDir           string  `mapstructure:"base-dir"`
	FetchTimeout      string  `mapstructure:"fetch-timeout"`
	Title             string  `mapstructure:"title"`
	Subtitle          string  `mapstructure:"subtitle"`
	XLabel            string  `mapstructure:"x-label"`
	YLabel            string  `mapstructure:"y-label"`
	Interval          string  `mapstructure:"interval"`
	LabelThreshold    float64 `mapstructure:"label-threshold"`
	DimOpacity        float64 `mapstructure:"dim-opacity"`
	ViewportWidth     float64 `mapstructure:"viewport-width"`
	ViewportHeight    float64 `mapstructure:"viewport-height"`
	XFloor            float64 `mapstructure:"x-floor"`
	YPadding          float64 `mapstructure:"y-padding"`
	MaxRadius         float64 `mapstructure:"max-radius"`
	ResizeDebounce    string  `mapstructure:"resize-debounce"`
	LegendBreakpoints string  `mapstructure:"legend-breakpoints"`
	Output            string  `mapstructure:"output"`
	OutputFile        string  `mapstructure:"output-file"`
	Width             int     `mapstructure:"width"`
	Emoji             string  `mapstructure:"emoji"`
	Color             string  `mapstructure:"color"`

	// --- Fields from renderCmd.Flags() ---
	Time      string `mapstructure:"time"`
	Highlight string `mapstructure:"highlight"`
	Hover     string `mapstructure:"hover"`

	// --- Fields from playCmd.Flags() ---
	FramesDir string `mapstructure:"frames-dir"`
	MaxFrames int    `mapstructure:"max-frames"`

	// --- Sections from config file ---
	Legend  LegendRawInput  `mapstructure:"legend"`
	Margins MarginsRawInput `mapstructure:"margins"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.LegendBreakpoints != nil {
		clone.LegendBreakpoints = slices.Clone(c.LegendBreakpoints)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDurations(cfg, input); err != nil {
		return err
	}
	if err := processLegend(cfg, input); err != nil {
		return err
	}
	if err := processGeometry(cfg, input); err != nil {
		return err
	}
	if err := resolveDatasetSource(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates the display and output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Title = input.Title
	cfg.Subtitle = input.Subtitle
	cfg.XLabel = input.XLabel
	cfg.YLabel = input.YLabel
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.TimeKey = strings.TrimSpace(input.Time)
	cfg.Highlight = strings.TrimSpace(input.Highlight)
	cfg.Hover = strings.TrimSpace(input.Hover)
	cfg.FramesDir = input.FramesDir

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, yaml, csv, svg, png, jpeg, parquet", input.Output)
	}

	// --- 2. Render Tuning Validation ---
	if input.DimOpacity <= 0 || input.DimOpacity > 1 || math.IsNaN(input.DimOpacity) {
		return fmt.Errorf("dim-opacity must be above 0 and at most 1 (received %g)", input.DimOpacity)
	}
	cfg.DimOpacity = input.DimOpacity

	if input.LabelThreshold <= 0 || !isFinite(input.LabelThreshold) {
		return fmt.Errorf("label-threshold must be a positive number (received %g)", input.LabelThreshold)
	}
	cfg.LabelThreshold = input.LabelThreshold

	if input.MaxFrames < 0 {
		return fmt.Errorf("max-frames cannot be negative (received %d)", input.MaxFrames)
	}
	cfg.MaxFrames = input.MaxFrames

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// processDurations parses the interval, debounce and timeout strings.
func processDurations(cfg *Config, input *ConfigRawInput) error {
	interval, err := time.ParseDuration(input.Interval)
	if err != nil {
		return fmt.Errorf("invalid interval '%s': %w", input.Interval, err)
	}
	if interval < MinTickInterval {
		return fmt.Errorf("interval must be at least %s (received %s)", MinTickInterval, interval)
	}
	cfg.TickInterval = interval

	cfg.ResizeDebounce = 0
	if input.ResizeDebounce != "" {
		d, err := time.ParseDuration(input.ResizeDebounce)
		if err != nil {
			return fmt.Errorf("invalid resize-debounce '%s': %w", input.ResizeDebounce, err)
		}
		if d < 0 {
			return fmt.Errorf("resize-debounce cannot be negative (received %s)", d)
		}
		cfg.ResizeDebounce = d
	}

	cfg.FetchTimeout = DefaultFetchTimeout
	if input.FetchTimeout != "" {
		d, err := time.ParseDuration(input.FetchTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetch-timeout '%s': %w", input.FetchTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("fetch-timeout must be positive (received %s)", d)
		}
		cfg.FetchTimeout = d
	}
	return nil
}

// processLegend resolves the legend mode and breakpoints.
// The flag value wins over the config file list, which wins over the defaults.
func processLegend(cfg *Config, input *ConfigRawInput) error {
	mode := strings.ToLower(strings.TrimSpace(input.Legend.Mode))
	if mode == "" {
		mode = string(schema.FixedLegend)
	}
	cfg.LegendMode = schema.LegendMode(mode)
	if _, ok := schema.ValidLegendModes[cfg.LegendMode]; !ok {
		return fmt.Errorf("invalid legend mode '%s'. must be fixed, derived", input.Legend.Mode)
	}

	breakpoints := input.Legend.Breakpoints
	if strings.TrimSpace(input.LegendBreakpoints) != "" {
		parsed, err := ParseFloatList(input.LegendBreakpoints)
		if err != nil {
			return fmt.Errorf("invalid legend-breakpoints: %w", err)
		}
		breakpoints = parsed
	}
	if len(breakpoints) == 0 {
		breakpoints = schema.DefaultLegendBreakpoints
	}
	for _, b := range breakpoints {
		if b <= 0 || !isFinite(b) {
			return fmt.Errorf("legend breakpoints must be positive numbers (received %g)", b)
		}
	}
	cfg.LegendBreakpoints = slices.Clone(breakpoints)
	slices.Sort(cfg.LegendBreakpoints)
	cfg.LegendBreakpoints = slices.Compact(cfg.LegendBreakpoints)
	return nil
}

// processGeometry validates the viewport, margins and scale tuning.
func processGeometry(cfg *Config, input *ConfigRawInput) error {
	if input.ViewportWidth <= 0 || input.ViewportWidth > MaxViewportSize {
		return fmt.Errorf("viewport-width must be greater than 0 and cannot exceed %d (received %g)", MaxViewportSize, input.ViewportWidth)
	}
	if input.ViewportHeight <= 0 || input.ViewportHeight > MaxViewportSize {
		return fmt.Errorf("viewport-height must be greater than 0 and cannot exceed %d (received %g)", MaxViewportSize, input.ViewportHeight)
	}
	cfg.ViewportWidth = input.ViewportWidth
	cfg.ViewportHeight = input.ViewportHeight

	if input.XFloor <= 0 || !isFinite(input.XFloor) {
		return fmt.Errorf("x-floor must be a positive number (received %g)", input.XFloor)
	}
	cfg.XFloor = input.XFloor

	if input.YPadding < 0 || !isFinite(input.YPadding) {
		return fmt.Errorf("y-padding cannot be negative (received %g)", input.YPadding)
	}
	cfg.YPadding = input.YPadding

	if input.MaxRadius <= 0 || !isFinite(input.MaxRadius) {
		return fmt.Errorf("max-radius must be a positive number (received %g)", input.MaxRadius)
	}
	cfg.MaxRadius = input.MaxRadius

	cfg.Margins = DefaultMargins
	sides := []struct {
		name string
		raw  *float64
		dst  *float64
	}{
		{"top", input.Margins.Top, &cfg.Margins.Top},
		{"right", input.Margins.Right, &cfg.Margins.Right},
		{"bottom", input.Margins.Bottom, &cfg.Margins.Bottom},
		{"left", input.Margins.Left, &cfg.Margins.Left},
	}
	for _, s := range sides {
		if s.raw == nil {
			continue
		}
		if *s.raw < 0 || !isFinite(*s.raw) {
			return fmt.Errorf("margins.%s cannot be negative (received %g)", s.name, *s.raw)
		}
		*s.dst = *s.raw
	}
	return nil
}

// resolveDatasetSource decides where the dataset is read from.
func resolveDatasetSource(cfg *Config, input *ConfigRawInput) error {
	cfg.DatasetPath = strings.TrimSpace(input.DatasetPathStr)
	cfg.BaseDir = input.BaseDir
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}

	cfg.BaseURL = strings.TrimSpace(input.BaseURL)
	if cfg.BaseURL != "" {
		if err := validateHTTPURL(cfg.BaseURL); err != nil {
			return fmt.Errorf("invalid base-url: %w", err)
		}
	}
	if IsRemotePath(cfg.DatasetPath) {
		if err := validateHTTPURL(cfg.DatasetPath); err != nil {
			return fmt.Errorf("invalid dataset url: %w", err)
		}
	}
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RevalidateDataset points a cloned config at another dataset, applying the
// same checks as the command line. Relative paths stay relative to the
// working directory.
func RevalidateDataset(cfg *Config, datasetPath string) error {
	datasetPath = strings.TrimSpace(datasetPath)
	if IsRemotePath(datasetPath) {
		if err := validateHTTPURL(datasetPath); err != nil {
			return fmt.Errorf("invalid dataset url: %w", err)
		}
	}
	cfg.DatasetPath = datasetPath
	return nil
}

// IsRemotePath reports whether a dataset path should be fetched over HTTP.
func IsRemotePath(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (received %q)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
