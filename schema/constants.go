package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// PlaybackState represents the animation timeline state.
	PlaybackState string

	// LegendMode represents how size legend buckets are chosen.
	LegendMode string

	// PrimitiveKind represents the shape of a visual primitive.
	PrimitiveKind string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	CSVOut     OutputMode = "csv"
	SVGOut     OutputMode = "svg"
	PNGOut     OutputMode = "png"
	JPEGOut    OutputMode = "jpeg"
	ParquetOut OutputMode = "parquet"
)

// All playback states of the animation controller.
const (
	Idle    PlaybackState = "idle" // initial
	Playing PlaybackState = "playing"
	Paused  PlaybackState = "paused"
)

// All legend modes supported.
const (
	FixedLegend   LegendMode = "fixed" // default
	DerivedLegend LegendMode = "derived"
)

// All primitive kinds emitted by the render pipeline.
const (
	CircleKind PrimitiveKind = "circle"
	TextKind   PrimitiveKind = "text"
	LineKind   PrimitiveKind = "line"
	RectKind   PrimitiveKind = "rect"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	CSVOut:     {},
	SVGOut:     {},
	PNGOut:     {},
	JPEGOut:    {},
	ParquetOut: {},
}

// ValidLegendModes lists all valid legend modes.
var ValidLegendModes = map[LegendMode]struct{}{
	FixedLegend:   {},
	DerivedLegend: {},
}

// DefaultLegendBreakpoints are the fixed size buckets of the population legend.
var DefaultLegendBreakpoints = []float64{1e6, 1e7, 1e8, 1e9}

// CategoryPalette is assigned to categories in sorted order.
var CategoryPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}
