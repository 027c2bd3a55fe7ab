package schema

// Primitive is one positioned, sized and coloured shape to draw.
// Coordinates are pixels with the origin at the top left of the viewport.
type Primitive struct {
	Key         string        `json:"key" yaml:"key"` // Stable identity used by the scene diff
	Kind        PrimitiveKind `json:"kind" yaml:"kind"`
	X           float64       `json:"x" yaml:"x"`
	Y           float64       `json:"y" yaml:"y"`
	X2          float64       `json:"x2,omitempty" yaml:"x2,omitempty"`
	Y2          float64       `json:"y2,omitempty" yaml:"y2,omitempty"`
	R           float64       `json:"r,omitempty" yaml:"r,omitempty"`
	Width       float64       `json:"width,omitempty" yaml:"width,omitempty"`
	Height      float64       `json:"height,omitempty" yaml:"height,omitempty"`
	Fill        string        `json:"fill,omitempty" yaml:"fill,omitempty"`
	Stroke      string        `json:"stroke,omitempty" yaml:"stroke,omitempty"`
	StrokeWidth float64       `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
	Opacity     float64       `json:"opacity" yaml:"opacity"`
	Text        string        `json:"text,omitempty" yaml:"text,omitempty"`
	FontSize    float64       `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Anchor      string        `json:"anchor,omitempty" yaml:"anchor,omitempty"` // start, middle or end
	Category    string        `json:"category,omitempty" yaml:"category,omitempty"`
	PointID     string        `json:"pointId,omitempty" yaml:"pointId,omitempty"`
}

// Tooltip is a read-only projection of the hovered point.
type Tooltip struct {
	PointID    string  `json:"pointId" yaml:"pointId"`
	Label      string  `json:"label" yaml:"label"`
	Category   string  `json:"category" yaml:"category"`
	TimeKey    string  `json:"timeKey" yaml:"timeKey"`
	XMetric    float64 `json:"xMetric" yaml:"xMetric"`
	YMetric    float64 `json:"yMetric" yaml:"yMetric"`
	SizeMetric float64 `json:"sizeMetric" yaml:"sizeMetric"`
	X          float64 `json:"x" yaml:"x"` // Box origin in pixels
	Y          float64 `json:"y" yaml:"y"`
}

// Frame is the full description of one draw pass.
type Frame struct {
	Seq       uint64        `json:"seq" yaml:"seq"` // Increases with every frame an engine emits
	Title     string        `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle  string        `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	TimeKey   string        `json:"timeKey" yaml:"timeKey"`
	Index     int           `json:"index" yaml:"index"`
	Playback  PlaybackState `json:"playback" yaml:"playback"`
	Highlight string        `json:"highlight,omitempty" yaml:"highlight,omitempty"` // Highlighted category
	Hovered   string        `json:"hovered,omitempty" yaml:"hovered,omitempty"`     // Hovered point id
	Width     float64       `json:"width" yaml:"width"`
	Height    float64       `json:"height" yaml:"height"`
	Axes      []Primitive   `json:"axes" yaml:"axes"`
	Points    []Primitive   `json:"points" yaml:"points"`
	Labels    []Primitive   `json:"labels" yaml:"labels"`
	Legend    []Primitive   `json:"legend" yaml:"legend"`
	Tooltip   *Tooltip      `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Loading   bool          `json:"loading,omitempty" yaml:"loading,omitempty"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Empty reports whether the frame has nothing to draw.
func (f Frame) Empty() bool {
	return len(f.Axes) == 0 && len(f.Points) == 0 && len(f.Labels) == 0 && len(f.Legend) == 0
}

// Primitives returns every primitive in paint order.
func (f Frame) Primitives() []Primitive {
	out := make([]Primitive, 0, len(f.Axes)+len(f.Points)+len(f.Labels)+len(f.Legend))
	out = append(out, f.Axes...)
	out = append(out, f.Points...)
	out = append(out, f.Labels...)
	out = append(out, f.Legend...)
	return out
}
