package schema

// PointRow is one drawn point of a frame joined with its source metrics.
type PointRow struct {
	TimeKey     string  `json:"timeKey" yaml:"timeKey"`
	ID          string  `json:"id" yaml:"id"`
	Label       string  `json:"label" yaml:"label"`
	Category    string  `json:"category" yaml:"category"`
	XMetric     float64 `json:"xMetric" yaml:"xMetric"`
	YMetric     float64 `json:"yMetric" yaml:"yMetric"`
	SizeMetric  float64 `json:"sizeMetric" yaml:"sizeMetric"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	R           float64 `json:"r" yaml:"r"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	Highlighted bool    `json:"highlighted" yaml:"highlighted"` // Member of the highlighted category
	Hovered     bool    `json:"hovered" yaml:"hovered"`
}

// FrameReport bundles a frame with the rows of its drawn points, in paint order.
type FrameReport struct {
	Frame      Frame      `json:"frame" yaml:"frame"`
	Rows       []PointRow `json:"rows" yaml:"rows"`
	SliceCount int        `json:"sliceCount" yaml:"sliceCount"`
	Skipped    int        `json:"skipped" yaml:"skipped"` // Malformed points left out of the frame
}
