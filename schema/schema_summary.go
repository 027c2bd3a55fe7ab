package schema

// SliceSummary describes one time slice of a dataset.
type SliceSummary struct {
	Key       string `json:"key" yaml:"key"`
	Points    int    `json:"points" yaml:"points"`
	Valid     int    `json:"valid" yaml:"valid"`
	Malformed int    `json:"malformed" yaml:"malformed"`
}

// DatasetSummary is the result of inspecting a dataset.
type DatasetSummary struct {
	Source     string         `json:"source" yaml:"source"`
	SliceCount int            `json:"sliceCount" yaml:"sliceCount"`
	FirstKey   string         `json:"firstKey" yaml:"firstKey"`
	LastKey    string         `json:"lastKey" yaml:"lastKey"`
	Points     int            `json:"points" yaml:"points"`
	Malformed  int            `json:"malformed" yaml:"malformed"`
	Entities   int            `json:"entities" yaml:"entities"` // Distinct valid point ids
	Categories []string       `json:"categories" yaml:"categories"`
	XMin       float64        `json:"xMin" yaml:"xMin"`
	XMax       float64        `json:"xMax" yaml:"xMax"`
	YMin       float64        `json:"yMin" yaml:"yMin"`
	YMax       float64        `json:"yMax" yaml:"yMax"`
	SizeMin    float64        `json:"sizeMin" yaml:"sizeMin"`
	SizeMax    float64        `json:"sizeMax" yaml:"sizeMax"`
	Slices     []SliceSummary `json:"slices" yaml:"slices"`
}
