package schema

// ViewState is the engine's complete mutable presentation state.
// Only reducer transitions produce new values; renderers read it.
type ViewState struct {
	ActiveIndex         int           `json:"activeIndex"`
	Playback            PlaybackState `json:"playback"`
	HighlightedCategory string        `json:"highlightedCategory,omitempty"` // Empty means no highlight
	HoveredPointID      string        `json:"hoveredPointId,omitempty"`      // Empty means no hover
	PointerX            float64       `json:"pointerX"`
	PointerY            float64       `json:"pointerY"`
	ViewportWidth       float64       `json:"viewportWidth"`
	ViewportHeight      float64       `json:"viewportHeight"`
}

// NewViewState returns the mount-time defaults for the given measured size.
func NewViewState(width, height float64) ViewState {
	return ViewState{
		ActiveIndex:    0,
		Playback:       Idle,
		ViewportWidth:  width,
		ViewportHeight: height,
	}
}

// HasHighlight reports whether a category is highlighted.
func (v ViewState) HasHighlight() bool {
	return v.HighlightedCategory != ""
}

// HasHover reports whether a point is hovered.
func (v ViewState) HasHover() bool {
	return v.HoveredPointID != ""
}
