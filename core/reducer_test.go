package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/motionchart/schema"
)

func stateAt(index int, playback schema.PlaybackState) schema.ViewState {
	s := schema.NewViewState(960, 600)
	s.ActiveIndex = index
	s.Playback = playback
	return s
}

func TestReducePlayback(t *testing.T) {
	const last = 2
	tests := []struct {
		name     string
		state    schema.ViewState
		action   Action
		expected schema.ViewState
	}{
		{name: "play from idle", state: stateAt(0, schema.Idle), action: PlayAction{}, expected: stateAt(0, schema.Playing)},
		{name: "play resumes from paused", state: stateAt(1, schema.Paused), action: PlayAction{}, expected: stateAt(1, schema.Playing)},
		{name: "play at end rewinds", state: stateAt(2, schema.Paused), action: PlayAction{}, expected: stateAt(0, schema.Playing)},
		{name: "play while playing is a no-op", state: stateAt(1, schema.Playing), action: PlayAction{}, expected: stateAt(1, schema.Playing)},
		{name: "tick advances", state: stateAt(0, schema.Playing), action: TickAction{}, expected: stateAt(1, schema.Playing)},
		{name: "tick onto last pauses", state: stateAt(1, schema.Playing), action: TickAction{}, expected: stateAt(2, schema.Paused)},
		{name: "tick while paused is ignored", state: stateAt(1, schema.Paused), action: TickAction{}, expected: stateAt(1, schema.Paused)},
		{name: "pause", state: stateAt(1, schema.Playing), action: PauseAction{}, expected: stateAt(1, schema.Paused)},
		{name: "pause while idle stays idle", state: stateAt(0, schema.Idle), action: PauseAction{}, expected: stateAt(0, schema.Idle)},
		{name: "scrub interrupts autoplay", state: stateAt(0, schema.Playing), action: ScrubAction{Index: 2}, expected: stateAt(2, schema.Paused)},
		{name: "scrub while idle keeps idle", state: stateAt(0, schema.Idle), action: ScrubAction{Index: 1}, expected: stateAt(1, schema.Idle)},
		{name: "scrub clamps high", state: stateAt(0, schema.Paused), action: ScrubAction{Index: 99}, expected: stateAt(2, schema.Paused)},
		{name: "scrub clamps low", state: stateAt(2, schema.Paused), action: ScrubAction{Index: -4}, expected: stateAt(0, schema.Paused)},
		{name: "step forward", state: stateAt(0, schema.Playing), action: StepAction{Delta: 1}, expected: stateAt(1, schema.Paused)},
		{name: "step back at start", state: stateAt(0, schema.Idle), action: StepAction{Delta: -1}, expected: stateAt(0, schema.Idle)},
		{name: "reset", state: stateAt(2, schema.Playing), action: ResetAction{}, expected: stateAt(0, schema.Idle)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Reduce(tt.state, tt.action, last))
		})
	}
}

func TestReduceWithoutDataset(t *testing.T) {
	s := stateAt(0, schema.Idle)
	assert.Equal(t, s, Reduce(s, PlayAction{}, -1))
	assert.Equal(t, s, Reduce(s, ScrubAction{Index: 3}, -1))
}

func TestReduceSingleSlicePlay(t *testing.T) {
	got := Reduce(stateAt(0, schema.Idle), PlayAction{}, 0)
	assert.Equal(t, stateAt(0, schema.Paused), got)
}

func TestToggleCategoryIdempotence(t *testing.T) {
	s := stateAt(1, schema.Paused)
	once := Reduce(s, ToggleCategoryAction{Category: "asia"}, 2)
	assert.Equal(t, "asia", once.HighlightedCategory)

	twice := Reduce(once, ToggleCategoryAction{Category: "asia"}, 2)
	assert.Equal(t, s, twice)

	switched := Reduce(once, ToggleCategoryAction{Category: "europe"}, 2)
	assert.Equal(t, "europe", switched.HighlightedCategory)
}

func TestReduceHoverAndResize(t *testing.T) {
	s := stateAt(0, schema.Idle)
	hovered := Reduce(s, HoverAction{PointID: "A", X: 5, Y: 6}, 2)
	assert.Equal(t, "A", hovered.HoveredPointID)
	assert.Equal(t, 5.0, hovered.PointerX)
	assert.True(t, hovered.HasHover())

	cleared := Reduce(hovered, UnhoverAction{}, 2)
	assert.False(t, cleared.HasHover())

	resized := Reduce(s, ResizeAction{Width: 300, Height: 200}, 2)
	assert.Equal(t, 300.0, resized.ViewportWidth)
	assert.Equal(t, 200.0, resized.ViewportHeight)
}

func TestActionStrings(t *testing.T) {
	assert.Equal(t, "scrub(3)", ScrubAction{Index: 3}.String())
	assert.Equal(t, "step(-1)", StepAction{Delta: -1}.String())
	assert.Equal(t, "toggle(asia)", ToggleCategoryAction{Category: "asia"}.String())
}
