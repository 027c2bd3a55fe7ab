package core

import (
	"fmt"

	"github.com/huangsam/motionchart/schema"
)

// Action is a tagged transition applied to a ViewState by Reduce.
type Action interface {
	fmt.Stringer
	isAction()
}

// PlayAction starts autoplay, rewinding first when at the last index.
type PlayAction struct{}

// TickAction advances the timeline by one step while playing.
type TickAction struct{}

// PauseAction stops autoplay.
type PauseAction struct{}

// ScrubAction jumps to an index and interrupts autoplay.
type ScrubAction struct{ Index int }

// StepAction scrubs relative to the active index.
type StepAction struct{ Delta int }

// ResetAction returns to Idle at the first index.
type ResetAction struct{}

// HoverAction marks a point as hovered at a pointer position.
type HoverAction struct {
	PointID string
	X, Y    float64
}

// UnhoverAction clears the hovered point.
type UnhoverAction struct{}

// ToggleCategoryAction highlights a category, or clears it when already highlighted.
type ToggleCategoryAction struct{ Category string }

// ResizeAction records a new measured viewport size.
type ResizeAction struct{ Width, Height float64 }

func (PlayAction) isAction()           {}
func (TickAction) isAction()           {}
func (PauseAction) isAction()          {}
func (ScrubAction) isAction()          {}
func (StepAction) isAction()           {}
func (ResetAction) isAction()          {}
func (HoverAction) isAction()          {}
func (UnhoverAction) isAction()        {}
func (ToggleCategoryAction) isAction() {}
func (ResizeAction) isAction()         {}

func (PlayAction) String() string             { return "play" }
func (TickAction) String() string             { return "tick" }
func (PauseAction) String() string            { return "pause" }
func (a ScrubAction) String() string          { return fmt.Sprintf("scrub(%d)", a.Index) }
func (a StepAction) String() string           { return fmt.Sprintf("step(%+d)", a.Delta) }
func (ResetAction) String() string            { return "reset" }
func (a HoverAction) String() string          { return fmt.Sprintf("hover(%s)", a.PointID) }
func (UnhoverAction) String() string          { return "unhover" }
func (a ToggleCategoryAction) String() string { return fmt.Sprintf("toggle(%s)", a.Category) }
func (a ResizeAction) String() string         { return fmt.Sprintf("resize(%gx%g)", a.Width, a.Height) }

// Reduce applies an action to a view state. lastIndex is the final slice index
// of the mounted dataset, or -1 when there is none. Reduce is pure.
func Reduce(state schema.ViewState, action Action, lastIndex int) schema.ViewState {
	switch a := action.(type) {
	case PlayAction:
		if lastIndex < 0 || state.Playback == schema.Playing {
			return state
		}
		if state.ActiveIndex >= lastIndex {
			state.ActiveIndex = 0
		}
		state.Playback = schema.Playing
		// A single slice has nowhere to advance to.
		if lastIndex == 0 {
			state.Playback = schema.Paused
		}

	case TickAction:
		if state.Playback != schema.Playing {
			return state
		}
		if state.ActiveIndex < lastIndex {
			state.ActiveIndex++
		}
		if state.ActiveIndex >= lastIndex {
			state.Playback = schema.Paused
		}

	case PauseAction:
		if state.Playback == schema.Playing {
			state.Playback = schema.Paused
		}

	case ScrubAction:
		state = scrubTo(state, a.Index, lastIndex)

	case StepAction:
		state = scrubTo(state, state.ActiveIndex+a.Delta, lastIndex)

	case ResetAction:
		state.ActiveIndex = 0
		state.Playback = schema.Idle

	case HoverAction:
		state.HoveredPointID = a.PointID
		state.PointerX = a.X
		state.PointerY = a.Y

	case UnhoverAction:
		state.HoveredPointID = ""

	case ToggleCategoryAction:
		if state.HighlightedCategory == a.Category {
			state.HighlightedCategory = ""
		} else {
			state.HighlightedCategory = a.Category
		}

	case ResizeAction:
		state.ViewportWidth = a.Width
		state.ViewportHeight = a.Height
	}
	return state
}

// scrubTo sets the index directly and forces Playing to Paused.
func scrubTo(state schema.ViewState, index, lastIndex int) schema.ViewState {
	if lastIndex < 0 {
		return state
	}
	state.ActiveIndex = schema.ClampIndex(index, lastIndex+1)
	if state.Playback == schema.Playing {
		state.Playback = schema.Paused
	}
	return state
}
