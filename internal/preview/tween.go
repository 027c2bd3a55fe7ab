package preview

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/huangsam/motionchart/core"
	"github.com/huangsam/motionchart/schema"
)

// A change between two frames is shown over tweenSteps sub-frames.
const (
	tweenSteps    = 4
	tweenInterval = 40 * time.Millisecond
)

// tweenMsg advances the transition into the frame with the given sequence number.
type tweenMsg struct {
	seq uint64
}

func tweenTick(seq uint64) tea.Cmd {
	return tea.Tick(tweenInterval, func(time.Time) tea.Msg {
		return tweenMsg{seq: seq}
	})
}

// tweenFrame returns target with its primitives taken from the diff at
// progress t. Primitives that left the scene keep fading out in their layer.
func tweenFrame(target schema.Frame, diff core.SceneDiff, t float64) schema.Frame {
	at := make(map[string]schema.Primitive)
	for _, p := range diff.At(t) {
		at[p.Key] = p
	}

	out := target
	out.Axes = retween(target.Axes, at)
	out.Points = retween(target.Points, at)
	out.Labels = retween(target.Labels, at)
	out.Legend = retween(target.Legend, at)

	for _, gone := range diff.Exit {
		p, ok := at[gone.Key]
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(p.Key, "pt-"):
			out.Points = append(out.Points, p)
		case strings.HasPrefix(p.Key, "label-"):
			out.Labels = append(out.Labels, p)
		case strings.HasPrefix(p.Key, "legend-"):
			out.Legend = append(out.Legend, p)
		default:
			out.Axes = append(out.Axes, p)
		}
	}
	return out
}

func retween(layer []schema.Primitive, at map[string]schema.Primitive) []schema.Primitive {
	out := make([]schema.Primitive, 0, len(layer))
	for _, p := range layer {
		if q, ok := at[p.Key]; ok {
			p = q
		}
		out = append(out, p)
	}
	return out
}
