package core

import (
	"math"

	"github.com/huangsam/motionchart/schema"
)

// Transition is a primitive present in two consecutive passes with changed attributes.
type Transition struct {
	Key  string
	From schema.Primitive
	To   schema.Primitive
}

// SceneDiff is the keyed difference between two render passes.
type SceneDiff struct {
	Enter  []schema.Primitive // New keys
	Update []Transition       // Keys present in both passes whose attributes changed
	Keep   []schema.Primitive // Keys present in both passes, unchanged
	Exit   []schema.Primitive // Keys that disappeared
	order  []string           // Paint order of the new pass
}

// Empty reports whether nothing entered, changed or left.
func (d SceneDiff) Empty() bool {
	return len(d.Enter) == 0 && len(d.Update) == 0 && len(d.Exit) == 0
}

// At returns the scene at progress t in [0, 1] of the transition.
// Entering primitives fade in, exiting ones fade out and are painted last.
func (d SceneDiff) At(t float64) []schema.Primitive {
	t = clamp01(t)
	current := make(map[string]schema.Primitive, len(d.order))
	for _, p := range d.Keep {
		current[p.Key] = p
	}
	for _, tr := range d.Update {
		current[tr.Key] = Interpolate(tr.From, tr.To, t)
	}
	for _, p := range d.Enter {
		faded := p
		faded.Opacity = p.Opacity * t
		current[p.Key] = faded
	}

	out := make([]schema.Primitive, 0, len(d.order)+len(d.Exit))
	for _, k := range d.order {
		out = append(out, current[k])
	}
	if t < 1 {
		for _, p := range d.Exit {
			faded := p
			faded.Opacity = p.Opacity * (1 - t)
			out = append(out, faded)
		}
	}
	return out
}

// Scene is a retained, keyed collection of primitives. Each Apply diffs the
// incoming frame against what is currently drawn.
type Scene struct {
	order []string
	byKey map[string]schema.Primitive
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{byKey: make(map[string]schema.Primitive)}
}

// Len returns the number of retained primitives.
func (s *Scene) Len() int {
	return len(s.order)
}

// Get returns the retained primitive with the given key.
func (s *Scene) Get(key string) (schema.Primitive, bool) {
	p, ok := s.byKey[key]
	return p, ok
}

// Apply retains the frame's primitives and returns the diff from the previous pass.
// A repeated key within one frame keeps its first occurrence.
func (s *Scene) Apply(frame schema.Frame) SceneDiff {
	next := frame.Primitives()
	byKey := make(map[string]schema.Primitive, len(next))
	order := make([]string, 0, len(next))

	var d SceneDiff
	for _, p := range next {
		if _, dup := byKey[p.Key]; dup {
			continue
		}
		byKey[p.Key] = p
		order = append(order, p.Key)

		prev, ok := s.byKey[p.Key]
		switch {
		case !ok:
			d.Enter = append(d.Enter, p)
		case prev != p:
			d.Update = append(d.Update, Transition{Key: p.Key, From: prev, To: p})
		default:
			d.Keep = append(d.Keep, p)
		}
	}
	for _, k := range s.order {
		if _, ok := byKey[k]; !ok {
			d.Exit = append(d.Exit, s.byKey[k])
		}
	}

	d.order = order
	s.order = order
	s.byKey = byKey
	return d
}

// Interpolate blends the numeric attributes of two primitives at progress t.
// Discrete attributes (kind, colours, text) switch to the target immediately.
func Interpolate(from, to schema.Primitive, t float64) schema.Primitive {
	t = clamp01(t)
	out := to
	out.X = lerp(from.X, to.X, t)
	out.Y = lerp(from.Y, to.Y, t)
	out.X2 = lerp(from.X2, to.X2, t)
	out.Y2 = lerp(from.Y2, to.Y2, t)
	out.R = lerp(from.R, to.R, t)
	out.Width = lerp(from.Width, to.Width, t)
	out.Height = lerp(from.Height, to.Height, t)
	out.Opacity = lerp(from.Opacity, to.Opacity, t)
	out.StrokeWidth = lerp(from.StrokeWidth, to.StrokeWidth, t)
	out.FontSize = lerp(from.FontSize, to.FontSize, t)
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) {
		return 1
	}
	return math.Max(0, math.Min(1, t))
}
