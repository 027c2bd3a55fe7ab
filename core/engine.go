package core

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
)

// FrameFunc receives every frame an engine emits.
type FrameFunc func(schema.Frame)

// scaleKey identifies the inputs a cached Scales value was derived from.
type scaleKey struct {
	gen    uint64
	width  float64
	height float64
}

// Engine owns one chart session: the dataset, the view state, the scale
// cache, the playback controller and the frame subscribers.
//
// Every input (pointer event, resize, tick, fetch completion) is applied
// under a single mutex followed by a synchronous re-render. Subscribers are
// notified outside the lock, so frames from concurrent inputs may arrive out
// of order; Frame.Seq lets a subscriber drop stale ones.
type Engine struct {
	mu   sync.Mutex
	opts Options

	dataset    *schema.Dataset
	datasetGen uint64
	bounds     Bounds
	render     RenderOptions

	scales            Scales
	scalesKey         scaleKey
	scalesCached      bool
	scaleComputations int

	view schema.ViewState
	ctrl *Controller
	last schema.Frame
	seq  uint64

	subs    map[int]FrameFunc
	nextSub int

	loading bool
	loadErr error
	loadGen uint64
	closed  bool
}

var _ Resizer = (*Engine)(nil) // Compile-time check

// New creates an engine. When opts.Dataset is set it is installed right away;
// otherwise the engine starts empty until Load or SetDataset is called.
func New(opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	e := &Engine{
		opts: opts,
		view: schema.NewViewState(opts.Width, opts.Height),
		subs: make(map[int]FrameFunc),
	}
	e.ctrl = NewController(opts.Scheduler, opts.TickInterval, e.onTick)
	e.render = RenderOptions{
		Title:          opts.Title,
		Subtitle:       opts.Subtitle,
		XLabel:         opts.XLabel,
		YLabel:         opts.YLabel,
		LabelThreshold: opts.LabelThreshold,
		DimOpacity:     opts.DimOpacity,
		BaseOpacity:    DefaultBaseOpacity,
	}

	if opts.Dataset != nil {
		if opts.Dataset.Len() == 0 {
			return nil, contract.ErrNoSlices
		}
		e.installLocked(opts.Dataset)
	}
	e.last = e.frameLocked()
	return e, nil
}

// SetDataset replaces the dataset. Any pending tick is cancelled and the
// view returns to its mount defaults, keeping the measured viewport.
func (e *Engine) SetDataset(ds *schema.Dataset) error {
	if ds.Len() == 0 {
		return contract.ErrNoSlices
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return contract.ErrEngineClosed
	}
	e.loadGen++ // Supersede any fetch still in flight
	e.replaceLocked(ds)
	frame, subs := e.emitLocked()
	e.mu.Unlock()
	notify(subs, frame)
	return nil
}

// Load fetches a dataset from the provider and installs it. It blocks until
// the provider returns. While the fetch runs the engine emits loading frames;
// on failure it stays empty and records the error on its frames.
// A load superseded by a later Load or SetDataset is discarded.
func (e *Engine) Load(ctx context.Context, p contract.DatasetProvider) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return contract.ErrEngineClosed
	}
	e.loadGen++
	gen := e.loadGen
	e.loading = true
	e.loadErr = nil
	frame, subs := e.emitLocked()
	e.mu.Unlock()
	notify(subs, frame)

	ds, err := p.Load(ctx)
	if err == nil && ds.Len() == 0 {
		err = contract.ErrNoSlices
	}
	if err != nil {
		err = fmt.Errorf("load %s: %w", p.Source(), err)
	}
	return e.finishLoad(gen, ds, err)
}

// LoadAsync runs Load on its own goroutine. The channel receives the result
// once and is then closed.
func (e *Engine) LoadAsync(ctx context.Context, p contract.DatasetProvider) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- e.Load(ctx, p)
	}()
	return done
}

func (e *Engine) finishLoad(gen uint64, ds *schema.Dataset, loadErr error) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return contract.ErrEngineClosed
	}
	if gen != e.loadGen {
		e.mu.Unlock()
		return nil
	}
	e.loading = false
	if loadErr != nil {
		e.loadErr = loadErr
	} else {
		e.replaceLocked(ds)
	}
	frame, subs := e.emitLocked()
	e.mu.Unlock()
	notify(subs, frame)
	return loadErr
}

// Play starts or resumes autoplay.
func (e *Engine) Play() { e.Dispatch(PlayAction{}) }

// Pause stops autoplay at the current index.
func (e *Engine) Pause() { e.Dispatch(PauseAction{}) }

// TogglePlay pauses while playing and plays otherwise.
func (e *Engine) TogglePlay() {
	if e.State().Playback == schema.Playing {
		e.Pause()
		return
	}
	e.Play()
}

// Scrub jumps to a slice index, clamped into range, and stops autoplay.
func (e *Engine) Scrub(index int) { e.Dispatch(ScrubAction{Index: index}) }

// ScrubToKey jumps to the slice with the given time key.
func (e *Engine) ScrubToKey(key string) error {
	e.mu.Lock()
	i, ok := e.dataset.IndexOf(key)
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown time key %q", key)
	}
	e.Scrub(i)
	return nil
}

// Step moves the timeline by delta slices and stops autoplay.
func (e *Engine) Step(delta int) { e.Dispatch(StepAction{Delta: delta}) }

// Reset returns to the first slice in the idle state.
func (e *Engine) Reset() { e.Dispatch(ResetAction{}) }

// Hover marks a point as hovered with the pointer at (x, y).
func (e *Engine) Hover(id string, x, y float64) {
	e.Dispatch(HoverAction{PointID: id, X: x, Y: y})
}

// Unhover clears the hovered point.
func (e *Engine) Unhover() { e.Dispatch(UnhoverAction{}) }

// ToggleCategory highlights a category, or clears it when already highlighted.
func (e *Engine) ToggleCategory(category string) {
	e.Dispatch(ToggleCategoryAction{Category: category})
}

// Resize updates the viewport. Scales are recomputed on the next render.
func (e *Engine) Resize(width, height float64) {
	e.Dispatch(ResizeAction{Width: width, Height: height})
}

// PointerMove hit-tests the last frame and turns raw pointer coordinates
// into hover transitions.
func (e *Engine) PointerMove(x, y float64) {
	e.mu.Lock()
	id, hit := HitTest(e.last, x, y)
	hovered := e.view.HasHover()
	e.mu.Unlock()

	switch {
	case hit:
		e.Hover(id, x, y)
	case hovered:
		e.Unhover()
	}
}

// PointerClick toggles the category under the pointer when it lands on the legend.
func (e *Engine) PointerClick(x, y float64) bool {
	e.mu.Lock()
	category, hit := LegendHitTest(e.last, x, y)
	e.mu.Unlock()
	if hit {
		e.ToggleCategory(category)
	}
	return hit
}

// HoverPoint hovers a drawn point by id with the pointer at its centre.
func (e *Engine) HoverPoint(id string) error {
	e.mu.Lock()
	c, ok := drawnPoint(e.last, id)
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("point %q is not drawn in the active slice", id)
	}
	e.Hover(id, c.X, c.Y)
	return nil
}

// SetHighlight highlights a known category. An empty category clears the highlight.
func (e *Engine) SetHighlight(category string) error {
	e.mu.Lock()
	current := e.view.HighlightedCategory
	known := category == "" || slices.Contains(e.render.Categories, category)
	e.mu.Unlock()

	switch {
	case !known:
		return fmt.Errorf("unknown category %q", category)
	case category == current:
		return nil
	case category == "":
		e.ToggleCategory(current)
	default:
		e.ToggleCategory(category)
	}
	return nil
}

// Dispatch applies an action. Actions that leave the view unchanged emit nothing.
func (e *Engine) Dispatch(a Action) {
	e.mu.Lock()
	frame, subs, ok := e.applyLocked(a)
	e.mu.Unlock()
	if ok {
		notify(subs, frame)
	}
}

// onTick is the controller's timer callback.
func (e *Engine) onTick(gen uint64) {
	e.mu.Lock()
	if e.closed || !e.ctrl.Fired(gen) {
		e.mu.Unlock()
		return
	}
	frame, subs, ok := e.applyLocked(TickAction{})
	e.mu.Unlock()
	if ok {
		notify(subs, frame)
	}
}

// applyLocked runs an action through the controller. Callers hold e.mu.
func (e *Engine) applyLocked(a Action) (schema.Frame, []FrameFunc, bool) {
	if e.closed {
		return schema.Frame{}, nil, false
	}
	prev := e.view
	e.view = e.ctrl.Apply(e.view, a, e.dataset.LastIndex())
	if e.view == prev {
		return schema.Frame{}, nil, false
	}
	frame, subs := e.emitLocked()
	return frame, subs, true
}

// Subscribe registers fn for every emitted frame and returns a function
// that removes it. fn runs on the goroutine that caused the frame.
func (e *Engine) Subscribe(fn FrameFunc) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// Close tears the session down: the pending tick is cancelled, subscribers
// are dropped, and later inputs and fetch completions are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.ctrl.Stop()
	clear(e.subs)
}

// Frame returns the most recently emitted frame.
func (e *Engine) Frame() schema.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// State returns the current view state.
func (e *Engine) State() schema.ViewState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}

// Report joins the last frame with the metrics of its drawn points.
func (e *Engine) Report() schema.FrameReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	slice, _ := e.dataset.Slice(e.last.Index)
	report := BuildReport(e.last, slice)
	report.SliceCount = e.dataset.Len()
	return report
}

// Dataset returns the installed dataset, or nil while none is loaded.
func (e *Engine) Dataset() *schema.Dataset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dataset
}

// Categories lists the dataset's categories in legend order.
func (e *Engine) Categories() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.render.Categories...)
}

// Scales returns the scales for the current dataset and viewport.
func (e *Engine) Scales() Scales {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scalesLocked()
}

// ScaleComputations counts how many times scales were derived from bounds.
func (e *Engine) ScaleComputations() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scaleComputations
}

// TickPending reports whether an autoplay tick is scheduled.
func (e *Engine) TickPending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.Pending()
}

// TickInterval returns the autoplay step duration.
func (e *Engine) TickInterval() time.Duration {
	return e.ctrl.Interval()
}

// Closed reports whether Close was called.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// replaceLocked stops playback, installs ds and resets the view.
func (e *Engine) replaceLocked(ds *schema.Dataset) {
	e.ctrl.Stop()
	e.installLocked(ds)
	e.view = schema.NewViewState(e.view.ViewportWidth, e.view.ViewportHeight)
}

// installLocked derives everything that depends only on the dataset.
func (e *Engine) installLocked(ds *schema.Dataset) {
	e.dataset = ds
	e.datasetGen++
	e.scalesCached = false
	e.loading = false
	e.loadErr = nil
	e.bounds = ComputeBounds(ds, e.opts.Scale)
	e.render.Categories = ds.Categories()
	e.render.Palette = BuildPalette(e.render.Categories)
	e.render.LegendBreakpoints = ResolveLegendBreakpoints(e.bounds, e.opts.LegendMode, e.opts.LegendBreakpoints)
}

// scalesLocked returns cached scales, recomputing only when the dataset or
// the viewport changed.
func (e *Engine) scalesLocked() Scales {
	if e.dataset == nil {
		return Scales{}
	}
	key := scaleKey{gen: e.datasetGen, width: e.view.ViewportWidth, height: e.view.ViewportHeight}
	if e.scalesCached && key == e.scalesKey {
		return e.scales
	}
	e.scales = ScalesFromBounds(e.bounds, key.width, key.height, e.opts.Scale)
	e.scalesKey = key
	e.scalesCached = true
	e.scaleComputations++
	return e.scales
}

// frameLocked renders the current state without emitting it.
func (e *Engine) frameLocked() schema.Frame {
	if e.dataset == nil {
		frame := schema.Frame{
			Title:    e.opts.Title,
			Subtitle: e.opts.Subtitle,
			Playback: e.view.Playback,
			Width:    e.view.ViewportWidth,
			Height:   e.view.ViewportHeight,
			Loading:  e.loading,
		}
		if e.loadErr != nil {
			frame.Error = e.loadErr.Error()
		}
		return frame
	}
	slice, _ := e.dataset.Slice(e.view.ActiveIndex)
	return Render(slice, e.view.ActiveIndex, e.scalesLocked(), e.view, e.render)
}

// emitLocked renders, stamps and records a frame and snapshots subscribers.
func (e *Engine) emitLocked() (schema.Frame, []FrameFunc) {
	frame := e.frameLocked()
	e.seq++
	frame.Seq = e.seq
	e.last = frame
	subs := make([]FrameFunc, 0, len(e.subs))
	for id := 0; id < e.nextSub; id++ {
		if fn, ok := e.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	return frame, subs
}

func drawnPoint(frame schema.Frame, id string) (schema.Primitive, bool) {
	for _, p := range frame.Points {
		if p.PointID == id {
			return p, true
		}
	}
	return schema.Primitive{}, false
}

func notify(subs []FrameFunc, frame schema.Frame) {
	for _, fn := range subs {
		fn(frame)
	}
}
