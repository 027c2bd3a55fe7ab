package preview

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/motionchart/core"
	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/internal/dataset"
	"github.com/huangsam/motionchart/schema"
)

func pt(id, category string, x, y, size float64) schema.DataPoint {
	return schema.DataPoint{ID: id, Label: id, XMetric: x, YMetric: y, SizeMetric: size, Category: category}
}

func worldDataset() *schema.Dataset {
	return &schema.Dataset{Slices: []schema.TimeSlice{
		{Key: "1990", Points: []schema.DataPoint{pt("A", "asia", 1000, 60, 1e9), pt("B", "europe", 20000, 75, 5e7)}},
		{Key: "2000", Points: []schema.DataPoint{pt("A", "asia", 2000, 65, 1.1e9), pt("B", "europe", 30000, 78, 5.2e7)}},
		{Key: "2010", Points: []schema.DataPoint{pt("A", "asia", 5000, 70, 1.2e9), pt("B", "europe", 45000, 80, 5.5e7)}},
	}}
}

func newTestEngine(t *testing.T, ds *schema.Dataset) *core.Engine {
	t.Helper()
	opts := core.DefaultOptions()
	opts.Title = "World"
	opts.Dataset = ds
	opts.Scheduler = core.NewManualScheduler()
	e, err := core.New(opts)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

// frameQueue collects engine frames for replay into a model.
type frameQueue struct {
	frames []schema.Frame
}

func (q *frameQueue) push(f schema.Frame) {
	q.frames = append(q.frames, f)
}

func newTestModel(t *testing.T) (Model, *core.Engine) {
	t.Helper()
	e := newTestEngine(t, worldDataset())

	m := New(e, nil, nil)
	return update(m, tea.WindowSizeMsg{Width: 120, Height: 40}), e
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelResizeFollowsWindow(t *testing.T) {
	m, e := newTestModel(t)
	state := e.State()
	assert.Equal(t, 960.0, state.ViewportWidth)
	assert.Equal(t, float64((40-statusLines)*16), state.ViewportHeight)
	assert.Equal(t, state.ViewportWidth, m.frame.Width)

	m = update(m, tea.WindowSizeMsg{Width: 2, Height: 2})
	assert.Empty(t, m.frame.Points, "a window smaller than the status bar leaves no chart")
}

func TestModelKeys(t *testing.T) {
	m, e := newTestModel(t)

	m = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, schema.Playing, e.State().Playback)
	assert.True(t, e.TickPending())
	m = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, schema.Paused, e.State().Playback)

	m = update(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.frame.Index)
	m = update(m, runeKey("l"))
	assert.Equal(t, "2010", m.frame.TimeKey)
	m = update(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.frame.Index)

	m = update(m, runeKey("r"))
	assert.Equal(t, 0, m.frame.Index)
	assert.Equal(t, schema.Idle, m.frame.Playback)
}

func TestModelCyclesHighlight(t *testing.T) {
	m, e := newTestModel(t)
	var seen []string
	for range 3 {
		m = update(m, runeKey("c"))
		seen = append(seen, e.State().HighlightedCategory)
	}
	assert.Equal(t, []string{"asia", "europe", ""}, seen)
	assert.Empty(t, m.frame.Highlight)
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestModelDropsStaleFrames(t *testing.T) {
	m, _ := newTestModel(t)
	current := m.frame

	m = update(m, frameMsg(schema.Frame{Seq: 0, TimeKey: "stale"}))
	assert.Equal(t, current.TimeKey, m.frame.TimeKey)

	m = update(m, frameMsg(schema.Frame{Seq: current.Seq + 5, TimeKey: "2000", Index: 1}))
	assert.Equal(t, "2000", m.frame.TimeKey)
}

func TestModelMouseHover(t *testing.T) {
	m, e := newTestModel(t)
	a, ok := findPoint(m.frame, "A")
	require.True(t, ok)

	col, row := toCell(a.X, a.Y)
	px, py := (float64(col)+0.5)*8, (float64(row)+0.5)*16
	expected, hit := core.HitTest(m.frame, px, py)
	require.True(t, hit)

	m = update(m, tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion})
	assert.Equal(t, expected, e.State().HoveredPointID)
	require.NotNil(t, m.frame.Tooltip)
	assert.Contains(t, m.View(), m.frame.Tooltip.Label)

	m = update(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	assert.False(t, e.State().HasHover())
	assert.Nil(t, m.frame.Tooltip)
}

func TestModelMouseClickLegend(t *testing.T) {
	m, e := newTestModel(t)
	var swatch schema.Primitive
	for _, p := range m.frame.Legend {
		if p.Key == "legend-cat-asia" {
			swatch = p
		}
	}
	require.Equal(t, "asia", swatch.Category)

	col, row := toCell(swatch.X+swatch.Width/2, swatch.Y+swatch.Height/2)
	category, hit := core.LegendHitTest(m.frame, (float64(col)+0.5)*8, (float64(row)+0.5)*16)
	require.True(t, hit)

	m = update(m, tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, category, e.State().HighlightedCategory)
	assert.Equal(t, category, m.frame.Highlight)
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "idle 1990")
	assert.Contains(t, view, "slice 1/3")
	assert.Contains(t, view, "q quit")
	assert.Contains(t, view, "World")

	m = update(m, runeKey("c"))
	assert.Contains(t, m.View(), "highlight: asia")
}

func TestModelViewLoadStates(t *testing.T) {
	m := Model{frame: schema.Frame{Loading: true}, sliceCount: 0}
	assert.Contains(t, m.View(), "Loading data...")

	m.frame = schema.Frame{Error: "load x: boom"}
	assert.Contains(t, m.View(), "Could not load data: load x: boom")
}

func TestNextCategory(t *testing.T) {
	cats := []string{"asia", "europe"}
	assert.Equal(t, "asia", nextCategory(cats, ""))
	assert.Equal(t, "europe", nextCategory(cats, "asia"))
	assert.Equal(t, "", nextCategory(cats, "europe"))
	assert.Equal(t, "", nextCategory(nil, ""))
}

func findPoint(frame schema.Frame, id string) (schema.Primitive, bool) {
	for _, p := range frame.Points {
		if p.PointID == id {
			return p, true
		}
	}
	return schema.Primitive{}, false
}

func TestModelTweensBetweenSlices(t *testing.T) {
	m, _ := newTestModel(t)
	for m.tween < tweenSteps {
		m = update(m, tweenMsg{seq: m.frame.Seq})
	}
	from, ok := findPoint(m.frame, "A")
	require.True(t, ok)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	require.NotNil(t, cmd)
	to, ok := findPoint(m.frame, "A")
	require.True(t, ok)
	require.NotEqual(t, from.X, to.X)

	start, ok := findPoint(m.drawn(), "A")
	require.True(t, ok)
	assert.InDelta(t, from.X, start.X, 1e-9)

	m = update(m, tweenMsg{seq: m.frame.Seq})
	m = update(m, tweenMsg{seq: m.frame.Seq - 1})
	m = update(m, tweenMsg{seq: m.frame.Seq})
	mid, ok := findPoint(m.drawn(), "A")
	require.True(t, ok)
	assert.InDelta(t, (from.X+to.X)/2, mid.X, 1e-9)
	assert.InDelta(t, (from.R+to.R)/2, mid.R, 1e-9)

	m = update(m, tweenMsg{seq: m.frame.Seq})
	m = update(m, tweenMsg{seq: m.frame.Seq})
	assert.Equal(t, tweenSteps, m.tween)
	assert.Equal(t, m.frame, m.drawn())
}

func TestModelUnchangedInputStartsNoTween(t *testing.T) {
	m, _ := newTestModel(t)
	seq := m.frame.Seq
	_, cmd := m.Update(runeKey("x"))
	assert.Nil(t, cmd)
	assert.Equal(t, seq, m.frame.Seq)
}

func TestModelLoadsAfterStart(t *testing.T) {
	e := newTestEngine(t, nil)
	p := &dataset.MockProvider{}
	p.On("Load", mock.Anything).Return(worldDataset(), nil)
	cfg := &contract.Config{TimeKey: "2000", Highlight: "europe"}

	m := New(e, nil, loadCmd(context.Background(), e, p, cfg))
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	q := &frameQueue{}
	e.Subscribe(q.push)
	require.NotNil(t, m.Init())
	assert.NotContains(t, m.View(), "slice")

	msg := m.Init()()
	require.IsType(t, loadedMsg{}, msg)
	require.NoError(t, msg.(loadedMsg).err)

	require.NotEmpty(t, q.frames)
	require.True(t, q.frames[0].Loading)
	m = update(m, frameMsg(q.frames[0]))
	assert.Contains(t, m.View(), "Loading data...")

	for _, f := range q.frames[1:] {
		m = update(m, frameMsg(f))
	}
	m = update(m, msg)
	view := m.View()
	assert.Contains(t, view, "slice 2/3")
	assert.Contains(t, view, "highlight: europe")
	assert.Equal(t, []string{"asia", "europe"}, m.categories)
	assert.Len(t, m.frame.Points, 2)
	p.AssertExpectations(t)
}

func TestModelLoadFailureStaysOpen(t *testing.T) {
	e := newTestEngine(t, nil)
	q := &frameQueue{}
	e.Subscribe(q.push)

	p := &dataset.MockProvider{}
	p.On("Load", mock.Anything).Return(nil, errors.New("404 Not Found"))
	p.On("Source").Return("http://example.com/data/motion-chart.json")

	m := New(e, nil, loadCmd(context.Background(), e, p, &contract.Config{}))
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	msg := m.Init()()
	for _, f := range q.frames {
		m = update(m, frameMsg(f))
	}
	next, cmd := m.Update(msg)
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.False(t, m.quitting)
	assert.Contains(t, m.View(), "Could not load data: load http://example.com/data/motion-chart.json: 404 Not Found")
	assert.True(t, m.frame.Empty())
}

func TestModelSelectionErrorAfterLoad(t *testing.T) {
	e := newTestEngine(t, nil)
	p := &dataset.MockProvider{}
	p.On("Load", mock.Anything).Return(worldDataset(), nil)

	m := New(e, nil, loadCmd(context.Background(), e, p, &contract.Config{TimeKey: "1850"}))
	m = update(m, m.Init()())
	assert.Contains(t, m.View(), `unknown time key "1850"`)
	assert.NotEmpty(t, m.frame.Points)
}

func TestModelDebouncesResize(t *testing.T) {
	e := newTestEngine(t, worldDataset())
	sched := core.NewManualScheduler()
	m := New(e, core.NewResizeAdapter(e, sched, 100*time.Millisecond), nil)
	before := e.State().ViewportWidth

	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, before, e.State().ViewportWidth)

	assert.Equal(t, 1, sched.Advance(100*time.Millisecond))
	assert.Equal(t, 800.0, e.State().ViewportWidth)
	m = update(m, frameMsg(e.Frame()))
	assert.Equal(t, 800.0, m.frame.Width)
}
