// Package preview is the interactive terminal view of a chart engine.
package preview

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/huangsam/motionchart/core"
	"github.com/huangsam/motionchart/internal/termsize"
	"github.com/huangsam/motionchart/schema"
)

// statusLines is the number of rows below the chart.
const statusLines = 3

var (
	statusStyle  = lipgloss.NewStyle().Bold(true)
	tooltipStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#333", Dark: "#ddd"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d62728"))
)

// Chart is the part of the engine the preview drives.
type Chart interface {
	TogglePlay()
	Step(delta int)
	Reset()
	Resize(width, height float64)
	PointerMove(x, y float64)
	PointerClick(x, y float64) bool
	SetHighlight(category string) error
	State() schema.ViewState
	Frame() schema.Frame
	Categories() []string
	Dataset() *schema.Dataset
	Subscribe(fn core.FrameFunc) func()
}

var _ Chart = (*core.Engine)(nil) // Compile-time check

// Sizer receives the measured chart area in pixels.
type Sizer interface {
	Observe(size core.Size)
}

var _ Sizer = (*core.ResizeAdapter)(nil) // Compile-time check

// frameMsg carries a frame emitted off the UI goroutine, such as an autoplay tick.
type frameMsg schema.Frame

// Model is the bubbletea model of the preview.
type Model struct {
	chart      Chart
	sizer      Sizer
	load       tea.Cmd
	frame      schema.Frame
	scene      *core.Scene
	diff       core.SceneDiff
	tween      int // Sub-frames of the current transition already shown
	categories []string
	sliceCount int
	loadErr    error
	help       help.Model
	width      int
	height     int
	quitting   bool
}

// New creates a model for a chart. Window sizes go through sizer, or straight
// to the chart when sizer is nil. load, when set, runs as the program starts.
func New(chart Chart, sizer Sizer, load tea.Cmd) Model {
	if sizer == nil {
		sizer = core.NewResizeAdapter(chart, nil, 0)
	}
	m := Model{
		chart: chart,
		sizer: sizer,
		load:  load,
		frame: chart.Frame(),
		scene: core.NewScene(),
		tween: tweenSteps,
		help:  help.New(),
	}
	m.scene.Apply(m.frame)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.load
}

// refresh rereads what depends on the installed dataset.
func (m *Model) refresh() {
	m.categories = m.chart.Categories()
	m.sliceCount = m.chart.Dataset().Len()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		cmd := m.accept(schema.Frame(msg))
		return m, cmd

	case loadedMsg:
		m.loadErr = msg.err
		m.refresh()

	case tweenMsg:
		if msg.seq != m.frame.Seq || m.tween >= tweenSteps {
			return m, nil
		}
		m.tween++
		if m.tween < tweenSteps {
			return m, tweenTick(msg.seq)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cols, rows := m.chartSize()
		w, h := termsize.Size{Cols: cols, Rows: rows}.Pixels()
		m.sizer.Observe(core.Size{Width: w, Height: h})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Play):
			m.chart.TogglePlay()
		case key.Matches(msg, keys.Back):
			m.chart.Step(-1)
		case key.Matches(msg, keys.Forward):
			m.chart.Step(1)
		case key.Matches(msg, keys.Reset):
			m.chart.Reset()
		case key.Matches(msg, keys.Highlight):
			_ = m.chart.SetHighlight(nextCategory(m.categories, m.chart.State().HighlightedCategory))
		}

	case tea.MouseMsg:
		x := (float64(msg.X) + 0.5) * termsize.CellWidth
		y := (float64(msg.Y) + 0.5) * termsize.CellHeight
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.chart.PointerClick(x, y)
		case msg.Action == tea.MouseActionMotion:
			m.chart.PointerMove(x, y)
		}
	}

	cmd := m.accept(m.chart.Frame())
	return m, cmd
}

// accept keeps the newest frame and starts the transition into it.
// Frames can arrive out of order from ticks.
func (m *Model) accept(f schema.Frame) tea.Cmd {
	if f.Seq <= m.frame.Seq {
		return nil
	}
	m.frame = f
	m.diff = m.scene.Apply(f)
	if m.diff.Empty() {
		m.tween = tweenSteps
		return nil
	}
	m.tween = 0
	return tweenTick(f.Seq)
}

// drawn is the frame on screen, part way through a transition.
func (m Model) drawn() schema.Frame {
	if m.tween >= tweenSteps {
		return m.frame
	}
	return tweenFrame(m.frame, m.diff, float64(m.tween)/tweenSteps)
}

// chartSize is the grid left for the chart once the status bar is placed.
func (m Model) chartSize() (int, int) {
	return m.width, max(m.height-statusLines, 0)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	cols, rows := m.chartSize()

	var b strings.Builder
	switch {
	case m.frame.Error != "":
		b.WriteString(errorStyle.Render("Could not load data: " + m.frame.Error))
	case m.frame.Loading:
		b.WriteString("Loading data...")
	default:
		b.WriteString(drawFrame(m.drawn(), cols, rows).Render())
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n")
	if m.loadErr != nil && m.frame.Error == "" {
		b.WriteString(errorStyle.Render(m.loadErr.Error()))
	} else {
		b.WriteString(tooltipStyle.Render(tooltipLine(m.frame.Tooltip)))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) status() string {
	parts := []string{fmt.Sprintf("%s %s %s", playbackGlyph(m.frame.Playback), m.frame.Playback, m.frame.TimeKey)}
	if m.sliceCount > 0 {
		parts = append(parts, fmt.Sprintf("slice %d/%d", m.frame.Index+1, m.sliceCount))
	}
	if m.frame.Highlight != "" {
		parts = append(parts, "highlight: "+m.frame.Highlight)
	}
	return strings.Join(parts, " | ")
}

func playbackGlyph(state schema.PlaybackState) string {
	switch state {
	case schema.Playing:
		return "▶"
	case schema.Paused:
		return "⏸"
	default:
		return "■"
	}
}

func tooltipLine(t *schema.Tooltip) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s) x=%s y=%s size=%s", t.Label, t.Category,
		schema.FormatCompact(t.XMetric), schema.FormatCompact(t.YMetric), schema.FormatCompact(t.SizeMetric))
}

// nextCategory cycles through the categories and then back to no highlight.
func nextCategory(categories []string, current string) string {
	i := slices.Index(categories, current)
	if i+1 >= len(categories) {
		return ""
	}
	return categories[i+1]
}
