package preview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/huangsam/motionchart/internal/termsize"
	"github.com/huangsam/motionchart/schema"
)

const (
	pointRune   = '●'
	hoveredRune = '◉'
	swatchRune  = '■'
	hLineRune   = '─'
	vLineRune   = '│'
	cornerRune  = '└'
)

// cell is one terminal character with its colour.
type cell struct {
	ch    rune
	color string
	faint bool
}

// canvas is a character grid in which one cell covers
// termsize.CellWidth x termsize.CellHeight pixels of a frame.
type canvas struct {
	cols, rows int
	cells      []cell
}

func newCanvas(cols, rows int) *canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	c := &canvas{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range c.cells {
		c.cells[i].ch = ' '
	}
	return c
}

func (c *canvas) set(col, row int, ch rune, color string, faint bool) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = cell{ch: ch, color: color, faint: faint}
}

func (c *canvas) at(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0
	}
	return c.cells[row*c.cols+col].ch
}

// toCell maps a pixel position to the cell containing it.
func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / termsize.CellWidth)), int(math.Floor(y / termsize.CellHeight))
}

// line draws horizontal and vertical segments. Other slopes are not used by frames.
func (c *canvas) line(p schema.Primitive) {
	c0, r0 := toCell(p.X, p.Y)
	c1, r1 := toCell(p.X2, p.Y2)
	switch {
	case r0 == r1:
		for col := min(c0, c1); col <= max(c0, c1); col++ {
			c.set(col, r0, hLineRune, p.Stroke, false)
		}
	case c0 == c1:
		for row := min(r0, r1); row <= max(r0, r1); row++ {
			c.set(c0, row, vLineRune, p.Stroke, false)
		}
	}
}

// text writes s on the row holding y, aligned on x by anchor.
func (c *canvas) text(x, y float64, s, anchor, color string, faint bool) {
	col, row := toCell(x, y-1)
	runes := []rune(s)
	switch anchor {
	case "middle":
		col -= len(runes) / 2
	case "end":
		col -= len(runes)
	}
	for i, r := range runes {
		c.set(col+i, row, r, color, faint)
	}
}

// disc fills every cell whose centre lies inside the circle, and always the
// cell holding the centre so tiny points stay visible.
func (c *canvas) disc(x, y, r float64, ch rune, color string, faint bool) {
	cc, cr := toCell(x, y)
	spanC := int(math.Ceil(r/termsize.CellWidth)) + 1
	spanR := int(math.Ceil(r/termsize.CellHeight)) + 1
	for row := cr - spanR; row <= cr+spanR; row++ {
		for col := cc - spanC; col <= cc+spanC; col++ {
			dx := (float64(col)+0.5)*termsize.CellWidth - x
			dy := (float64(row)+0.5)*termsize.CellHeight - y
			if dx*dx+dy*dy <= r*r {
				c.set(col, row, pointRune, color, faint)
			}
		}
	}
	c.set(cc, cr, ch, color, faint)
}

// String returns the grid as plain text with trailing blanks trimmed.
func (c *canvas) String() string {
	lines := make([]string, c.rows)
	for row := range c.rows {
		var b strings.Builder
		for col := range c.cols {
			b.WriteRune(c.cells[row*c.cols+col].ch)
		}
		lines[row] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// Render returns the grid with runs of equally styled cells coloured by lipgloss.
func (c *canvas) Render() string {
	lines := make([]string, c.rows)
	for row := range c.rows {
		var b strings.Builder
		cells := c.cells[row*c.cols : (row+1)*c.cols]
		for start := 0; start < len(cells); {
			end := start + 1
			for end < len(cells) && cells[end].color == cells[start].color && cells[end].faint == cells[start].faint {
				end++
			}
			run := make([]rune, 0, end-start)
			for _, cl := range cells[start:end] {
				run = append(run, cl.ch)
			}
			style := lipgloss.NewStyle().Faint(cells[start].faint)
			if cells[start].color != "" {
				style = style.Foreground(lipgloss.Color(cells[start].color))
			}
			b.WriteString(style.Render(string(run)))
			start = end
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// drawFrame rasterises a frame onto a cols x rows grid. Grid lines and the
// time watermark are left out; the status bar carries the time key instead.
func drawFrame(frame schema.Frame, cols, rows int) *canvas {
	c := newCanvas(cols, rows)
	var xAxis, yAxis *schema.Primitive

	for i, p := range frame.Axes {
		switch {
		case p.Kind == schema.LineKind && p.Key == "axis-x":
			xAxis = &frame.Axes[i]
			c.line(p)
		case p.Kind == schema.LineKind && p.Key == "axis-y":
			yAxis = &frame.Axes[i]
			c.line(p)
		case p.Kind == schema.TextKind && p.Key != "watermark":
			c.text(p.X, p.Y, p.Text, p.Anchor, p.Fill, false)
		}
	}
	if xAxis != nil && yAxis != nil {
		col, row := toCell(yAxis.X, xAxis.Y)
		if c.at(col, row) != 0 {
			c.set(col, row, cornerRune, xAxis.Stroke, false)
		}
	}

	for _, p := range frame.Points {
		ch := pointRune
		if frame.Hovered != "" && p.PointID == frame.Hovered {
			ch = hoveredRune
		}
		c.disc(p.X, p.Y, p.R, ch, p.Fill, p.Opacity < 0.5)
	}
	for _, p := range frame.Labels {
		c.text(p.X, p.Y, p.Text, p.Anchor, p.Fill, p.Opacity < 0.5)
	}

	for _, p := range frame.Legend {
		switch p.Kind {
		case schema.RectKind:
			col, row := toCell(p.X, p.Y+p.Height/2)
			c.set(col, row, swatchRune, p.Fill, p.Opacity < 0.5)
		case schema.TextKind:
			if p.Category != "" {
				c.text(p.X, p.Y, p.Text, p.Anchor, p.Fill, p.Opacity < 0.5)
			}
		}
	}
	return c
}
