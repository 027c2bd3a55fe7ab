package outwriter

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/motionchart/schema"
)

const (
	svgFont       = "Helvetica, Arial, sans-serif"
	svgBackground = "#ffffff"
	tooltipFill   = "#ffffff"
	tooltipStroke = "#888888"
)

// FrameSVG serialises a frame as a standalone SVG document.
// Primitives are painted in frame order and carry their key as data-key.
func FrameSVG(frame schema.Frame) string {
	w, h := frame.Width, frame.Height
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s">`,
		num(w), num(h), num(w), num(h), svgFont)
	b.WriteString("\n")
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", svgBackground)

	for _, p := range frame.Primitives() {
		writePrimitive(&b, p)
	}

	switch {
	case frame.Error != "":
		writeNotice(&b, w, h, "Could not load data: "+frame.Error)
	case frame.Loading:
		writeNotice(&b, w, h, "Loading data...")
	}
	if frame.Tooltip != nil {
		writeTooltip(&b, frame.Tooltip)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func writePrimitive(b *strings.Builder, p schema.Primitive) {
	switch p.Kind {
	case schema.CircleKind:
		fmt.Fprintf(b, `<circle data-key="%s" cx="%s" cy="%s" r="%s"%s%s/>`,
			esc(p.Key), num(p.X), num(p.Y), num(p.R), paint(p), opacity(p.Opacity))
	case schema.LineKind:
		fmt.Fprintf(b, `<line data-key="%s" x1="%s" y1="%s" x2="%s" y2="%s"%s%s/>`,
			esc(p.Key), num(p.X), num(p.Y), num(p.X2), num(p.Y2), paint(p), opacity(p.Opacity))
	case schema.RectKind:
		fmt.Fprintf(b, `<rect data-key="%s" x="%s" y="%s" width="%s" height="%s"%s%s/>`,
			esc(p.Key), num(p.X), num(p.Y), num(p.Width), num(p.Height), paint(p), opacity(p.Opacity))
	case schema.TextKind:
		anchor := p.Anchor
		if anchor == "" {
			anchor = "start"
		}
		fmt.Fprintf(b, `<text data-key="%s" x="%s" y="%s" font-size="%s" text-anchor="%s"%s%s>%s</text>`,
			esc(p.Key), num(p.X), num(p.Y), num(p.FontSize), anchor, paint(p), opacity(p.Opacity), esc(p.Text))
	default:
		return
	}
	b.WriteString("\n")
}

func writeNotice(b *strings.Builder, w, h float64, msg string) {
	fmt.Fprintf(b, `<text data-key="notice" x="%s" y="%s" font-size="14" text-anchor="middle" fill="#666666">%s</text>`+"\n",
		num(w/2), num(h/2), esc(msg))
}

// writeTooltip draws the hovered point's details in a box at the tooltip origin.
func writeTooltip(b *strings.Builder, tip *schema.Tooltip) {
	lines := []string{
		tip.Label,
		"Category: " + tip.Category,
		"Time: " + tip.TimeKey,
		fmt.Sprintf("x: %s  y: %s", schema.FormatCompact(tip.XMetric), schema.FormatCompact(tip.YMetric)),
		"Size: " + schema.FormatCompact(tip.SizeMetric),
	}
	fmt.Fprintf(b, `<g data-key="tooltip" transform="translate(%s %s)">`, num(tip.X), num(tip.Y))
	fmt.Fprintf(b, `<rect width="180" height="%d" rx="4" fill="%s" stroke="%s"/>`, 14*len(lines)+8, tooltipFill, tooltipStroke)
	for i, line := range lines {
		weight := ""
		if i == 0 {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(b, `<text x="8" y="%d" font-size="11"%s>%s</text>`, 16+14*i, weight, esc(line))
	}
	b.WriteString("</g>\n")
}

// paint returns the fill and stroke attributes. Shapes without a fill stay hollow.
func paint(p schema.Primitive) string {
	var s strings.Builder
	fill := p.Fill
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(&s, ` fill="%s"`, esc(fill))
	if p.Stroke != "" {
		fmt.Fprintf(&s, ` stroke="%s" stroke-width="%s"`, esc(p.Stroke), num(p.StrokeWidth))
	}
	return s.String()
}

func opacity(v float64) string {
	if v >= 1 {
		return ""
	}
	return ` opacity="` + num(v) + `"`
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
