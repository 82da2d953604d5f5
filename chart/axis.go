// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

import (
	"fmt"

	"github.com/signal18/tempbars/canvas"
)

const (
	// GridLines is the number of horizontal gridlines, and y-axis labels.
	GridLines = 10
	// VerticalGridLines split the x axis in quarters.
	VerticalGridLines = 4

	yLabelGap   = 12
	monthLabelY = 10
	ordinalPadY = 5
	tickLength  = 8
)

// TextMeasurer is the part of a canvas needed to place labels.
type TextMeasurer interface {
	MeasureText(text string, style canvas.TextStyle) (width, height float64)
}

// Label is a positioned axis label. Pos is the top-left corner of its text box.
type Label struct {
	Text   string
	Pos    canvas.Point
	Value  float64
	Bucket int
}

// Gridline is a straight line across the axis box plus the tick mark drawn
// outside of it on the matching axis.
type Gridline struct {
	From canvas.Point
	To   canvas.Point
	Tick [2]canvas.Point
}

// XLabels places one label per bucket, centred below its segment.
func XLabels(g Granularity, l CanvasLayout, m TextMeasurer, style canvas.TextStyle) ([]Label, error) {
	if !g.Valid() {
		return nil, &UnsupportedGranularityError{Token: string(g)}
	}
	var y float64
	if g == Month {
		y = l.BaselineY() + monthLabelY
	} else {
		_, h := m.MeasureText("55", style)
		y = l.BaselineY() + h/2 + ordinalPadY
	}
	labels := make([]Label, 0, g.Buckets())
	for i := 1; i <= g.Buckets(); i++ {
		text := g.Label(i)
		w, _ := m.MeasureText(text, style)
		labels = append(labels, Label{
			Text:   text,
			Pos:    canvas.Pt(g.Center(i, l)-w/2, y),
			Value:  float64(i),
			Bucket: i,
		})
	}
	return labels, nil
}

// YLabels returns the value labels of the horizontal gridlines, top first,
// right-aligned against the y axis.
func YLabels(r ValueRange, l CanvasLayout, m TextMeasurer, style canvas.TextStyle) []Label {
	lines := HorizontalGridlines(l)
	labels := make([]Label, 0, len(lines))
	for i, line := range lines {
		v := r.Highest - r.TickStep()*float64(i)
		text := formatTick(v)
		w, h := m.MeasureText(text, style)
		labels = append(labels, Label{
			Text:  text,
			Pos:   canvas.Pt(l.Left-yLabelGap-w, line.From.Y-h/2),
			Value: v,
		})
	}
	return labels
}

func formatTick(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}

// HorizontalGridlines returns GridLines lines, the first on the top edge of
// the axis box, each with a tick on the y axis.
func HorizontalGridlines(l CanvasLayout) []Gridline {
	lines := make([]Gridline, 0, GridLines)
	for i := 0; i < GridLines; i++ {
		y := l.Top + float64(i)*l.AxisHeight()/GridLines
		lines = append(lines, Gridline{
			From: canvas.Pt(l.Left, y),
			To:   canvas.Pt(l.RightX(), y),
			Tick: [2]canvas.Point{canvas.Pt(l.Left-tickLength, y), canvas.Pt(l.Left, y)},
		})
	}
	return lines
}

// VerticalGridlines returns the lines closing each quarter of the x axis,
// the last one on the right edge of the axis box.
func VerticalGridlines(l CanvasLayout) []Gridline {
	lines := make([]Gridline, 0, VerticalGridLines)
	base := l.BaselineY()
	for i := 1; i <= VerticalGridLines; i++ {
		x := l.Left + float64(i)*l.AxisWidth()/VerticalGridLines
		lines = append(lines, Gridline{
			From: canvas.Pt(x, l.Top),
			To:   canvas.Pt(x, base),
			Tick: [2]canvas.Point{canvas.Pt(x, base), canvas.Pt(x, base+tickLength)},
		})
	}
	return lines
}

// Gridlines returns the vertical then the horizontal gridlines.
func Gridlines(l CanvasLayout) []Gridline {
	return append(VerticalGridlines(l), HorizontalGridlines(l)...)
}
