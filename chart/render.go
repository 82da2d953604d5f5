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
	"errors"
	"fmt"
	"image/color"

	"github.com/signal18/tempbars/canvas"
)

const (
	axisStroke = 5
	tickStroke = 3
	gridStroke = 1
)

// Style holds fonts and colours of a render.
type Style struct {
	Family     string
	TitleSize  float64
	XLabelSize float64
	YLabelSize float64
	Background color.RGBA
	Foreground color.RGBA
	Grid       color.RGBA
	High       color.RGBA
	Low        color.RGBA
}

func DefaultStyle() Style {
	return Style{
		Family:     "Sans",
		TitleSize:  36,
		XLabelSize: 14,
		YLabelSize: 18,
		Background: canvas.ParseColor("white"),
		Foreground: canvas.ParseColor("black"),
		Grid:       canvas.ParseColor("gray"),
		High:       canvas.ParseColor("red"),
		Low:        canvas.ParseColor("green"),
	}
}

func (s Style) text(size float64) canvas.TextStyle {
	return canvas.TextStyle{Family: s.Family, Size: size, Color: s.Foreground}
}

// Input is everything one chart is drawn from. Zero Layout, Padding, Mode and
// Style select the defaults.
type Input struct {
	City         string
	Year         int
	Granularity  Granularity
	KnownLow     float64
	KnownHigh    float64
	Observations []Observation
	Layout       CanvasLayout
	Padding      Padding
	Mode         ScaleMode
	Style        Style
}

func (in Input) withDefaults() Input {
	if in.Layout == (CanvasLayout{}) {
		in.Layout = DefaultLayout()
	}
	if in.Padding == (Padding{}) {
		in.Padding = DefaultPadding
	}
	if in.Mode == "" {
		in.Mode = ScaleParity
	}
	if in.Style == (Style{}) {
		in.Style = DefaultStyle()
	}
	return in
}

// Title is the heading of the chart.
func (in Input) Title() string {
	return fmt.Sprintf("%d %s  %s Avg Temperatures", in.Year, in.City, in.Granularity)
}

// Report describes what Draw put on the canvas. Problems holds the non-fatal
// conditions met on the way, in the order they were found.
type Report struct {
	Range    ValueRange
	HighBars int
	LowBars  int
	Skipped  int
	XLabels  []Label
	YLabels  []Label
	Problems []error
}

// Draw renders in onto c. An invalid value range is returned before any
// canvas call; every other condition is recorded in the report and the chart
// is drawn with whatever remains valid.
func Draw(c canvas.Canvas, in Input) (Report, error) {
	in = in.withDefaults()
	l := in.Layout
	r, err := NewValueRange(in.KnownLow, in.KnownHigh, l, in.Padding)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Range: r}
	st := in.Style

	c.FillBackground(st.Background)
	drawAxes(c, l, st)
	drawGrid(c, l, st)
	drawTitle(c, in)

	if !in.Granularity.Valid() {
		rep.Problems = append(rep.Problems, &UnsupportedGranularityError{Token: string(in.Granularity)})
		return rep, nil
	}

	xstyle := st.text(st.XLabelSize)
	rep.XLabels, _ = XLabels(in.Granularity, l, c, xstyle)
	for _, lb := range rep.XLabels {
		c.DrawText(lb.Text, xstyle, lb.Pos)
	}
	ystyle := st.text(st.YLabelSize)
	rep.YLabels = YLabels(r, l, c, ystyle)
	for _, lb := range rep.YLabels {
		c.DrawText(lb.Text, ystyle, lb.Pos)
	}

	m := Mapper{Layout: l, Range: r, Mode: in.Mode}
	obs := uniqueBuckets(in.Observations)
	for _, o := range obs {
		if o.Bucket < 1 || o.Bucket > in.Granularity.Buckets() {
			rep.Problems = append(rep.Problems, &BucketRangeError{Granularity: in.Granularity, Bucket: o.Bucket})
		}
	}
	var bad []error
	rep.HighBars, rep.Skipped, bad = drawBars(c, m, in.Granularity, obs, st.High, func(o Observation) Reading { return o.High })
	rep.Problems = append(rep.Problems, bad...)
	n, skipped, bad := drawBars(c, m, in.Granularity, obs, st.Low, func(o Observation) Reading { return o.Low })
	rep.Problems = append(rep.Problems, bad...)
	rep.LowBars = n
	rep.Skipped += skipped
	return rep, nil
}

func drawAxes(c canvas.Canvas, l CanvasLayout, st Style) {
	base := l.BaselineY()
	c.DrawLine([]canvas.Point{canvas.Pt(l.Left, l.Top), canvas.Pt(l.Left, base)}, axisStroke, st.Foreground)
	c.DrawLine([]canvas.Point{canvas.Pt(l.Left, base), canvas.Pt(l.RightX(), base)}, axisStroke, st.Foreground)
}

func drawGrid(c canvas.Canvas, l CanvasLayout, st Style) {
	for _, g := range Gridlines(l) {
		c.DrawLine([]canvas.Point{g.From, g.To}, gridStroke, st.Grid)
		c.DrawLine(g.Tick[:], tickStroke, st.Foreground)
	}
}

func drawTitle(c canvas.Canvas, in Input) {
	st := in.Style.text(in.Style.TitleSize)
	title := in.Title()
	w, h := c.MeasureText(title, st)
	c.DrawText(title, st, canvas.Pt((in.Layout.Width-w)/2, (in.Layout.Top-h)/2))
}

// drawBars fills one bar per observation with a valid reading and returns
// how many were drawn, how many had no reading and the non-finite readings.
// Out-of-range buckets are reported by Draw.
func drawBars(c canvas.Canvas, m Mapper, g Granularity, obs []Observation, clr color.RGBA, pick func(Observation) Reading) (drawn, missing int, problems []error) {
	for _, o := range obs {
		res := m.MapBar(pick(o), o.Bucket, g)
		switch res.Kind {
		case BarOK:
			c.FillRect(res.Rect.TopLeft, res.Rect.BottomRight, clr)
			drawn++
		case BarMissing:
			missing++
		case BarUnsupported:
			var nerr *NonFiniteReadingError
			if errors.As(res.Err, &nerr) {
				problems = append(problems, res.Err)
			}
		}
	}
	return drawn, missing, problems
}

// uniqueBuckets keeps the first observation of each bucket.
func uniqueBuckets(obs []Observation) []Observation {
	seen := make(map[int]bool, len(obs))
	out := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if seen[o.Bucket] {
			continue
		}
		seen[o.Bucket] = true
		out = append(out, o)
	}
	return out
}
