// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package canvas

import (
	"encoding/json"
	"image/color"
	"io"
	"unicode/utf8"
)

type OpKind string

const (
	OpBackground OpKind = "background"
	OpLine       OpKind = "line"
	OpRect       OpKind = "rect"
	OpText       OpKind = "text"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   OpKind     `json:"kind"`
	Points []Point    `json:"points,omitempty"`
	Width  float64    `json:"width,omitempty"`
	Color  color.RGBA `json:"color"`
	Text   string     `json:"text,omitempty"`
	Size   float64    `json:"size,omitempty"`
}

// Recorder is a Canvas that keeps every call in order instead of rasterizing.
// Text metrics are approximated from the font size so results are stable
// across hosts.
type Recorder struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Ops    []Op `json:"ops"`
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) FillBackground(c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpBackground, Color: c})
}

func (r *Recorder) DrawLine(points []Point, width float64, c color.RGBA) {
	pts := make([]Point, len(points))
	copy(pts, points)
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: pts, Width: width, Color: c})
}

func (r *Recorder) FillRect(topLeft, bottomRight Point, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Points: []Point{topLeft, bottomRight}, Color: c})
}

func (r *Recorder) MeasureText(text string, style TextStyle) (float64, float64) {
	return float64(utf8.RuneCountInString(text)) * style.Size * 0.6, style.Size
}

func (r *Recorder) DrawText(text string, style TextStyle, pos Point) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Points: []Point{pos}, Color: style.Color, Text: text, Size: style.Size})
}

// Present writes the recorded calls as JSON.
func (r *Recorder) Present(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Filter returns the recorded calls of one kind, in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

// Count returns how many calls of kind were drawn with color c.
func (r *Recorder) Count(kind OpKind, c color.RGBA) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind && op.Color == c {
			n++
		}
	}
	return n
}
