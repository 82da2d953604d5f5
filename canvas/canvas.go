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
	"fmt"
	"image/color"
	"io"
	"sort"
)

// Point is a pixel coordinate, origin top-left.
type Point struct {
	X float64
	Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

type TextStyle struct {
	Family string
	Size   float64
	Color  color.RGBA
}

// Canvas is the drawing surface a chart is rendered onto. Text positions are
// the top-left corner of the text box as returned by MeasureText.
type Canvas interface {
	FillBackground(c color.RGBA)
	DrawLine(points []Point, width float64, c color.RGBA)
	FillRect(topLeft, bottomRight Point, c color.RGBA)
	MeasureText(text string, style TextStyle) (width, height float64)
	DrawText(text string, style TextStyle, pos Point)
	Present(w io.Writer) error
}

// Factory builds a canvas of the given pixel size.
type Factory func(width, height int) (Canvas, error)

var backends = map[string]Factory{
	"recorder": func(width, height int) (Canvas, error) {
		return NewRecorder(width, height), nil
	},
	"gg": NewGG,
}

func register(name string, f Factory) {
	backends[name] = f
}

// New returns a canvas built by the named backend.
func New(backend string, width, height int) (Canvas, error) {
	f, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("unknown canvas backend %q (available: %v)", backend, Backends())
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	return f(width, height)
}

func Backends() []string {
	var names []string
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// normRect orders two corners so the first is the top-left one.
func normRect(a, b Point) (x, y, w, h float64) {
	x, y = a.X, a.Y
	w, h = b.X-a.X, b.Y-a.Y
	if w < 0 {
		x, w = b.X, -w
	}
	if h < 0 {
		y, h = b.Y, -h
	}
	return
}

// HaveCairo reports whether the cairo backend was compiled in.
func HaveCairo() bool {
	return haveCairo
}
