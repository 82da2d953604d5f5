// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

// CanvasLayout holds the fixed geometry of one render. Build it once and pass
// it by value; nothing in this package keeps layout state.
type CanvasLayout struct {
	Width  float64
	Height float64
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultLayout is a 1280x790 canvas, roughly the golden ratio.
func DefaultLayout() CanvasLayout {
	return CanvasLayout{
		Width:  1280,
		Height: 790,
		Top:    60,
		Right:  40,
		Bottom: 40,
		Left:   120,
	}
}

// NewLayout validates that the margins leave a non-empty axis box.
func NewLayout(width, height, top, right, bottom, left float64) (CanvasLayout, error) {
	l := CanvasLayout{Width: width, Height: height, Top: top, Right: right, Bottom: bottom, Left: left}
	if top < 0 || right < 0 || bottom < 0 || left < 0 || l.AxisWidth() <= 0 || l.AxisHeight() <= 0 {
		return CanvasLayout{}, &InvalidLayoutError{Layout: l}
	}
	return l, nil
}

func (l CanvasLayout) AxisWidth() float64 {
	return l.Width - l.Left - l.Right
}

func (l CanvasLayout) AxisHeight() float64 {
	return l.Height - l.Top - l.Bottom
}

// BaselineY is the y coordinate of the x axis, the bottom of the axis box.
func (l CanvasLayout) BaselineY() float64 {
	return l.Top + l.AxisHeight()
}

func (l CanvasLayout) RightX() float64 {
	return l.Left + l.AxisWidth()
}
