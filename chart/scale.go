// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

import "math"

// Padding extends the known extremes so bars and labels never touch the
// edges of the axis box. Both sides must be positive.
type Padding struct {
	Below float64
	Above float64
}

var DefaultPadding = Padding{Below: 10, Above: 5}

// ZeroBranch records where the logical zero sits relative to the padded range.
type ZeroBranch int

const (
	BelowZero ZeroBranch = iota // range starts below zero
	AtZero                      // range starts exactly at zero
	AboveZero                   // whole range is positive
)

func (z ZeroBranch) String() string {
	switch z {
	case BelowZero:
		return "below-zero"
	case AtZero:
		return "at-zero"
	case AboveZero:
		return "above-zero"
	}
	return "unknown"
}

// ValueRange is the padded value range of a render and its pixel scale.
//
// ZeroOffsetPixels is the correction added to value*PixelsPerUnit so that bar
// heights are measured from the baseline:
//
//	Lowest < 0:  -(Lowest * PixelsPerUnit)
//	Lowest == 0: 0
//	Lowest > 0:  (0 - Lowest - 1) * PixelsPerUnit
//
// The sign of the result selects the extra one-unit correction in MapBar.
// The sign follows these formulas: a negative Lowest gives a positive offset
// and a positive Lowest a negative one.
type ValueRange struct {
	Lowest           float64
	Highest          float64
	Span             float64
	PixelsPerUnit    float64
	ZeroOffsetPixels float64
	Branch           ZeroBranch
}

// NewValueRange derives the padded range from the long-run extremes of a
// series. knownLow and knownHigh usually come from a broader record than the
// rendered year.
func NewValueRange(knownLow, knownHigh float64, l CanvasLayout, p Padding) (ValueRange, error) {
	for _, v := range []float64{knownLow, knownHigh, p.Below, p.Above} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ValueRange{}, &InvalidRangeError{KnownLow: knownLow, KnownHigh: knownHigh, Reason: "non-finite input"}
		}
	}
	if p.Below <= 0 || p.Above <= 0 {
		return ValueRange{}, &InvalidRangeError{KnownLow: knownLow, KnownHigh: knownHigh, Reason: "padding must be positive on both sides"}
	}
	if l.AxisHeight() <= 0 {
		return ValueRange{}, &InvalidRangeError{KnownLow: knownLow, KnownHigh: knownHigh, Reason: "axis height is not positive"}
	}

	r := ValueRange{
		Lowest:  knownLow - p.Below,
		Highest: knownHigh + p.Above,
	}
	r.Span = r.Highest - r.Lowest
	if r.Span <= 0 {
		return ValueRange{}, &InvalidRangeError{KnownLow: knownLow, KnownHigh: knownHigh, Lowest: r.Lowest, Highest: r.Highest}
	}
	r.PixelsPerUnit = l.AxisHeight() / r.Span

	switch {
	case r.Lowest < 0:
		r.Branch = BelowZero
		r.ZeroOffsetPixels = -(r.Lowest * r.PixelsPerUnit)
	case r.Lowest == 0:
		r.Branch = AtZero
		r.ZeroOffsetPixels = 0
	default:
		r.Branch = AboveZero
		r.ZeroOffsetPixels = (0 - r.Lowest - 1) * r.PixelsPerUnit
	}
	return r, nil
}

// TickStep is the value distance between two horizontal gridlines.
func (r ValueRange) TickStep() float64 {
	return r.Span / GridLines
}

// Contains reports whether v lies inside the padded range.
func (r ValueRange) Contains(v float64) bool {
	return v >= r.Lowest && v <= r.Highest
}
