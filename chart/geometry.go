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
	"math"
	"strings"

	"github.com/aclements/go-moremath/scale"
	"github.com/signal18/tempbars/canvas"
)

// ScaleMode selects how a value becomes a bar height.
type ScaleMode string

const (
	// ScaleParity keeps the asymmetric zero-offset correction of the legacy
	// charts, pixel for pixel.
	ScaleParity ScaleMode = "parity"
	// ScaleLinear measures bars as (value - Lowest) * PixelsPerUnit.
	ScaleLinear ScaleMode = "linear"
)

func ParseScaleMode(s string) (ScaleMode, error) {
	switch ScaleMode(strings.ToLower(s)) {
	case "", ScaleParity:
		return ScaleParity, nil
	case ScaleLinear:
		return ScaleLinear, nil
	}
	return "", fmt.Errorf("unknown scale mode %q (want parity or linear)", s)
}

// Reading is one high or low value; Valid is false when the source had none.
type Reading struct {
	Value float64
	Valid bool
}

func Some(v float64) Reading {
	return Reading{Value: v, Valid: true}
}

// Missing is the absent reading.
var Missing = Reading{}

// Observation is the high/low pair of one bucket. Bucket is 1-based.
type Observation struct {
	Year   int
	Bucket int
	High   Reading
	Low    Reading
}

// Rect is a bar. TopLeft sits two pixels above the baseline and BottomRight
// carries the bar's upper edge, so TopLeft.Y > BottomRight.Y for a bar
// growing upward.
type Rect struct {
	TopLeft     canvas.Point
	BottomRight canvas.Point
}

// Top is the smallest y of the bar, its visual top.
func (r Rect) Top() float64 {
	return math.Min(r.TopLeft.Y, r.BottomRight.Y)
}

type BarKind int

const (
	BarOK BarKind = iota
	BarMissing
	BarUnsupported
)

func (k BarKind) String() string {
	switch k {
	case BarOK:
		return "ok"
	case BarMissing:
		return "missing"
	case BarUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// BarResult is the outcome of mapping one reading. Rect is set only for
// BarOK; Err is set only for BarUnsupported and says what was malformed.
type BarResult struct {
	Kind BarKind
	Rect Rect
	Err  error
}

// Mapper turns readings into bar rectangles for one render.
type Mapper struct {
	Layout CanvasLayout
	Range  ValueRange
	Mode   ScaleMode
}

// Adjusted returns the bar height in pixels above baselineY for value v.
func (m Mapper) Adjusted(v float64) float64 {
	if m.Mode == ScaleLinear {
		s := scale.Linear{Min: m.Range.Lowest, Max: m.Range.Highest}
		return math.Round(s.Map(v) * m.Layout.AxisHeight())
	}
	raw := v * m.Range.PixelsPerUnit
	if m.Range.ZeroOffsetPixels <= 0 {
		return math.Round(raw + m.Range.ZeroOffsetPixels + m.Range.PixelsPerUnit)
	}
	return math.Round(raw + m.Range.ZeroOffsetPixels)
}

// MapBar maps the reading of bucket to its bar rectangle.
func (m Mapper) MapBar(value Reading, bucket int, g Granularity) BarResult {
	if !g.Valid() {
		return BarResult{Kind: BarUnsupported, Err: &UnsupportedGranularityError{Token: string(g)}}
	}
	if bucket < 1 || bucket > g.Buckets() {
		return BarResult{Kind: BarUnsupported, Err: &BucketRangeError{Granularity: g, Bucket: bucket}}
	}
	if !value.Valid {
		return BarResult{Kind: BarMissing}
	}
	if math.IsNaN(value.Value) || math.IsInf(value.Value, 0) {
		return BarResult{Kind: BarUnsupported, Err: &NonFiniteReadingError{Granularity: g, Bucket: bucket, Value: value.Value}}
	}
	x := g.XPosition(bucket, m.Layout)
	baseline := m.Layout.BaselineY()
	return BarResult{
		Kind: BarOK,
		Rect: Rect{
			TopLeft:     canvas.Pt(x, baseline-2),
			BottomRight: canvas.Pt(x+g.BarWidth(), baseline-m.Adjusted(value.Value)),
		},
	}
}

// MapBar is the one-shot form of Mapper.MapBar in parity mode.
func MapBar(value Reading, bucket int, g Granularity, r ValueRange, l CanvasLayout) BarResult {
	return Mapper{Layout: l, Range: r, Mode: ScaleParity}.MapBar(value, bucket, g)
}
