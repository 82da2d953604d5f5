// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

import "fmt"

// InvalidRangeError is returned when the padded value range is empty or
// cannot be scaled. It is fatal: nothing is drawn.
type InvalidRangeError struct {
	KnownLow  float64
	KnownHigh float64
	Lowest    float64
	Highest   float64
	Reason    string
}

func (e *InvalidRangeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid value range [%g, %g]: %s", e.KnownLow, e.KnownHigh, e.Reason)
	}
	return fmt.Sprintf("invalid value range [%g, %g]: padded span %g..%g is not positive", e.KnownLow, e.KnownHigh, e.Lowest, e.Highest)
}

// UnsupportedGranularityError reports a period token outside Week, Fortnight
// and Month. Rendering degrades to axes, gridlines and title.
type UnsupportedGranularityError struct {
	Token string
}

func (e *UnsupportedGranularityError) Error() string {
	return fmt.Sprintf("unsupported granularity %q (want Week, Fortnight or Month)", e.Token)
}

// BucketRangeError reports an observation whose bucket index falls outside
// 1..Buckets for its granularity. The observation is skipped.
type BucketRangeError struct {
	Granularity Granularity
	Bucket      int
}

func (e *BucketRangeError) Error() string {
	return fmt.Sprintf("bucket %d out of range 1..%d for %s", e.Bucket, e.Granularity.Buckets(), e.Granularity)
}

// NonFiniteReadingError reports a NaN or infinite reading. Its bar is skipped.
type NonFiniteReadingError struct {
	Granularity Granularity
	Bucket      int
	Value       float64
}

func (e *NonFiniteReadingError) Error() string {
	return fmt.Sprintf("non-finite reading %g in %s bucket %d", e.Value, e.Granularity, e.Bucket)
}

// InvalidLayoutError is returned for canvas geometry leaving no room for the axes.
type InvalidLayoutError struct {
	Layout CanvasLayout
}

func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid canvas layout %gx%g with margins %g/%g/%g/%g", e.Layout.Width, e.Layout.Height, e.Layout.Top, e.Layout.Right, e.Layout.Bottom, e.Layout.Left)
}
