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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGranularity(t *testing.T) {
	var tests = []struct {
		in   string
		want Granularity
	}{
		{"Week", Week},
		{"weekly", Week},
		{"tweek", Week},
		{"Fort", Fortnight},
		{"FORTNIGHT", Fortnight},
		{" month ", Month},
		{"tmonth", Month},
	}
	for _, tt := range tests {
		got, err := ParseGranularity(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	g, err := ParseGranularity("Quarter")
	var gerr *UnsupportedGranularityError
	assert.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Quarter", gerr.Token)
	assert.Equal(t, Granularity("Quarter"), g)
	assert.False(t, g.Valid())
	assert.Equal(t, 0, g.Buckets())
	assert.Empty(t, g.Labels())
}

func TestGranularityBuckets(t *testing.T) {
	var tests = []struct {
		g        Granularity
		buckets  int
		barWidth float64
		column   string
		suffix   string
		last     string
	}{
		{Week, 52, 8, "tweek", "Week", "52"},
		{Fortnight, 26, 18, "tfort", "Fort", "26"},
		{Month, 12, 30, "tmonth", "Month", "Dec"},
	}
	for _, tt := range tests {
		assert.True(t, tt.g.Valid())
		assert.Equal(t, tt.buckets, tt.g.Buckets())
		assert.Equal(t, tt.barWidth, tt.g.BarWidth())
		assert.Equal(t, tt.column, tt.g.Column())
		assert.Equal(t, tt.suffix, tt.g.TableSuffix())
		labels := tt.g.Labels()
		assert.Len(t, labels, tt.buckets)
		assert.Equal(t, tt.last, labels[len(labels)-1])
		assert.Equal(t, "", tt.g.Label(0))
		assert.Equal(t, "", tt.g.Label(tt.buckets+1))
	}
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}, Month.Labels())
	assert.Equal(t, "1", Week.Label(1))
	assert.Equal(t, []Granularity{Week, Fortnight, Month}, Granularities())
}

func TestXPosition(t *testing.T) {
	l := DefaultLayout()
	assert.InDelta(t, 166.6667, Month.Center(1, l), 1e-3)
	assert.InDelta(t, 151.6667, Month.XPosition(1, l), 1e-3)
	assert.InDelta(t, 1193.3333, Month.Center(12, l), 1e-3)

	for _, g := range Granularities() {
		seg := g.SegmentWidth(l)
		assert.InDelta(t, l.AxisWidth(), seg*float64(g.Buckets()), 1e-9)
		for i := 1; i <= g.Buckets(); i++ {
			x := g.XPosition(i, l)
			// every bar stays inside its own segment
			assert.GreaterOrEqual(t, x, l.Left+float64(i-1)*seg)
			assert.LessOrEqual(t, x+g.BarWidth(), l.Left+float64(i)*seg)
		}
	}
}
