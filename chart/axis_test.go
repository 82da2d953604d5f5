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

	"github.com/signal18/tempbars/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var labelStyle = canvas.TextStyle{Family: "Sans", Size: 14}

func TestXLabels(t *testing.T) {
	l := DefaultLayout()
	rec := canvas.NewRecorder(1280, 790)

	labels, err := XLabels(Month, l, rec, labelStyle)
	require.NoError(t, err)
	require.Len(t, labels, 12)
	assert.Equal(t, "Jan", labels[0].Text)
	assert.Equal(t, 1, labels[0].Bucket)
	assert.InDelta(t, 166.6667-3*14*0.6/2, labels[0].Pos.X, 1e-3)
	assert.Equal(t, 760.0, labels[0].Pos.Y)

	for _, g := range []Granularity{Week, Fortnight} {
		labels, err = XLabels(g, l, rec, labelStyle)
		require.NoError(t, err)
		require.Len(t, labels, g.Buckets())
		for i, lb := range labels {
			w, _ := rec.MeasureText(lb.Text, labelStyle)
			assert.Equal(t, i+1, lb.Bucket)
			assert.InDelta(t, g.Center(i+1, l), lb.Pos.X+w/2, 1e-9)
			assert.Equal(t, 762.0, lb.Pos.Y)
		}
		assert.Equal(t, "1", labels[0].Text)
	}

	labels, err = XLabels(Granularity("Quarter"), l, rec, labelStyle)
	assert.Error(t, err)
	assert.Empty(t, labels)
	assert.Empty(t, rec.Ops)
}

func TestYLabels(t *testing.T) {
	l := DefaultLayout()
	rec := canvas.NewRecorder(1280, 790)
	style := canvas.TextStyle{Size: 18}

	labels := YLabels(rangeFor(t, 20, 115), l, rec, style)
	require.Len(t, labels, GridLines)
	assert.Equal(t, "120.0", labels[0].Text)
	assert.Equal(t, "109.0", labels[1].Text)
	assert.Equal(t, "21.0", labels[9].Text)
	assert.InDelta(t, 54.0, labels[0].Pos.X, 1e-9)
	assert.Equal(t, 60.0-9, labels[0].Pos.Y)
	for i := 1; i < len(labels); i++ {
		assert.Less(t, labels[i].Value, labels[i-1].Value)
		assert.Greater(t, labels[i].Pos.Y, labels[i-1].Pos.Y)
	}

	labels = YLabels(rangeFor(t, -20, 10), l, rec, style)
	assert.Equal(t, "15.0", labels[0].Text)
	assert.Equal(t, "10.5", labels[1].Text)
	assert.Equal(t, "-3.0", labels[4].Text)
	assert.Equal(t, "-25.5", labels[9].Text)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "0.0", formatTick(-0.00001))
	assert.Equal(t, "0.0", formatTick(0))
	assert.Equal(t, "-0.1", formatTick(-0.1))
	assert.Equal(t, "2.5", formatTick(2.45000001))
}

func TestGridlines(t *testing.T) {
	l := DefaultLayout()
	h := HorizontalGridlines(l)
	require.Len(t, h, GridLines)
	assert.Equal(t, canvas.Pt(120, 60), h[0].From)
	assert.Equal(t, canvas.Pt(1240, 60), h[0].To)
	assert.Equal(t, 60.0+9*69, h[9].From.Y)
	assert.Equal(t, 120.0, h[9].Tick[1].X)

	v := VerticalGridlines(l)
	require.Len(t, v, VerticalGridLines)
	assert.Equal(t, canvas.Pt(400, 60), v[0].From)
	assert.Equal(t, canvas.Pt(400, 750), v[0].To)
	assert.Equal(t, 1240.0, v[3].From.X)
	assert.Equal(t, 750.0, v[0].Tick[0].Y)

	assert.Len(t, Gridlines(l), GridLines+VerticalGridLines)
}
