// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

//go:build cairo
// +build cairo

package canvas

import (
	"image/color"
	"io"

	"github.com/evmar/gocairo/cairo"
)

const haveCairo = true

func init() {
	register("cairo", NewCairo)
}

// Cairo renders through libcairo. Only built with the cairo tag.
type Cairo struct {
	surface *cairo.ImageSurface
	context *cairo.Context
}

func NewCairo(width, height int) (Canvas, error) {
	s := cairo.ImageSurfaceCreate(cairo.FormatARGB32, width, height)
	return &Cairo{surface: s, context: cairo.Create(s.Surface)}, nil
}

func (cr *Cairo) setColor(c color.RGBA) {
	cr.context.SetSourceRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

func (cr *Cairo) setFont(style TextStyle) {
	family := style.Family
	if family == "" {
		family = "Sans"
	}
	cr.context.SelectFontFace(family, cairo.FontSlantNormal, cairo.FontWeightNormal)
	cr.context.SetFontSize(style.Size)
}

func (cr *Cairo) FillBackground(c color.RGBA) {
	cr.setColor(c)
	cr.context.Paint()
}

func (cr *Cairo) DrawLine(points []Point, width float64, c color.RGBA) {
	if len(points) < 2 {
		return
	}
	cr.setColor(c)
	cr.context.SetLineWidth(width)
	cr.context.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		cr.context.LineTo(p.X, p.Y)
	}
	cr.context.Stroke()
}

func (cr *Cairo) FillRect(topLeft, bottomRight Point, c color.RGBA) {
	x, y, w, h := normRect(topLeft, bottomRight)
	cr.setColor(c)
	cr.context.Rectangle(x, y, w, h)
	cr.context.Fill()
}

func (cr *Cairo) MeasureText(text string, style TextStyle) (float64, float64) {
	var textExtents cairo.TextExtents
	var fontExtents cairo.FontExtents
	cr.setFont(style)
	cr.context.TextExtents(text, &textExtents)
	cr.context.FontExtents(&fontExtents)
	return textExtents.Width, fontExtents.Height
}

func (cr *Cairo) DrawText(text string, style TextStyle, pos Point) {
	var fontExtents cairo.FontExtents
	cr.setFont(style)
	cr.setColor(style.Color)
	cr.context.FontExtents(&fontExtents)
	cr.context.MoveTo(pos.X, pos.Y+fontExtents.Ascent)
	cr.context.TextPath(text)
	cr.context.Fill()
}

func (cr *Cairo) Present(w io.Writer) error {
	cr.surface.Flush()
	defer cr.surface.Finish()
	return cr.surface.WriteToPNG(w)
}
