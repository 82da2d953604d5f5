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
	"image/color"
	"io"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce sync.Once
	fontErr  error
	regular  *truetype.Font
	mono     *truetype.Font
)

func loadFonts() error {
	fontOnce.Do(func() {
		if regular, fontErr = truetype.Parse(goregular.TTF); fontErr != nil {
			return
		}
		mono, fontErr = truetype.Parse(gomono.TTF)
	})
	return fontErr
}

type faceKey struct {
	family string
	size   float64
}

// GG rasterizes with fogleman/gg using the Go fonts. Any family containing
// "mono" maps to Go Mono, everything else to Go Regular.
type GG struct {
	dc    *gg.Context
	faces map[faceKey]font.Face
}

func NewGG(width, height int) (Canvas, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return &GG{
		dc:    gg.NewContext(width, height),
		faces: make(map[faceKey]font.Face),
	}, nil
}

func (c *GG) face(style TextStyle) font.Face {
	family := "sans"
	if strings.Contains(strings.ToLower(style.Family), "mono") {
		family = "mono"
	}
	k := faceKey{family: family, size: style.Size}
	if f, ok := c.faces[k]; ok {
		return f
	}
	ttf := regular
	if family == "mono" {
		ttf = mono
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: style.Size})
	c.faces[k] = f
	return f
}

func (c *GG) FillBackground(clr color.RGBA) {
	c.dc.SetColor(clr)
	c.dc.Clear()
}

func (c *GG) DrawLine(points []Point, width float64, clr color.RGBA) {
	if len(points) < 2 {
		return
	}
	c.dc.NewSubPath()
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.SetColor(clr)
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

func (c *GG) FillRect(topLeft, bottomRight Point, clr color.RGBA) {
	x, y, w, h := normRect(topLeft, bottomRight)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetColor(clr)
	c.dc.Fill()
}

func (c *GG) MeasureText(text string, style TextStyle) (float64, float64) {
	c.dc.SetFontFace(c.face(style))
	return c.dc.MeasureString(text)
}

func (c *GG) DrawText(text string, style TextStyle, pos Point) {
	c.dc.SetFontFace(c.face(style))
	c.dc.SetColor(style.Color)
	c.dc.DrawStringAnchored(text, pos.X, pos.Y, 0, 1)
}

func (c *GG) Present(w io.Writer) error {
	return c.dc.EncodePNG(w)
}
