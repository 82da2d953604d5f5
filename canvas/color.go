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
	"strconv"
	"strings"
)

var colors = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"blue":    {0x64, 0x64, 0xff, 0xff},
	"green":   {0x00, 0xc8, 0x00, 0xff},
	"red":     {0xc8, 0x00, 0x32, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
	"purple":  {0xc8, 0x64, 0xff, 0xff},
	"brown":   {0x96, 0x64, 0x32, 0xff},
	"aqua":    {0x00, 0x96, 0x96, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"pink":    {0xff, 0x64, 0x64, 0xff},
	"gold":    {0xc8, 0xc8, 0x00, 0xff},
	"rose":    {0xc8, 0x96, 0xc8, 0xff},
}

// ParseColor accepts a color name or a #rgb, #rrggbb or #rrggbbaa hex string.
// Unparseable input yields opaque black.
func ParseColor(clr string) color.RGBA {
	if c, ok := colors[strings.ToLower(clr)]; ok {
		return c
	}
	return hexToRGBA(clr)
}

// https://code.google.com/p/sadbox/source/browse/color/hex.go
func hexToRGBA(h string) color.RGBA {
	var r, g, b uint8
	if len(h) > 0 && h[0] == '#' {
		h = h[1:]
	}

	if len(h) == 3 {
		h = h[:1] + h[:1] + h[1:2] + h[1:2] + h[2:] + h[2:]
	}

	alpha := byte(255)

	if len(h) == 6 {
		if rgb, err := strconv.ParseUint(h, 16, 32); err == nil {
			r = uint8(rgb >> 16)
			g = uint8(rgb >> 8)
			b = uint8(rgb)
		}
	}

	if len(h) == 8 {
		if rgb, err := strconv.ParseUint(h, 16, 32); err == nil {
			r = uint8(rgb >> 24)
			g = uint8(rgb >> 16)
			b = uint8(rgb >> 8)
			alpha = uint8(rgb)
		}
	}

	return color.RGBA{r, g, b, alpha}
}
