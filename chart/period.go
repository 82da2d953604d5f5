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
	"strconv"
	"strings"
)

// Granularity is the bucketing scheme of a chart. Values other than Week,
// Fortnight and Month are representable so that an unknown period token can
// travel up to the renderer and be reported there.
type Granularity string

const (
	Week      Granularity = "Week"
	Fortnight Granularity = "Fortnight"
	Month     Granularity = "Month"
)

type period struct {
	buckets  int
	barWidth float64
	column   string
	suffix   string
}

var periods = map[Granularity]period{
	Week:      {buckets: 52, barWidth: 8, column: "tweek", suffix: "Week"},
	Fortnight: {buckets: 26, barWidth: 18, column: "tfort", suffix: "Fort"},
	Month:     {buckets: 12, barWidth: 30, column: "tmonth", suffix: "Month"},
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Granularities lists the supported granularities, finest first.
func Granularities() []Granularity {
	return []Granularity{Week, Fortnight, Month}
}

// ParseGranularity maps a period token to a Granularity, case-insensitively.
// Table suffixes and bucket column names are accepted as aliases. On failure
// the token is returned as-is along with an *UnsupportedGranularityError.
func ParseGranularity(token string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "week", "weekly", "tweek":
		return Week, nil
	case "fort", "fortnight", "fortnightly", "tfort":
		return Fortnight, nil
	case "month", "monthly", "tmonth":
		return Month, nil
	}
	return Granularity(token), &UnsupportedGranularityError{Token: token}
}

func (g Granularity) Valid() bool {
	_, ok := periods[g]
	return ok
}

func (g Granularity) String() string {
	return string(g)
}

// Buckets returns 52, 26 or 12, and 0 for an unsupported granularity.
func (g Granularity) Buckets() int {
	return periods[g].buckets
}

func (g Granularity) BarWidth() float64 {
	return periods[g].barWidth
}

// Column is the bucket index column in the per-city period tables.
func (g Granularity) Column() string {
	return periods[g].column
}

// TableSuffix is appended to the city name to form the period table name.
func (g Granularity) TableSuffix() string {
	return periods[g].suffix
}

// Label returns the x-axis text of bucket i: the month abbreviation for Month,
// the ordinal for Week and Fortnight.
func (g Granularity) Label(i int) string {
	if i < 1 || i > g.Buckets() {
		return ""
	}
	if g == Month {
		return monthNames[i-1]
	}
	return strconv.Itoa(i)
}

// Labels returns every bucket label ordered by bucket index.
func (g Granularity) Labels() []string {
	labels := make([]string, 0, g.Buckets())
	for i := 1; i <= g.Buckets(); i++ {
		labels = append(labels, g.Label(i))
	}
	return labels
}

func (g Granularity) SegmentWidth(l CanvasLayout) float64 {
	return l.AxisWidth() / float64(g.Buckets())
}

// Center is the x coordinate of the middle of bucket i's grid segment.
func (g Granularity) Center(i int, l CanvasLayout) float64 {
	return l.Left + (float64(i)-0.5)*g.SegmentWidth(l)
}

// XPosition is the left edge of bucket i's bar, centred in its segment.
func (g Granularity) XPosition(i int, l CanvasLayout) float64 {
	return g.Center(i, l) - g.BarWidth()/2
}
