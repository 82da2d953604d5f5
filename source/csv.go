// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package source

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gwenn/yacr"
	"github.com/signal18/tempbars/chart"
	"github.com/spf13/afero"
)

// CSV reads two comma separated files with a header line:
//
//	extremes:     city,min_temp,max_temp
//	observations: city,period,tyear,bucket,tmax,tmin
//
// An empty tmax or tmin cell is a missing reading. City names match
// case-insensitively and period accepts any token ParseGranularity does.
type CSV struct {
	fs               afero.Fs
	extremesFile     string
	observationsFile string
}

var (
	extremesColumns     = []string{"city", "min_temp", "max_temp"}
	observationsColumns = []string{"city", "period", "tyear", "bucket", "tmax", "tmin"}
)

func NewCSV(fs afero.Fs, extremesFile string, observationsFile string) (*CSV, error) {
	for _, f := range []string{extremesFile, observationsFile} {
		if _, err := fs.Stat(f); err != nil {
			return nil, unavailable(err)
		}
	}
	return &CSV{fs: fs, extremesFile: extremesFile, observationsFile: observationsFile}, nil
}

func (c *CSV) Extremes(ctx context.Context, city string) (Extremes, error) {
	var ext Extremes
	found := false
	err := c.scan(ctx, c.extremesFile, extremesColumns, func(line int, rec map[string]string) error {
		if found || !strings.EqualFold(rec["city"], city) {
			return nil
		}
		var err error
		if ext.Low, err = parseFloat(rec["min_temp"]); err != nil {
			return c.lineError(c.extremesFile, line, err)
		}
		if ext.High, err = parseFloat(rec["max_temp"]); err != nil {
			return c.lineError(c.extremesFile, line, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return Extremes{}, err
	}
	if !found {
		return Extremes{}, fmt.Errorf("%w: city %s not in %s", ErrNoData, city, c.extremesFile)
	}
	return ext, nil
}

func (c *CSV) Observations(ctx context.Context, city string, g chart.Granularity, year int) ([]chart.Observation, error) {
	if !g.Valid() {
		return nil, &chart.UnsupportedGranularityError{Token: string(g)}
	}
	var obs []chart.Observation
	err := c.scan(ctx, c.observationsFile, observationsColumns, func(line int, rec map[string]string) error {
		if !strings.EqualFold(rec["city"], city) {
			return nil
		}
		if pg, err := chart.ParseGranularity(rec["period"]); err != nil || pg != g {
			return nil
		}
		y, err := strconv.Atoi(rec["tyear"])
		if err != nil {
			return c.lineError(c.observationsFile, line, err)
		}
		if y != year {
			return nil
		}
		o := chart.Observation{Year: y}
		if o.Bucket, err = strconv.Atoi(rec["bucket"]); err != nil {
			return c.lineError(c.observationsFile, line, err)
		}
		if o.High, err = parseReading(rec["tmax"]); err != nil {
			return c.lineError(c.observationsFile, line, err)
		}
		if o.Low, err = parseReading(rec["tmin"]); err != nil {
			return c.lineError(c.observationsFile, line, err)
		}
		obs = append(obs, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: no %s rows for %s in %d", ErrNoData, g, city, year)
	}
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Bucket < obs[j].Bucket })
	return obs, nil
}

func (c *CSV) Cities(ctx context.Context) ([]City, error) {
	var cities []City
	err := c.scan(ctx, c.extremesFile, extremesColumns, func(line int, rec map[string]string) error {
		low, err := parseFloat(rec["min_temp"])
		if err != nil {
			return c.lineError(c.extremesFile, line, err)
		}
		high, err := parseFloat(rec["max_temp"])
		if err != nil {
			return c.lineError(c.extremesFile, line, err)
		}
		cities = append(cities, City{Name: rec["city"], Extremes: Extremes{Low: low, High: high}})
		return nil
	})
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities, err
}

func (c *CSV) Close() error {
	return nil
}

// scan calls fn with the named columns of every record of file.
func (c *CSV) scan(ctx context.Context, file string, columns []string, fn func(line int, rec map[string]string) error) error {
	f, err := c.fs.Open(file)
	if err != nil {
		return unavailable(err)
	}
	defer f.Close()

	r := yacr.DefaultReader(f)
	r.Trim = true
	if err := r.ScanHeaders(); err != nil {
		return unavailable(err)
	}
	for _, col := range columns {
		if _, ok := r.Headers[col]; !ok {
			return fmt.Errorf("%w: %s has no %s column", ErrSourceUnavailable, file, col)
		}
	}
	values := make([]string, len(r.Headers))
	fields := make([]interface{}, len(values))
	for i := range values {
		fields[i] = &values[i]
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range values {
			values[i] = ""
		}
		n, err := r.ScanRecord(fields...)
		if err != nil {
			return c.lineError(file, r.LineNumber(), err)
		}
		if n == 0 {
			return nil
		}
		rec := make(map[string]string, len(columns))
		for _, col := range columns {
			rec[col] = values[r.Headers[col]-1]
		}
		if err := fn(r.LineNumber(), rec); err != nil {
			return err
		}
	}
}

func (c *CSV) lineError(file string, line int, err error) error {
	return fmt.Errorf("%w: %s line %d: %v", ErrSourceUnavailable, file, line, err)
}

// parseFloat reads an extreme; NaN and infinities are rejected.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

func parseReading(s string) (chart.Reading, error) {
	if s == "" {
		return chart.Missing, nil
	}
	// non-finite readings are kept, the chart reports and skips them
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return chart.Missing, err
	}
	return chart.Some(v), nil
}
