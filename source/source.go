// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

// Package source fetches the observations and long-run extremes a chart is
// drawn from.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/signal18/tempbars/chart"
	"github.com/signal18/tempbars/config"
	"github.com/spf13/afero"
)

var (
	// ErrSourceUnavailable wraps failures to reach or read the backing store.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrNoData is returned when the store has nothing for the request.
	ErrNoData = errors.New("no data")
)

// Extremes are the lowest and highest readings ever recorded for a city.
type Extremes struct {
	Low  float64
	High float64
}

type City struct {
	Name string
	Extremes
}

// Lister is implemented by sources that can enumerate their cities.
type Lister interface {
	Cities(ctx context.Context) ([]City, error)
}

type Source interface {
	Extremes(ctx context.Context, city string) (Extremes, error)
	// Observations returns the readings of one year ordered by bucket.
	Observations(ctx context.Context, city string, g chart.Granularity, year int) ([]chart.Observation, error)
	Close() error
}

// Open builds the source selected by conf, wrapped in the extremes cache when
// cache-ttl is set. fs is used for CSV files.
func Open(conf config.Config, fs afero.Fs) (Source, error) {
	var src Source
	var err error
	switch conf.Source {
	case "sql":
		src, err = NewSQL(conf.DBDriver, conf.DSN(), conf.DBMaxConnections)
	case "csv":
		src, err = NewCSV(fs, conf.CSVExtremesFile, conf.CSVObservationsFile)
	default:
		return nil, fmt.Errorf("unknown source %q", conf.Source)
	}
	if err != nil {
		return nil, err
	}
	if conf.CacheTTL > 0 {
		src = NewCached(src, conf.CacheDuration())
	}
	return src, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
}
