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
	"strings"
	"time"

	ecache "github.com/dgryski/go-expirecache"
	"github.com/signal18/tempbars/chart"
	log "github.com/sirupsen/logrus"
)

// Cached keeps the extremes of each city for a while. Observations are not
// cached: a batch asks for each (city, period, year) once.
type Cached struct {
	Source
	ec  *ecache.Cache
	ttl int32
}

func NewCached(src Source, ttl time.Duration) *Cached {
	return &Cached{
		Source: src,
		ec:     ecache.New(0),
		ttl:    int32(ttl / time.Second),
	}
}

func (c *Cached) Extremes(ctx context.Context, city string) (Extremes, error) {
	key := strings.ToLower(city)
	if v, ok := c.ec.Get(key); ok {
		log.WithField("city", city).Debug("Extremes served from cache")
		return v.(Extremes), nil
	}
	ext, err := c.Source.Extremes(ctx, city)
	if err != nil {
		return ext, err
	}
	c.ec.Set(key, ext, 1, c.ttl)
	return ext, nil
}

func (c *Cached) Observations(ctx context.Context, city string, g chart.Granularity, year int) ([]chart.Observation, error) {
	return c.Source.Observations(ctx, city, g, year)
}

// Cities forwards to the wrapped source when it can list its cities.
func (c *Cached) Cities(ctx context.Context) ([]City, error) {
	if l, ok := c.Source.(Lister); ok {
		return l.Cities(ctx)
	}
	return nil, ErrNoData
}
