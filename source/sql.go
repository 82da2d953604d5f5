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
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/signal18/tempbars/chart"
	"github.com/signal18/tempbars/utils/dbhelper"
	log "github.com/sirupsen/logrus"
)

// SQL reads the city_names table and the per-city period tables.
type SQL struct {
	db *sqlx.DB
}

func NewSQL(driver string, dsn string, maxConns int) (*SQL, error) {
	db, err := dbhelper.Connect(driver, dsn, maxConns)
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s: %v", ErrSourceUnavailable, dbhelper.RedactDSN(driver, dsn), err)
	}
	src := NewSQLFromDB(db)
	version, _ := src.Version(context.Background())
	log.WithFields(log.Fields{
		"driver":  driver,
		"dsn":     dbhelper.RedactDSN(driver, dsn),
		"version": version,
	}).Debug("Connected to database")
	return src, nil
}

// NewSQLFromDB wraps an open pool.
func NewSQLFromDB(db *sqlx.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) Extremes(ctx context.Context, city string) (Extremes, error) {
	ce, query, err := dbhelper.GetCityExtremes(ctx, s.db, city)
	if errors.Is(err, sql.ErrNoRows) {
		return Extremes{}, fmt.Errorf("%w: city %s not in city_names", ErrNoData, city)
	}
	if err != nil {
		log.WithField("query", query).Debug("Extremes query failed")
		return Extremes{}, unavailable(err)
	}
	return Extremes{Low: ce.MinTemp, High: ce.MaxTemp}, nil
}

func (s *SQL) Observations(ctx context.Context, city string, g chart.Granularity, year int) ([]chart.Observation, error) {
	if !g.Valid() {
		return nil, &chart.UnsupportedGranularityError{Token: string(g)}
	}
	table, err := dbhelper.PeriodTable(city, g.TableSuffix())
	if err != nil {
		return nil, err
	}
	temps, query, err := dbhelper.GetPeriodTemps(ctx, s.db, table, g.Column(), year)
	if err != nil {
		log.WithField("query", query).Debug("Observations query failed")
		return nil, unavailable(err)
	}
	if len(temps) == 0 {
		return nil, fmt.Errorf("%w: no %s rows for %s in %d", ErrNoData, g.Column(), city, year)
	}
	obs := make([]chart.Observation, 0, len(temps))
	for _, t := range temps {
		obs = append(obs, chart.Observation{
			Year:   t.Year,
			Bucket: t.Bucket,
			High:   reading(t.TMax),
			Low:    reading(t.TMin),
		})
	}
	return obs, nil
}

// Cities lists the cities of the city_names table with their extremes.
func (s *SQL) Cities(ctx context.Context) ([]City, error) {
	rows, _, err := dbhelper.GetCities(ctx, s.db)
	if err != nil {
		return nil, unavailable(err)
	}
	cities := make([]City, 0, len(rows))
	for _, r := range rows {
		cities = append(cities, City{Name: r.Name, Extremes: Extremes{Low: r.MinTemp, High: r.MaxTemp}})
	}
	return cities, nil
}

// Version returns the server version string.
func (s *SQL) Version(ctx context.Context) (string, error) {
	v, _, err := dbhelper.GetServerVersion(ctx, s.db)
	return v, err
}

func (s *SQL) Close() error {
	return s.db.Close()
}

func reading(v sql.NullFloat64) chart.Reading {
	if !v.Valid {
		return chart.Missing
	}
	return chart.Some(v.Float64)
}
