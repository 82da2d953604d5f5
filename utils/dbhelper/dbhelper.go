// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package dbhelper

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// CityExtremes is one row of the city_names table.
type CityExtremes struct {
	Name    string  `db:"name_of_city"`
	MinTemp float64 `db:"min_temp"`
	MaxTemp float64 `db:"max_temp"`
}

// PeriodTemp is one row of a <City>_<Suffix> period table. A NULL tmax or
// tmin means the bucket has no reading.
type PeriodTemp struct {
	Year   int             `db:"tyear"`
	Bucket int             `db:"bucket"`
	TMax   sql.NullFloat64 `db:"tmax"`
	TMin   sql.NullFloat64 `db:"tmin"`
}

var identRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidIdentifier reports whether s can be spliced into a query as a table
// or column name.
func ValidIdentifier(s string) bool {
	return identRe.MatchString(s)
}

// PeriodTable returns the name of the table holding city's readings for one
// granularity, e.g. Phoenix_AZ_Month.
func PeriodTable(city string, suffix string) (string, error) {
	table := city + "_" + suffix
	if !ValidIdentifier(city) || !ValidIdentifier(suffix) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	return table, nil
}

// Connect opens a pool on one of the mysql, postgres or sqlite3 drivers.
func Connect(driver string, dsn string, maxConns int) (*sqlx.DB, error) {
	switch driver {
	case "mysql", "postgres", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return db, nil
}

// MySQLDSN builds a go-sql-driver DSN; address comes from GetAddress.
func MySQLDSN(user string, password string, address string, database string, parameters ...string) string {
	dsn := user + ":" + password + "@" + address + "/" + database
	if len(parameters) > 0 && parameters[0] != "" {
		dsn += "?" + parameters[0]
	}
	return dsn
}

func GetAddress(host string, port string, socket string) string {
	var address string
	if host != "" {
		address = "tcp(" + host + ":" + port + ")"
	} else {
		address = "unix(" + socket + ")"
	}
	return address
}

// RedactDSN hides the password of a connection string so it can be logged.
func RedactDSN(driver string, dsn string) string {
	switch driver {
	case "mysql":
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "<unparsable dsn>"
		}
		if cfg.Passwd != "" {
			cfg.Passwd = "xxxx"
		}
		return cfg.FormatDSN()
	case "postgres":
		u, err := url.Parse(dsn)
		if err != nil || u.User == nil {
			return dsn
		}
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "xxxx")
		}
		return u.String()
	}
	return dsn
}

func GetServerVersion(ctx context.Context, db *sqlx.DB) (string, string, error) {
	var version string
	var query string
	switch db.DriverName() {
	case "postgres":
		query = "SHOW server_version"
	case "sqlite3":
		query = "SELECT sqlite_version()"
	default:
		query = "SELECT VERSION()"
	}
	err := db.QueryRowxContext(ctx, query).Scan(&version)
	return version, query, err
}

func GetCityExtremes(ctx context.Context, db *sqlx.DB, city string) (CityExtremes, string, error) {
	ce := CityExtremes{Name: city}
	query := db.Rebind("SELECT min_temp, max_temp FROM city_names WHERE name_of_city = ?")
	err := db.QueryRowxContext(ctx, query, city).Scan(&ce.MinTemp, &ce.MaxTemp)
	return ce, query, err
}

func GetCities(ctx context.Context, db *sqlx.DB) ([]CityExtremes, string, error) {
	cities := []CityExtremes{}
	query := "SELECT name_of_city, min_temp, max_temp FROM city_names ORDER BY name_of_city"
	err := db.SelectContext(ctx, &cities, query)
	return cities, query, err
}

// GetPeriodTemps returns the rows of one year ordered by bucket. column is the
// bucket index column of the table (tweek, tfort or tmonth).
func GetPeriodTemps(ctx context.Context, db *sqlx.DB, table string, column string, year int) ([]PeriodTemp, string, error) {
	temps := []PeriodTemp{}
	if !ValidIdentifier(table) || !ValidIdentifier(column) {
		return nil, "", fmt.Errorf("invalid identifier in %s.%s", table, column)
	}
	query := db.Rebind("SELECT tyear, " + column + " AS bucket, tmax, tmin FROM " + table + " WHERE tyear = ? ORDER BY " + column)
	err := db.SelectContext(ctx, &temps, query, year)
	return temps, query, err
}
