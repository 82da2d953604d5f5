// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/signal18/tempbars/canvas"
	"github.com/signal18/tempbars/chart"
	"github.com/signal18/tempbars/utils/dbhelper"
)

type Config struct {
	ConfigFile          string   `mapstructure:"config" toml:"config"`
	City                []string `mapstructure:"city" toml:"city"`
	Year                int      `mapstructure:"year" toml:"year"`
	Period              []string `mapstructure:"period" toml:"period"`
	Source              string   `mapstructure:"source" toml:"source"` // sql or csv
	DBDriver            string   `mapstructure:"db-driver" toml:"db-driver"`
	DatabaseURL         string   `mapstructure:"database-url" toml:"database-url"`
	DBHost              string   `mapstructure:"db-host" toml:"db-host"`
	DBPort              string   `mapstructure:"db-port" toml:"db-port"`
	DBSocket            string   `mapstructure:"db-socket" toml:"db-socket"`
	DBUser              string   `mapstructure:"db-user" toml:"db-user"`
	DBPassword          string   `mapstructure:"db-password" toml:"db-password"`
	DBName              string   `mapstructure:"db-name" toml:"db-name"`
	DBMaxConnections    int      `mapstructure:"db-max-connections" toml:"db-max-connections"`
	CSVExtremesFile     string   `mapstructure:"csv-extremes-file" toml:"csv-extremes-file"`
	CSVObservationsFile string   `mapstructure:"csv-observations-file" toml:"csv-observations-file"`
	CacheTTL            int      `mapstructure:"cache-ttl" toml:"cache-ttl"` // seconds, 0 disables the extremes cache
	OutputDir           string   `mapstructure:"output-dir" toml:"output-dir"`
	Backend             string   `mapstructure:"backend" toml:"backend"`
	DryRun              bool     `mapstructure:"dry-run" toml:"dry-run"`
	ScaleMode           string   `mapstructure:"scale-mode" toml:"scale-mode"`
	PadBelow            float64  `mapstructure:"pad-below" toml:"pad-below"`
	PadAbove            float64  `mapstructure:"pad-above" toml:"pad-above"`
	Width               int      `mapstructure:"width" toml:"width"`
	Height              int      `mapstructure:"height" toml:"height"`
	MarginTop           int      `mapstructure:"margin-top" toml:"margin-top"`
	MarginRight         int      `mapstructure:"margin-right" toml:"margin-right"`
	MarginBottom        int      `mapstructure:"margin-bottom" toml:"margin-bottom"`
	MarginLeft          int      `mapstructure:"margin-left" toml:"margin-left"`
	FontFamily          string   `mapstructure:"font-family" toml:"font-family"`
	TitleFontSize       float64  `mapstructure:"title-font-size" toml:"title-font-size"`
	XLabelFontSize      float64  `mapstructure:"x-label-font-size" toml:"x-label-font-size"`
	YLabelFontSize      float64  `mapstructure:"y-label-font-size" toml:"y-label-font-size"`
	BackgroundColor     string   `mapstructure:"background-color" toml:"background-color"`
	ForegroundColor     string   `mapstructure:"foreground-color" toml:"foreground-color"`
	GridColor           string   `mapstructure:"grid-color" toml:"grid-color"`
	HighColor           string   `mapstructure:"high-color" toml:"high-color"`
	LowColor            string   `mapstructure:"low-color" toml:"low-color"`
	RenderWorkers       int      `mapstructure:"render-workers" toml:"render-workers"`
	LogFile             string   `mapstructure:"log-file" toml:"log-file"`
	LogLevel            int      `mapstructure:"log-level" toml:"log-level"`
	LogSyslog           bool     `mapstructure:"log-syslog" toml:"log-syslog"`
	LogRotateMaxSize    int      `mapstructure:"log-rotate-max-size" toml:"log-rotate-max-size"`
	LogRotateMaxBackup  int      `mapstructure:"log-rotate-max-backup" toml:"log-rotate-max-backup"`
	LogRotateMaxAge     int      `mapstructure:"log-rotate-max-age" toml:"log-rotate-max-age"`
	SlackURL            string   `mapstructure:"alert-slack-url" toml:"alert-slack-url"`
	SlackChannel        string   `mapstructure:"alert-slack-channel" toml:"alert-slack-channel"`
	SlackUser           string   `mapstructure:"alert-slack-user" toml:"alert-slack-user"`
	Verbose             bool     `mapstructure:"verbose" toml:"verbose"`
	Version             string   `mapstructure:"-" toml:"-"`
	FullVersion         string   `mapstructure:"-" toml:"-"`
	GoOS                string   `mapstructure:"-" toml:"-"`
	GoArch              string   `mapstructure:"-" toml:"-"`

	// per-city overrides read from the [<city>] groups of the config file
	Cities map[string]Config `mapstructure:"-" toml:"-"`
}

// For returns the configuration of one city, with its group applied.
func (conf Config) For(city string) Config {
	if c, ok := conf.Cities[strings.ToLower(city)]; ok {
		return c
	}
	return conf
}

// DSN returns database-url, or a MySQL DSN assembled from the db-* keys.
func (conf Config) DSN() string {
	if conf.DatabaseURL != "" || conf.DBDriver != "mysql" || conf.DBName == "" {
		return conf.DatabaseURL
	}
	return dbhelper.MySQLDSN(conf.DBUser, conf.DBPassword, dbhelper.GetAddress(conf.DBHost, conf.DBPort, conf.DBSocket), conf.DBName)
}

func (conf Config) CacheDuration() time.Duration {
	return time.Duration(conf.CacheTTL) * time.Second
}

func (conf Config) Layout() (chart.CanvasLayout, error) {
	return chart.NewLayout(float64(conf.Width), float64(conf.Height), float64(conf.MarginTop), float64(conf.MarginRight), float64(conf.MarginBottom), float64(conf.MarginLeft))
}

func (conf Config) Padding() chart.Padding {
	return chart.Padding{Below: conf.PadBelow, Above: conf.PadAbove}
}

func (conf Config) Mode() (chart.ScaleMode, error) {
	return chart.ParseScaleMode(conf.ScaleMode)
}

func (conf Config) Style() chart.Style {
	return chart.Style{
		Family:     conf.FontFamily,
		TitleSize:  conf.TitleFontSize,
		XLabelSize: conf.XLabelFontSize,
		YLabelSize: conf.YLabelFontSize,
		Background: canvas.ParseColor(conf.BackgroundColor),
		Foreground: canvas.ParseColor(conf.ForegroundColor),
		Grid:       canvas.ParseColor(conf.GridColor),
		High:       canvas.ParseColor(conf.HighColor),
		Low:        canvas.ParseColor(conf.LowColor),
	}
}

// Validate checks the settings a render cannot start without.
func (conf Config) Validate() error {
	switch conf.Source {
	case "sql":
		if conf.DSN() == "" {
			return fmt.Errorf("source sql needs database-url or DATABASE_URL")
		}
	case "csv":
		if conf.CSVExtremesFile == "" || conf.CSVObservationsFile == "" {
			return fmt.Errorf("source csv needs csv-extremes-file and csv-observations-file")
		}
	default:
		return fmt.Errorf("unknown source %q (want sql or csv)", conf.Source)
	}
	if _, err := conf.Layout(); err != nil {
		return err
	}
	if _, err := conf.Mode(); err != nil {
		return err
	}
	if conf.PadBelow <= 0 || conf.PadAbove <= 0 {
		return fmt.Errorf("pad-below and pad-above must be positive, got %g and %g", conf.PadBelow, conf.PadAbove)
	}
	if conf.RenderWorkers < 1 {
		return fmt.Errorf("render-workers must be at least 1")
	}
	return nil
}
