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
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultGroup is the config file section applied to every city.
const DefaultGroup = "default"

// SetDefaults registers the built-in value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("year", 2024)
	v.SetDefault("period", []string{"Month"})
	v.SetDefault("source", "sql")
	v.SetDefault("db-driver", "mysql")
	v.SetDefault("db-port", "3306")
	v.SetDefault("db-max-connections", 5)
	v.SetDefault("cache-ttl", 300)
	v.SetDefault("output-dir", "imgs")
	v.SetDefault("backend", "gg")
	v.SetDefault("scale-mode", "parity")
	v.SetDefault("pad-below", 10.0)
	v.SetDefault("pad-above", 5.0)
	v.SetDefault("width", 1280)
	v.SetDefault("height", 790)
	v.SetDefault("margin-top", 60)
	v.SetDefault("margin-right", 40)
	v.SetDefault("margin-bottom", 40)
	v.SetDefault("margin-left", 120)
	v.SetDefault("font-family", "Sans")
	v.SetDefault("title-font-size", 36.0)
	v.SetDefault("x-label-font-size", 14.0)
	v.SetDefault("y-label-font-size", 18.0)
	v.SetDefault("background-color", "white")
	v.SetDefault("foreground-color", "black")
	v.SetDefault("grid-color", "gray")
	v.SetDefault("high-color", "red")
	v.SetDefault("low-color", "green")
	v.SetDefault("render-workers", 4)
	v.SetDefault("log-rotate-max-size", 5)
	v.SetDefault("log-rotate-max-backup", 7)
	v.SetDefault("log-rotate-max-age", 7)
}

func initAlias(v *viper.Viper) {
	v.RegisterAlias("logfile", "log-file")
	v.RegisterAlias("dsn", "database-url")
	v.RegisterAlias("span", "period")
}

// Load reads the configuration from file, or from tempbars.toml in
// /etc/tempbars or the working directory when file is empty, then from the
// TEMPBARS_* environment and the flags already bound to v. DATABASE_URL is
// honoured for database-url.
func Load(v *viper.Viper, file string) (Config, error) {
	var conf Config
	v.SetConfigType("toml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("tempbars")
		v.AddConfigPath("/etc/tempbars/")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("TEMPBARS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.BindEnv("database-url", "DATABASE_URL")

	err := v.ReadInConfig()
	switch err.(type) {
	case nil:
		log.WithField("file", v.ConfigFileUsed()).Debug("Using config file")
	case viper.ConfigFileNotFoundError:
		log.Debug("No config file found, using defaults")
	default:
		return conf, fmt.Errorf("could not read config file: %w", err)
	}

	if def := v.Sub(DefaultGroup); def != nil {
		if err := v.MergeConfigMap(def.AllSettings()); err != nil {
			return conf, fmt.Errorf("could not apply [%s] group: %w", DefaultGroup, err)
		}
	}
	initAlias(v)
	if err := v.Unmarshal(&conf); err != nil {
		return conf, fmt.Errorf("could not decode configuration: %w", err)
	}
	conf.ConfigFile = v.ConfigFileUsed()
	if conf.Verbose && conf.LogLevel == 0 {
		conf.LogLevel = 1
	}
	if !conf.Verbose && conf.LogLevel > 0 {
		conf.Verbose = true
	}

	for _, group := range groups(v) {
		cityconf := conf
		cityconf.Cities = nil
		if err := v.Sub(group).Unmarshal(&cityconf); err != nil {
			return conf, fmt.Errorf("could not decode [%s] group: %w", group, err)
		}
		if conf.Cities == nil {
			conf.Cities = make(map[string]Config)
		}
		conf.Cities[group] = cityconf
		log.WithField("group", group).Debug("Reading configuration group")
	}
	return conf, nil
}

// groups returns the sections of the config file other than the default one.
func groups(v *viper.Viper) []string {
	var names []string
	for k, val := range v.AllSettings() {
		if _, ok := val.(map[string]interface{}); ok && k != DefaultGroup {
			names = append(names, k)
		}
	}
	return names
}

// Dump writes conf as a config file that Load reads back.
func Dump(w io.Writer, conf Config) error {
	myconf := map[string]Config{DefaultGroup: conf}
	for name, c := range conf.Cities {
		myconf[name] = c
	}
	return toml.NewEncoder(w).Encode(myconf)
}
