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
	"bytes"
	"testing"
	"time"

	"github.com/signal18/tempbars/chart"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, files map[string]string) *viper.Viper {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	v := viper.New()
	v.SetFs(fs)
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	conf, err := Load(newViper(t, nil), "")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("sql", conf.Source)
	assert.Equal("mysql", conf.DBDriver)
	assert.Equal(5, conf.DBMaxConnections)
	assert.Equal([]string{"Month"}, conf.Period)
	assert.Equal(5*time.Minute, conf.CacheDuration())
	assert.Nil(conf.Cities)

	l, err := conf.Layout()
	assert.NoError(err)
	assert.Equal(chart.DefaultLayout(), l)
	assert.Equal(chart.DefaultPadding, conf.Padding())
	assert.Equal(chart.DefaultStyle(), conf.Style())
	mode, err := conf.Mode()
	assert.NoError(err)
	assert.Equal(chart.ScaleParity, mode)
}

func TestLoadFileGroups(t *testing.T) {
	v := newViper(t, map[string]string{"/etc/tempbars.toml": `
[default]
source = "csv"
csv-extremes-file = "cities.csv"
csv-observations-file = "temps.csv"
period = ["Week", "Month"]
logfile = "/var/log/tempbars.log"

[Nome_AK]
pad-below = 20.0
high-color = "#ff8800"
`})
	conf, err := Load(v, "/etc/tempbars.toml")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("/etc/tempbars.toml", conf.ConfigFile)
	assert.Equal("csv", conf.Source)
	assert.Equal([]string{"Week", "Month"}, conf.Period)
	assert.Equal("/var/log/tempbars.log", conf.LogFile)
	assert.NoError(conf.Validate())

	nome := conf.For("Nome_AK")
	assert.Equal(20.0, nome.PadBelow)
	assert.Equal("#ff8800", nome.HighColor)
	assert.Equal("csv", nome.Source)
	assert.Equal(10.0, conf.For("Phoenix_AZ").PadBelow)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(newViper(t, nil), "/nowhere/tempbars.toml")
	assert.Error(t, err)
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Setenv("DATABASE_URL", "weather:pw@tcp(db:3306)/weather")
	t.Setenv("TEMPBARS_RENDER_WORKERS", "9")

	v := newViper(t, nil)
	flags := pflag.NewFlagSet("render", pflag.ContinueOnError)
	flags.StringSlice("city", nil, "")
	flags.Int("year", 2024, "")
	require.NoError(t, flags.Parse([]string{"--city", "Phoenix_AZ", "--city", "Nome_AK", "--year", "2023"}))
	require.NoError(t, v.BindPFlags(flags))

	conf, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "weather:pw@tcp(db:3306)/weather", conf.DatabaseURL)
	assert.Equal(t, 9, conf.RenderWorkers)
	assert.Equal(t, []string{"Phoenix_AZ", "Nome_AK"}, conf.City)
	assert.Equal(t, 2023, conf.Year)
	assert.NoError(t, conf.Validate())
}

func TestDSN(t *testing.T) {
	conf := Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "3306", DBName: "weather"}
	assert.Equal(t, "u:p@tcp(db:3306)/weather", conf.DSN())
	conf.DatabaseURL = "x:y@tcp(other:3306)/w"
	assert.Equal(t, "x:y@tcp(other:3306)/w", conf.DSN())
}

func TestValidate(t *testing.T) {
	conf, err := Load(newViper(t, nil), "")
	require.NoError(t, err)
	assert.Error(t, conf.Validate(), "sql source without a DSN")

	conf.DatabaseURL = "file.db"
	assert.NoError(t, conf.Validate())

	bad := conf
	bad.Source = "s3"
	assert.Error(t, bad.Validate())
	bad = conf
	bad.MarginTop = 800
	assert.Error(t, bad.Validate())
	bad = conf
	bad.ScaleMode = "log"
	assert.Error(t, bad.Validate())
	bad = conf
	bad.PadAbove = 0
	assert.Error(t, bad.Validate())
	bad = conf
	bad.RenderWorkers = 0
	assert.Error(t, bad.Validate())
}

func TestDumpRoundTrip(t *testing.T) {
	v := newViper(t, map[string]string{"in.toml": `
[default]
city = ["Phoenix_AZ"]
database-url = "file.db"
db-driver = "sqlite3"

[nome_ak]
low-color = "blue"
`})
	conf, err := Load(v, "in.toml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, conf))
	assert.Contains(t, buf.String(), "[default]")
	assert.Contains(t, buf.String(), `db-driver = "sqlite3"`)

	v2 := newViper(t, map[string]string{"out.toml": buf.String()})
	again, err := Load(v2, "out.toml")
	require.NoError(t, err)
	again.ConfigFile = conf.ConfigFile
	again.Cities["nome_ak"] = conf.Cities["nome_ak"]
	assert.Equal(t, conf, again)
	assert.Equal(t, "blue", again.For("Nome_AK").LowColor)
}
