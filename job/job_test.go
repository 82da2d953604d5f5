// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package job

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/signal18/tempbars/canvas"
	"github.com/signal18/tempbars/chart"
	"github.com/signal18/tempbars/config"
	"github.com/signal18/tempbars/source"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu          sync.Mutex
	extremes    map[string]source.Extremes
	obs         map[chart.Granularity][]chart.Observation
	obsErr      error
	fetchedObs  int
	fetchedExts int
}

func newFakeSource() *fakeSource {
	var month []chart.Observation
	for i := 1; i <= 12; i++ {
		month = append(month, chart.Observation{Year: 2024, Bucket: i, High: chart.Some(float64(55 + i)), Low: chart.Some(float64(35 + i))})
	}
	return &fakeSource{
		extremes: map[string]source.Extremes{
			"Phoenix_AZ": {Low: 20, High: 115},
			"Broken":     {Low: 10, High: -10},
		},
		obs: map[chart.Granularity][]chart.Observation{chart.Month: month},
	}
}

func (s *fakeSource) Extremes(ctx context.Context, city string) (source.Extremes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchedExts++
	ext, ok := s.extremes[city]
	if !ok {
		return ext, source.ErrNoData
	}
	return ext, nil
}

func (s *fakeSource) Observations(ctx context.Context, city string, g chart.Granularity, year int) ([]chart.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchedObs++
	if s.obsErr != nil {
		return nil, s.obsErr
	}
	obs, ok := s.obs[g]
	if !ok {
		return nil, source.ErrNoData
	}
	return obs, nil
}

func (s *fakeSource) Close() error { return nil }

func testConf(t *testing.T) config.Config {
	t.Helper()
	v := viper.New()
	v.SetFs(afero.NewMemMapFs())
	config.SetDefaults(v)
	conf, err := config.Load(v, "")
	require.NoError(t, err)
	conf.OutputDir = "/out"
	return conf
}

func TestRequests(t *testing.T) {
	reqs := Requests([]string{"Phoenix_AZ", "Nome_AK"}, []string{"Month", "fort", "Quarter"}, 2024)
	require.Len(t, reqs, 6)
	assert.Equal(t, Request{City: "Phoenix_AZ", Granularity: chart.Month, Year: 2024}, reqs[0])
	assert.Equal(t, chart.Fortnight, reqs[1].Granularity)
	assert.Equal(t, chart.Granularity("Quarter"), reqs[2].Granularity)
	assert.Equal(t, "Nome_AK", reqs[3].City)
	assert.Equal(t, "Phoenix_AZ_Month_2024.png", reqs[0].FileName(".png"))
}

func TestRunWritesPNG(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := NewRunner(testConf(t), newFakeSource(), fs)

	res, err := r.Run(context.Background(), Request{City: "Phoenix_AZ", Granularity: chart.Month, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "/out/Phoenix_AZ_Month_2024.png", res.File)
	assert.Empty(t, res.Problems)
	assert.Equal(t, 12, res.Report.HighBars)
	assert.Len(t, res.Observations, 12)

	b, err := afero.ReadFile(fs, res.File)
	require.NoError(t, err)
	assert.Equal(t, res.Size, len(b))
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 1280, img.Bounds().Dx())
	assert.Equal(t, 790, img.Bounds().Dy())

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestRunRecorder(t *testing.T) {
	fs := afero.NewMemMapFs()
	conf := testConf(t)
	conf.Backend = "recorder"
	r := NewRunner(conf, newFakeSource(), fs)

	res, err := r.Run(context.Background(), Request{City: "Phoenix_AZ", Granularity: chart.Month, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "/out/Phoenix_AZ_Month_2024.json", res.File)
	b, err := afero.ReadFile(fs, res.File)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"2024 Phoenix_AZ  Month Avg Temperatures"`)
}

func TestRunDryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	conf := testConf(t)
	conf.DryRun = true
	r := NewRunner(conf, newFakeSource(), fs)

	res, err := r.Run(context.Background(), Request{City: "Phoenix_AZ", Granularity: chart.Month, Year: 2024})
	require.NoError(t, err)
	assert.Greater(t, res.Size, 0)
	exists, err := afero.Exists(fs, res.File)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRunFatalErrorsWriteNothing(t *testing.T) {
	for _, city := range []string{"Atlantis", "Broken"} {
		fs := afero.NewMemMapFs()
		rec := canvas.NewRecorder(1280, 790)
		r := NewRunner(testConf(t), newFakeSource(), fs)
		r.NewCanvas = func(w, h int) (canvas.Canvas, error) { return rec, nil }

		_, err := r.Run(context.Background(), Request{City: city, Granularity: chart.Month, Year: 2024})
		assert.Error(t, err, city)
		assert.Empty(t, rec.Ops, city)
		exists, _ := afero.DirExists(fs, "/out")
		assert.False(t, exists, city)
	}
}

func TestRunRejectsPathCities(t *testing.T) {
	for _, city := range []string{"../x", "a/b", `a\b`, "..", ".", ""} {
		fs := afero.NewMemMapFs()
		src := newFakeSource()
		r := NewRunner(testConf(t), src, fs)

		_, err := r.Run(context.Background(), Request{City: city, Granularity: chart.Month, Year: 2024})
		assert.Error(t, err, city)
		assert.Zero(t, src.fetchedExts, city)
		exists, _ := afero.Exists(fs, "/x")
		assert.False(t, exists, city)
		exists, _ = afero.DirExists(fs, "/out")
		assert.False(t, exists, city)
	}
}

func TestRunObservationFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := newFakeSource()
	src.obsErr = source.ErrSourceUnavailable
	rec := canvas.NewRecorder(1280, 790)
	r := NewRunner(testConf(t), src, fs)
	r.NewCanvas = func(w, h int) (canvas.Canvas, error) { return rec, nil }

	res, err := r.Run(context.Background(), Request{City: "Phoenix_AZ", Granularity: chart.Month, Year: 2024})
	require.NoError(t, err)
	require.Len(t, res.Problems, 1)
	assert.ErrorIs(t, res.Problems[0], source.ErrSourceUnavailable)
	assert.Empty(t, rec.Filter(canvas.OpRect))
	assert.Len(t, res.Report.XLabels, 12)
	exists, _ := afero.Exists(fs, res.File)
	assert.True(t, exists)
}

func TestRunUnsupportedPeriod(t *testing.T) {
	src := newFakeSource()
	conf := testConf(t)
	conf.Backend = "recorder"
	r := NewRunner(conf, src, afero.NewMemMapFs())

	res, err := r.Run(context.Background(), Request{City: "Phoenix_AZ", Granularity: chart.Granularity("Quarter"), Year: 2024})
	require.NoError(t, err)
	require.Len(t, res.Problems, 1)
	var gerr *chart.UnsupportedGranularityError
	assert.ErrorAs(t, res.Problems[0], &gerr)
	assert.Equal(t, 0, src.fetchedObs)
}

func TestRunCityGroup(t *testing.T) {
	conf := testConf(t)
	conf.Backend = "recorder"
	nome := conf
	nome.LowColor = "blue"
	conf.Cities = map[string]config.Config{"phoenix_az": nome}
	rec := canvas.NewRecorder(1280, 790)
	r := NewRunner(conf, newFakeSource(), afero.NewMemMapFs())
	r.NewCanvas = func(w, h int) (canvas.Canvas, error) { return rec, nil }

	_, err := r.Run(context.Background(), Request{City: "Phoenix_AZ", Granularity: chart.Month, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 12, rec.Count(canvas.OpRect, canvas.ParseColor("blue")))
}

func TestBatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := newFakeSource()
	r := NewRunner(testConf(t), src, fs)
	reqs := Requests([]string{"Phoenix_AZ", "Atlantis"}, []string{"Month", "Week"}, 2024)

	results, err := r.Batch(context.Background(), reqs, 2)
	assert.ErrorIs(t, err, source.ErrNoData)
	require.Len(t, results, 4)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Error(t, results[2].Err)
	assert.Error(t, results[3].Err)
	assert.Equal(t, 1, len(results[1].Problems), "no weekly data")
	assert.Equal(t, 4, src.fetchedExts)

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"Phoenix_AZ_Month_2024.png", "Phoenix_AZ_Week_2024.png"}, names)
}

func TestPrintAverages(t *testing.T) {
	var buf bytes.Buffer
	req := Request{City: "Phoenix_AZ", Granularity: chart.Month, Year: 2024}
	PrintAverages(&buf, req, []chart.Observation{
		{Year: 2024, Bucket: 1, High: chart.Some(58), Low: chart.Some(40)},
		{Year: 2024, Bucket: 2, High: chart.Missing, Low: chart.Some(41.5)},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"Avg tmonth temps for Phoenix_AZ in 2024",
		"2024-1: Avg Hi=58, Avg Lo=40",
		"2024-2: Avg Hi=-, Avg Lo=41.5",
	}, lines)

	buf.Reset()
	PrintAverages(&buf, Request{City: "Nome_AK", Granularity: chart.Week, Year: 1900}, nil)
	assert.Equal(t, "No tweek data found for Nome_AK in 1900\n", buf.String())
}
