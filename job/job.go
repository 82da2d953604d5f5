// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

// Package job turns render requests into chart files: fetch from a source,
// draw, then write the artifact.
package job

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/signal18/tempbars/canvas"
	"github.com/signal18/tempbars/chart"
	"github.com/signal18/tempbars/config"
	"github.com/signal18/tempbars/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Request names one chart.
type Request struct {
	City        string
	Granularity chart.Granularity
	Year        int
}

// FileName is <City>_<Period>_<Year><ext>.
func (req Request) FileName(ext string) string {
	return fmt.Sprintf("%s_%s_%d%s", req.City, req.Granularity, req.Year, ext)
}

// validCity rejects names that would move the artifact out of the output
// directory.
func validCity(city string) error {
	if city == "" || city == "." || city == ".." || strings.ContainsAny(city, `/\`) || filepath.Base(city) != city {
		return fmt.Errorf("city %q cannot be used in a file name", city)
	}
	return nil
}

func (req Request) fields() log.Fields {
	return log.Fields{"city": req.City, "period": req.Granularity.String(), "year": req.Year}
}

// Requests expands every city and period token for year. Unsupported tokens
// are kept so the chart reports them.
func Requests(cities []string, periods []string, year int) []Request {
	var reqs []Request
	for _, city := range cities {
		for _, p := range periods {
			g, _ := chart.ParseGranularity(p)
			reqs = append(reqs, Request{City: city, Granularity: g, Year: year})
		}
	}
	return reqs
}

type Result struct {
	Request
	File         string
	Size         int
	Observations []chart.Observation
	Report       chart.Report
	// Problems are the non-fatal conditions of the render: a failed
	// observation fetch followed by those of the chart report.
	Problems []error
	Err      error
}

// Runner renders requests against one source. Runner is safe for concurrent
// use as long as Source is.
type Runner struct {
	Conf   config.Config
	Source source.Source
	Fs     afero.Fs
	// NewCanvas overrides the backend selected by the configuration.
	NewCanvas canvas.Factory
}

func NewRunner(conf config.Config, src source.Source, fs afero.Fs) *Runner {
	return &Runner{Conf: conf, Source: src, Fs: fs}
}

func (r *Runner) factory(backend string) canvas.Factory {
	if r.NewCanvas != nil {
		return r.NewCanvas
	}
	return func(width, height int) (canvas.Canvas, error) {
		return canvas.New(backend, width, height)
	}
}

// Fetch returns the extremes and the observations of req. A failure to get
// the extremes is fatal; a failure to get the observations is returned as a
// problem and the chart is drawn without bars.
func (r *Runner) Fetch(ctx context.Context, req Request) (source.Extremes, []chart.Observation, []error, error) {
	ext, err := r.Source.Extremes(ctx, req.City)
	if err != nil {
		return ext, nil, nil, fmt.Errorf("fetch extremes of %s: %w", req.City, err)
	}
	if !req.Granularity.Valid() {
		return ext, nil, nil, nil
	}
	obs, err := r.Source.Observations(ctx, req.City, req.Granularity, req.Year)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ext, nil, nil, err
		}
		log.WithFields(req.fields()).WithError(err).Warn("Could not fetch observations, drawing axes only")
		return ext, nil, []error{err}, nil
	}
	return ext, obs, nil, nil
}

// Run renders req and writes it to the output directory. Nothing is written
// when an error is returned.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	res := Result{Request: req}
	if err := validCity(req.City); err != nil {
		return res, err
	}
	conf := r.Conf.For(req.City)

	layout, err := conf.Layout()
	if err != nil {
		return res, err
	}
	mode, err := conf.Mode()
	if err != nil {
		return res, err
	}

	ext, obs, problems, err := r.Fetch(ctx, req)
	if err != nil {
		return res, err
	}
	res.Observations = obs
	res.Problems = problems
	log.WithFields(req.fields()).WithFields(log.Fields{
		"low":          ext.Low,
		"high":         ext.High,
		"observations": len(obs),
	}).Debug("Fetched data")

	cv, err := r.factory(conf.Backend)(conf.Width, conf.Height)
	if err != nil {
		return res, err
	}
	res.Report, err = chart.Draw(cv, chart.Input{
		City:         req.City,
		Year:         req.Year,
		Granularity:  req.Granularity,
		KnownLow:     ext.Low,
		KnownHigh:    ext.High,
		Observations: obs,
		Layout:       layout,
		Padding:      conf.Padding(),
		Mode:         mode,
		Style:        conf.Style(),
	})
	if err != nil {
		return res, err
	}
	for _, p := range res.Report.Problems {
		log.WithFields(req.fields()).Warn(p.Error())
	}
	res.Problems = append(res.Problems, res.Report.Problems...)
	log.WithFields(req.fields()).WithFields(log.Fields{
		"high-bars": res.Report.HighBars,
		"low-bars":  res.Report.LowBars,
		"skipped":   res.Report.Skipped,
		"ppu":       res.Report.Range.PixelsPerUnit,
		"zero":      res.Report.Range.Branch.String(),
	}).Debug("Chart drawn")

	var buf bytes.Buffer
	if err := cv.Present(&buf); err != nil {
		return res, fmt.Errorf("present chart: %w", err)
	}
	res.Size = buf.Len()
	res.File = filepath.Join(conf.OutputDir, req.FileName(extension(cv)))
	if conf.DryRun {
		log.WithFields(req.fields()).WithFields(log.Fields{
			"file": res.File,
			"size": humanize.Bytes(uint64(res.Size)),
		}).Info("Dry run, chart not written")
		return res, nil
	}
	if err := writeAtomic(r.Fs, res.File, &buf); err != nil {
		return res, err
	}
	log.WithFields(req.fields()).WithFields(log.Fields{
		"file": res.File,
		"size": humanize.Bytes(uint64(res.Size)),
	}).Info("Chart written")
	return res, nil
}

func extension(cv canvas.Canvas) string {
	if _, ok := cv.(*canvas.Recorder); ok {
		return ".json"
	}
	return ".png"
}

// writeAtomic writes to a temporary file next to name and renames it.
func writeAtomic(fs afero.Fs, name string, content io.Reader) error {
	dir := filepath.Dir(name)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := afero.TempFile(fs, dir, ".tempbars-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		fs.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmp.Name())
		return err
	}
	if err := fs.Rename(tmp.Name(), name); err != nil {
		fs.Remove(tmp.Name())
		return err
	}
	return nil
}
