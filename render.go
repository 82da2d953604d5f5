// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/signal18/tempbars/job"
	"github.com/signal18/tempbars/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renderCmd)
	initSourceFlags(renderCmd)
	renderCmd.Flags().String("output-dir", "imgs", "Directory receiving the charts")
	renderCmd.Flags().String("backend", "gg", "Canvas backend: gg, cairo or recorder")
	renderCmd.Flags().String("scale-mode", "parity", "Bar scaling: parity or linear")
	renderCmd.Flags().Float64("pad-below", 10, "Degrees added below the lowest known value")
	renderCmd.Flags().Float64("pad-above", 5, "Degrees added above the highest known value")
	renderCmd.Flags().Bool("dry-run", false, "Render without writing files")
	renderCmd.Flags().Int("render-workers", 4, "Charts rendered concurrently")
}

// initSourceFlags registers the flags shared by the commands reading a source.
func initSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("city", nil, "City, as in the city_names table (repeatable)")
	cmd.Flags().Int("year", 2024, "Year to chart")
	cmd.Flags().StringSlice("period", []string{"Month"}, "Week, Fort or Month (repeatable)")
	cmd.Flags().String("source", "sql", "Observation source: sql or csv")
	cmd.Flags().String("db-driver", "mysql", "Database driver: mysql, postgres or sqlite3")
	cmd.Flags().String("database-url", "", "Database DSN (default $DATABASE_URL)")
	cmd.Flags().Int("db-max-connections", 5, "Maximum open database connections")
	cmd.Flags().String("csv-extremes-file", "", "CSV file of city,min_temp,max_temp")
	cmd.Flags().String("csv-observations-file", "", "CSV file of city,period,tyear,bucket,tmax,tmin")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

var renderCmd = &cobra.Command{
	Use:          "render",
	Short:        "Render charts for every city and period",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := initConfig(cmd)
		if err != nil {
			return err
		}
		if err := conf.Validate(); err != nil {
			return err
		}
		if len(conf.City) == 0 {
			return fmt.Errorf("no city given, use --city")
		}
		fs := afero.NewOsFs()
		src, err := source.Open(conf, fs)
		if err != nil {
			return err
		}
		defer src.Close()

		ctx, cancel := signalContext()
		defer cancel()
		runner := job.NewRunner(conf, src, fs)
		results, err := runner.Batch(ctx, job.Requests(conf.City, conf.Period, conf.Year), conf.RenderWorkers)

		written := 0
		for _, res := range results {
			if res.Err == nil {
				written++
			}
		}
		log.WithFields(log.Fields{"charts": written, "failed": len(results) - written}).Info("Render finished")
		if msgs := memLog.Messages(); len(msgs) > 0 {
			fmt.Printf("%d warning(s) or error(s):\n", len(msgs))
			for i := len(msgs) - 1; i >= 0; i-- {
				fmt.Println("  " + msgs[i].String())
			}
		}
		return err
	},
}
