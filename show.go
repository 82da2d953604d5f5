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
	"errors"
	"fmt"
	"os"

	"github.com/signal18/tempbars/config"
	"github.com/signal18/tempbars/job"
	"github.com/signal18/tempbars/source"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(citiesCmd)
	rootCmd.AddCommand(configCmd)
	initSourceFlags(showCmd)
	initSourceFlags(citiesCmd)
}

var showCmd = &cobra.Command{
	Use:          "show",
	Short:        "Print the average highs and lows of each bucket",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := initConfig(cmd)
		if err != nil {
			return err
		}
		if err := conf.Validate(); err != nil {
			return err
		}
		src, err := source.Open(conf, afero.NewOsFs())
		if err != nil {
			return err
		}
		defer src.Close()

		ctx, cancel := signalContext()
		defer cancel()
		for _, req := range job.Requests(conf.City, conf.Period, conf.Year) {
			obs, err := src.Observations(ctx, req.City, req.Granularity, req.Year)
			if err != nil && !errors.Is(err, source.ErrNoData) {
				return err
			}
			job.PrintAverages(os.Stdout, req, obs)
		}
		return nil
	},
}

var citiesCmd = &cobra.Command{
	Use:          "cities",
	Short:        "List the cities and their recorded extremes",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := initConfig(cmd)
		if err != nil {
			return err
		}
		if err := conf.Validate(); err != nil {
			return err
		}
		src, err := source.Open(conf, afero.NewOsFs())
		if err != nil {
			return err
		}
		defer src.Close()
		lister, ok := src.(source.Lister)
		if !ok {
			return fmt.Errorf("source %s cannot list cities", conf.Source)
		}
		ctx, cancel := signalContext()
		defer cancel()
		cities, err := lister.Cities(ctx)
		if err != nil {
			return err
		}
		for _, c := range cities {
			fmt.Printf("%-24s low=%g high=%g\n", c.Name, c.Low, c.High)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := initConfig(cmd)
		if err != nil {
			return err
		}
		return config.Dump(os.Stdout, conf)
	},
}
