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
	"fmt"
	"log/syslog"
	"os"
	"time"

	"github.com/bluele/logrus_slack"
	"github.com/signal18/tempbars/canvas"
	"github.com/signal18/tempbars/config"
	"github.com/signal18/tempbars/utils/s18log"
	log "github.com/sirupsen/logrus"
	lSyslog "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is the semantic version number, e.g. 1.0.1
	Version string
	// FullVersion is the semantic version number + git commit hash
	FullVersion string
	// Build is the build date of tempbars
	Build  string
	GoOS   string = "linux"
	GoArch string = "amd64"

	cfgFile string
	memLog  = s18log.NewMemLog(50, log.WarnLevel)
)

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file (default is tempbars.toml in /etc/tempbars or the working directory)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Print detailed execution info")
	rootCmd.PersistentFlags().Int("log-level", 0, "Log verbosity level")
	rootCmd.PersistentFlags().String("log-file", "", "Write output messages to log file")
	rootCmd.PersistentFlags().Bool("log-syslog", false, "Enable logging to syslog")
	rootCmd.PersistentFlags().Int("log-rotate-max-size", 5, "Log rotate max size")
	rootCmd.PersistentFlags().Int("log-rotate-max-backup", 7, "Log rotate max backup")
	rootCmd.PersistentFlags().Int("log-rotate-max-age", 7, "Log rotate max age")
	rootCmd.PersistentFlags().String("alert-slack-url", "", "Slack webhook receiving warnings and errors")
	rootCmd.PersistentFlags().String("alert-slack-channel", "", "Slack channel")
	rootCmd.PersistentFlags().String("alert-slack-user", "tempbars", "Slack user")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tempbars",
	Short: "Periodic high/low temperature bar charts",
	Long: `tempbars draws weekly, fortnightly or monthly bar charts of average high and
low temperatures, read from a SQL database or CSV files, scaled against the
long-run extremes of each city.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Usage()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tempbars version number",
	Long:  `All software has versions. This is ours`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tempbars " + Version)
		fmt.Println("Full Version: ", FullVersion)
		fmt.Println("Build Time: ", Build)
		fmt.Println("Canvas backends: ", canvas.Backends())
		fmt.Println("Cairo: ", canvas.HaveCairo())
	},
}

// initConfig binds the flags of cmd, loads the configuration and sets up
// logging. It is called first by every command that needs a Config.
func initConfig(cmd *cobra.Command) (config.Config, error) {
	v := viper.GetViper()
	config.SetDefaults(v)
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config.Config{}, err
	}
	conf, err := config.Load(v, cfgFile)
	if err != nil {
		return conf, err
	}
	conf.Version = Version
	conf.FullVersion = FullVersion
	conf.GoOS = GoOS
	conf.GoArch = GoArch
	initLog(conf)
	return conf, nil
}

func initLog(conf config.Config) {
	if conf.LogSyslog {
		hook, err := lSyslog.NewSyslogHook("udp", "localhost:514", syslog.LOG_INFO, "tempbars")
		if err == nil {
			log.AddHook(hook)
		}
	}
	if conf.SlackURL != "" {
		log.AddHook(&logrus_slack.SlackHook{
			HookURL:        conf.SlackURL,
			AcceptedLevels: logrus_slack.LevelThreshold(log.WarnLevel),
			Channel:        conf.SlackChannel,
			IconEmoji:      ":thermometer:",
			Username:       conf.SlackUser,
			Timeout:        5 * time.Second, // request timeout for calling slack api
		})
	}
	if conf.LogLevel > 1 {
		log.SetLevel(log.DebugLevel)
	}
	if conf.LogFile != "" {
		hook, err := s18log.NewRotateFileHook(s18log.RotateFileConfig{
			Filename:   conf.LogFile,
			MaxSize:    conf.LogRotateMaxSize,
			MaxBackups: conf.LogRotateMaxBackup,
			MaxAge:     conf.LogRotateMaxAge,
			Level:      log.GetLevel(),
			Formatter: &log.TextFormatter{
				DisableColors:   true,
				TimestampFormat: "2006-01-02 15:04:05",
				FullTimestamp:   true,
			},
		})
		if err != nil {
			log.WithError(err).Error("Can't init log file")
		} else {
			log.AddHook(hook)
		}
	}
	log.AddHook(memLog)
	log.WithFields(log.Fields{
		"version": conf.Version,
		"os":      conf.GoOS,
		"arch":    conf.GoArch,
	}).Debug("tempbars starting")
}
