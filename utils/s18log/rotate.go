// tempbars - Periodic high/low temperature bar charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package s18log

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type RotateFileConfig struct {
	Filename   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Level      logrus.Level
	Formatter  logrus.Formatter
}

// RotateFileHook writes entries at or above Level to a size-rotated file.
type RotateFileHook struct {
	Config    RotateFileConfig
	logWriter io.WriteCloser
}

func NewRotateFileHook(config RotateFileConfig) (*RotateFileHook, error) {
	hook := RotateFileHook{
		Config: config,
	}
	if hook.Config.Formatter == nil {
		hook.Config.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	}
	hook.logWriter = &lumberjack.Logger{
		Filename:   config.Filename,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
	}
	return &hook, nil
}

func (hook *RotateFileHook) Levels() []logrus.Level {
	return logrus.AllLevels[:hook.Config.Level+1]
}

func (hook *RotateFileHook) Fire(entry *logrus.Entry) error {
	b, err := hook.Config.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = hook.logWriter.Write(b)
	return err
}

func (hook *RotateFileHook) Close() error {
	return hook.logWriter.Close()
}
