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
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// MemLog keeps the last Len log messages at or above a level, newest first.
type MemLog struct {
	Buffer []Message
	Len    int
	level  logrus.Level
	l      sync.Mutex
}

type Message struct {
	Group     string `json:"group"`
	Level     string `json:"level"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

func (m Message) String() string {
	if m.Group == "" {
		return fmt.Sprintf("%s [%s] %s", m.Timestamp, strings.ToUpper(m.Level), m.Text)
	}
	return fmt.Sprintf("%s [%s] %s: %s", m.Timestamp, strings.ToUpper(m.Level), m.Group, m.Text)
}

func NewMemLog(sz int, level logrus.Level) *MemLog {
	return &MemLog{Len: sz, level: level}
}

func (ml *MemLog) Add(s Message) {
	ml.l.Lock()
	ml.shift(s)
	ml.l.Unlock()
}

func (ml *MemLog) shift(e Message) {
	ml.Buffer = append([]Message{e}, ml.Buffer...)
	if len(ml.Buffer) > ml.Len {
		ml.Buffer = ml.Buffer[:ml.Len]
	}
}

// Messages returns a copy of the buffer, newest first.
func (ml *MemLog) Messages() []Message {
	ml.l.Lock()
	defer ml.l.Unlock()
	out := make([]Message, len(ml.Buffer))
	copy(out, ml.Buffer)
	return out
}

func (ml *MemLog) Levels() []logrus.Level {
	return logrus.AllLevels[:ml.level+1]
}

// Fire records entry. The group is built from the city, period and year
// fields when present.
func (ml *MemLog) Fire(entry *logrus.Entry) error {
	var group []string
	for _, k := range []string{"city", "period", "year"} {
		if v, ok := entry.Data[k]; ok {
			group = append(group, fmt.Sprint(v))
		}
	}
	var extra []string
	for k, v := range entry.Data {
		switch k {
		case "city", "period", "year":
		default:
			extra = append(extra, fmt.Sprintf("%s=%v", k, v))
		}
	}
	sort.Strings(extra)
	text := entry.Message
	if len(extra) > 0 {
		text += " (" + strings.Join(extra, " ") + ")"
	}
	ml.Add(Message{
		Group:     strings.Join(group, "/"),
		Level:     entry.Level.String(),
		Timestamp: entry.Time.Format("2006-01-02 15:04:05"),
		Text:      text,
	})
	return nil
}
