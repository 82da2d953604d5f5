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
	"fmt"
	"io"
	"strconv"

	"github.com/signal18/tempbars/chart"
)

// PrintAverages writes the per-bucket average highs and lows of req.
func PrintAverages(w io.Writer, req Request, obs []chart.Observation) {
	span := req.Granularity.Column()
	if span == "" {
		span = req.Granularity.String()
	}
	if len(obs) == 0 {
		fmt.Fprintf(w, "No %s data found for %s in %d\n", span, req.City, req.Year)
		return
	}
	fmt.Fprintf(w, "Avg %s temps for %s in %d\n", span, req.City, req.Year)
	for _, o := range obs {
		fmt.Fprintf(w, "%d-%d: Avg Hi=%s, Avg Lo=%s\n", o.Year, o.Bucket, formatReading(o.High), formatReading(o.Low))
	}
}

func formatReading(r chart.Reading) string {
	if !r.Valid {
		return "-"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}
