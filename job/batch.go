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
	"context"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Batch runs reqs on at most workers goroutines. Every request is attempted;
// the results keep the order of reqs and the error is the first failure.
func (r *Runner) Batch(ctx context.Context, reqs []Request, workers int) ([]Result, error) {
	results := make([]Result, len(reqs))
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			res, err := r.Run(ctx, req)
			res.Err = err
			results[i] = res
			if err != nil {
				log.WithFields(req.fields()).WithError(err).Error("Render failed")
			}
			return err
		})
	}
	return results, g.Wait()
}
