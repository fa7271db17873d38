/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sampen-go/sampen/counting"
	"github.com/sampen-go/sampen/entropy"
	"github.com/sampen-go/sampen/sampen"
)

type sweepFlags struct {
	input     inputFlags
	method    string
	sizes     string
	sampleNum int
	workers   int
	seed      uint64
}

func sweepCmd(g *globalFlags) *cobra.Command {
	var f sweepFlags
	cmd := &cobra.Command{
		Use:   "sweep FILE",
		Short: "Measure how a sampling method converges with the sample size",
		Long: `Run one sampling method over a list of sample sizes and print the error of
the normalized A and B against the exact counts of a range tree.
`,
		Example: `sampen sweep --method quasi-random --sizes 100,1000,10000 rr.txt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, g, &f, args[0])
		},
	}
	f.input.register(cmd)
	cmd.Flags().StringVar(&f.method, "method", "uniform", "sampling method")
	cmd.Flags().StringVar(&f.sizes, "sizes", "100,300,1000,3000", "comma separated sample sizes")
	cmd.Flags().IntVar(&f.sampleNum, "sample-num", 5, "trials per estimate")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "worker goroutines (0 uses every CPU)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "base seed (0 uses the default)")
	return cmd
}

func runSweep(cmd *cobra.Command, g *globalFlags, f *sweepFlags, path string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	method, err := entropy.ParseMethod(f.method)
	if err != nil {
		return err
	}
	if method.IsExact() {
		return fmt.Errorf("sweep needs a sampling method, got %s", method)
	}
	sizes, err := parseSizes(f.sizes)
	if err != nil {
		return err
	}
	records, err := f.input.read(path)
	if err != nil {
		return err
	}
	results, err := openStore(ctx, g)
	if err != nil {
		return err
	}
	defer results.Close()

	rep := newReport(cmd.OutOrStdout())
	for _, rec := range records {
		r, err := f.input.tolerance(rec.Values)
		if err != nil {
			return fmt.Errorf("%s: %w", rec.Name, err)
		}
		var opts []sampen.Option
		if f.workers > 0 {
			opts = append(opts, sampen.WithWorkers(f.workers))
		}
		if f.seed != 0 {
			opts = append(opts, sampen.WithSeed(f.seed))
		}
		j := job{
			record:   rec.Name,
			data:     rec.Values,
			instance: counting.Fingerprint(rec.Values),
			m:        f.input.m,
			r:        r,
			seed:     baseSeed(f.seed),
			parallel: f.workers != 1,
			opts:     append(opts, sampen.WithCache(counting.NewIndexCache())),
		}

		ref, refElapsed, err := j.run(ctx, results, entropy.RangeTree)
		if err != nil {
			return err
		}
		rep.header(rec.Name, len(rec.Values), j.m, r)
		rep.row(ref, refElapsed, nil)
		for _, size := range sizes {
			j.params = sampen.Params{SampleSize: size, SampleNum: f.sampleNum, CellWidth: r}
			res, elapsed, err := j.run(ctx, results, method)
			if err != nil {
				log.WithFields(log.Fields{"record": rec.Name, "sample-size": size}).Warn(err)
				rep.failed(method, err)
				continue
			}
			rep.row(res, elapsed, &ref)
		}
		log.WithFields(log.Fields{"record": rec.Name, "sizes": len(sizes)}).Debug("swept")
	}
	return rep.flush()
}
