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
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sampen-go/sampen/counting"
	"github.com/sampen-go/sampen/entropy"
	"github.com/sampen-go/sampen/sampen"
	"github.com/sampen-go/sampen/sampling"
	"github.com/sampen-go/sampen/store"
)

type computeFlags struct {
	input      inputFlags
	methods    string
	sampleSize int
	sampleNum  int
	cellWidth  float64
	workers    int
	seed       uint64
	memLimit   int64
}

func computeCmd(g *globalFlags) *cobra.Command {
	var f computeFlags
	cmd := &cobra.Command{
		Use:   "compute FILE",
		Short: "Compute sample entropy of every record in FILE",
		Long: `Compute sample entropy with each selected method. The first exact method
is the reference for the error columns of the sampling methods. Results are
looked up in and saved to the result store.
`,
		Example: `sampen compute --methods direct,range-tree,uniform --sample-size 500 rr.txt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, g, &f, args[0])
		},
	}
	f.input.register(cmd)
	cmd.Flags().StringVar(&f.methods, "methods", "direct,range-tree,uniform,quasi-random", "comma separated methods, or all")
	cmd.Flags().IntVar(&f.sampleSize, "sample-size", 0, "templates per trial (0 uses a tenth of the sequence)")
	cmd.Flags().IntVar(&f.sampleNum, "sample-num", 5, "trials per estimate")
	cmd.Flags().Float64Var(&f.cellWidth, "cell-width", 0, "grid-sampling cell width (0 uses r)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "worker goroutines (0 uses every CPU)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "base seed of sampling methods (0 uses the default)")
	cmd.Flags().Int64Var(&f.memLimit, "memory-limit", 0, "maximum bytes per spatial index (0 is unlimited)")
	return cmd
}

func (f *computeFlags) options(cache *counting.IndexCache) []sampen.Option {
	opts := []sampen.Option{sampen.WithCache(cache)}
	if f.workers > 0 {
		opts = append(opts, sampen.WithWorkers(f.workers))
	}
	if f.seed != 0 {
		opts = append(opts, sampen.WithSeed(f.seed))
	}
	if f.memLimit > 0 {
		opts = append(opts, sampen.WithMemoryLimit(f.memLimit))
	}
	return opts
}

func runCompute(cmd *cobra.Command, g *globalFlags, f *computeFlags, path string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	methods, err := parseMethods(f.methods)
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
		j := job{
			record:   rec.Name,
			data:     rec.Values,
			instance: counting.Fingerprint(rec.Values),
			m:        f.input.m,
			r:        r,
			params:   f.params(len(rec.Values), r),
			seed:     baseSeed(f.seed),
			parallel: f.workers != 1,
			opts:     f.options(counting.NewIndexCache()),
		}
		log.WithFields(log.Fields{
			"record": rec.Name,
			"length": len(rec.Values),
			"m":      j.m,
			"r":      r,
		}).Info("computing")

		var ref *entropy.Result
		rep.header(rec.Name, len(rec.Values), j.m, r)
		for _, method := range methods {
			res, elapsed, err := j.run(ctx, results, method)
			if err != nil {
				if errors.Is(err, entropy.ErrInvalidParameter) || errors.Is(err, entropy.ErrResourceExhausted) {
					log.WithField("method", method).Warn(err)
					rep.failed(method, err)
					continue
				}
				return err
			}
			if ref == nil && method.IsExact() {
				ref = &res
			}
			rep.row(res, elapsed, ref)
		}
	}
	return rep.flush()
}

func (f *computeFlags) params(length int, r float64) sampen.Params {
	p := sampen.Params{SampleSize: f.sampleSize, SampleNum: f.sampleNum, CellWidth: f.cellWidth}
	if p.SampleSize == 0 {
		p.SampleSize = max(length/10, 2)
	}
	if p.CellWidth == 0 {
		p.CellWidth = r
	}
	return p
}

// baseSeed resolves the --seed flag to the seed sampling runs with.
func baseSeed(flag uint64) uint64 {
	if flag == 0 {
		return sampling.DefaultSeed
	}
	return flag
}

// job is one record with its parameters.
type job struct {
	record   string
	data     []float64
	instance uint64
	m        int
	r        float64
	params   sampen.Params
	seed     uint64
	parallel bool
	opts     []sampen.Option
}

func (j *job) key(method entropy.Method) store.Key {
	return store.Key{
		Record:     j.record,
		Length:     len(j.data),
		M:          j.m,
		R:          j.r,
		Method:     method,
		SampleSize: j.params.SampleSize,
		SampleNum:  j.params.SampleNum,
		CellWidth:  j.params.CellWidth,
		Seed:       j.seed,
		Parallel:   j.parallel,
	}.Normalize()
}

// run returns the stored result for method when the samples are unchanged
// and computes and stores it otherwise.
func (j *job) run(ctx context.Context, results store.Store, method entropy.Method) (entropy.Result, time.Duration, error) {
	key := j.key(method)
	entry, ok, err := results.Find(ctx, key)
	if err != nil {
		return entropy.Result{}, 0, err
	}
	if ok && entry.Instance == j.instance {
		log.WithFields(log.Fields{"record": j.record, "method": method, "id": entry.ID}).Debug("stored result")
		return resultFromEntry(entry, len(j.data)), entry.Elapsed, nil
	}

	start := time.Now()
	res, err := sampen.Run(j.data, j.m, j.r, method, j.params, j.opts...)
	if err != nil {
		return entropy.Result{}, 0, err
	}
	elapsed := time.Since(start)
	log.WithFields(log.Fields{
		"record":  j.record,
		"method":  method,
		"sampen":  res.SampEn,
		"elapsed": elapsed,
	}).Debug("computed")

	if err := results.Save(ctx, store.NewEntry(key, j.instance, res, elapsed)); err != nil {
		return entropy.Result{}, 0, err
	}
	return res, elapsed, nil
}

// resultFromEntry rebuilds the fields of a Result that the store keeps.
func resultFromEntry(e store.Entry, length int) entropy.Result {
	norm := entropy.ExactNormalizer(length - e.Key.M)
	if !e.Key.Method.IsExact() {
		norm = entropy.SampledNormalizer(e.Key.SampleSize)
	}
	res := entropy.Aggregate(e.A, e.B, norm, e.Key.Method)
	res.SampleSize = e.Key.SampleSize
	res.SampleNum = e.Key.SampleNum
	return res
}
