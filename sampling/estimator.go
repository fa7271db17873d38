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

package sampling

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/sampen-go/sampen/counting"
	"github.com/sampen-go/sampen/entropy"
	"github.com/sampen-go/sampen/internal/bounds"
	"github.com/sampen-go/sampen/template"
)

// Strategy chooses the start indices of one trial.
type Strategy interface {
	// Draw fills dst with len(dst) distinct indices in [0, n). Draws depend
	// only on the strategy and the trial number.
	Draw(trial int, dst []int32)
}

// weightedStrategy is implemented by strategies that do not include every
// pair with the same probability. countTrial draws a trial and returns its
// counts reweighted to the scale of an equal-probability draw.
type weightedStrategy interface {
	Strategy
	countTrial(v *template.View, trial int, dst []int32, r float64) TrialCount
}

// TrialCount holds the ordered-pair match counts of one trial. They are
// whole numbers for equal-probability strategies and inverse-probability
// weighted sums for stratified ones.
type TrialCount struct {
	A float64
	B float64
}

func fromMatchCount(c counting.MatchCount) TrialCount {
	return TrialCount{A: float64(c.A), B: float64(c.B)}
}

// Estimate holds the per-trial counts of a sampling run.
type Estimate struct {
	Trials     []TrialCount
	SampleSize int
	// Means over trials.
	A float64
	B float64
}

// Run validates cfg, then draws and counts cfg.SampleNum trials. Trials run
// concurrently on up to cfg.Workers goroutines; the counts are reduced in
// trial order, so the result does not depend on the worker count.
func Run(v *template.View, r float64, s Strategy, cfg Config) (Estimate, error) {
	if err := template.ValidateTolerance(r); err != nil {
		return Estimate{}, err
	}
	if err := cfg.Validate(v.Count()); err != nil {
		return Estimate{}, err
	}

	trials := make([]TrialCount, cfg.SampleNum)
	var g errgroup.Group
	g.SetLimit(max(cfg.Workers, 1))
	for trial := range trials {
		g.Go(func() error {
			idx := make([]int32, cfg.SampleSize)
			if ws, ok := s.(weightedStrategy); ok {
				trials[trial] = ws.countTrial(v, trial, idx, r)
				return nil
			}
			s.Draw(trial, idx)
			if cfg.Presort {
				slices.Sort(idx)
			}
			trials[trial] = fromMatchCount(counting.CountPairs(v, idx, r))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Estimate{}, err
	}

	est := Estimate{Trials: trials, SampleSize: cfg.SampleSize}
	for _, c := range trials {
		est.A += c.A
		est.B += c.B
	}
	est.A /= float64(len(trials))
	est.B /= float64(len(trials))
	return est, nil
}

// Result aggregates the trial means and attaches the spread of the
// per-trial rates and approximate confidence bounds on the mean rates.
func (e Estimate) Result(method entropy.Method) entropy.Result {
	norm := entropy.SampledNormalizer(e.SampleSize)
	res := entropy.Aggregate(e.A, e.B, norm, method)
	res.SampleSize = e.SampleSize
	res.SampleNum = len(e.Trials)

	rateA := make([]float64, len(e.Trials))
	rateB := make([]float64, len(e.Trials))
	for i, c := range e.Trials {
		rateA[i] = c.A / norm
		rateB[i] = c.B / norm
	}
	res.ATrialStdDev = spread(rateA)
	res.BTrialStdDev = spread(rateB)
	res.ABounds = rateBounds(rateA, res.ATrialStdDev, e.SampleSize)
	res.BBounds = rateBounds(rateB, res.BTrialStdDev, e.SampleSize)
	return res
}

func spread(rates []float64) float64 {
	if len(rates) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationSample(rates)
	if err != nil {
		return 0
	}
	return sd
}

// rateBounds brackets the mean of the per-trial rates with a binomial
// interval. Pairs of one trial share templates and are not independent, so
// the interval is taken over the number of independent pairs that would
// show the observed spread of the trial mean. Without a usable spread it
// falls back to the floor(s/2) disjoint, hence independent, pairs per trial.
func rateBounds(rates []float64, sd float64, sampleSize int) entropy.Interval {
	if len(rates) == 0 {
		return entropy.Interval{}
	}
	mean, err := stats.Mean(rates)
	if err != nil {
		return entropy.Interval{}
	}
	trials := float64(len(rates))
	eff := trials * float64(sampleSize/2)
	if sd > 0 && mean > 0 && mean < 1 {
		pairs := trials * float64(sampleSize) * float64(sampleSize-1) / 2
		eff = min(mean*(1-mean)/(sd*sd/trials), pairs)
	}
	n := uint64(max(math.Round(eff), 1))
	k := min(uint64(math.Round(max(mean, 0)*float64(n))), n)
	lo, hi, err := bounds.Interval(n, k, bounds.DefaultNumStdDevs)
	if err != nil {
		return entropy.Interval{}
	}
	return entropy.Interval{Lower: min(lo, mean), Upper: max(hi, mean)}
}
