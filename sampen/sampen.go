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

// Package sampen computes the sample entropy of a numeric sequence.
//
// SampEn(m, r) = -ln(A/B), where B counts ordered pairs of distinct
// templates of length m within Chebyshev distance r and A does the same for
// length m+1. Exact methods count every pair; sampling methods estimate the
// counts from sample_num trials of sample_size templates each. Every function
// returns an immutable entropy.Result, or an error wrapping
// entropy.ErrInvalidParameter or entropy.ErrResourceExhausted.
package sampen

import (
	"github.com/sampen-go/sampen/counting"
	"github.com/sampen-go/sampen/entropy"
	"github.com/sampen-go/sampen/sampling"
	"github.com/sampen-go/sampen/template"
)

// Re-exported so that callers need a single import.
var (
	ErrInvalidParameter  = entropy.ErrInvalidParameter
	ErrResourceExhausted = entropy.ErrResourceExhausted
)

// Params holds the parameters of sampling methods. Exact methods ignore it.
type Params struct {
	SampleSize int
	SampleNum  int
	// CellWidth is the grid side of GridSampling.
	CellWidth float64
}

// ExactDirect counts every template pair.
func ExactDirect(data []float64, m int, r float64, opts ...Option) (entropy.Result, error) {
	v, err := template.NewView(data, m)
	if err != nil {
		return entropy.Result{}, err
	}
	c := newConfig(opts)
	count, err := counting.Direct(v, r, withOptions(c.counting))
	if err != nil {
		return entropy.Result{}, err
	}
	return exactResult(v, count, entropy.Direct), nil
}

// ExactSpatial counts matches with a range-counting index. The counts equal
// those of ExactDirect.
func ExactSpatial(data []float64, m int, r float64, kind counting.Kind, opts ...Option) (entropy.Result, error) {
	v, err := template.NewView(data, m)
	if err != nil {
		return entropy.Result{}, err
	}
	method, err := kindMethod(kind)
	if err != nil {
		return entropy.Result{}, err
	}
	c := newConfig(opts)
	count, err := counting.Spatial(v, r, kind, withOptions(c.counting))
	if err != nil {
		return entropy.Result{}, err
	}
	return exactResult(v, count, method), nil
}

// EstimateUniform averages sampleNum trials of sampleSize templates drawn
// uniformly without replacement.
func EstimateUniform(data []float64, m int, r float64, sampleSize, sampleNum int, opts ...Option) (entropy.Result, error) {
	return estimate(data, m, r, entropy.Uniform, Params{SampleSize: sampleSize, SampleNum: sampleNum}, opts)
}

// EstimateQuasiRandom draws templates from a randomly shifted low-discrepancy
// sequence. presort sorts each draw before counting, which changes only the
// memory access pattern.
func EstimateQuasiRandom(data []float64, m int, r float64, sampleSize, sampleNum int, presort bool, opts ...Option) (entropy.Result, error) {
	method := entropy.QuasiRandom
	if presort {
		method = entropy.QuasiRandomPresort
	}
	return estimate(data, m, r, method, Params{SampleSize: sampleSize, SampleNum: sampleNum}, opts)
}

// EstimateKDTreeSampling draws a sample stratified by the leaves of a KD tree
// over the templates, proportionally to leaf population.
func EstimateKDTreeSampling(data []float64, m int, r float64, sampleSize, sampleNum int, opts ...Option) (entropy.Result, error) {
	return estimate(data, m, r, entropy.KDTreeSampling, Params{SampleSize: sampleSize, SampleNum: sampleNum}, opts)
}

// EstimateGridSampling draws a sample stratified by the occupied cells of a
// regular grid of side cellWidth over the templates.
func EstimateGridSampling(data []float64, m int, r float64, sampleSize, sampleNum int, cellWidth float64, opts ...Option) (entropy.Result, error) {
	return estimate(data, m, r, entropy.GridSampling, Params{SampleSize: sampleSize, SampleNum: sampleNum, CellWidth: cellWidth}, opts)
}

// Run dispatches on method.
func Run(data []float64, m int, r float64, method entropy.Method, p Params, opts ...Option) (entropy.Result, error) {
	switch method {
	case entropy.Direct:
		return ExactDirect(data, m, r, opts...)
	case entropy.KDTree, entropy.KDTreeGrid, entropy.RangeTree:
		kind, _ := methodKind(method)
		return ExactSpatial(data, m, r, kind, opts...)
	case entropy.Uniform, entropy.QuasiRandom, entropy.QuasiRandomPresort, entropy.KDTreeSampling, entropy.GridSampling:
		return estimate(data, m, r, method, p, opts)
	}
	return entropy.Result{}, entropy.InvalidParameter("unknown method %v", method)
}

func estimate(data []float64, m int, r float64, method entropy.Method, p Params, opts []Option) (entropy.Result, error) {
	v, err := template.NewView(data, m)
	if err != nil {
		return entropy.Result{}, err
	}
	if err := template.ValidateTolerance(r); err != nil {
		return entropy.Result{}, err
	}
	c := newConfig(opts)
	cfg := sampling.Config{
		SampleSize: p.SampleSize,
		SampleNum:  p.SampleNum,
		Presort:    method == entropy.QuasiRandomPresort,
		Workers:    c.counting.Workers,
		Seed:       c.seed,
	}
	if err := cfg.Validate(v.Count()); err != nil {
		return entropy.Result{}, err
	}

	var s sampling.Strategy
	switch method {
	case entropy.Uniform:
		s = sampling.NewUniform(v.Count(), c.seed)
	case entropy.QuasiRandom, entropy.QuasiRandomPresort:
		s = sampling.NewQuasiRandom(v.Count(), c.seed)
	case entropy.KDTreeSampling:
		s, err = sampling.NewKDTreeStrata(v, p.SampleSize, c.seed, c.counting)
	case entropy.GridSampling:
		s, err = sampling.NewGridStrata(v, p.SampleSize, p.CellWidth, c.seed)
	}
	if err != nil {
		return entropy.Result{}, err
	}

	est, err := sampling.Run(v, r, s, cfg)
	if err != nil {
		return entropy.Result{}, err
	}
	return est.Result(method), nil
}

func exactResult(v *template.View, c counting.MatchCount, method entropy.Method) entropy.Result {
	return entropy.Aggregate(float64(c.A), float64(c.B), entropy.ExactNormalizer(v.Count()), method)
}

func withOptions(o counting.Options) counting.Option {
	return func(dst *counting.Options) { *dst = o }
}

func kindMethod(kind counting.Kind) (entropy.Method, error) {
	switch kind {
	case counting.KDTree:
		return entropy.KDTree, nil
	case counting.KDTreeGrid:
		return entropy.KDTreeGrid, nil
	case counting.RangeTree:
		return entropy.RangeTree, nil
	}
	return 0, entropy.InvalidParameter("unknown index kind %v", kind)
}

func methodKind(method entropy.Method) (counting.Kind, bool) {
	switch method {
	case entropy.KDTree:
		return counting.KDTree, true
	case entropy.KDTreeGrid:
		return counting.KDTreeGrid, true
	case entropy.RangeTree:
		return counting.RangeTree, true
	}
	return 0, false
}
