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

package entropy

import (
	"fmt"
	"math"
)

// Status signals whether the statistic is defined for the observed counts.
type Status int

const (
	// Defined means both A and B are positive.
	Defined Status = iota
	// Undefined means B = 0: no template pair matched at length m.
	// SampEn is reported as NaN.
	Undefined
	// Saturated means B > 0 and A = 0: matches at length m but none at m+1.
	// SampEn is reported as +Inf.
	Saturated
)

func (s Status) String() string {
	switch s {
	case Defined:
		return "defined"
	case Undefined:
		return "undefined"
	case Saturated:
		return "saturated"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Interval is a closed range on a normalized match rate.
type Interval struct {
	Lower float64
	Upper float64
}

// Contains reports whether x lies in the interval.
func (i Interval) Contains(x float64) bool {
	return x >= i.Lower && x <= i.Upper
}

// Result is the immutable outcome of one computation.
//
// A counts ordered template pairs matching at length m+1 and B at length m.
// For sampling methods both are means over SampleNum trials of SampleSize
// templates each. Normalizer is the number of ordered pairs in the pool the
// counts were taken from, so A/Normalizer and B/Normalizer are match rates
// comparable across methods.
type Result struct {
	Method     Method
	SampEn     float64
	A          float64
	B          float64
	Normalizer float64
	Status     Status

	// Sampling only. Zero for exact methods.
	SampleSize int
	SampleNum  int
	// Approximate confidence intervals on the normalized rates, sized from
	// the spread of the trial rates. Degenerate (Lower == Upper) for exact
	// methods.
	ABounds Interval
	BBounds Interval
	// Standard deviation of the per-trial normalized rates.
	ATrialStdDev float64
	BTrialStdDev float64
}

// ExactNormalizer is the number of ordered pairs among n templates.
func ExactNormalizer(n int) float64 {
	return float64(n) * float64(n-1)
}

// SampledNormalizer is the number of ordered pairs among sampleSize
// templates drawn in one trial.
func SampledNormalizer(sampleSize int) float64 {
	return ExactNormalizer(sampleSize)
}

// Aggregate turns raw counts into a Result. Every method uses
// SampEn = -ln(A/B); the normalizer cancels and only scales the rates
// reported by NormalizedA and NormalizedB.
func Aggregate(a, b, normalizer float64, method Method) Result {
	res := Result{
		Method:     method,
		A:          a,
		B:          b,
		Normalizer: normalizer,
	}
	switch {
	case b <= 0 || normalizer <= 0:
		res.Status = Undefined
		res.SampEn = math.NaN()
	case a <= 0:
		res.Status = Saturated
		res.SampEn = math.Inf(1)
	default:
		res.Status = Defined
		res.SampEn = -math.Log(a / b)
	}
	if method.IsExact() {
		res.ABounds = Interval{res.NormalizedA(), res.NormalizedA()}
		res.BBounds = Interval{res.NormalizedB(), res.NormalizedB()}
	}
	return res
}

// NormalizedA returns A divided by the normalizer, or 0 when undefined.
func (r Result) NormalizedA() float64 {
	if r.Normalizer <= 0 {
		return 0
	}
	return r.A / r.Normalizer
}

// NormalizedB returns B divided by the normalizer, or 0 when undefined.
func (r Result) NormalizedB() float64 {
	if r.Normalizer <= 0 {
		return 0
	}
	return r.B / r.Normalizer
}

// IsDefined reports whether SampEn is a finite number.
func (r Result) IsDefined() bool {
	return r.Status == Defined
}

func (r Result) String() string {
	return fmt.Sprintf("%s: SampEn=%.6g A=%.6g B=%.6g (%s)", r.Method, r.SampEn, r.A, r.B, r.Status)
}
