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

// Package bounds computes approximate Clopper-Pearson confidence intervals
// for a binomial proportion.
//
// A sampled match rate is such a proportion: out of n compared template
// pairs, k matched. The interval [Lower, Upper] brackets the unknown match
// probability p at a confidence given as a number of standard deviations of
// a standard normal distribution. The approximations are not strictly
// conservative, exact special cases are used for k in {0, 1, n-1, n}.
package bounds

import (
	"fmt"
	"math"
)

// DefaultNumStdDevs is the interval half-width used by the estimators.
const DefaultNumStdDevs = 2.0

// Lower returns the lower end of the interval for k successes in n trials.
//
// We want the p for which the right tail sum_{j>=k} bino(j; n, p) equals
// delta. With x = 1-p this is I_x(n-k+1, k) = 1-delta, which Abramowitz and
// Stegun 26.5.22 inverts once 1-delta is expressed as -numStdDevs.
func Lower(n, k uint64, numStdDevs float64) (float64, error) {
	if err := check(n, k); err != nil {
		return 0, err
	}
	switch {
	case n == 0, k == 0:
		return 0, nil
	case k == 1:
		return 1 - math.Pow(1-tail(numStdDevs), 1/float64(n)), nil
	case k == n:
		return math.Pow(tail(numStdDevs), 1/float64(n)), nil
	}
	x := inverseIncompleteBeta(float64(n-k+1), float64(k), -numStdDevs)
	return 1 - x, nil
}

// Upper returns the upper end of the interval for k successes in n trials.
//
// We want the p for which the left tail sum_{j<=k} bino(j; n, p) equals
// delta, that is I_x(n-k, k+1) = delta with x = 1-p.
func Upper(n, k uint64, numStdDevs float64) (float64, error) {
	if err := check(n, k); err != nil {
		return 0, err
	}
	switch {
	case n == 0, k == n:
		return 1, nil
	case k == 0:
		return 1 - math.Pow(tail(numStdDevs), 1/float64(n)), nil
	case k == n-1:
		return math.Pow(1-tail(numStdDevs), 1/float64(n)), nil
	}
	x := inverseIncompleteBeta(float64(n-k), float64(k+1), numStdDevs)
	return 1 - x, nil
}

// Interval returns both ends at once.
func Interval(n, k uint64, numStdDevs float64) (lower, upper float64, err error) {
	if lower, err = Lower(n, k, numStdDevs); err != nil {
		return 0, 0, err
	}
	if upper, err = Upper(n, k, numStdDevs); err != nil {
		return 0, 0, err
	}
	return lower, upper, nil
}

func check(n, k uint64) error {
	if k > n {
		return fmt.Errorf("successes cannot exceed trials: n=%d, k=%d", n, k)
	}
	return nil
}

// tail is the probability mass of a standard normal right of z.
func tail(z float64) float64 {
	return 0.5 * math.Erfc(z/math.Sqrt2)
}

// inverseIncompleteBeta is formula 26.5.22 of Abramowitz and Stegun (p. 945):
// the x solving I_x(a, b) = delta, where delta is the right tail of a
// standard normal beyond yp. Variable names follow the book.
func inverseIncompleteBeta(a, b, yp float64) float64 {
	b2m1 := 2*b - 1
	a2m1 := 2*a - 1
	lambda := (yp*yp - 3) / 6
	h := 2 / (1/a2m1 + 1/b2m1)
	term1 := yp * math.Sqrt(h+lambda) / h
	term2 := 1/b2m1 - 1/a2m1
	term3 := lambda + 5.0/6.0 - 2/(3*h)
	w := term1 - term2*term3
	return a / (a + b*math.Exp(2*w))
}
