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

package template

import (
	"math"

	"github.com/sampen-go/sampen/entropy"
)

// Matches is the per-coordinate test every counter shares: |x-y| <= r.
//
// Spatial indexes derive their pruning from this same rounded subtraction.
// Because fl(q-x) is monotone in x, a box whose corners pass (or fail) the
// test contains only points that pass (or fail) it too, so pruned and
// brute-force counts agree exactly.
func Matches(x, y, r float64) bool {
	return math.Abs(x-y) <= r
}

// Within reports whether two templates of equal length lie within Chebyshev
// distance r of each other.
func Within(a, b []float64, r float64) bool {
	if len(a) != len(b) {
		return false
	}
	for d := range a {
		if !Matches(a[d], b[d], r) {
			return false
		}
	}
	return true
}

// ChebyshevDistance returns max_d |a[d]-b[d]|.
func ChebyshevDistance(a, b []float64) float64 {
	var dist float64
	for d := range a {
		if diff := math.Abs(a[d] - b[d]); diff > dist {
			dist = diff
		}
	}
	return dist
}

// BelowRange reports that every x <= hi fails to match q, i.e. the whole
// interval (-inf, hi] lies left of the ball around q.
func BelowRange(hi, q, r float64) bool {
	return q-hi > r
}

// AboveRange reports that every x >= lo fails to match q.
func AboveRange(lo, q, r float64) bool {
	return lo-q > r
}

// ValidateTolerance checks r >= 0.
func ValidateTolerance(r float64) error {
	if math.IsNaN(r) || r < 0 {
		return entropy.InvalidParameter("r must be non-negative, got %v", r)
	}
	return nil
}
