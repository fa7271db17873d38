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

package counting

import (
	"github.com/sampen-go/sampen/template"
)

// Direct counts matches by comparing every pair of templates, O(n^2 m).
// It is the reference every other counter must agree with.
func Direct(v *template.View, r float64, opts ...Option) (MatchCount, error) {
	if err := template.ValidateTolerance(r); err != nil {
		return MatchCount{}, err
	}
	o := NewOptions(opts...)
	n := v.Count()
	data, m := v.Data(), v.M()

	count := parallelCount(n, o.Workers, func(lo, hi int) MatchCount {
		var c MatchCount
		for i := lo; i < hi; i++ {
			a := data[i : i+m+1]
			for j := i + 1; j < n; j++ {
				b := data[j : j+m+1]
				if !prefixMatches(a, b, m, r) {
					continue
				}
				c.B++
				if template.Matches(a[m], b[m], r) {
					c.A++
				}
			}
		}
		return c
	})
	return count.ordered(), nil
}

// CountPairs runs the pairwise pass of Direct restricted to the templates
// starting at idx. Indices must be distinct; their order does not affect the
// result.
func CountPairs(v *template.View, idx []int32, r float64) MatchCount {
	data, m := v.Data(), v.M()
	var c MatchCount
	for x, i := range idx {
		a := data[i : int(i)+m+1]
		for _, j := range idx[x+1:] {
			b := data[j : int(j)+m+1]
			if !prefixMatches(a, b, m, r) {
				continue
			}
			c.B++
			if template.Matches(a[m], b[m], r) {
				c.A++
			}
		}
	}
	return c.ordered()
}

func prefixMatches(a, b []float64, m int, r float64) bool {
	for d := 0; d < m; d++ {
		if !template.Matches(a[d], b[d], r) {
			return false
		}
	}
	return true
}
