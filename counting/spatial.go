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

// Spatial counts matches with one range-counting index per template length.
// Each template queries the index for its own ball and the self-hit is
// removed, which gives the ordered-pair counts of Direct.
func Spatial(v *template.View, r float64, kind Kind, opts ...Option) (MatchCount, error) {
	if err := template.ValidateTolerance(r); err != nil {
		return MatchCount{}, err
	}
	o := NewOptions(opts...)
	m := v.M()

	long, err := index(kind, v, m+1, o)
	if err != nil {
		return MatchCount{}, err
	}
	short, err := index(kind, v, m, o)
	if err != nil {
		return MatchCount{}, err
	}

	count := parallelCount(v.Count(), o.Workers, func(lo, hi int) MatchCount {
		var c MatchCount
		for i := lo; i < hi; i++ {
			c.A += long.CountWithin(v.Window(i, m+1), r) - 1
			c.B += short.CountWithin(v.Window(i, m), r) - 1
		}
		return c
	})
	return count, nil
}

func index(kind Kind, v *template.View, k int, o Options) (RangeCounter, error) {
	if o.Cache != nil {
		return o.Cache.Index(kind, v, k, o)
	}
	return Build(kind, v, k, o)
}
