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

// Package template provides a read-only view of a numeric sequence as
// overlapping fixed-length windows ("templates") and the Chebyshev match test
// between them.
//
// A template is identified by its start index and length; the view hands out
// sub-slices of the caller's data and never copies it. Both passes of a
// sample entropy computation, lengths m and m+1, range over the same start
// indices [0, N-m), so the length-m pass never reads the last sample of its
// window.
package template

import (
	"math"

	"github.com/sampen-go/sampen/entropy"
)

// View is an immutable template view over a borrowed sequence.
type View struct {
	data []float64
	m    int
}

// NewView validates the sequence and the template length m.
// The sequence must hold at least m+2 finite samples so that at least two
// templates of length m+1 exist.
func NewView(data []float64, m int) (*View, error) {
	if m < 1 {
		return nil, entropy.InvalidParameter("m must be at least 1, got %d", m)
	}
	if len(data) < m+2 {
		return nil, entropy.InvalidParameter("sequence length %d is less than m+2 = %d", len(data), m+2)
	}
	for i, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, entropy.InvalidParameter("sample %d is not finite", i)
		}
	}
	return &View{data: data, m: m}, nil
}

// Len returns N, the sequence length.
func (v *View) Len() int {
	return len(v.data)
}

// M returns the template length m.
func (v *View) M() int {
	return v.m
}

// Count returns the number of template start indices, N-m.
func (v *View) Count() int {
	return len(v.data) - v.m
}

// Data returns the underlying sequence. Callers must not modify it.
func (v *View) Data() []float64 {
	return v.data
}

// Window returns template(i, k) as a sub-slice of the sequence. Its capacity
// is capped so that appends cannot write into the caller's data.
func (v *View) Window(i, k int) []float64 {
	return v.data[i : i+k : i+k]
}

// At returns coordinate d of the template starting at i.
func (v *View) At(i, d int) float64 {
	return v.data[i+d]
}

// Compare tests templates i and j at both lengths. matchM1 implies matchM;
// the first m coordinates are compared only once.
func (v *View) Compare(i, j int, r float64) (matchM, matchM1 bool) {
	a := v.data[i : i+v.m+1]
	b := v.data[j : j+v.m+1]
	for d := 0; d < v.m; d++ {
		if !Matches(a[d], b[d], r) {
			return false, false
		}
	}
	return true, Matches(a[v.m], b[v.m], r)
}

// Bounds returns the minimum and maximum sample of the sequence.
func (v *View) Bounds() (lo, hi float64) {
	lo, hi = v.data[0], v.data[0]
	for _, x := range v.data[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
