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
	"cmp"
	"slices"
	"sort"

	"github.com/sampen-go/sampen/internal"
	"github.com/sampen-go/sampen/template"
)

// RangeIndex is a two-level range tree. The first level is a bottom-up
// segment tree over the points sorted by coordinate 0; every node keeps its
// points sorted by coordinate 1 (a merge-sort tree). A query resolves the
// first coordinate to a contiguous rank range, decomposes it into O(log n)
// nodes, and binary-searches coordinate 1 inside each. Coordinates beyond
// the second are checked point by point on the surviving candidates.
type RangeIndex struct {
	v    *template.View
	k    int
	size int // leaves, a power of two >= n

	keys0 []float64 // coordinate 0 in rank order

	// Node i holds ids1[off[i]:off[i+1]], sorted by keys1.
	off   []int32
	ids1  []int32
	keys1 []float64
}

// NewRangeIndex builds a range tree over templates of length k.
func NewRangeIndex(v *template.View, k int) *RangeIndex {
	n := v.Count()
	data := v.Data()
	t := &RangeIndex{v: v, k: k, size: internal.CeilPowerOf2(n)}

	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}
	slices.SortFunc(order, func(a, b int32) int {
		return cmp.Or(cmp.Compare(data[a], data[b]), cmp.Compare(a, b))
	})
	t.keys0 = make([]float64, n)
	for p, id := range order {
		t.keys0[p] = data[id]
	}
	if k == 1 {
		return t
	}

	// Node sizes, then offsets in node order.
	nodes := 2 * t.size
	counts := make([]int32, nodes)
	for p := 0; p < n; p++ {
		counts[t.size+p] = 1
	}
	for i := t.size - 1; i >= 1; i-- {
		counts[i] = counts[2*i] + counts[2*i+1]
	}
	t.off = make([]int32, nodes+1)
	for i := 1; i < nodes; i++ {
		t.off[i+1] = t.off[i] + counts[i]
	}
	total := t.off[nodes]
	t.ids1 = make([]int32, total)
	t.keys1 = make([]float64, total)

	for p, id := range order {
		at := t.off[t.size+p]
		t.ids1[at] = id
		t.keys1[at] = data[int(id)+1]
	}
	for i := t.size - 1; i >= 1; i-- {
		t.merge(i)
	}
	return t
}

// merge fills node i from its two children, which are already sorted.
func (t *RangeIndex) merge(i int) {
	l, le := t.off[2*i], t.off[2*i+1]
	r, re := t.off[2*i+1], t.off[2*i+2]
	at := t.off[i]
	for l < le || r < re {
		if r >= re || (l < le && t.keys1[l] <= t.keys1[r]) {
			t.ids1[at], t.keys1[at] = t.ids1[l], t.keys1[l]
			l++
		} else {
			t.ids1[at], t.keys1[at] = t.ids1[r], t.keys1[r]
			r++
		}
		at++
	}
}

func (t *RangeIndex) Kind() Kind { return RangeTree }

func (t *RangeIndex) Dim() int { return t.k }

func (t *RangeIndex) Size() int { return len(t.keys0) }

func (t *RangeIndex) MemoryBytes() int64 {
	return int64(len(t.keys0))*8 + int64(len(t.off))*4 + int64(len(t.ids1))*12
}

func rangeTreeMemory(n, k int) int64 {
	size := internal.CeilPowerOf2(n)
	est := int64(n) * 8
	if k > 1 {
		est += int64(2*size+1)*4 + int64(n)*int64(internal.CeilLog2(size)+1)*12
	}
	return est
}

// matchRange returns the half-open range of sorted keys that match q.
func matchRange(keys []float64, q, r float64) (int, int) {
	lo := sort.Search(len(keys), func(p int) bool {
		return !template.BelowRange(keys[p], q, r)
	})
	hi := lo + sort.Search(len(keys)-lo, func(p int) bool {
		return template.AboveRange(keys[lo+p], q, r)
	})
	return lo, hi
}

// CountWithin counts indexed points within Chebyshev distance r of q.
func (t *RangeIndex) CountWithin(q []float64, r float64) int64 {
	lo, hi := matchRange(t.keys0, q[0], r)
	if t.k == 1 {
		return int64(hi - lo)
	}
	var count int64
	for l, h := lo+t.size, hi+t.size; l < h; l, h = l>>1, h>>1 {
		if l&1 == 1 {
			count += t.countNode(l, q, r)
			l++
		}
		if h&1 == 1 {
			h--
			count += t.countNode(h, q, r)
		}
	}
	return count
}

func (t *RangeIndex) countNode(i int, q []float64, r float64) int64 {
	start, end := t.off[i], t.off[i+1]
	lo, hi := matchRange(t.keys1[start:end], q[1], r)
	if t.k == 2 {
		return int64(hi - lo)
	}
	data := t.v.Data()
	var count int64
	for _, id := range t.ids1[int(start)+lo : int(start)+hi] {
		if template.Within(data[int(id)+2:int(id)+t.k], q[2:], r) {
			count++
		}
	}
	return count
}
