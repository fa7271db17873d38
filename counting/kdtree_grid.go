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
	"github.com/sampen-go/sampen/internal"
	"github.com/sampen-go/sampen/template"
)

type gridNode struct {
	count  int32
	child  [2]int32 // -1 when the half is empty
	bucket int32    // index into buckets for leaves, -1 otherwise
}

// GridIndex is a KD tree over a fixed cube [min, max]^k where every split
// halves the current cell at its midpoint, cycling through coordinates.
// Cells are created only when a point falls in them. Its topology depends
// on the data range and n but not on r, so one tree serves every tolerance.
type GridIndex struct {
	v       *template.View
	k       int
	levels  int
	lo, hi  float64
	nodes   []gridNode
	buckets [][]int32
}

// NewGridIndex builds a grid tree with levels halvings per coordinate. A
// levels value below 1 derives ceil(log2(n)/k), clamped to [1, 16].
func NewGridIndex(v *template.View, k int, levels int) *GridIndex {
	n := v.Count()
	if levels < 1 {
		levels = defaultGridLevels(n, k)
	}
	lo, hi := v.Bounds()
	t := &GridIndex{v: v, k: k, levels: levels, lo: lo, hi: hi}
	t.nodes = append(t.nodes, gridNode{child: [2]int32{-1, -1}, bucket: -1})

	cellLo := make([]float64, k)
	cellHi := make([]float64, k)
	data := v.Data()
	depth := levels * k
	for i := 0; i < n; i++ {
		p := data[i : i+k]
		for d := range cellLo {
			cellLo[d], cellHi[d] = lo, hi
		}
		ni := int32(0)
		for level := 0; level < depth; level++ {
			t.nodes[ni].count++
			d := level % k
			mid := midpoint(cellLo[d], cellHi[d])
			side := 0
			if p[d] > mid {
				side = 1
				cellLo[d] = mid
			} else {
				cellHi[d] = mid
			}
			next := t.nodes[ni].child[side]
			if next < 0 {
				next = int32(len(t.nodes))
				t.nodes = append(t.nodes, gridNode{child: [2]int32{-1, -1}, bucket: -1})
				t.nodes[ni].child[side] = next
			}
			ni = next
		}
		leaf := &t.nodes[ni]
		leaf.count++
		if leaf.bucket < 0 {
			leaf.bucket = int32(len(t.buckets))
			t.buckets = append(t.buckets, nil)
		}
		t.buckets[leaf.bucket] = append(t.buckets[leaf.bucket], int32(i))
	}
	return t
}

func defaultGridLevels(n, k int) int {
	return internal.Clamp((internal.CeilLog2(n)+k-1)/k, 1, maxGridLevels)
}

func midpoint(lo, hi float64) float64 {
	return lo + (hi-lo)/2
}

func (t *GridIndex) Kind() Kind { return KDTreeGrid }

func (t *GridIndex) Dim() int { return t.k }

func (t *GridIndex) Size() int { return t.v.Count() }

// Levels returns the number of halvings per coordinate.
func (t *GridIndex) Levels() int { return t.levels }

func (t *GridIndex) MemoryBytes() int64 {
	return int64(len(t.nodes))*16 + int64(t.v.Count())*4 + int64(len(t.buckets))*24
}

// gridMemory bounds the node count by one branch of k nodes per point below
// the shared top of the tree.
func gridMemory(n, k int) int64 {
	return int64(n)*int64(k+1)*16 + int64(n)*(4+24)
}

// CountWithin counts indexed points within Chebyshev distance r of q.
func (t *GridIndex) CountWithin(q []float64, r float64) int64 {
	var loBuf, hiBuf [16]float64
	var cellLo, cellHi []float64
	if t.k <= len(loBuf) {
		cellLo, cellHi = loBuf[:t.k], hiBuf[:t.k]
	} else {
		cellLo, cellHi = make([]float64, t.k), make([]float64, t.k)
	}
	for d := range cellLo {
		cellLo[d], cellHi[d] = t.lo, t.hi
	}
	return t.count(0, 0, cellLo, cellHi, q, r)
}

func (t *GridIndex) count(ni int32, level int, cellLo, cellHi, q []float64, r float64) int64 {
	node := &t.nodes[ni]
	switch classifyBox(cellLo, cellHi, q, r) {
	case boxDisjoint:
		return 0
	case boxInside:
		return int64(node.count)
	}
	if node.bucket >= 0 {
		data := t.v.Data()
		var c int64
		for _, id := range t.buckets[node.bucket] {
			if template.Within(data[int(id):int(id)+t.k], q, r) {
				c++
			}
		}
		return c
	}

	d := level % t.k
	mid := midpoint(cellLo[d], cellHi[d])
	var c int64
	if left := node.child[0]; left >= 0 {
		saved := cellHi[d]
		cellHi[d] = mid
		c += t.count(left, level+1, cellLo, cellHi, q, r)
		cellHi[d] = saved
	}
	if right := node.child[1]; right >= 0 {
		saved := cellLo[d]
		cellLo[d] = mid
		c += t.count(right, level+1, cellLo, cellHi, q, r)
		cellLo[d] = saved
	}
	return c
}
