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

type kdNode struct {
	start int32 // range of ids covered by the node
	end   int32
	left  int32 // -1 for leaves
	right int32
}

// KDIndex is a static KD tree over template start indices. Each node stores
// the tight bounding box of its points. A query prunes subtrees whose box
// misses the ball and counts whole subtrees whose box lies inside it.
type KDIndex struct {
	v     *template.View
	k     int
	ids   []int32
	nodes []kdNode
	boxes []float64 // node i: lows at [2ki, 2ki+k), highs at [2ki+k, 2ki+2k)
}

// NewKDIndex builds a tree over templates of length k. Nodes holding at most
// leafSize points become leaves. A non-negative maxDepth also stops the
// descent at that depth, which the stratified sampler uses to get a fixed
// number of leaves.
func NewKDIndex(v *template.View, k int, leafSize int, maxDepth int) *KDIndex {
	n := v.Count()
	t := &KDIndex{
		v:     v,
		k:     k,
		ids:   make([]int32, n),
		nodes: make([]kdNode, 0, 2*n/max(leafSize, 1)+1),
	}
	for i := range t.ids {
		t.ids[i] = int32(i)
	}
	t.build(0, n, 0, max(leafSize, 1), maxDepth)
	return t
}

// BuildStrataTree builds the KD tree of depth depth over templates of length
// k whose leaves stratify a sample. Leaves hold any number of points.
func BuildStrataTree(v *template.View, k int, depth int, o Options) (*KDIndex, error) {
	n := v.Count()
	if err := checkAddressable(n); err != nil {
		return nil, err
	}
	nodes := int64(2) << min(depth, 40)
	if err := checkMemory("kd-tree", int64(n)*4+nodes*(16+16*int64(k)), o.MemoryLimit); err != nil {
		return nil, err
	}
	build := func() (*KDIndex, error) { return NewKDIndex(v, k, 1, depth), nil }
	if o.Cache != nil {
		return o.Cache.strataTree(v, k, depth, build)
	}
	return build()
}

func (t *KDIndex) build(start, end, depth, leafSize, maxDepth int) int32 {
	node := int32(len(t.nodes))
	t.nodes = append(t.nodes, kdNode{start: int32(start), end: int32(end), left: -1, right: -1})
	degenerate := t.appendBox(start, end)

	if end-start <= leafSize || degenerate || (maxDepth >= 0 && depth >= maxDepth) {
		return node
	}
	d := depth % t.k
	data := t.v.Data()
	mid := start + (end-start)/2
	internal.SelectByKey(t.ids, start, end-1, mid, func(id int32) float64 {
		return data[int(id)+d]
	})
	left := t.build(start, mid, depth+1, leafSize, maxDepth)
	right := t.build(mid, end, depth+1, leafSize, maxDepth)
	t.nodes[node].left = left
	t.nodes[node].right = right
	return node
}

// appendBox appends the bounding box of ids[start:end] and reports whether
// it is a single point.
func (t *KDIndex) appendBox(start, end int) bool {
	k := t.k
	data := t.v.Data()
	base := len(t.boxes)
	t.boxes = append(t.boxes, make([]float64, 2*k)...)
	lo, hi := t.boxes[base:base+k], t.boxes[base+k:base+2*k]
	first := int(t.ids[start])
	copy(lo, data[first:first+k])
	copy(hi, data[first:first+k])
	for _, id := range t.ids[start+1 : end] {
		p := data[int(id) : int(id)+k]
		for d, x := range p {
			if x < lo[d] {
				lo[d] = x
			}
			if x > hi[d] {
				hi[d] = x
			}
		}
	}
	for d := range lo {
		if lo[d] != hi[d] {
			return false
		}
	}
	return true
}

func (t *KDIndex) Kind() Kind { return KDTree }

func (t *KDIndex) Dim() int { return t.k }

func (t *KDIndex) Size() int { return len(t.ids) }

func (t *KDIndex) MemoryBytes() int64 {
	return int64(len(t.ids))*4 + int64(len(t.nodes))*16 + int64(len(t.boxes))*8
}

func kdTreeMemory(n, k, leafSize int) int64 {
	nodes := int64(4*n/max(leafSize, 1) + 1)
	return int64(n)*4 + nodes*16 + nodes*int64(2*k)*8
}

// CountWithin counts indexed points within Chebyshev distance r of q.
func (t *KDIndex) CountWithin(q []float64, r float64) int64 {
	var buf [64]int32
	stack := append(buf[:0], 0)
	var count int64
	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.nodes[ni]
		base := int(ni) * 2 * t.k
		switch classifyBox(t.boxes[base:base+t.k], t.boxes[base+t.k:base+2*t.k], q, r) {
		case boxDisjoint:
			continue
		case boxInside:
			count += int64(node.end - node.start)
			continue
		}
		if node.left < 0 {
			count += t.countLeaf(node, q, r)
			continue
		}
		stack = append(stack, node.right, node.left)
	}
	return count
}

func (t *KDIndex) countLeaf(node kdNode, q []float64, r float64) int64 {
	data := t.v.Data()
	var count int64
	for _, id := range t.ids[node.start:node.end] {
		if template.Within(data[int(id):int(id)+t.k], q, r) {
			count++
		}
	}
	return count
}

// Leaves returns the point ids of every leaf, left to right. The slices
// alias the tree and must not be modified.
func (t *KDIndex) Leaves() [][]int32 {
	var leaves [][]int32
	for _, node := range t.nodes {
		if node.left < 0 {
			leaves = append(leaves, t.ids[node.start:node.end])
		}
	}
	return leaves
}

type boxRelation int

const (
	boxStraddles boxRelation = iota
	boxDisjoint
	boxInside
)

// classifyBox relates the box [lo, hi] to the ball of radius r around q using
// the same per-coordinate test as the pairwise counter. Because fl(x-q) is
// monotone in x, checking the corners decides every point in the box.
func classifyBox(lo, hi, q []float64, r float64) boxRelation {
	inside := true
	for d := range q {
		if template.BelowRange(hi[d], q[d], r) || template.AboveRange(lo[d], q[d], r) {
			return boxDisjoint
		}
		if inside && !(template.Matches(lo[d], q[d], r) && template.Matches(hi[d], q[d], r)) {
			inside = false
		}
	}
	if inside {
		return boxInside
	}
	return boxStraddles
}
