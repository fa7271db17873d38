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
	"fmt"
	"math"
	"strings"

	"github.com/sampen-go/sampen/entropy"
	"github.com/sampen-go/sampen/internal"
	"github.com/sampen-go/sampen/template"
)

// Kind selects a range-counting index.
type Kind int

const (
	// KDTree splits at the median of each subset, cycling through coordinates.
	KDTree Kind = iota
	// KDTreeGrid splits a fixed bounding box at midpoints, cycling through
	// coordinates. Its shape depends only on the data bounds and n.
	KDTreeGrid
	// RangeTree is a two-level range tree: a segment tree over the first
	// coordinate whose nodes are sorted by the second.
	RangeTree
)

var kindNames = [...]string{
	KDTree:     "kd-tree",
	KDTreeGrid: "kd-tree-grid",
	RangeTree:  "range-tree",
}

// Kinds lists every index kind.
func Kinds() []Kind {
	return []Kind{KDTree, KDTreeGrid, RangeTree}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, entropy.InvalidParameter("unknown index kind %q", s)
}

// RangeCounter counts indexed points inside the closed Chebyshev ball of
// radius r around a query point.
//
// Implementations are immutable after construction and safe for concurrent
// queries. A query point that is itself indexed is counted.
type RangeCounter interface {
	Kind() Kind
	// Dim is the number of coordinates per point.
	Dim() int
	// Size is the number of indexed points.
	Size() int
	// MemoryBytes is an estimate of the index footprint.
	MemoryBytes() int64
	CountWithin(q []float64, r float64) int64
}

// Build indexes the n = N-m templates of length k of v. Points are addressed
// by their start index, so the length-m and length-m+1 indexes of one view
// cover the same start indices.
func Build(kind Kind, v *template.View, k int, o Options) (RangeCounter, error) {
	if k < 1 || k > v.M()+1 {
		return nil, entropy.InvalidParameter("template length %d out of range [1, %d]", k, v.M()+1)
	}
	n := v.Count()
	if err := checkAddressable(n); err != nil {
		return nil, err
	}
	var est int64
	switch kind {
	case KDTree:
		est = kdTreeMemory(n, k, o.LeafSize)
	case KDTreeGrid:
		est = gridMemory(n, k)
	case RangeTree:
		if k > 1 && int64(n)*int64(internal.CeilLog2(n)+1) > math.MaxInt32 {
			return nil, entropy.ResourceExhausted("range tree over %d templates exceeds the int32 entry range", n)
		}
		est = rangeTreeMemory(n, k)
	default:
		return nil, entropy.InvalidParameter("unknown index kind %d", int(kind))
	}
	if err := checkMemory(kind.String(), est, o.MemoryLimit); err != nil {
		return nil, err
	}

	switch kind {
	case KDTree:
		return NewKDIndex(v, k, o.LeafSize, -1), nil
	case KDTreeGrid:
		return NewGridIndex(v, k, o.GridLevels), nil
	default:
		return NewRangeIndex(v, k), nil
	}
}

func checkAddressable(n int) error {
	if int64(n) > math.MaxInt32 {
		return entropy.ResourceExhausted("%d templates exceed the int32 point id range", n)
	}
	return nil
}

func checkMemory(what string, est, limit int64) error {
	if limit > 0 && est > limit {
		return entropy.ResourceExhausted("%s needs about %d bytes, limit is %d", what, est, limit)
	}
	return nil
}
