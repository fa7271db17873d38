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

package sampling

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/sampen-go/sampen/entropy"
	"github.com/sampen-go/sampen/template"
)

// NewGridStrata stratifies the (m+1)-dimensional templates of v by the cells
// of a regular grid with side cellWidth anchored at the sequence minimum.
// Occupied cells are taken in lexicographic order of their coordinates, so
// cells merged into one stratum are neighbours along the first axis.
func NewGridStrata(v *template.View, sampleSize int, cellWidth float64, seed uint64) (*Strata, error) {
	if !(cellWidth > 0) || math.IsInf(cellWidth, 1) {
		return nil, entropy.InvalidParameter("cell width must be positive and finite, got %v", cellWidth)
	}
	return newStrata(gridCells(v, cellWidth), sampleSize, seed), nil
}

type gridCell struct {
	coords  []int64
	members []int32
}

// gridCells returns the members of every occupied cell.
func gridCells(v *template.View, cellWidth float64) [][]int32 {
	k := v.M() + 1
	lo, _ := v.Bounds()
	index := make(map[string]int)
	var cells []gridCell
	key := make([]byte, 8*k)
	coords := make([]int64, k)
	for i := 0; i < v.Count(); i++ {
		for d, x := range v.Window(i, k) {
			coords[d] = int64(math.Floor((x - lo) / cellWidth))
			binary.LittleEndian.PutUint64(key[8*d:], uint64(coords[d]))
		}
		c, ok := index[string(key)]
		if !ok {
			c = len(cells)
			index[string(key)] = c
			cells = append(cells, gridCell{coords: slices.Clone(coords)})
		}
		cells[c].members = append(cells[c].members, int32(i))
	}
	slices.SortFunc(cells, func(a, b gridCell) int {
		return slices.Compare(a.coords, b.coords)
	})
	strata := make([][]int32, len(cells))
	for i, c := range cells {
		strata[i] = c.members
	}
	return strata
}
