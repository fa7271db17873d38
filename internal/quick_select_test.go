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

package internal

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectByKey(t *testing.T) {
	testCases := []struct {
		name string
		keys []float64
		nth  int
	}{
		{name: "median of even length", keys: []float64{3, 1, 4, 1, 5, 9, 2, 6}, nth: 4},
		{name: "minimum", keys: []float64{3, 1, 4, 1, 5, 9, 2, 6}, nth: 0},
		{name: "maximum", keys: []float64{3, 1, 4, 1, 5, 9, 2, 6}, nth: 7},
		{name: "single element", keys: []float64{42}, nth: 0},
		{name: "two elements", keys: []float64{5, 3}, nth: 1},
		{name: "already sorted", keys: []float64{1, 2, 3, 4, 5, 6, 7}, nth: 3},
		{name: "reverse sorted", keys: []float64{7, 6, 5, 4, 3, 2, 1}, nth: 3},
		{name: "all equal", keys: []float64{2, 2, 2, 2, 2}, nth: 2},
		{name: "many duplicates", keys: []float64{1, 3, 1, 3, 1, 3, 1, 3, 2}, nth: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ids := make([]int32, len(tc.keys))
			for i := range ids {
				ids[i] = int32(i)
			}
			key := func(id int32) float64 { return tc.keys[id] }
			SelectByKey(ids, 0, len(ids)-1, tc.nth, key)

			sorted := append([]float64(nil), tc.keys...)
			sort.Float64s(sorted)
			assert.Equal(t, sorted[tc.nth], key(ids[tc.nth]))
			for i := 0; i < tc.nth; i++ {
				assert.LessOrEqual(t, key(ids[i]), key(ids[tc.nth]))
			}
			for i := tc.nth + 1; i < len(ids); i++ {
				assert.GreaterOrEqual(t, key(ids[i]), key(ids[tc.nth]))
			}
			assertPermutation(t, ids)
		})
	}
}

func TestSelectByKeyRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(200)
		keys := make([]float64, n)
		for i := range keys {
			keys[i] = float64(rng.Intn(20))
		}
		ids := make([]int32, n)
		for i := range ids {
			ids[i] = int32(i)
		}
		nth := rng.Intn(n)
		SelectByKey(ids, 0, n-1, nth, func(id int32) float64 { return keys[id] })

		sorted := append([]float64(nil), keys...)
		sort.Float64s(sorted)
		assert.Equal(t, sorted[nth], keys[ids[nth]])
		assertPermutation(t, ids)
	}
}

func TestSelectByKeySubRange(t *testing.T) {
	keys := []float64{100, 9, 8, 7, 6, 5, -100}
	ids := []int32{0, 1, 2, 3, 4, 5, 6}
	SelectByKey(ids, 1, 5, 3, func(id int32) float64 { return keys[id] })
	assert.Equal(t, int32(0), ids[0])
	assert.Equal(t, int32(6), ids[6])
	assert.Equal(t, 7.0, keys[ids[3]])
}

func assertPermutation(t *testing.T, ids []int32) {
	t.Helper()
	seen := make([]bool, len(ids))
	for _, id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
}
