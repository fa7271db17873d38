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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampen-go/sampen/template"
)

func bruteForce(v *template.View, k int, q []float64, r float64) int64 {
	var c int64
	for i := 0; i < v.Count(); i++ {
		if template.Within(v.Window(i, k), q, r) {
			c++
		}
	}
	return c
}

func TestCountWithinMatchesBruteForce(t *testing.T) {
	v := newView(t, randomWalk(400, 11), 3)
	queries := [][]float64{
		v.Window(0, 4),
		v.Window(123, 4),
		{0, 0, 0, 0},
		{100, 100, 100, 100},
	}
	for _, kind := range Kinds() {
		idx, err := Build(kind, v, 4, NewOptions())
		require.NoError(t, err)
		assert.Equal(t, kind, idx.Kind())
		assert.Equal(t, 4, idx.Dim())
		assert.Equal(t, v.Count(), idx.Size())
		assert.Positive(t, idx.MemoryBytes())
		for _, q := range queries {
			for _, r := range []float64{0, 0.5, 3} {
				assert.Equal(t, bruteForce(v, 4, q, r), idx.CountWithin(q, r), "%s r=%v", kind, r)
			}
		}
	}
}

func TestKDTreeLeaves(t *testing.T) {
	v := newView(t, randomWalk(300, 12), 2)
	tree := NewKDIndex(v, 2, 1, 4)
	leaves := tree.Leaves()
	assert.Len(t, leaves, 16)

	seen := make(map[int32]bool)
	for _, leaf := range leaves {
		assert.NotEmpty(t, leaf)
		for _, id := range leaf {
			assert.False(t, seen[id])
			seen[id] = true
		}
	}
	assert.Len(t, seen, v.Count())
}

func TestKDTreeConstantInput(t *testing.T) {
	data := make([]float64, 50)
	v := newView(t, data, 2)
	tree := NewKDIndex(v, 3, 4, -1)
	assert.Len(t, tree.Leaves(), 1)
	assert.Equal(t, int64(v.Count()), tree.CountWithin([]float64{0, 0, 0}, 0))
}

func TestGridTreeLevels(t *testing.T) {
	v := newView(t, randomWalk(1025, 13), 2)
	assert.Equal(t, 4, NewGridIndex(v, 3, 0).Levels())
	assert.Equal(t, 2, NewGridIndex(v, 3, 2).Levels())
	assert.Equal(t, 1, defaultGridLevels(2, 3))
	assert.Equal(t, maxGridLevels, defaultGridLevels(1<<20, 1))
}

func TestIndexCache(t *testing.T) {
	cache := NewIndexCache()
	v := newView(t, randomWalk(300, 14), 2)

	first, err := Spatial(v, 0.5, RangeTree, WithCache(cache))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
	hits, misses := cache.Stats()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(2), misses)

	// A different tolerance reuses both indexes.
	_, err = Spatial(v, 1.5, RangeTree, WithCache(cache))
	require.NoError(t, err)
	hits, _ = cache.Stats()
	assert.Equal(t, int64(2), hits)

	// Same contents in a fresh slice hit the cache too.
	copied := append([]float64(nil), v.Data()...)
	again, err := Spatial(newView(t, copied, 2), 0.5, RangeTree, WithCache(cache))
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, 2, cache.Len())

	_, err = Spatial(v, 0.5, KDTree, WithCache(cache))
	require.NoError(t, err)
	assert.Equal(t, 4, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestFingerprint(t *testing.T) {
	a := []float64{1, 2, 3}
	assert.Equal(t, Fingerprint(a), Fingerprint([]float64{1, 2, 3}))
	assert.NotEqual(t, Fingerprint(a), Fingerprint([]float64{1, 2, 3.0000001}))
}

func TestBuildReturnsIndexOfKind(t *testing.T) {
	v := newView(t, randomWalk(300, 21), 2)
	for _, kind := range Kinds() {
		rc, err := Build(kind, v, 3, NewOptions())
		require.NoError(t, err)
		assert.Equal(t, kind, rc.Kind())
		assert.Equal(t, 3, rc.Dim())
		assert.Equal(t, v.Count(), rc.Size())
	}
	assert.IsType(t, &KDIndex{}, NewKDIndex(v, 2, 8, -1))
	assert.IsType(t, &GridIndex{}, NewGridIndex(v, 2, 0))
	assert.IsType(t, &RangeIndex{}, NewRangeIndex(v, 2))
}
