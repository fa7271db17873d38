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

package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampen-go/sampen/entropy"
)

func backends(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLiteStore(filepath.Join(t.TempDir(), "results.db")),
	}
}

func TestSaveAndFind(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Init(ctx))
			t.Cleanup(func() { _ = s.Close() })

			key := Key{Record: "rr", Length: 1000, M: 2, R: 0.15, Method: entropy.Uniform, SampleSize: 100, SampleNum: 5}
			res := entropy.Aggregate(30, 60, entropy.SampledNormalizer(100), entropy.Uniform)
			require.NoError(t, s.Save(ctx, NewEntry(key, 42, res, 3*time.Millisecond)))

			got, ok, err := s.Find(ctx, key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, uint64(42), got.Instance)
			assert.Equal(t, res.SampEn, got.SampEn)
			assert.Equal(t, 30.0, got.A)
			assert.Equal(t, entropy.Defined, got.Status)
			assert.Equal(t, 3*time.Millisecond, got.Elapsed)
			assert.False(t, got.UpdatedAt.IsZero())

			// Saving under the same key replaces the values and keeps the ID.
			res2 := entropy.Aggregate(31, 60, entropy.SampledNormalizer(100), entropy.Uniform)
			require.NoError(t, s.Save(ctx, NewEntry(key, 42, res2, time.Millisecond)))
			again, ok, err := s.Find(ctx, key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, got.ID, again.ID)
			assert.Equal(t, 31.0, again.A)

			other := key
			other.SampleNum = 6
			_, ok, err = s.Find(ctx, other)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestDegenerateResults(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Init(ctx))
			t.Cleanup(func() { _ = s.Close() })

			undefined := Key{Record: "ramp", Length: 50, M: 2, R: 0.01, Method: entropy.Direct}
			require.NoError(t, s.Save(ctx, NewEntry(undefined, 1, entropy.Aggregate(0, 0, 100, entropy.Direct), 0)))
			got, ok, err := s.Find(ctx, undefined)
			require.NoError(t, err)
			require.True(t, ok)
			assert.True(t, math.IsNaN(got.SampEn))
			assert.Equal(t, entropy.Undefined, got.Status)

			saturated := Key{Record: "ramp", Length: 50, M: 2, R: 0.5, Method: entropy.RangeTree}
			require.NoError(t, s.Save(ctx, NewEntry(saturated, 1, entropy.Aggregate(0, 8, 100, entropy.RangeTree), 0)))
			got, ok, err = s.Find(ctx, saturated)
			require.NoError(t, err)
			require.True(t, ok)
			assert.True(t, math.IsInf(got.SampEn, 1))
		})
	}
}

func TestExactKeysIgnoreSampleParameters(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Init(ctx))
			t.Cleanup(func() { _ = s.Close() })

			key := Key{Record: "x", Length: 10, M: 1, R: 1, Method: entropy.KDTree, SampleSize: 5, SampleNum: 2}
			require.NoError(t, s.Save(ctx, NewEntry(key, 7, entropy.Aggregate(4, 8, 90, entropy.KDTree), 0)))

			key.SampleSize, key.SampleNum = 0, 0
			_, ok, err := s.Find(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestSamplingKeysTrackSeedAndCellWidth(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Init(ctx))
			t.Cleanup(func() { _ = s.Close() })

			key := Key{Record: "x", Length: 500, M: 2, R: 0.2, Method: entropy.GridSampling,
				SampleSize: 50, SampleNum: 4, CellWidth: 0.2, Seed: 11}
			require.NoError(t, s.Save(ctx, NewEntry(key, 7, entropy.Aggregate(4, 8, 2450, entropy.GridSampling), 0)))

			other := key
			other.CellWidth = 0.4
			_, ok, err := s.Find(ctx, other)
			require.NoError(t, err)
			assert.False(t, ok)

			other = key
			other.Seed = 12
			_, ok, err = s.Find(ctx, other)
			require.NoError(t, err)
			assert.False(t, ok)

			_, ok, err = s.Find(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestNormalize(t *testing.T) {
	exact := Key{Method: entropy.Direct, SampleSize: 5, SampleNum: 2, CellWidth: 1, Seed: 3}.Normalize()
	assert.Equal(t, Key{Method: entropy.Direct}, exact)

	uniform := Key{Method: entropy.Uniform, SampleSize: 5, SampleNum: 2, CellWidth: 1, Seed: 3}.Normalize()
	assert.Equal(t, Key{Method: entropy.Uniform, SampleSize: 5, SampleNum: 2, Seed: 3}, uniform)

	grid := Key{Method: entropy.GridSampling, CellWidth: 1, Seed: 3}.Normalize()
	assert.Equal(t, 1.0, grid.CellWidth)
	assert.Equal(t, uint64(3), grid.Seed)
}

func TestUninitialized(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := s.Find(ctx, Key{})
			assert.ErrorContains(t, err, "not initialized")
		})
	}
	assert.Error(t, NewSQLiteStore("").Init(ctx))
}

func TestNew(t *testing.T) {
	s, err := New("", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New("sqlite", "x.db")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)

	_, err = New("postgres", "")
	assert.ErrorContains(t, err, "unsupported store backend")
}
