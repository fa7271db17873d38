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

package sampen

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampen-go/sampen/counting"
	"github.com/sampen-go/sampen/entropy"
)

func noise(n int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, 11))
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return data
}

func TestPeriodTwo(t *testing.T) {
	data := []float64{1, 2, 1, 2, 1, 2, 1, 2}
	for _, method := range []entropy.Method{entropy.Direct, entropy.KDTree, entropy.KDTreeGrid, entropy.RangeTree} {
		t.Run(method.String(), func(t *testing.T) {
			res, err := Run(data, 2, 0.5, method, Params{})
			require.NoError(t, err)
			assert.Equal(t, 12.0, res.A)
			assert.Equal(t, 12.0, res.B)
			assert.Equal(t, 30.0, res.Normalizer)
			assert.Equal(t, 0.0, res.SampEn)
			assert.Equal(t, entropy.Defined, res.Status)
			assert.Equal(t, method, res.Method)
		})
	}
}

func TestMonotoneIsUndefined(t *testing.T) {
	data := make([]float64, 200)
	for i := range data {
		data[i] = float64(i) * 0.5
	}
	res, err := ExactDirect(data, 2, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.B)
	assert.Equal(t, entropy.Undefined, res.Status)
	assert.True(t, math.IsNaN(res.SampEn))

	est, err := EstimateUniform(data, 2, 0.1, 50, 3)
	require.NoError(t, err)
	assert.Equal(t, entropy.Undefined, est.Status)
}

func TestExactMethodsAgree(t *testing.T) {
	data := noise(1500, 1)
	ref, err := ExactDirect(data, 2, 0.3, WithWorkers(1))
	require.NoError(t, err)
	for _, kind := range counting.Kinds() {
		res, err := ExactSpatial(data, 2, 0.3, kind, WithWorkers(4), WithLeafSize(4))
		require.NoError(t, err)
		assert.Equal(t, ref.A, res.A, kind.String())
		assert.Equal(t, ref.B, res.B, kind.String())
		assert.Equal(t, ref.SampEn, res.SampEn, kind.String())
	}
}

func TestEstimatorsApproachExact(t *testing.T) {
	data := noise(3000, 2)
	const m, r = 2, 0.5
	ref, err := ExactDirect(data, m, r)
	require.NoError(t, err)
	require.True(t, ref.IsDefined())

	p := Params{SampleSize: 1000, SampleNum: 8, CellWidth: 0.5}
	for _, method := range entropy.Methods() {
		if method.IsExact() {
			continue
		}
		t.Run(method.String(), func(t *testing.T) {
			res, err := Run(data, m, r, method, p, WithSeed(42))
			require.NoError(t, err)
			assert.Equal(t, method, res.Method)
			assert.Equal(t, 1000, res.SampleSize)
			assert.Equal(t, 8, res.SampleNum)
			assert.True(t, res.IsDefined())
			d := entropy.Compare(res, ref)
			assert.Less(t, math.Abs(d.RelB), 0.1)
			assert.Less(t, math.Abs(d.AbsSampEn), 0.25)
		})
	}
}

func TestSmallSamplesStayUnbiased(t *testing.T) {
	data := noise(20000, 5)
	const m, r = 2, 0.2
	ref, err := ExactSpatial(data, m, r, counting.RangeTree)
	require.NoError(t, err)

	// s/n is about 1/80, so a KD leaf or grid cell holds a handful of slots.
	p := Params{SampleSize: 256, SampleNum: 300, CellWidth: 0.5}
	for _, method := range entropy.Methods() {
		if method.IsExact() {
			continue
		}
		t.Run(method.String(), func(t *testing.T) {
			res, err := Run(data, m, r, method, p)
			require.NoError(t, err)
			d := entropy.Compare(res, ref)
			assert.Less(t, math.Abs(d.RelA), 0.06)
			assert.Less(t, math.Abs(d.RelB), 0.06)
		})
	}
}

func TestPresortDoesNotChangeEstimate(t *testing.T) {
	data := noise(800, 3)
	plain, err := EstimateQuasiRandom(data, 2, 0.4, 200, 5, false)
	require.NoError(t, err)
	sorted, err := EstimateQuasiRandom(data, 2, 0.4, 200, 5, true)
	require.NoError(t, err)
	assert.Equal(t, plain.A, sorted.A)
	assert.Equal(t, plain.B, sorted.B)
	assert.Equal(t, entropy.QuasiRandomPresort, sorted.Method)
}

func TestSeedReproducibility(t *testing.T) {
	data := noise(600, 4)
	a, err := EstimateKDTreeSampling(data, 2, 0.4, 100, 4, WithSeed(7))
	require.NoError(t, err)
	b, err := EstimateKDTreeSampling(data, 2, 0.4, 100, 4, WithSeed(7), WithWorkers(1))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestInvalidParameters(t *testing.T) {
	data := noise(100, 5)
	cases := map[string]func() error{
		"ZeroM": func() error {
			_, err := ExactDirect(data, 0, 0.2)
			return err
		},
		"NegativeR": func() error {
			_, err := ExactSpatial(data, 2, -1, counting.RangeTree)
			return err
		},
		"ShortSequence": func() error {
			_, err := ExactDirect(data[:3], 2, 0.2)
			return err
		},
		"SampleSizeOne": func() error {
			_, err := EstimateUniform(data, 2, 0.2, 1, 5)
			return err
		},
		"SampleSizeTooLarge": func() error {
			_, err := EstimateQuasiRandom(data, 2, 0.2, 98, 5, false)
			return err
		},
		"NoTrials": func() error {
			_, err := EstimateKDTreeSampling(data, 2, 0.2, 10, 0)
			return err
		},
		"ZeroCellWidth": func() error {
			_, err := EstimateGridSampling(data, 2, 0.2, 10, 2, 0)
			return err
		},
		"UnknownKind": func() error {
			_, err := ExactSpatial(data, 2, 0.2, counting.Kind(8))
			return err
		},
		"UnknownMethod": func() error {
			_, err := Run(data, 2, 0.2, entropy.Method(99), Params{})
			return err
		},
	}
	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, errors.Is(call(), ErrInvalidParameter))
		})
	}
}

func TestMemoryLimit(t *testing.T) {
	data := noise(1000, 6)
	_, err := ExactSpatial(data, 2, 0.2, counting.KDTree, WithMemoryLimit(100))
	assert.True(t, errors.Is(err, ErrResourceExhausted))
	_, err = EstimateKDTreeSampling(data, 2, 0.2, 100, 2, WithMemoryLimit(100))
	assert.True(t, errors.Is(err, ErrResourceExhausted))
}

func TestCacheAcrossTolerances(t *testing.T) {
	data := noise(1000, 7)
	cache := counting.NewIndexCache()
	for _, r := range []float64{0.1, 0.2, 0.4} {
		_, err := ExactSpatial(data, 2, r, counting.KDTreeGrid, WithCache(cache), WithGridLevels(3))
		require.NoError(t, err)
	}
	hits, misses := cache.Stats()
	assert.Equal(t, int64(4), hits)
	assert.Equal(t, int64(2), misses)
}
