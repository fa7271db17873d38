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

package template

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sampen-go/sampen/entropy"
)

func TestNewView(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		data := []float64{1, 2, 3, 4, 5}
		v, err := NewView(data, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, v.Len())
		assert.Equal(t, 2, v.M())
		assert.Equal(t, 3, v.Count())
	})

	t.Run("InvalidM", func(t *testing.T) {
		_, err := NewView([]float64{1, 2, 3}, 0)
		assert.True(t, errors.Is(err, entropy.ErrInvalidParameter))
		assert.ErrorContains(t, err, "m must be at least 1")
	})

	t.Run("TooShort", func(t *testing.T) {
		_, err := NewView([]float64{1, 2, 3}, 2)
		assert.True(t, errors.Is(err, entropy.ErrInvalidParameter))
		assert.ErrorContains(t, err, "less than m+2")
	})

	t.Run("NotFinite", func(t *testing.T) {
		_, err := NewView([]float64{1, math.NaN(), 3, 4}, 1)
		assert.ErrorContains(t, err, "sample 1 is not finite")
		_, err = NewView([]float64{1, 2, math.Inf(-1), 4}, 1)
		assert.ErrorContains(t, err, "sample 2 is not finite")
	})
}

func TestWindowDoesNotCopy(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5}
	v, err := NewView(data, 2)
	require.NoError(t, err)

	w := v.Window(1, 3)
	assert.Equal(t, []float64{1, 2, 3}, w)
	assert.Equal(t, 3, cap(w))
	assert.Same(t, &data[1], &w[0])

	w = append(w, 99)
	assert.Equal(t, 4.0, data[4])
	assert.Equal(t, 3.0, v.At(1, 2))
}

func TestCompare(t *testing.T) {
	v, err := NewView([]float64{1, 2, 1, 2, 5, 1, 2, 9}, 2)
	require.NoError(t, err)

	m, m1 := v.Compare(0, 2, 0.5)
	assert.True(t, m)
	assert.False(t, m1)

	m, m1 = v.Compare(0, 5, 0.5)
	assert.True(t, m)
	assert.False(t, m1)

	m, m1 = v.Compare(1, 3, 0)
	assert.False(t, m)
	assert.False(t, m1)

	m, m1 = v.Compare(0, 2, 4)
	assert.True(t, m)
	assert.True(t, m1)
}

func TestBounds(t *testing.T) {
	v, err := NewView([]float64{3, -1, 7, 2}, 1)
	require.NoError(t, err)
	lo, hi := v.Bounds()
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)
}

func TestMatchPredicates(t *testing.T) {
	assert.True(t, Matches(1.0, 1.5, 0.5))
	assert.False(t, Matches(1.0, 1.5000001, 0.5))
	assert.True(t, Matches(2, 2, 0))

	assert.True(t, Within([]float64{1, 2, 3}, []float64{1.2, 1.9, 3.1}, 0.2))
	assert.False(t, Within([]float64{1, 2, 3}, []float64{1.2, 1.9, 3.3}, 0.2))
	assert.False(t, Within([]float64{1, 2}, []float64{1, 2, 3}, 1))

	assert.InDelta(t, 0.3, ChebyshevDistance([]float64{1, 2, 3}, []float64{1.2, 1.9, 3.3}), 1e-12)

	assert.True(t, BelowRange(1, 3, 1.5))
	assert.False(t, BelowRange(1, 3, 2))
	assert.True(t, AboveRange(5, 3, 1.5))
	assert.False(t, AboveRange(5, 3, 2))
}

func TestValidateTolerance(t *testing.T) {
	assert.NoError(t, ValidateTolerance(0))
	assert.NoError(t, ValidateTolerance(12.5))
	assert.NoError(t, ValidateTolerance(math.Inf(1)))
	assert.True(t, errors.Is(ValidateTolerance(-1), entropy.ErrInvalidParameter))
	assert.Error(t, ValidateTolerance(math.NaN()))
}
