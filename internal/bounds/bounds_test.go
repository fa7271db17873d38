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

package bounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalContainsEstimate(t *testing.T) {
	testCases := []struct {
		n, k uint64
	}{
		{n: 100, k: 50},
		{n: 1000, k: 3},
		{n: 1000, k: 997},
		{n: 250000, k: 12345},
		{n: 10, k: 1},
		{n: 10, k: 9},
	}
	for _, tc := range testCases {
		lower, upper, err := Interval(tc.n, tc.k, DefaultNumStdDevs)
		require.NoError(t, err)
		pHat := float64(tc.k) / float64(tc.n)
		assert.LessOrEqual(t, lower, pHat, "n=%d k=%d", tc.n, tc.k)
		assert.GreaterOrEqual(t, upper, pHat, "n=%d k=%d", tc.n, tc.k)
		assert.GreaterOrEqual(t, lower, 0.0)
		assert.LessOrEqual(t, upper, 1.0)
	}
}

func TestIntervalSpecialCases(t *testing.T) {
	lower, upper, err := Interval(0, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 1.0, upper)

	lower, upper, err = Interval(50, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, lower)
	assert.Greater(t, upper, 0.0)
	assert.Less(t, upper, 0.2)

	lower, upper, err = Interval(50, 50, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, upper)
	assert.Greater(t, lower, 0.8)
}

func TestIntervalShrinksWithTrials(t *testing.T) {
	lo1, hi1, err := Interval(1000, 100, DefaultNumStdDevs)
	require.NoError(t, err)
	lo2, hi2, err := Interval(100000, 10000, DefaultNumStdDevs)
	require.NoError(t, err)
	assert.Less(t, hi2-lo2, hi1-lo1)
	// roughly 2 sigma of a binomial proportion
	sigma := 0.3 / 316.2
	assert.InDelta(t, 4*sigma, hi2-lo2, sigma)
}

func TestIntervalRejectsTooManySuccesses(t *testing.T) {
	_, err := Lower(5, 6, 2)
	assert.ErrorContains(t, err, "successes cannot exceed trials")
	_, err = Upper(5, 6, 2)
	assert.Error(t, err)
}
