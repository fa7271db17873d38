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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeilPowerOf2(t *testing.T) {
	assert.Equal(t, 1, CeilPowerOf2(-3))
	assert.Equal(t, 1, CeilPowerOf2(1))
	assert.Equal(t, 2, CeilPowerOf2(2))
	assert.Equal(t, 4, CeilPowerOf2(3))
	assert.Equal(t, 8, CeilPowerOf2(5))
	assert.Equal(t, 1024, CeilPowerOf2(1024))
	assert.Equal(t, 1<<30, CeilPowerOf2(1<<30+1))
}

func TestLog2(t *testing.T) {
	testCases := []struct {
		n     int
		floor int
		ceil  int
	}{
		{n: 0, floor: 0, ceil: 0},
		{n: 1, floor: 0, ceil: 0},
		{n: 2, floor: 1, ceil: 1},
		{n: 3, floor: 1, ceil: 2},
		{n: 4, floor: 2, ceil: 2},
		{n: 5, floor: 2, ceil: 3},
		{n: 1000, floor: 9, ceil: 10},
		{n: 1024, floor: 10, ceil: 10},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.floor, FloorLog2(tc.n), "floor n=%d", tc.n)
		assert.Equal(t, tc.ceil, CeilLog2(tc.n), "ceil n=%d", tc.n)
	}
}

func TestIsPowerOf2(t *testing.T) {
	assert.False(t, IsPowerOf2(0))
	assert.True(t, IsPowerOf2(1))
	assert.True(t, IsPowerOf2(64))
	assert.False(t, IsPowerOf2(65))
	assert.False(t, IsPowerOf2(-4))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(-5, 1, 16))
	assert.Equal(t, 16, Clamp(40, 1, 16))
	assert.Equal(t, 7, Clamp(7, 1, 16))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}
