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
	"math/bits"

	"golang.org/x/exp/constraints"
)

const maxPowerOf2 = 1 << 30

// CeilPowerOf2 returns the smallest power of 2 greater than or equal to n,
// capped at 2^30.
func CeilPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	if n >= maxPowerOf2 {
		return maxPowerOf2
	}
	return 1 << bits.Len(uint(n-1))
}

// FloorLog2 returns floor(log2(n)) for n >= 1 and 0 otherwise.
func FloorLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}

// CeilLog2 returns ceil(log2(n)) for n >= 1 and 0 otherwise.
func CeilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// IsPowerOf2 returns true if the given number is a power of 2.
func IsPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Clamp limits x to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
