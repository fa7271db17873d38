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

import "math/bits"

// QuasiRandom draws indices from the base-2 van der Corput sequence, the
// one-dimensional Sobol sequence. Point i is the bit reversal of i read as a
// binary fraction; every trial applies its own digital shift (XOR with a
// random 32-bit word), which keeps the low discrepancy of the net and makes
// each point uniform on its own.
//
// Points are mapped to [0, n) by a multiply-shift. Two points landing on the
// same index are resolved by moving to the next free index, wrapping at n.
type QuasiRandom struct {
	n    int
	seed uint64
}

// NewQuasiRandom returns a quasi-random strategy over [0, n).
func NewQuasiRandom(n int, seed uint64) *QuasiRandom {
	return &QuasiRandom{n: n, seed: seed}
}

func (q *QuasiRandom) Draw(trial int, dst []int32) {
	shift := uint32(TrialSeed(q.seed, trial) >> 32)
	taken := make(map[int32]struct{}, len(dst))
	for i := range dst {
		y := bits.Reverse32(uint32(i)) ^ shift
		idx := int32((uint64(y) * uint64(q.n)) >> 32)
		for {
			if _, ok := taken[idx]; !ok {
				break
			}
			idx++
			if int(idx) == q.n {
				idx = 0
			}
		}
		taken[idx] = struct{}{}
		dst[i] = idx
	}
}
