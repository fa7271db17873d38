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
	"math/rand/v2"

	"github.com/twmb/murmur3"
)

// TrialSeed derives the seed of one trial from the base seed. Hashing the
// trial number decorrelates neighbouring trials.
func TrialSeed(base uint64, trial int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(trial))
	return murmur3.SeedSum64(base, buf[:])
}

func trialRand(base uint64, trial int) *rand.Rand {
	s := TrialSeed(base, trial)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// floyd fills dst with len(dst) distinct values from [0, n) using Floyd's
// algorithm, which needs len(dst) random numbers whatever n is.
func floyd(rng *rand.Rand, n int, dst []int32) {
	k := len(dst)
	chosen := make(map[int32]struct{}, k)
	for x, j := 0, n-k; j < n; x, j = x+1, j+1 {
		t := int32(rng.IntN(j + 1))
		if _, ok := chosen[t]; ok {
			t = int32(j)
		}
		chosen[t] = struct{}{}
		dst[x] = t
	}
}
