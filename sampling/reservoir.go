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

import "math/rand/v2"

// reservoir keeps a uniform sample of up to k ids from a stream of unknown
// length.
//
// The algorithm works in two phases:
//   - Initial phase (n < k): every id is stored
//   - Steady state (n >= k): each new id replaces a random slot with probability k/(n+1)
//
// so every id seen has the same probability of being kept.
type reservoir struct {
	k    int
	n    int64
	data []int32
	rng  *rand.Rand
}

// newReservoir writes its sample into buf, which must have capacity k.
func newReservoir(buf []int32, rng *rand.Rand) *reservoir {
	return &reservoir{k: cap(buf), data: buf[:0], rng: rng}
}

// Update offers one id to the reservoir.
func (s *reservoir) Update(id int32) {
	if s.n < int64(s.k) {
		s.data = append(s.data, id)
	} else if j := s.rng.Int64N(s.n + 1); j < int64(s.k) {
		s.data[j] = id
	}
	s.n++
}

// Samples returns the kept ids. The slice aliases the buffer.
func (s *reservoir) Samples() []int32 {
	return s.data
}
