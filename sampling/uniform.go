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

// Uniform draws every trial as a simple random sample without replacement
// from all n start indices.
type Uniform struct {
	n    int
	seed uint64
}

// NewUniform returns a uniform strategy over [0, n).
func NewUniform(n int, seed uint64) *Uniform {
	return &Uniform{n: n, seed: seed}
}

func (u *Uniform) Draw(trial int, dst []int32) {
	floyd(trialRand(u.seed, trial), u.n, dst)
}
