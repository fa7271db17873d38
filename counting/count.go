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

// Package counting computes exact template match counts for sample entropy.
//
// Direct compares every pair of templates. Spatial answers the same question
// with a range-counting index (KD tree, fixed-grid KD tree or range tree)
// queried once per template. All of them return identical counts for the same
// input; they differ only in running time.
package counting

// MatchCount holds ordered-pair match counts. A counts pairs of distinct
// templates matching at length m+1 and B at length m, so A <= B.
type MatchCount struct {
	A int64
	B int64
}

// Add returns the element-wise sum.
func (c MatchCount) Add(o MatchCount) MatchCount {
	return MatchCount{A: c.A + o.A, B: c.B + o.B}
}

// Ordered converts counts taken over unordered pairs i < j.
func (c MatchCount) ordered() MatchCount {
	return MatchCount{A: 2 * c.A, B: 2 * c.B}
}
