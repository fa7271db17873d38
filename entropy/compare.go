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

package entropy

import "math"

// Deviation describes how far an estimate lies from a reference result,
// typically an exact one. Errors on A and B are taken on the normalized
// rates, since raw counts of different methods live on different scales.
type Deviation struct {
	AbsA      float64
	AbsB      float64
	RelA      float64
	RelB      float64
	AbsSampEn float64
	RelSampEn float64
}

// relativeFloor keeps relative errors finite when the reference is zero.
const relativeFloor = 1e-10

// Compare computes the deviation of estimate from reference.
func Compare(estimate, reference Result) Deviation {
	ea, eb := estimate.NormalizedA(), estimate.NormalizedB()
	ra, rb := reference.NormalizedA(), reference.NormalizedB()
	d := Deviation{
		AbsA:      ea - ra,
		AbsB:      eb - rb,
		RelA:      (ea - ra) / math.Abs(ra+relativeFloor),
		RelB:      (eb - rb) / math.Abs(rb+relativeFloor),
		AbsSampEn: estimate.SampEn - reference.SampEn,
	}
	d.RelSampEn = d.AbsSampEn / math.Abs(reference.SampEn+relativeFloor)
	return d
}
