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
	"github.com/sampen-go/sampen/counting"
	"github.com/sampen-go/sampen/internal"
	"github.com/sampen-go/sampen/template"
)

// NewKDTreeStrata stratifies the (m+1)-dimensional templates of v by the
// leaves of a KD tree of depth floor(log2(sampleSize/(2*minStratumSlots))).
// Median splits keep leaf sizes within one of each other, so every leaf gets
// between 2 and 4 times minStratumSlots slots per trial and none is merged.
// The tree is built once and shared by all trials; with a cache in o it is
// also shared across calls.
func NewKDTreeStrata(v *template.View, sampleSize int, seed uint64, o counting.Options) (*Strata, error) {
	depth := internal.FloorLog2(sampleSize / (2 * minStratumSlots))
	tree, err := counting.BuildStrataTree(v, v.M()+1, depth, o)
	if err != nil {
		return nil, err
	}
	return newStrata(tree.Leaves(), sampleSize, seed), nil
}
