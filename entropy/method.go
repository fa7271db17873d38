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

import (
	"fmt"
	"strings"
)

// Method identifies the algorithm that produced a Result.
type Method int

const (
	Direct Method = iota
	KDTree
	KDTreeGrid
	RangeTree
	Uniform
	QuasiRandom
	QuasiRandomPresort
	KDTreeSampling
	GridSampling
)

var methodNames = [...]string{
	Direct:             "direct",
	KDTree:             "kd-tree",
	KDTreeGrid:         "kd-tree-grid",
	RangeTree:          "range-tree",
	Uniform:            "uniform",
	QuasiRandom:        "quasi-random",
	QuasiRandomPresort: "quasi-random-presort",
	KDTreeSampling:     "kd-tree-sampling",
	GridSampling:       "grid-sampling",
}

// Methods lists every known method in declaration order.
func Methods() []Method {
	out := make([]Method, len(methodNames))
	for i := range methodNames {
		out[i] = Method(i)
	}
	return out
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

// IsExact reports whether the method computes exact counts rather than a
// sampled estimate.
func (m Method) IsExact() bool {
	switch m {
	case Direct, KDTree, KDTreeGrid, RangeTree:
		return true
	}
	return false
}

// ParseMethod accepts the names returned by String, case-insensitively.
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return 0, InvalidParameter("unknown method %q", s)
}
