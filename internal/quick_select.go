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

// SelectByKey partially orders ids[lo..hi] (inclusive) so that ids[nth] holds
// the element of rank nth under key, every element before it has a key <= and
// every element after it a key >=. It runs in expected linear time and works
// in place; the relative order of the other elements is unspecified.
func SelectByKey(ids []int32, lo int, hi int, nth int, key func(int32) float64) {
	for hi > lo {
		medianOfThree(ids, lo, hi, key)
		j := partitionByKey(ids, lo, hi, key)
		if j == nth {
			return
		}
		if j > nth {
			hi = j - 1
		} else {
			lo = j + 1
		}
	}
}

// medianOfThree moves the median of ids[lo], ids[mid], ids[hi] to lo, where
// partitionByKey takes its pivot. Templates of monotone signals arrive
// sorted, which would otherwise make every partition degenerate.
func medianOfThree(ids []int32, lo int, hi int, key func(int32) float64) {
	mid := lo + (hi-lo)/2
	if key(ids[mid]) < key(ids[lo]) {
		ids[lo], ids[mid] = ids[mid], ids[lo]
	}
	if key(ids[hi]) < key(ids[lo]) {
		ids[lo], ids[hi] = ids[hi], ids[lo]
	}
	if key(ids[hi]) < key(ids[mid]) {
		ids[mid], ids[hi] = ids[hi], ids[mid]
	}
	ids[lo], ids[mid] = ids[mid], ids[lo]
}

func partitionByKey(ids []int32, lo int, hi int, key func(int32) float64) int {
	i := lo
	j := hi + 1
	v := key(ids[lo])
	for {
		for key(ids[i+1]) < v {
			i++
			if i == hi {
				break
			}
		}
		i++
		for v < key(ids[j-1]) {
			j--
			if j == lo {
				break
			}
		}
		j--
		if i >= j {
			break
		}
		ids[i], ids[j] = ids[j], ids[i]
	}
	ids[lo], ids[j] = ids[j], ids[lo]
	return j
}
