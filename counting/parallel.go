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

package counting

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// rowBlock is the number of outer-loop rows a worker claims at a time.
const rowBlock = 64

// parallelCount evaluates rows [0, n) in blocks. Blocks are handed out from a
// shared cursor so that uneven rows (the triangular loop of Direct) balance
// across workers. Every worker sums into its own MatchCount and the partials
// are added at the end; integer addition makes the total independent of the
// worker count and of scheduling.
func parallelCount(n, workers int, rows func(lo, hi int) MatchCount) MatchCount {
	if workers < 2 || n <= rowBlock {
		return rows(0, n)
	}
	workers = min(workers, (n+rowBlock-1)/rowBlock)

	var cursor atomic.Int64
	partials := make([]MatchCount, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var local MatchCount
			for {
				lo := int(cursor.Add(rowBlock)) - rowBlock
				if lo >= n {
					break
				}
				local = local.Add(rows(lo, min(lo+rowBlock, n)))
			}
			partials[w] = local
			return nil
		})
	}
	_ = g.Wait()

	var total MatchCount
	for _, p := range partials {
		total = total.Add(p)
	}
	return total
}
