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

package sampen

import (
	"github.com/sampen-go/sampen/counting"
	"github.com/sampen-go/sampen/sampling"
)

type config struct {
	counting counting.Options
	seed     uint64
}

// Option configures a computation.
type Option func(*config)

func newConfig(opts []Option) config {
	c := config{
		counting: counting.NewOptions(),
		seed:     sampling.DefaultSeed,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.counting.LeafSize < 1 {
		c.counting.LeafSize = counting.DefaultLeafSize
	}
	return c
}

// WithWorkers sets the number of goroutines. Exact counters split templates
// across them, sampling estimators split trials. Default: GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) { c.counting.Workers = n }
}

// WithSeed sets the base seed of sampling estimators. Default: sampling.DefaultSeed.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// WithCache keeps spatial indexes in a caller-owned cache so that repeated
// calls on the same sequence skip construction.
func WithCache(cache *counting.IndexCache) Option {
	return func(c *config) { c.counting.Cache = cache }
}

// WithLeafSize sets the KD tree leaf bucket size. Default: 8.
func WithLeafSize(n int) Option {
	return func(c *config) { c.counting.LeafSize = n }
}

// WithGridLevels sets the halvings per coordinate of the grid KD tree.
// Default: derived from the number of templates.
func WithGridLevels(n int) Option {
	return func(c *config) { c.counting.GridLevels = n }
}

// WithMemoryLimit fails index construction with ErrResourceExhausted when an
// index would need more than bytes. Default: no limit.
func WithMemoryLimit(bytes int64) Option {
	return func(c *config) { c.counting.MemoryLimit = bytes }
}
