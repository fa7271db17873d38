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

import "runtime"

const (
	// DefaultLeafSize is the bucket size of KD tree leaves.
	DefaultLeafSize = 8
	// maxGridLevels bounds the levels per coordinate of the grid KD tree.
	maxGridLevels = 16
)

// Options configures counters and index construction.
type Options struct {
	// Workers is the number of goroutines sharing the outer loop.
	// Values below 2 run the single-threaded path.
	Workers int
	// LeafSize is the maximum number of points in a KD tree leaf.
	LeafSize int
	// GridLevels is the number of halvings per coordinate of the grid KD
	// tree. 0 derives it from the number of templates.
	GridLevels int
	// MemoryLimit caps the estimated size of one index in bytes.
	// 0 means no limit.
	MemoryLimit int64
	// Cache, when set, keeps built indexes for reuse by later calls.
	Cache *IndexCache
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions uses every available CPU and no cache.
func DefaultOptions() Options {
	return Options{
		Workers:  runtime.GOMAXPROCS(0),
		LeafSize: DefaultLeafSize,
	}
}

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLeafSize sets the KD tree leaf bucket size.
func WithLeafSize(n int) Option {
	return func(o *Options) { o.LeafSize = n }
}

// WithGridLevels sets the number of halvings per coordinate of the grid KD tree.
func WithGridLevels(n int) Option {
	return func(o *Options) { o.GridLevels = n }
}

// WithMemoryLimit caps the estimated size of a single index.
func WithMemoryLimit(bytes int64) Option {
	return func(o *Options) { o.MemoryLimit = bytes }
}

// WithCache reuses indexes across calls through a caller-owned cache.
func WithCache(c *IndexCache) Option {
	return func(o *Options) { o.Cache = c }
}

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.LeafSize < 1 {
		o.LeafSize = DefaultLeafSize
	}
	return o
}
