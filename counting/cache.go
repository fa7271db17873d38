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
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/sampen-go/sampen/template"
)

type cacheKey struct {
	fingerprint uint64
	n           int
	k           int
	kind        Kind
	leafSize    int
	depth       int // grid levels, or the depth cap of a sampling tree
	sampling    bool
}

// IndexCache keeps built indexes keyed by a fingerprint of the sequence and
// the build parameters. It is owned by the caller and shared explicitly
// through WithCache. Cached indexes reference the sequence they were built
// from, which must not change while they are cached.
type IndexCache struct {
	mu      sync.Mutex
	entries map[cacheKey]any
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewIndexCache returns an empty cache.
func NewIndexCache() *IndexCache {
	return &IndexCache{entries: make(map[cacheKey]any)}
}

// Fingerprint hashes the bit patterns of a sequence.
func Fingerprint(data []float64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, x := range data {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Index returns the cached index for the templates of length k of v,
// building it on a miss.
func (c *IndexCache) Index(kind Kind, v *template.View, k int, o Options) (RangeCounter, error) {
	key := cacheKey{
		fingerprint: Fingerprint(v.Data()),
		n:           v.Count(),
		k:           k,
		kind:        kind,
	}
	switch kind {
	case KDTree:
		key.leafSize = o.LeafSize
	case KDTreeGrid:
		key.depth = o.GridLevels
	}
	idx, err := c.load(key, func() (any, error) { return Build(kind, v, k, o) })
	if err != nil {
		return nil, err
	}
	return idx.(RangeCounter), nil
}

// strataTree returns the cached depth-limited KD tree used for stratified
// sampling, building it on a miss.
func (c *IndexCache) strataTree(v *template.View, k int, depth int, build func() (*KDIndex, error)) (*KDIndex, error) {
	key := cacheKey{
		fingerprint: Fingerprint(v.Data()),
		n:           v.Count(),
		k:           k,
		kind:        KDTree,
		depth:       depth,
		sampling:    true,
	}
	tree, err := c.load(key, func() (any, error) { return build() })
	if err != nil {
		return nil, err
	}
	return tree.(*KDIndex), nil
}

func (c *IndexCache) load(key cacheKey, build func() (any, error)) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return idx, nil
	}
	c.misses.Add(1)
	idx, err := build()
	if err != nil {
		return nil, err
	}
	c.entries[key] = idx
	return idx, nil
}

// Len returns the number of cached indexes.
func (c *IndexCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the number of cache hits and misses so far.
func (c *IndexCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Purge drops every cached index.
func (c *IndexCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
