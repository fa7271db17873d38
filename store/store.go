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

// Package store keeps computed results so that repeated experiments skip
// work already done. Results are keyed by the record and every parameter
// that influences them.
package store

import (
	"context"
	"math"
	"time"

	"github.com/sampen-go/sampen/entropy"
)

// Key identifies one computation. Exact methods ignore the sample
// parameters, including the base seed, and only grid sampling uses a cell
// width, so Normalize zeroes what the method ignores.
type Key struct {
	Record     string
	Length     int
	M          int
	R          float64
	Method     entropy.Method
	SampleSize int
	SampleNum  int
	CellWidth  float64
	Seed       uint64
	Parallel   bool
}

// Normalize returns k with the fields its method ignores zeroed.
func (k Key) Normalize() Key {
	if k.Method.IsExact() {
		k.SampleSize = 0
		k.SampleNum = 0
		k.Seed = 0
	}
	if k.Method != entropy.GridSampling {
		k.CellWidth = 0
	}
	return k
}

// Entry is one stored result.
type Entry struct {
	ID  string
	Key Key
	// Instance fingerprints the samples the result was computed from.
	Instance  uint64
	SampEn    float64
	A         float64
	B         float64
	Status    entropy.Status
	Elapsed   time.Duration
	UpdatedAt time.Time
}

// NewEntry captures a result computed for key.
func NewEntry(key Key, instance uint64, res entropy.Result, elapsed time.Duration) Entry {
	return Entry{
		Key:      key.Normalize(),
		Instance: instance,
		SampEn:   res.SampEn,
		A:        res.A,
		B:        res.B,
		Status:   res.Status,
		Elapsed:  elapsed,
	}
}

// Store persists entries. Save replaces the entry with the same key and
// keeps its ID.
type Store interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, entry Entry) error
	Find(ctx context.Context, key Key) (Entry, bool, error)
	Close() error
}

// sampEnFor rebuilds the statistic of a degenerate entry.
func sampEnFor(status entropy.Status) float64 {
	if status == entropy.Saturated {
		return math.Inf(1)
	}
	return math.NaN()
}
