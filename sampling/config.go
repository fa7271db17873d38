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

// Package sampling estimates template match counts from random subsets of
// templates.
//
// Every estimator shares one skeleton: a Strategy draws sample_size distinct
// start indices for a trial, the pairwise counter runs on that subset, and
// the per-trial counts are averaged over sample_num trials. Strategies differ
// only in how they choose indices: pseudo-random (Uniform), low-discrepancy
// (QuasiRandom) or stratified by a spatial partition (KDTreeStrata,
// GridStrata).
package sampling

import (
	"runtime"

	"github.com/sampen-go/sampen/entropy"
)

// DefaultSeed is the base seed used when none is configured, so that repeated
// runs reproduce the same draws.
const DefaultSeed uint64 = 0x5a3e_17c0_d2b4_9e61

// Config holds the parameters shared by every estimator.
type Config struct {
	// SampleSize is the number of templates drawn per trial.
	SampleSize int
	// SampleNum is the number of independent trials averaged.
	SampleNum int
	// Presort sorts each draw before counting. It changes locality only.
	Presort bool
	// Workers bounds the number of trials counted concurrently.
	Workers int
	// Seed is the base seed from which every trial seed is derived.
	Seed uint64
}

// NewConfig returns a Config with the default seed and one worker per CPU.
func NewConfig(sampleSize, sampleNum int) Config {
	return Config{
		SampleSize: sampleSize,
		SampleNum:  sampleNum,
		Workers:    runtime.GOMAXPROCS(0),
		Seed:       DefaultSeed,
	}
}

// Validate checks the configuration against n available templates.
func (c Config) Validate(n int) error {
	if c.SampleSize < 2 {
		return entropy.InvalidParameter("sample size must be at least 2, got %d", c.SampleSize)
	}
	if c.SampleSize >= n {
		return entropy.InvalidParameter("sample size %d must be less than the number of templates %d", c.SampleSize, n)
	}
	if c.SampleNum < 1 {
		return entropy.InvalidParameter("sample num must be at least 1, got %d", c.SampleNum)
	}
	return nil
}
