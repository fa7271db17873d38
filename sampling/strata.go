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
	"math/rand/v2"

	"github.com/sampen-go/sampen/template"
)

// minStratumSlots is the smallest share a stratum is given in any trial.
// Two slots are needed for pairs inside a stratum to be drawn at all.
const minStratumSlots = 4

// Strata draws a stratified sample: every trial gives each stratum a share of
// the sample proportional to its population and fills the share uniformly
// from the stratum's members.
//
// Shares are floor(s*size/n) plus one extra slot for some strata, chosen per
// trial by systematic sampling on the fractional remainders. Strata are
// merged with their neighbours until every floor reaches minStratumSlots.
//
// A stratified draw does not include every pair with the same probability,
// so its counts are weighted by the inverse of each pair's inclusion
// probability given the trial's shares (see countTrial).
type Strata struct {
	strata [][]int32
	total  int
	floors []int
	fracs  []float64 // remainders as fractions of one slot
	seed   uint64
}

func newStrata(strata [][]int32, sampleSize int, seed uint64) *Strata {
	total := 0
	for _, s := range strata {
		total += len(s)
	}
	strata = coarsen(strata, total, sampleSize)
	st := &Strata{
		strata: strata,
		total:  total,
		floors: make([]int, len(strata)),
		fracs:  make([]float64, len(strata)),
		seed:   seed,
	}
	for i, members := range strata {
		quota := int64(sampleSize) * int64(len(members))
		st.floors[i] = int(quota / int64(total))
		st.fracs[i] = float64(quota%int64(total)) / float64(total)
	}
	return st
}

// coarsen merges runs of consecutive strata until each holds at least
// ceil(minStratumSlots*n/s) members, which gives it a floor share of at least
// minStratumSlots. A short tail run joins the last full one.
func coarsen(strata [][]int32, total, sampleSize int) [][]int32 {
	if sampleSize < 1 || len(strata) < 2 {
		return strata
	}
	target := (minStratumSlots*total + sampleSize - 1) / sampleSize
	var merged [][]int32
	var run []int32
	for _, members := range strata {
		run = append(run, members...)
		if len(run) >= target {
			merged = append(merged, run)
			run = nil
		}
	}
	if len(run) > 0 {
		if len(merged) == 0 {
			return [][]int32{run}
		}
		last := len(merged) - 1
		merged[last] = append(merged[last], run...)
	}
	return merged
}

// Len returns the number of strata.
func (st *Strata) Len() int {
	return len(st.strata)
}

// allocate returns the number of slots of every stratum for one trial.
func (st *Strata) allocate(rng *rand.Rand, sampleSize int) []int {
	alloc := make([]int, len(st.floors))
	assigned := 0
	for i, f := range st.floors {
		alloc[i] = f
		assigned += f
	}
	if assigned == sampleSize {
		return alloc
	}
	// Systematic rounding: the extra slots sit at u, u+1, u+2, ... along the
	// running sum of remainders.
	next := rng.Float64()
	cum := 0.0
	for i, f := range st.fracs {
		if f == 0 {
			continue
		}
		cum += f
		if cum > next && alloc[i] < len(st.strata[i]) {
			alloc[i]++
			assigned++
			next++
			if assigned == sampleSize {
				break
			}
		}
	}
	// Rounding in the running sum can leave the last slot unplaced.
	for i := len(alloc) - 1; assigned < sampleSize && i >= 0; i-- {
		if st.fracs[i] > 0 && alloc[i] == st.floors[i] {
			alloc[i]++
			assigned++
		}
	}
	return alloc
}

func (st *Strata) Draw(trial int, dst []int32) {
	st.draw(trial, dst)
}

// draw fills dst stratum by stratum and returns the share of each stratum.
func (st *Strata) draw(trial int, dst []int32) []int {
	rng := trialRand(st.seed, trial)
	alloc := st.allocate(rng, len(dst))
	at := 0
	for i, members := range st.strata {
		k := alloc[i]
		if k == 0 {
			continue
		}
		res := newReservoir(dst[at:at:at+k], rng)
		for _, id := range members {
			res.Update(id)
		}
		at += k
	}
	return alloc
}

// countTrial draws one trial into dst and counts its matching pairs, each
// weighted by pi0/pi, where pi is the pair's inclusion probability given the
// trial's shares and pi0 = s(s-1)/(n(n-1)) is the inclusion probability
// under an equal-probability draw. Given shares k_h out of N_h members:
//
//	pi = k_h(k_h-1) / (N_h(N_h-1))   both templates in stratum h
//	pi = (k_g/N_g) * (k_h/N_h)       templates in strata g != h
//
// The weighted counts are unbiased for the counts of an equal-probability
// draw of the same size, so they share its s(s-1) normalizer.
func (st *Strata) countTrial(v *template.View, trial int, dst []int32, r float64) TrialCount {
	alloc := st.draw(trial, dst)
	s, n := float64(len(dst)), float64(st.total)
	pi0 := s * (s - 1) / (n * (n - 1))

	incl := make([]float64, len(alloc))
	within := make([]float64, len(alloc))
	owner := make([]int32, len(dst))
	at := 0
	for h, k := range alloc {
		size := float64(len(st.strata[h]))
		incl[h] = float64(k) / size
		if k > 1 {
			within[h] = pi0 * size * (size - 1) / (float64(k) * float64(k-1))
		}
		for j := at; j < at+k; j++ {
			owner[j] = int32(h)
		}
		at += k
	}

	data, m := v.Data(), v.M()
	var c TrialCount
	for x, i := range dst {
		a := data[i : int(i)+m+1]
		hx := owner[x]
		for y := x + 1; y < len(dst); y++ {
			j := dst[y]
			b := data[j : int(j)+m+1]
			if !template.Within(a[:m], b[:m], r) {
				continue
			}
			w := within[hx]
			if hy := owner[y]; hy != hx {
				w = pi0 / (incl[hx] * incl[hy])
			}
			c.B += w
			if template.Matches(a[m], b[m], r) {
				c.A += w
			}
		}
	}
	c.A *= 2
	c.B *= 2
	return c
}
