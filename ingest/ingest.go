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

// Package ingest reads sequences from text files.
//
// Two layouts are supported. Simple files hold one sample per non-empty
// line. Multi-record files hold one row per line: a line number followed by
// one sample per record, so every column after the first is a sequence.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"golang.org/x/exp/constraints"
)

// ErrMalformed is wrapped by every parse error.
var ErrMalformed = errors.New("ingest: malformed input")

// Format is the layout of an input file.
type Format int

const (
	Simple Format = iota
	MultiRecord
)

func (f Format) String() string {
	switch f {
	case Simple:
		return "simple"
	case MultiRecord:
		return "multi-record"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat is the inverse of Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "simple":
		return Simple, nil
	case "multi-record":
		return MultiRecord, nil
	}
	return 0, fmt.Errorf("unknown input format %q", s)
}

// Options controls how input is read.
type Options struct {
	Format Format
	// Limit keeps only the first Limit rows. 0 reads everything.
	Limit int
	// Scale multiplies every sample. 0 is treated as 1.
	Scale int
}

// Record is one named sequence.
type Record struct {
	Name   string
	Values []float64
}

// ReadFile reads the records of the named file. Records are named after the
// file base name; multi-record files append the column number.
func ReadFile(path string, opts Options) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := range records {
		if len(records) == 1 {
			records[i].Name = base
		} else {
			records[i].Name = fmt.Sprintf("%s#%d", base, i+1)
		}
	}
	return records, nil
}

// Read parses records from r. Records are named by their column number
// starting at 1.
func Read(r io.Reader, opts Options) ([]Record, error) {
	scale := float64(opts.Scale)
	if opts.Scale == 0 {
		scale = 1
	}

	var records []Record
	sc := bufio.NewScanner(r)
	line, rows := 0, 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if opts.Limit > 0 && rows == opts.Limit {
			break
		}
		switch opts.Format {
		case Simple:
			if len(fields) != 1 {
				return nil, fmt.Errorf("%w: line %d: expected one value, got %d", ErrMalformed, line, len(fields))
			}
		case MultiRecord:
			fields = fields[1:]
			if len(fields) == 0 {
				return nil, fmt.Errorf("%w: line %d: no samples after the line number", ErrMalformed, line)
			}
		default:
			return nil, fmt.Errorf("unknown input format %v", opts.Format)
		}

		if records == nil {
			records = make([]Record, len(fields))
			for i := range records {
				records[i].Name = strconv.Itoa(i + 1)
			}
		} else if len(fields) != len(records) {
			return nil, fmt.Errorf("%w: line %d: expected %d columns, got %d", ErrMalformed, line, len(records), len(fields))
		}
		for i, field := range fields {
			x, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
			}
			records[i].Values = append(records[i].Values, x*scale)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrMalformed)
	}
	return records, nil
}

// FromIntegers converts integer samples, multiplying each by scale. The
// product is taken in float64, so it cannot wrap around in T.
func FromIntegers[T constraints.Integer](xs []T, scale T) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x) * float64(scale)
	}
	return out
}

// Tolerance returns factor times the population standard deviation of
// samples, the usual way of expressing r relative to the signal.
func Tolerance(samples []float64, factor float64) (float64, error) {
	sd, err := stats.StandardDeviationPopulation(samples)
	if err != nil {
		return 0, err
	}
	return factor * sd, nil
}
