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

package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/sampen-go/sampen/entropy"
)

// report prints results as aligned columns.
type report struct {
	w *tabwriter.Writer
}

func newReport(out io.Writer) *report {
	return &report{w: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)}
}

func (r *report) header(record string, length, m int, tol float64) {
	fmt.Fprintf(r.w, "\n# %s  N=%d  m=%d  r=%.6g\n", record, length, m, tol)
	fmt.Fprintln(r.w, "method\tsize\tnum\tsampen\tA\tB\tA/norm\tB/norm\ttime\terr(A)\terr(B)\terr(sampen)\tstatus")
}

// row prints res; ref, when set, fills the error columns.
func (r *report) row(res entropy.Result, elapsed time.Duration, ref *entropy.Result) {
	errA, errB, errS := "-", "-", "-"
	if ref != nil && res.Method != ref.Method {
		d := entropy.Compare(res, *ref)
		errA = fmt.Sprintf("%.3e", d.AbsA)
		errB = fmt.Sprintf("%.3e", d.AbsB)
		errS = fmt.Sprintf("%.3e", d.AbsSampEn)
	}
	size, num := "-", "-"
	if !res.Method.IsExact() {
		size = fmt.Sprint(res.SampleSize)
		num = fmt.Sprint(res.SampleNum)
	}
	fmt.Fprintf(r.w, "%s\t%s\t%s\t%.6g\t%.6g\t%.6g\t%.6e\t%.6e\t%s\t%s\t%s\t%s\t%s\n",
		res.Method, size, num, res.SampEn, res.A, res.B, res.NormalizedA(), res.NormalizedB(),
		elapsed.Round(time.Microsecond), errA, errB, errS, res.Status)
}

func (r *report) failed(method entropy.Method, err error) {
	fmt.Fprintf(r.w, "%s\t-\t-\t-\t-\t-\t-\t-\t-\t-\t-\t-\t%v\n", method, err)
}

func (r *report) flush() error {
	return r.w.Flush()
}
