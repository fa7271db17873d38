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
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sampen-go/sampen/entropy"
	"github.com/sampen-go/sampen/ingest"
	"github.com/sampen-go/sampen/store"
)

type globalFlags struct {
	logLevel  string
	storeKind string
	storePath string
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	cmd := &cobra.Command{
		Use:   "sampen",
		Short: "Sample entropy of time series",
		Long: `Compute sample entropy with exact counters (direct, kd-tree, kd-tree-grid,
range-tree) and sampling estimators (uniform, quasi-random, kd-tree-sampling,
grid-sampling), and compare the estimates with the exact values.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(g.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.storeKind, "store", "memory", "result store backend (memory, sqlite)")
	cmd.PersistentFlags().StringVar(&g.storePath, "store-path", "sampen.db", "sqlite database file")

	cmd.AddCommand(computeCmd(&g), sweepCmd(&g))
	return cmd
}

// inputFlags select and prepare the sequences.
type inputFlags struct {
	format    string
	limit     int
	scale     int
	m         int
	r         float64
	absoluteR bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "simple", "input layout (simple, multi-record)")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "read at most this many rows (0 reads all)")
	cmd.Flags().IntVar(&f.scale, "scale", 1, "integer factor applied to every sample")
	cmd.Flags().IntVarP(&f.m, "m", "m", 2, "template length")
	cmd.Flags().Float64VarP(&f.r, "r", "r", 0.15, "tolerance, as a multiple of the standard deviation unless --absolute-r")
	cmd.Flags().BoolVar(&f.absoluteR, "absolute-r", false, "use r as given instead of scaling it by the standard deviation")
}

func (f *inputFlags) read(path string) ([]ingest.Record, error) {
	format, err := ingest.ParseFormat(f.format)
	if err != nil {
		return nil, err
	}
	return ingest.ReadFile(path, ingest.Options{Format: format, Limit: f.limit, Scale: f.scale})
}

func (f *inputFlags) tolerance(values []float64) (float64, error) {
	if f.absoluteR {
		return f.r, nil
	}
	return ingest.Tolerance(values, f.r)
}

func openStore(ctx context.Context, g *globalFlags) (store.Store, error) {
	s, err := store.New(g.storeKind, g.storePath)
	if err != nil {
		return nil, err
	}
	if err := s.Init(ctx); err != nil {
		return nil, fmt.Errorf("init %s store: %w", g.storeKind, err)
	}
	return s, nil
}

func parseMethods(list string) ([]entropy.Method, error) {
	var methods []entropy.Method
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == "all" {
			return entropy.Methods(), nil
		}
		m, err := entropy.ParseMethod(name)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no methods selected")
	}
	return methods, nil
}

func parseSizes(list string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(list, ",") {
		var s int
		if _, err := fmt.Sscan(strings.TrimSpace(field), &s); err != nil {
			return nil, fmt.Errorf("bad sample size %q", field)
		}
		sizes = append(sizes, s)
	}
	return sizes, nil
}
