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

package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sampen-go/sampen/entropy"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, entry Entry) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	k := entry.Key.Normalize()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	var sampEn sql.NullFloat64
	if entry.Status == entropy.Defined {
		sampEn = sql.NullFloat64{Float64: entry.SampEn, Valid: true}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO results (id, record, length, m, r, method, sample_size, sample_num, cell_width,
			seed, parallel, instance, sampen, a, b, status, elapsed_ns, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(record, length, m, r, method, sample_size, sample_num, cell_width, seed, parallel) DO UPDATE SET
			instance = excluded.instance,
			sampen = excluded.sampen,
			a = excluded.a,
			b = excluded.b,
			status = excluded.status,
			elapsed_ns = excluded.elapsed_ns,
			updated_at = excluded.updated_at
	`, entry.ID, k.Record, k.Length, k.M, k.R, k.Method.String(), k.SampleSize, k.SampleNum, k.CellWidth,
		int64(k.Seed), k.Parallel, int64(entry.Instance), sampEn, entry.A, entry.B, int(entry.Status), int64(entry.Elapsed),
		time.Now().UTC().UnixNano())
	return err
}

func (s *SQLiteStore) Find(ctx context.Context, key Key) (Entry, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Entry{}, false, err
	}

	k := key.Normalize()
	var (
		entry     = Entry{Key: k}
		instance  int64
		sampEn    sql.NullFloat64
		status    int
		elapsed   int64
		updatedAt int64
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, instance, sampen, a, b, status, elapsed_ns, updated_at FROM results
		WHERE record = ? AND length = ? AND m = ? AND r = ? AND method = ?
			AND sample_size = ? AND sample_num = ? AND cell_width = ? AND seed = ? AND parallel = ?
	`, k.Record, k.Length, k.M, k.R, k.Method.String(), k.SampleSize, k.SampleNum, k.CellWidth,
		int64(k.Seed), k.Parallel).
		Scan(&entry.ID, &instance, &sampEn, &entry.A, &entry.B, &status, &elapsed, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}

	entry.Instance = uint64(instance)
	entry.Status = entropy.Status(status)
	entry.SampEn = sampEn.Float64
	if !sampEn.Valid {
		entry.SampEn = sampEnFor(entry.Status)
	}
	entry.Elapsed = time.Duration(elapsed)
	entry.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return entry, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			record TEXT NOT NULL,
			length INTEGER NOT NULL,
			m INTEGER NOT NULL,
			r REAL NOT NULL,
			method TEXT NOT NULL,
			sample_size INTEGER NOT NULL,
			sample_num INTEGER NOT NULL,
			cell_width REAL NOT NULL,
			seed INTEGER NOT NULL,
			parallel INTEGER NOT NULL,
			instance INTEGER NOT NULL,
			sampen REAL,
			a REAL NOT NULL,
			b REAL NOT NULL,
			status INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			UNIQUE (record, length, m, r, method, sample_size, sample_num, cell_width, seed, parallel)
		);
	`)
	return err
}
