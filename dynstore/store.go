/*
 * store.go, part of gophon
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

// Package dynstore keeps parsed dyn records in a SQLite database.
// Each record is stored as JSON, next to a few columns (source, number of atoms,
// q-point) that allow listing without decoding, and a table with the frequencies
// of its modes.
package dynstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	phon "github.com/rmera/gophon"
	"github.com/rmera/gophon/dyn"

	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver used, the pure Go one from modernc.org.
const DriverName = "sqlite"

// DefaultCacheSize is the number of decoded records kept in memory.
const DefaultCacheSize = 128

// ErrNotFound is returned when a requested record doesn't exist.
var ErrNotFound = errors.New("record not found")

// Entry describes a stored record without decoding it.
type Entry struct {
	ID        int64
	Source    string
	NAt       int
	Q         phon.QPoint
	Gamma     bool
	CreatedAt time.Time
}

// Store is a database of dyn records. It is safe for concurrent use.
type Store struct {
	db      *sql.DB
	cache   *lru.Cache[int64, *phon.Record]
	zeroTol float64 //for the gamma column
}

// Open opens, or creates, the database at path. ":memory:" gives a database that
// lives as long as the Store.
func Open(path string) (*Store, error) {
	return OpenWithCache(path, DefaultCacheSize)
}

// OpenWithCache is like Open, but keeps up to cacheSize decoded records in memory.
func OpenWithCache(path string, cacheSize int) (*Store, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	//One connection, so an in-memory database is the same for every query.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := applyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	cache, err := lru.New[int64, *phon.Record](cacheSize)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Store{db: db, cache: cache, zeroTol: dyn.DefaultZeroTol}, nil
}

// SetZeroTol sets the tolerance used to decide whether a saved record is at Gamma.
// It should be the one the records were read with. Values <= 0 are ignored.
func (s *Store) SetZeroTol(tol float64) {
	if tol > 0 {
		s.zeroTol = tol
	}
}

// Close closes the database.
func (s *Store) Close() error {
	s.cache.Purge()
	return s.db.Close()
}

// Save stores rec, read from source, and returns its id.
func (s *Store) Save(ctx context.Context, source string, rec *phon.Record) (int64, error) {
	if rec == nil {
		return 0, errors.New("nil record")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("failed to encode record: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //does nothing after Commit
	res, err := tx.ExecContext(ctx, `
		INSERT INTO records (source, nat, qx, qy, qz, gamma, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		source, rec.NAtoms(), rec.Q[0], rec.Q[1], rec.Q[2], rec.Gamma(s.zeroTol), string(data), time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to save record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, m := range rec.Modes {
		var cm1 sql.NullFloat64
		if m.HasCM1() {
			cm1 = sql.NullFloat64{Float64: m.CM1, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO modes (record_id, idx, thz, cm1) VALUES (?, ?, ?, ?)`, id, m.Index, m.THz, cm1); err != nil {
			return 0, fmt.Errorf("failed to save mode %d: %w", m.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	s.cache.Add(id, rec)
	return id, nil
}

// Get returns the record with the given id, or ErrNotFound.
// The returned record can be shared with other callers of Get, and should not be modified.
func (s *Store) Get(ctx context.Context, id int64) (*phon.Record, error) {
	if rec, ok := s.cache.Get(id); ok {
		return rec, nil
	}
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM records WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %d: %w", id, err)
	}
	rec := new(phon.Record)
	if err := json.Unmarshal([]byte(data), rec); err != nil {
		return nil, fmt.Errorf("failed to decode record %d: %w", id, err)
	}
	s.cache.Add(id, rec)
	return rec, nil
}

// List returns all the stored records, oldest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, source, nat, qx, qy, qz, gamma, created_at FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()
	var ret []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Source, &e.NAt, &e.Q[0], &e.Q[1], &e.Q[2], &e.Gamma, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(created, 0)
		ret = append(ret, e)
	}
	return ret, rows.Err()
}

// Frequencies returns the frequencies in THz and cm-1 of the modes of the record id,
// ordered by mode index, without decoding the record. Missing cm-1 values are NaN.
func (s *Store) Frequencies(ctx context.Context, id int64) (thz, cm1 []float64, err error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT thz, cm1 FROM modes WHERE record_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get frequencies of record %d: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var t float64
		var c sql.NullFloat64
		if err := rows.Scan(&t, &c); err != nil {
			return nil, nil, err
		}
		thz = append(thz, t)
		if c.Valid {
			cm1 = append(cm1, c.Float64)
		} else {
			cm1 = append(cm1, math.NaN())
		}
	}
	return thz, cm1, rows.Err()
}

// Delete removes the record id and its modes.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.cache.Remove(id)
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) exists(ctx context.Context, id int64) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM records WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
