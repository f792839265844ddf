/*
 * store_test.go, part of gophon
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

package dynstore

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	phon "github.com/rmera/gophon"
	"github.com/rmera/gophon/dyn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memStore(Te *testing.T) *Store {
	s, err := Open(":memory:")
	require.NoError(Te, err)
	Te.Cleanup(func() { s.Close() })
	return s
}

func readSi(Te *testing.T, name string) *phon.Record {
	rec, err := dyn.ReadFile(filepath.Join("..", "test", name), nil)
	require.NoError(Te, err)
	return rec
}

func jsonOf(Te *testing.T, rec *phon.Record) string {
	b, err := json.Marshal(rec)
	require.NoError(Te, err)
	return string(b)
}

func TestSaveGet(Te *testing.T) {
	s := memStore(Te)
	ctx := context.Background()
	rec := readSi(Te, "si.dyn1")
	id, err := s.Save(ctx, "si.dyn1", rec)
	require.NoError(Te, err)
	assert.Greater(Te, id, int64(0))

	got, err := s.Get(ctx, id)
	require.NoError(Te, err)
	assert.Same(Te, rec, got) //from the cache

	s.cache.Purge()
	got, err = s.Get(ctx, id)
	require.NoError(Te, err)
	assert.NotSame(Te, rec, got)
	assert.Equal(Te, jsonOf(Te, rec), jsonOf(Te, got))
	assert.Equal(Te, rec.Frequencies(), got.Frequencies())
	assert.Equal(Te, 1, s.cache.Len())
}

func TestNotFound(Te *testing.T) {
	s := memStore(Te)
	ctx := context.Background()
	_, err := s.Get(ctx, 42)
	assert.True(Te, errors.Is(err, ErrNotFound))
	_, _, err = s.Frequencies(ctx, 42)
	assert.True(Te, errors.Is(err, ErrNotFound))
	assert.True(Te, errors.Is(s.Delete(ctx, 42), ErrNotFound))
	_, err = s.Save(ctx, "nothing", nil)
	assert.Error(Te, err)
}

func TestListAndFrequencies(Te *testing.T) {
	s := memStore(Te)
	ctx := context.Background()
	g := readSi(Te, "si.dyn1")
	x := readSi(Te, "si.dyn2")
	id1, err := s.Save(ctx, "si.dyn1", g)
	require.NoError(Te, err)
	id2, err := s.Save(ctx, "si.dyn2", x)
	require.NoError(Te, err)

	list, err := s.List(ctx)
	require.NoError(Te, err)
	require.Len(Te, list, 2)
	assert.Equal(Te, id1, list[0].ID)
	assert.Equal(Te, "si.dyn1", list[0].Source)
	assert.True(Te, list[0].Gamma)
	assert.Equal(Te, 2, list[0].NAt)
	assert.Equal(Te, id2, list[1].ID)
	assert.False(Te, list[1].Gamma)
	assert.Equal(Te, phon.QPoint{-0.5, 0.5, -0.5}, list[1].Q)
	assert.False(Te, list[1].CreatedAt.IsZero())

	thz, cm1, err := s.Frequencies(ctx, id2)
	require.NoError(Te, err)
	assert.Equal(Te, x.Frequencies(), thz)
	assert.Equal(Te, 114.084318, cm1[0])

	require.NoError(Te, s.Delete(ctx, id1))
	_, err = s.Get(ctx, id1)
	assert.True(Te, errors.Is(err, ErrNotFound))
	list, err = s.List(ctx)
	require.NoError(Te, err)
	assert.Len(Te, list, 1)
}

func TestFrequenciesWithoutCM1(Te *testing.T) {
	s := memStore(Te)
	ctx := context.Background()
	rec := readSi(Te, "si.dyn2")
	for _, m := range rec.Modes {
		m.CM1 = math.NaN()
	}
	id, err := s.Save(ctx, "nocm1", rec)
	require.NoError(Te, err)
	_, cm1, err := s.Frequencies(ctx, id)
	require.NoError(Te, err)
	require.Len(Te, cm1, 6)
	assert.NotEqual(Te, cm1[0], cm1[0])
}

func TestPersistent(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "dyn.db")
	s, err := OpenWithCache(path, 4)
	require.NoError(Te, err)
	rec := readSi(Te, "si.dyn2")
	id, err := s.Save(context.Background(), "si.dyn2", rec)
	require.NoError(Te, err)
	require.NoError(Te, s.Close())

	//migrations are not applied twice
	s, err = OpenWithCache(path, 4)
	require.NoError(Te, err)
	defer s.Close()
	got, err := s.Get(context.Background(), id)
	require.NoError(Te, err)
	assert.Equal(Te, rec.Q, got.Q)
	assert.Equal(Te, jsonOf(Te, rec), jsonOf(Te, got))
}

//A q-point that is only zero within a loose tolerance must be stored as Gamma
//when the store uses the same tolerance as the parser.
func TestGammaTolerance(Te *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "test", "si.dyn1"))
	require.NoError(Te, err)
	in := strings.ReplaceAll(string(data), "q = (    0.000000000", "q = (    0.000010000")
	rec, err := dyn.Read(strings.NewReader(in), &dyn.Options{ZeroTol: 1e-3})
	require.NoError(Te, err)
	require.NotNil(Te, rec.Epsilon)
	require.NotNil(Te, rec.Charges)
	ctx := context.Background()

	s := memStore(Te)
	s.SetZeroTol(1e-3)
	id, err := s.Save(ctx, "loose", rec)
	require.NoError(Te, err)
	s.SetZeroTol(0) //ignored
	id2, err := s.Save(ctx, "loose again", rec)
	require.NoError(Te, err)

	strict := memStore(Te)
	id3, err := strict.Save(ctx, "strict", rec)
	require.NoError(Te, err)

	list, err := s.List(ctx)
	require.NoError(Te, err)
	require.Len(Te, list, 2)
	assert.Equal(Te, id, list[0].ID)
	assert.True(Te, list[0].Gamma)
	assert.Equal(Te, id2, list[1].ID)
	assert.True(Te, list[1].Gamma)
	list, err = strict.List(ctx)
	require.NoError(Te, err)
	require.Len(Te, list, 1)
	assert.Equal(Te, id3, list[0].ID)
	assert.False(Te, list[0].Gamma)
}
