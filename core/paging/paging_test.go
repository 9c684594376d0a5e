/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package paging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSlicer serves ints 0..n-1 and remembers the calls it received.
type recordingSlicer struct {
	n     int
	calls [][2]int
}

func (s *recordingSlicer) slice(_ context.Context, offset, limit int) ([]int, error) {
	s.calls = append(s.calls, [2]int{offset, limit})
	var out []int
	for i := offset; i < s.n && i < offset+limit; i++ {
		out = append(out, i)
	}
	return out, nil
}

func TestTotalPages(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 10} {
		for count := 0; count <= 50; count++ {
			want := (count + size - 1) / size
			if want < 1 {
				want = 1
			}
			assert.Equal(t, want, TotalPages(count, size), "count=%d size=%d", count, size)
		}
	}
}

func TestPaginate(t *testing.T) {
	ctx := context.Background()

	t.Run("Middle page", func(t *testing.T) {
		s := &recordingSlicer{n: 25}
		res, err := Paginate(ctx, 25, 2, 10, s.slice)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Page)
		assert.Equal(t, 3, res.TotalPages)
		assert.Equal(t, 25, res.TotalCount)
		assert.True(t, res.MultiPage)
		assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, res.Items)
		assert.Equal(t, [][2]int{{10, 10}}, s.calls)
		assert.True(t, res.HasPrev())
		assert.True(t, res.HasNext())
		assert.Equal(t, 1, res.Prev())
		assert.Equal(t, 3, res.Next())
	})

	t.Run("Last partial page", func(t *testing.T) {
		s := &recordingSlicer{n: 25}
		res, err := Paginate(ctx, 25, 3, 10, s.slice)
		require.NoError(t, err)
		assert.Equal(t, []int{20, 21, 22, 23, 24}, res.Items)
		assert.False(t, res.HasNext())
		assert.Equal(t, 3, res.Next())
	})

	t.Run("Out of range pages fall back to first page", func(t *testing.T) {
		for _, requested := range []int{0, -1, 4, 1000} {
			s := &recordingSlicer{n: 25}
			res, err := Paginate(ctx, 25, requested, 10, s.slice)
			require.NoError(t, err)
			assert.Equal(t, 1, res.Page, "requested %d", requested)
			assert.Equal(t, [][2]int{{0, 10}}, s.calls)
			assert.Equal(t, []int{1, 2, 3}, res.Window.Pages)
		}
	})

	t.Run("Empty collection has one page", func(t *testing.T) {
		s := &recordingSlicer{}
		res, err := Paginate(ctx, 0, 3, 10, s.slice)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 1, res.TotalPages)
		assert.False(t, res.MultiPage)
		assert.Empty(t, res.Items)
		assert.Empty(t, s.calls)
	})

	t.Run("Slice errors propagate unchanged", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Paginate(ctx, 5, 1, 2, func(context.Context, int, int) ([]int, error) {
			return nil, boom
		})
		assert.Same(t, boom, err)
	})

	t.Run("Invalid page size", func(t *testing.T) {
		s := &recordingSlicer{n: 5}
		_, err := Paginate(ctx, 5, 1, 0, s.slice)
		assert.ErrorIs(t, err, ErrInvalidPageSize)
	})

	t.Run("Window side", func(t *testing.T) {
		s := &recordingSlicer{n: 100}
		res, err := PaginateWindow(ctx, 100, 5, 10, 1, s.slice)
		require.NoError(t, err)
		assert.Equal(t, Window{Pages: []int{4, 5, 6}, StartElided: true, EndElided: true}, res.Window)
	})
}
