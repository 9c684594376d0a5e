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

package records

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type city struct {
	Name       string
	Population int64
	FoundedAt  time.Time `db:"founded"`
	url        string
}

func (c city) CanonicalURL() string { return c.url }

func TestFieldValue(t *testing.T) {
	founded := time.Date(1200, 1, 1, 0, 0, 0, 0, time.UTC)
	c := city{Name: "Lyon", Population: 500000, FoundedAt: founded}

	tests := []struct {
		name   string
		record Record
		field  string
		want   any
		found  bool
	}{
		{"Struct field by lower case name", c, "name", "Lyon", true},
		{"Pointer to struct", &c, "population", int64(500000), true},
		{"Struct db tag", c, "founded", founded, true},
		{"Underscores ignored", c, "founded_at", founded, true},
		{"Unexported field is hidden", c, "url", nil, false},
		{"Map", map[string]any{"a": 1}, "a", 1, true},
		{"String map", map[string]string{"a": "x"}, "a", "x", true},
		{"Missing map key", map[string]any{}, "a", nil, false},
		{"Row", &Row{Values: map[string]any{"id": int64(3)}}, "id", int64(3), true},
		{"Nil record", nil, "a", nil, false},
		{"Scalar record", 42, "a", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FieldValue(tt.record, tt.field)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalLocation(t *testing.T) {
	u, ok := CanonicalLocation(city{url: "https://example.com/lyon"})
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/lyon", u)

	_, ok = CanonicalLocation(city{})
	assert.False(t, ok, "empty location")

	_, ok = CanonicalLocation(map[string]any{})
	assert.False(t, ok, "no locator")
}

func TestCompare(t *testing.T) {
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"Natural strings", "item2", "item10", -1},
		{"Equal strings", "x", "x", 0},
		{"Mixed integers", int64(3), 2, 1},
		{"Integer and float", 2, 2.5, -1},
		{"NaN first", math.NaN(), -1.0, -1},
		{"Both NaN", math.NaN(), math.NaN(), 0},
		{"Times", late, early, 1},
		{"Durations", time.Second, time.Minute, -1},
		{"Bools", false, true, -1},
		{"Nil first", nil, "a", -1},
		{"Both nil", nil, nil, 0},
		{"Bytes", []byte("b"), []byte("a"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, Compare(tt.b, tt.a), "antisymmetric")
		})
	}
}

func names(t *testing.T, src Source) []string {
	t.Helper()
	var out []string
	err := src.Each(context.Background(), func(r Record) error {
		v, ok := FieldValue(r, "name")
		require.True(t, ok)
		out = append(out, v.(string))
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestSliceSource(t *testing.T) {
	ctx := context.Background()
	src := NewSliceSource([]city{
		{Name: "b", Population: 2},
		{Name: "a", Population: 2},
		{Name: "c", Population: 1},
	})

	t.Run("Count", func(t *testing.T) {
		n, err := src.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("Slice bounds", func(t *testing.T) {
		got, err := src.Slice(ctx, 1, 5)
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = src.Slice(ctx, 3, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("OrderBy is stable and leaves the receiver alone", func(t *testing.T) {
		assert.Equal(t, []string{"c", "b", "a"}, names(t, src.OrderBy("population", false)))
		assert.Equal(t, []string{"b", "a", "c"}, names(t, src.OrderBy("population", true)))
		assert.Equal(t, []string{"a", "b", "c"}, names(t, src.OrderBy("name", false)))
		assert.Equal(t, []string{"b", "a", "c"}, names(t, src))
	})

	t.Run("Each stops on error", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := src.Each(ctx, func(Record) error {
			calls++
			return boom
		})
		assert.Same(t, boom, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.Count(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
