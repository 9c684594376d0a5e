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

package query

import (
	"net/url"
	"testing"

	"github.com/google/tabula/core/columns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

// TestNewQuery tests parameter extraction for one table instance
func TestNewQuery(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/tables/orders"), "1")
		assert.Equal(t, "/tables/orders", q.Path)
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, DefaultFormat, q.Format)
		assert.False(t, q.Sort.Active())
	})

	t.Run("Reads only its own namespace", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/view?page_1=3&format_1=csv&page_2=7&format_2=pdf"), "2")
		assert.Equal(t, 7, q.Page)
		assert.Equal(t, "pdf", q.Format)
	})

	t.Run("Invalid page falls back to 1", func(t *testing.T) {
		for _, raw := range []string{"abc", "", "1.5", "%20"} {
			q := NewQuery(mustParse(t, "/t?page_1="+url.QueryEscape(raw)), "1")
			assert.Equal(t, 1, q.Page, "page %q", raw)
		}
	})

	t.Run("Out of range page is kept for the pager", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/t?page_1=-4"), "1")
		assert.Equal(t, -4, q.Page)
	})
}

func TestURLBuilders(t *testing.T) {
	cols := []columns.Spec{
		columns.NewSpec("Name", "name", "{{.Name}}"),
		columns.NewSpec("Age", "age", "{{.Age}}"),
	}

	parse := func(t *testing.T, s string) url.Values {
		t.Helper()
		return mustParse(t, s).Query()
	}

	t.Run("WithPage keeps other tables", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/view?page_2=4&sort_2_age=desc&page_1=2"), "1")
		params := parse(t, q.WithPage(3).String())
		assert.Equal(t, "3", params.Get("page_1"))
		assert.Equal(t, "4", params.Get("page_2"))
		assert.Equal(t, "desc", params.Get("sort_2_age"))

		params = parse(t, q.WithPage(1).String())
		assert.False(t, params.Has("page_1"))
	})

	t.Run("WithSort replaces sort and resets page", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/t?page_1=5&sort_1_name=asc&sort_1_age=desc&sort_11_name=asc"), "1")
		params := parse(t, q.WithSort("age", Ascending).String())
		assert.Equal(t, "asc", params.Get("sort_1_age"))
		assert.False(t, params.Has("sort_1_name"))
		assert.False(t, params.Has("page_1"))
		assert.Equal(t, "asc", params.Get("sort_11_name"))
	})

	t.Run("WithSortToggled alternates direction", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/t?sort_1_name=asc"), "1")
		q.Negotiate(cols)

		assert.Equal(t, "desc", parse(t, q.WithSortToggled("name").String()).Get("sort_1_name"))
		assert.Equal(t, "asc", parse(t, q.WithSortToggled("age").String()).Get("sort_1_age"))

		q = NewQuery(mustParse(t, "/t?sort_1_name=desc"), "1")
		q.Negotiate(cols)
		assert.Equal(t, "asc", parse(t, q.WithSortToggled("name").String()).Get("sort_1_name"))
	})

	t.Run("WithFormat", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/t?page_1=2"), "1")
		params := parse(t, q.WithFormat("csv").String())
		assert.Equal(t, "csv", params.Get("format_1"))
		assert.Equal(t, "2", params.Get("page_1"))
		assert.False(t, parse(t, q.WithFormat(DefaultFormat).String()).Has("format_1"))
	})

	t.Run("Builders do not modify the query", func(t *testing.T) {
		q := NewQuery(mustParse(t, "/t?page_1=2"), "1")
		_ = q.WithPage(9)
		_ = q.WithSort("name", Descending)
		assert.Equal(t, "/t?page_1=2", q.ToURL())
	})
}

func TestFilters(t *testing.T) {
	q := NewQuery(mustParse(t, "/t?filter:region=north&filter:status=open&page_1=2&filter:=x"), "1")
	assert.Equal(t, map[string]string{"region": "north", "status": "open"}, Filters(q.Params))
	assert.Empty(t, Filters(url.Values{}))
}
