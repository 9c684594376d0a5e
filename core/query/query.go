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
	"strconv"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/tabula/core/columns"
)

// DefaultFormat is the output format used when a table instance does not request one.
const DefaultFormat = "html"

// PageParam returns the name of the page number parameter of a table instance.
func PageParam(key string) string { return "page_" + key }

// FormatParam returns the name of the output format parameter of a table instance.
func FormatParam(key string) string { return "format_" + key }

// SortParam returns the name of the sort parameter of one column of a table instance.
func SortParam(key, sortKey string) string { return sortPrefix(key) + sortKey }

func sortPrefix(key string) string { return "sort_" + key + "_" }

// FilterPrefix prefixes request filters (format: filter:columnName=value).
// Filters apply to every table of a request.
const FilterPrefix = "filter:"

// Filters extracts the request filters (columnName -> filterValue)
func Filters(params url.Values) map[string]string {
	filters := make(map[string]string)
	for key, values := range params {
		name, ok := strings.CutPrefix(key, FilterPrefix)
		if ok && name != "" && len(values) > 0 {
			filters[name] = values[0]
		}
	}
	return filters
}

// Query represents the state of one table instance on a page, as carried by
// the request URL. Several tables can share a URL; each reads and writes only
// the parameters namespaced by its own Key.
type Query struct {
	// Base path (e.g., "/tables/orders")
	Path string

	// All parameters of the request, including those of other tables
	Params url.Values

	Key     string    // Table instance key
	Page    int       // Requested page, 1 when absent or not a number
	RawPage string    // Page parameter as received
	Format  string    // Requested output format
	Sort    SortState // Set by Negotiate
}

// NewQuery creates the Query of table instance key from a URL
func NewQuery(u *url.URL, key string) *Query {
	q := u.Query()

	state := &Query{
		Path:    u.Path,
		Params:  q,
		Key:     key,
		Format:  DefaultFormat,
		RawPage: q.Get(PageParam(key)),
	}

	if format := q.Get(FormatParam(key)); format != "" {
		state.Format = format
	}
	state.Page, _ = ParsePage(state.RawPage)

	return state
}

// ParsePage parses a page parameter. Anything that is not an integer yields
// page 1 and false; range checking is left to the pager.
func ParsePage(s string) (int, bool) {
	page, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1, false
	}
	return page, true
}

// Negotiate sets Sort from the request parameters and the table's columns.
func (s *Query) Negotiate(cols []columns.Spec) SortState {
	s.Sort = NegotiateSort(cols, s.Key, s.Params)
	return s.Sort
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	clone := *s
	clone.Params = make(url.Values, len(s.Params))
	for k, v := range s.Params {
		clone.Params[k] = append([]string(nil), v...)
	}
	return &clone
}

// WithPage returns a URL showing page of this table instance
func (s *Query) WithPage(page int) safehtml.URL {
	newState := s.Clone()
	if page <= 1 {
		newState.Params.Del(PageParam(s.Key))
	} else {
		newState.Params.Set(PageParam(s.Key), strconv.Itoa(page))
	}
	return newState.ToSafeURL()
}

// WithSort returns a URL sorting this table instance by sortKey.
// Any other sort of the instance is dropped, and so is its page, since the
// rows of the current page change with the order.
func (s *Query) WithSort(sortKey string, dir Direction) safehtml.URL {
	newState := s.Clone()
	prefix := sortPrefix(s.Key)
	for name := range newState.Params {
		if strings.HasPrefix(name, prefix) {
			newState.Params.Del(name)
		}
	}
	newState.Params.Del(PageParam(s.Key))
	if dir != Unsorted {
		newState.Params.Set(SortParam(s.Key, sortKey), string(dir))
	}
	return newState.ToSafeURL()
}

// WithSortToggled returns the URL a column header links to: ascending, or
// descending when the column is already sorted ascending.
func (s *Query) WithSortToggled(sortKey string) safehtml.URL {
	return s.WithSort(sortKey, s.Sort.Next(sortKey))
}

// WithFormat returns a URL requesting this table instance in format
func (s *Query) WithFormat(format string) safehtml.URL {
	newState := s.Clone()
	if format == DefaultFormat {
		newState.Params.Del(FormatParam(s.Key))
	} else {
		newState.Params.Set(FormatParam(s.Key), format)
	}
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path:     s.Path,
		RawQuery: s.Params.Encode(),
	}
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}
