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

	"github.com/google/tabula/core/columns"
)

// Direction is the order requested for a sorted column.
type Direction string

const (
	Unsorted   Direction = ""
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts exactly "asc" and "desc".
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Ascending, Descending:
		return Direction(s), true
	}
	return Unsorted, false
}

// SortState is the sort of one table instance. At most one column is sorted.
type SortState struct {
	Key       string // Sort key of the active column, empty when unsorted
	Direction Direction
}

// Active reports whether a column is sorted.
func (s SortState) Active() bool { return s.Direction != Unsorted }

// Descending reports whether the active column is sorted descending.
func (s SortState) Descending() bool { return s.Direction == Descending }

// IsSortedBy reports whether sortKey is the active column.
func (s SortState) IsSortedBy(sortKey string) bool {
	return s.Active() && s.Key == sortKey
}

// Next returns the direction a click on the sortKey column requests.
func (s SortState) Next(sortKey string) Direction {
	if s.IsSortedBy(sortKey) && s.Direction == Ascending {
		return Descending
	}
	return Ascending
}

// NegotiateSort finds the sort requested for table instance key.
//
// Columns are inspected in display order and the first one whose sort
// parameter is "asc" or "desc" wins; when a request carries several sort
// parameters the later columns are ignored. Other values count as absent.
func NegotiateSort(cols []columns.Spec, key string, params url.Values) SortState {
	for _, col := range cols {
		if dir, ok := ParseDirection(params.Get(SortParam(key, col.SortKey))); ok {
			return SortState{Key: col.SortKey, Direction: dir}
		}
	}
	return SortState{}
}
