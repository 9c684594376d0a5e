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
	"sort"
)

// SliceSource is an in-memory Source.
type SliceSource struct {
	items []Record
}

// NewSliceSource creates a source over items. The slice is copied.
func NewSliceSource[T any](items []T) *SliceSource {
	recs := make([]Record, len(items))
	for i, item := range items {
		recs[i] = item
	}
	return &SliceSource{items: recs}
}

// Count implements Source.
func (s *SliceSource) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.items), nil
}

// Slice implements Source.
func (s *SliceSource) Slice(ctx context.Context, offset, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.items) || limit <= 0 {
		return []Record{}, nil
	}
	end := min(offset+limit, len(s.items))
	out := make([]Record, end-offset)
	copy(out, s.items[offset:end])
	return out, nil
}

// Each implements Source.
func (s *SliceSource) Each(ctx context.Context, fn func(Record) error) error {
	for _, item := range s.items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

// OrderBy implements Source. Records that lack field compare lowest.
// The sort is stable.
func (s *SliceSource) OrderBy(field string, desc bool) Source {
	sorted := make([]Record, len(s.items))
	copy(sorted, s.items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := FieldValue(sorted[i], field)
		b, _ := FieldValue(sorted[j], field)
		if desc {
			return Compare(a, b) > 0
		}
		return Compare(a, b) < 0
	})
	return &SliceSource{items: sorted}
}
