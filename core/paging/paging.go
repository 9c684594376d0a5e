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
	"fmt"
)

// ErrInvalidPageSize is returned when a page size is not positive.
var ErrInvalidPageSize = errors.New("page size must be positive")

// SliceFunc returns up to limit items starting at offset.
type SliceFunc[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// Result is one page of a paginated collection.
type Result[T any] struct {
	Items      []T
	Page       int // 1-indexed, always within [1, TotalPages]
	TotalPages int // at least 1, even for an empty collection
	TotalCount int
	MultiPage  bool
	Window     Window
}

// HasPrev reports whether a page exists before the current one.
func (r Result[T]) HasPrev() bool { return r.Page > 1 }

// HasNext reports whether a page exists after the current one.
func (r Result[T]) HasNext() bool { return r.Page < r.TotalPages }

// Prev returns the previous page number, or the current page on the first page.
func (r Result[T]) Prev() int { return max(r.Page-1, 1) }

// Next returns the next page number, or the current page on the last page.
func (r Result[T]) Next() int { return min(r.Page+1, r.TotalPages) }

// TotalPages returns ceil(totalCount/pageSize), floored to 1.
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	n := (totalCount + pageSize - 1) / pageSize
	if n < 1 {
		return 1
	}
	return n
}

// Offset returns the index of the first item of page.
func Offset(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}

// Paginate selects requestedPage of a collection of totalCount items using
// a window of DefaultSide pages on each side.
func Paginate[T any](ctx context.Context, totalCount, requestedPage, pageSize int, slice SliceFunc[T]) (Result[T], error) {
	return PaginateWindow(ctx, totalCount, requestedPage, pageSize, DefaultSide, slice)
}

// PaginateWindow is Paginate with an explicit window side.
//
// A requested page outside [1, TotalPages] selects page 1; this is never an
// error. Errors from slice are returned unchanged.
func PaginateWindow[T any](ctx context.Context, totalCount, requestedPage, pageSize, side int, slice SliceFunc[T]) (Result[T], error) {
	if pageSize <= 0 {
		return Result[T]{}, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}
	if totalCount < 0 {
		totalCount = 0
	}

	totalPages := TotalPages(totalCount, pageSize)
	page := requestedPage
	if page < 1 || page > totalPages {
		page = 1
	}

	res := Result[T]{
		Items:      []T{},
		Page:       page,
		TotalPages: totalPages,
		TotalCount: totalCount,
		MultiPage:  totalPages > 1,
		Window:     ComputeWindow(totalPages, page, side),
	}
	if totalCount == 0 {
		return res, nil
	}

	items, err := slice(ctx, Offset(page, pageSize), pageSize)
	if err != nil {
		return Result[T]{}, err
	}
	if len(items) > pageSize {
		items = items[:pageSize]
	}
	res.Items = items
	return res, nil
}
