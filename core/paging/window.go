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

// DefaultSide is the number of page links shown on each side of the current page.
const DefaultSide = 5

// Window is the run of page numbers shown in a pagination bar.
type Window struct {
	Pages       []int // 1-indexed, ascending
	StartElided bool  // pages exist before Pages[0]
	EndElided   bool  // pages exist after the last entry of Pages
}

// ComputeWindow returns at most 2*side+1 page numbers centred on currentPage.
//
// The bounds are computed on 0-indexed pages: the window starts side pages
// before the current one and ends side pages after it. A side is elided
// exactly when pages on that side are left out of the window. A non-positive
// side means DefaultSide.
func ComputeWindow(totalPages, currentPage, side int) Window {
	if side <= 0 {
		side = DefaultSide
	}
	if totalPages < 1 {
		totalPages = 1
	}

	var w Window
	index := currentPage - 1

	start := index - side
	if start > 0 {
		w.StartElided = true
	}
	if start < 0 {
		start = 0
	}

	end := index + side + 1
	if end >= totalPages {
		end = totalPages
	} else {
		w.EndElided = true
	}

	w.Pages = make([]int, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		w.Pages = append(w.Pages, i+1)
	}
	return w
}
