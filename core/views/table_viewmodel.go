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

package views

import (
	"github.com/google/safehtml"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/formats"
	"github.com/google/tabula/core/paging"
	"github.com/google/tabula/core/query"
)

// TableViewModel contains one table instance formatted for template consumption
type TableViewModel struct {
	ID       safehtml.Identifier // DOM id, unique per instance on a page
	Name     string              // Registered table name
	Title    string              // "<Model> List"
	Headers  []HeaderInfo
	Rows     []RowInfo
	Empty    bool // True when the source has no records
	NumCols  int
	Pages    PaginationInfo
	Exports  []ExportLink
	SortedBy string // Display name of the sorted column, if any
}

// HeaderInfo contains information about a column header for UI display
type HeaderInfo struct {
	DisplayName string
	SortKey     string
	SortURL     safehtml.URL // Link toggling the sort of this column
	Active      bool         // Whether the table is sorted by this column
	Descending  bool
}

// RowInfo is one rendered record.
type RowInfo struct {
	Cells []CellInfo
}

// CellInfo is one rendered cell. Text is escaped by the template.
type CellInfo struct {
	Text   string
	URL    safehtml.URL
	IsLink bool
}

// PaginationInfo describes the page links of a table instance
type PaginationInfo struct {
	Page        int
	TotalPages  int
	TotalCount  int
	MultiPage   bool
	Links       []PageLink
	StartElided bool
	EndElided   bool
	StartGap    bool // Pages between page 1 and the window are hidden
	EndGap      bool // Pages between the window and the last page are hidden
	FirstURL    safehtml.URL
	LastURL     safehtml.URL
	HasPrev     bool
	PrevURL     safehtml.URL
	HasNext     bool
	NextURL     safehtml.URL
}

// PageLink is one page number of the window.
type PageLink struct {
	Number  int
	URL     safehtml.URL
	Current bool
}

// ExportLink points to a non-HTML rendition of a table instance.
type ExportLink struct {
	Format formats.Format
	Label  string
	URL    safehtml.URL
}

// TextCell returns a plain cell.
func TextCell(text string) CellInfo {
	return CellInfo{Text: text}
}

// LinkCell returns a cell linking to location. Unsafe locations are
// replaced by the sanitizer's inert URL.
func LinkCell(text, location string) CellInfo {
	return CellInfo{Text: text, URL: safehtml.URLSanitized(location), IsLink: true}
}

// BuildHeaders creates the column headers with their sort toggle links.
func BuildHeaders(q *query.Query, cols []columns.Spec) []HeaderInfo {
	headers := make([]HeaderInfo, len(cols))
	for i, col := range cols {
		active := q.Sort.IsSortedBy(col.SortKey)
		headers[i] = HeaderInfo{
			DisplayName: col.DisplayName,
			SortKey:     col.SortKey,
			SortURL:     q.WithSortToggled(col.SortKey),
			Active:      active,
			Descending:  active && q.Sort.Descending(),
		}
	}
	return headers
}

// BuildPagination creates the page links for a pagination result.
func BuildPagination[T any](q *query.Query, res paging.Result[T]) PaginationInfo {
	info := PaginationInfo{
		Page:        res.Page,
		TotalPages:  res.TotalPages,
		TotalCount:  res.TotalCount,
		MultiPage:   res.MultiPage,
		StartElided: res.Window.StartElided,
		EndElided:   res.Window.EndElided,
		FirstURL:    q.WithPage(1),
		LastURL:     q.WithPage(res.TotalPages),
		HasPrev:     res.HasPrev(),
		HasNext:     res.HasNext(),
	}
	if info.HasPrev {
		info.PrevURL = q.WithPage(res.Prev())
	}
	if info.HasNext {
		info.NextURL = q.WithPage(res.Next())
	}
	info.Links = make([]PageLink, len(res.Window.Pages))
	for i, n := range res.Window.Pages {
		info.Links[i] = PageLink{Number: n, URL: q.WithPage(n), Current: n == res.Page}
	}
	if pages := res.Window.Pages; len(pages) > 0 {
		info.StartGap = info.StartElided && pages[0] > 2
		info.EndGap = info.EndElided && pages[len(pages)-1] < res.TotalPages-1
	}
	return info
}

// BuildExports creates one export link per available format.
func BuildExports(q *query.Query, available []formats.Format) []ExportLink {
	links := make([]ExportLink, 0, len(available))
	for _, f := range available {
		if f == formats.HTML {
			continue
		}
		links = append(links, ExportLink{Format: f, Label: exportLabel(f), URL: q.WithFormat(string(f))})
	}
	return links
}

func exportLabel(f formats.Format) string {
	switch f {
	case formats.CSV:
		return "CSV"
	case formats.PDF:
		return "PDF"
	case formats.TXT:
		return "Text"
	case formats.XLSX:
		return "Excel"
	}
	return string(f)
}
