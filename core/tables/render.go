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

package tables

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/safehtml"
	"github.com/google/uuid"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/formats"
	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/paging"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/records"
	"github.com/google/tabula/core/views"
)

// Table is a registered table definition bound to its registry.
type Table struct {
	def Definition
	reg *Registry
}

// Definition returns a copy of the table's definition.
func (t *Table) Definition() Definition {
	def := t.def
	def.Columns = append([]columns.Spec(nil), t.def.Columns...)
	return def
}

// Render renders the table as instance key of the page at u.
//
// The format comes from the format_<key> parameter. HTML renders the page
// named by page_<key>; every other format exports the whole source. When
// a sort_<key>_<column> parameter is set the source is ordered first.
// Errors from src and from cell rendering are returned unchanged.
func (t *Table) Render(ctx context.Context, u *url.URL, key string, src records.Source) (Output, error) {
	if !keyPattern.MatchString(key) {
		return Output{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	start := time.Now()
	q := query.NewQuery(u, key)
	log := t.reg.logger.WithFields(logging.Fields{
		"table":     t.def.Name,
		"key":       key,
		"render_id": uuid.NewString(),
	})

	format, writer, err := t.reg.dispatcher.Resolve(q.Format)
	if err != nil {
		log.Debugf("cannot resolve format %q: %v", q.Format, err)
		t.reg.metrics.RenderFailed(t.def.Name)
		return Output{}, err
	}

	if sort := q.Negotiate(t.def.Columns); sort.Active() {
		log.Debugf("ordering by %s %s", sort.Key, sort.Direction)
		src = src.OrderBy(sort.Key, sort.Descending())
	}

	out := Output{Table: t.def.Name, Key: key, Format: format}
	if format == formats.HTML {
		out.HTML, err = t.renderHTML(ctx, q, src, log)
	} else {
		out.Export, err = t.renderExport(ctx, format, writer, src)
	}
	if err != nil {
		t.reg.metrics.RenderFailed(t.def.Name)
		return Output{}, err
	}

	t.reg.metrics.ObserveRender(t.def.Name, string(format), time.Since(start))
	return out, nil
}

func (t *Table) renderHTML(ctx context.Context, q *query.Query, src records.Source, log logging.Logger) (safehtml.HTML, error) {
	total, err := src.Count(ctx)
	if err != nil {
		return safehtml.HTML{}, err
	}

	res, err := paging.PaginateWindow[records.Record](ctx, total, q.Page, t.def.PageSize, t.reg.windowSide, src.Slice)
	if err != nil {
		return safehtml.HTML{}, err
	}
	if q.RawPage != "" && res.Page != q.Page {
		log.Debugf("page %q is not a page of %d, showing page %d", q.RawPage, res.TotalPages, res.Page)
	} else if _, ok := query.ParsePage(q.RawPage); q.RawPage != "" && !ok {
		log.Debugf("page %q is not a number, showing page 1", q.RawPage)
	}

	rows := make([]views.RowInfo, 0, len(res.Items))
	for _, rec := range res.Items {
		row, err := t.renderRow(ctx, rec)
		if err != nil {
			return safehtml.HTML{}, err
		}
		rows = append(rows, row)
	}

	vm := views.TableViewModel{
		ID:      safehtml.IdentifierFromConstantPrefix("tabula", q.Key),
		Name:    t.def.Name,
		Title:   t.def.Title(),
		Headers: views.BuildHeaders(q, t.def.Columns),
		Rows:    rows,
		Empty:   total == 0,
		NumCols: len(t.def.Columns),
		Pages:   views.BuildPagination(q, res),
		Exports: views.BuildExports(q, t.reg.dispatcher.Available()),
	}
	for _, h := range vm.Headers {
		if h.Active {
			vm.SortedBy = h.DisplayName
		}
	}
	return t.reg.html.RenderTable(vm)
}

// renderRow renders every column of rec. The first column links to the
// record's canonical location when it has one.
func (t *Table) renderRow(ctx context.Context, rec records.Record) (views.RowInfo, error) {
	location, linked := records.CanonicalLocation(rec)
	row := views.RowInfo{Cells: make([]views.CellInfo, len(t.def.Columns))}
	for i, col := range t.def.Columns {
		text, err := t.reg.cells.RenderCell(ctx, rec, col)
		if err != nil {
			return views.RowInfo{}, err
		}
		if i == 0 && linked {
			row.Cells[i] = views.LinkCell(text, location)
		} else {
			row.Cells[i] = views.TextCell(text)
		}
	}
	return row, nil
}

func (t *Table) renderExport(ctx context.Context, format formats.Format, writer formats.Writer, src records.Source) (*formats.Export, error) {
	doc := &formats.Document{
		Title:    t.reg.title,
		Subtitle: t.def.Title(),
		Header:   columns.Headers(t.def.Columns),
		Rows:     [][]string{},
		Created:  t.reg.now(),
	}
	err := src.Each(ctx, func(rec records.Record) error {
		row := make([]string, len(t.def.Columns))
		for i, col := range t.def.Columns {
			text, err := t.reg.cells.RenderCell(ctx, rec, col)
			if err != nil {
				return err
			}
			row[i] = text
		}
		doc.Rows = append(doc.Rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formats.Encode(format, writer, doc)
}
