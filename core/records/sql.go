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
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
)

// Querier is the subset of *sql.DB used by SQLSource.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Row is one record read by SQLSource.
type Row struct {
	Values map[string]any
	URL    string
}

// CanonicalURL implements Locator.
func (r *Row) CanonicalURL() string { return r.URL }

// Field implements Fielder.
func (r *Row) Field(name string) (any, bool) {
	v, ok := r.Values[name]
	return v, ok
}

type condition struct {
	column string
	value  any
}

// SQLSource is a Source over one SQL table or view. Only the columns it was
// created with can be selected, filtered or ordered by.
type SQLSource struct {
	db      Querier
	table   string
	columns []string
	allowed map[string]bool
	flavor  sqlbuilder.Flavor
	locator func(*Row) string

	where   []condition
	orderBy string
	desc    bool
	err     error
}

// SQLOption configures an SQLSource.
type SQLOption func(*SQLSource)

// WithFlavor sets the SQL dialect. The default is SQLite.
func WithFlavor(flavor sqlbuilder.Flavor) SQLOption {
	return func(s *SQLSource) { s.flavor = flavor }
}

// WithLocator sets the function giving rows their canonical location.
func WithLocator(fn func(*Row) string) SQLOption {
	return func(s *SQLSource) { s.locator = fn }
}

// NewSQLSource creates a source reading columns of table.
func NewSQLSource(db Querier, table string, columns []string, opts ...SQLOption) *SQLSource {
	s := &SQLSource{
		db:      db,
		table:   table,
		columns: append([]string(nil), columns...),
		allowed: make(map[string]bool, len(columns)),
		flavor:  sqlbuilder.SQLite,
	}
	for _, c := range columns {
		s.allowed[c] = true
	}
	if len(columns) == 0 {
		s.err = fmt.Errorf("table %q: %w", table, ErrNoColumns)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasColumn reports whether column can be used with this source.
func (s *SQLSource) HasColumn(column string) bool {
	return s.allowed[column]
}

// Where returns a source restricted to rows whose column equals value.
func (s *SQLSource) Where(column string, value any) *SQLSource {
	next := s.clone()
	if !s.allowed[column] {
		next.setErr(fmt.Errorf("filter on %q: %w", column, ErrUnknownField))
		return next
	}
	next.where = append(next.where, condition{column: column, value: value})
	return next
}

// OrderBy implements Source.
func (s *SQLSource) OrderBy(field string, desc bool) Source {
	next := s.clone()
	if !s.allowed[field] {
		next.setErr(fmt.Errorf("order by %q: %w", field, ErrUnknownField))
		return next
	}
	next.orderBy = field
	next.desc = desc
	return next
}

// Count implements Source.
func (s *SQLSource) Count(ctx context.Context) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	sb := s.flavor.NewSelectBuilder()
	sb.Select("COUNT(*)").From(s.table)
	s.applyWhere(sb)

	query, args := sb.Build()
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Slice implements Source.
func (s *SQLSource) Slice(ctx context.Context, offset, limit int) ([]Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit <= 0 {
		return []Record{}, nil
	}
	sb := s.selectBuilder()
	sb.Limit(limit).Offset(max(offset, 0))

	out := []Record{}
	err := s.query(ctx, sb, func(r Record) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Each implements Source.
func (s *SQLSource) Each(ctx context.Context, fn func(Record) error) error {
	if s.err != nil {
		return s.err
	}
	return s.query(ctx, s.selectBuilder(), fn)
}

func (s *SQLSource) selectBuilder() *sqlbuilder.SelectBuilder {
	quoted := make([]string, len(s.columns))
	for i, c := range s.columns {
		quoted[i] = s.flavor.Quote(c)
	}
	sb := s.flavor.NewSelectBuilder()
	sb.Select(quoted...).From(s.table)
	s.applyWhere(sb)
	if s.orderBy != "" {
		sb.OrderBy(s.flavor.Quote(s.orderBy))
		if s.desc {
			sb.Desc()
		} else {
			sb.Asc()
		}
	}
	return sb
}

func (s *SQLSource) applyWhere(sb *sqlbuilder.SelectBuilder) {
	for _, c := range s.where {
		sb.Where(sb.Equal(s.flavor.Quote(c.column), c.value))
	}
}

func (s *SQLSource) query(ctx context.Context, sb *sqlbuilder.SelectBuilder, fn func(Record) error) error {
	query, args := sb.Build()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		values := make([]any, len(s.columns))
		ptrs := make([]any, len(s.columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}

		row := &Row{Values: make(map[string]any, len(s.columns))}
		for i, c := range s.columns {
			if b, ok := values[i].([]byte); ok {
				row.Values[c] = string(b)
			} else {
				row.Values[c] = values[i]
			}
		}
		if s.locator != nil {
			row.URL = s.locator(row)
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *SQLSource) clone() *SQLSource {
	next := *s
	next.where = append([]condition(nil), s.where...)
	return &next
}

func (s *SQLSource) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}
