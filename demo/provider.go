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

package demo

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"net/url"
	"slices"

	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/records"
	"github.com/google/tabula/core/tables"
)

var (
	orderColumns  = []string{"id", "customer", "region", "category", "status", "amount", "ordered"}
	regionColumns = []string{"region", "capital", "population", "timezone", "gdp"}
)

// Provider serves the records of the demo tables. It implements
// server.SourceProvider.
type Provider struct {
	db       *sql.DB
	capitals []Capital
}

// NewProvider creates a provider reading orders and regions from db.
func NewProvider(db *sql.DB) *Provider {
	return &Provider{db: db, capitals: Capitals()}
}

// Source returns the records of table restricted by the filter:<column>
// parameters of params. A filter on a column the table does not have is
// an error wrapping records.ErrUnknownField.
func (p *Provider) Source(ctx context.Context, table string, params url.Values) (records.Source, error) {
	filters := query.Filters(params)
	switch table {
	case "orders":
		return filterSQL(records.NewSQLSource(p.db, "orders", orderColumns), filters)
	case "regions":
		src := records.NewSQLSource(p.db, "regions", regionColumns, records.WithLocator(regionOrdersURL))
		return filterSQL(src, filters)
	case "capitals":
		return filterCapitals(p.capitals, filters)
	}
	return nil, fmt.Errorf("%w: no records for %q", tables.ErrUnknownTable, table)
}

// regionOrdersURL links a region to its orders.
func regionOrdersURL(row *records.Row) string {
	region, ok := row.Values["region"].(string)
	if !ok {
		return ""
	}
	return "/tables/orders?" + url.Values{query.FilterPrefix + "region": {region}}.Encode()
}

func filterSQL(src *records.SQLSource, filters map[string]string) (records.Source, error) {
	for _, column := range slices.Sorted(maps.Keys(filters)) {
		if !src.HasColumn(column) {
			return nil, fmt.Errorf("filter on %q: %w", column, records.ErrUnknownField)
		}
		src = src.Where(column, filters[column])
	}
	return src, nil
}

func filterCapitals(all []Capital, filters map[string]string) (records.Source, error) {
	for column := range filters {
		if _, ok := records.FieldValue(Capital{}, column); !ok {
			return nil, fmt.Errorf("filter on %q: %w", column, records.ErrUnknownField)
		}
	}
	out := make([]Capital, 0, len(all))
	for _, c := range all {
		keep := true
		for column, want := range filters {
			if v, _ := records.FieldValue(c, column); fmt.Sprint(v) != want {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return records.NewSliceSource(out), nil
}
