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

package csvimport

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/huandu/go-sqlbuilder"
)

// ColumnType specifies the SQL type of an imported column
type ColumnType int

const (
	// ColumnTypeAuto auto-detects type from data (default)
	ColumnTypeAuto ColumnType = iota
	// ColumnTypeText forces TEXT
	ColumnTypeText
	// ColumnTypeInteger forces INTEGER
	ColumnTypeInteger
	// ColumnTypeReal forces REAL
	ColumnTypeReal
)

// SQL returns the SQL type name.
func (t ColumnType) SQL() string {
	switch t {
	case ColumnTypeInteger:
		return "INTEGER"
	case ColumnTypeReal:
		return "REAL"
	}
	return "TEXT"
}

// ColumnSource defines source metadata for how a column is imported
type ColumnSource struct {
	// Name is the SQL column name (defaults to header name if not specified)
	Name string
	// Type specifies the data type for this column (default: auto-detect)
	Type ColumnType
}

// Column is a detected target column.
type Column struct {
	Name string
	Type ColumnType
}

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// HasHeader indicates whether the first row contains column headers
	HasHeader bool
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// ColumnSources provides configuration for specific columns by header name
	ColumnSources map[string]ColumnSource
	// SampleSize is the number of rows to sample for type detection (default: 100)
	SampleSize int
	// CreateTable creates the target table when it does not exist
	CreateTable bool
	// Flavor is the SQL dialect (default: SQLite)
	Flavor sqlbuilder.Flavor
}

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		HasHeader:     true,
		Delimiter:     ',',
		ColumnSources: make(map[string]ColumnSource),
		SampleSize:    100,
		Flavor:        sqlbuilder.SQLite,
	}
}

// ErrEmpty is returned for CSV input without data rows.
var ErrEmpty = errors.New("CSV has no data rows")

// Execer is the subset of *sql.DB and *sql.Tx used by the importer.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// maxParams bounds the bind parameters of one INSERT statement.
const maxParams = 900

// ImportFromFile imports a CSV file into table and returns the number of rows inserted
func ImportFromFile(ctx context.Context, db Execer, table, path string, options ImportOptions) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ImportFromReader(ctx, db, table, file, options)
}

// ImportFromReader imports CSV data from an io.Reader into table
func ImportFromReader(ctx context.Context, db Execer, table string, reader io.Reader, options ImportOptions) (int, error) {
	csvReader := csv.NewReader(reader)
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return 0, ErrEmpty
	}

	var headers []string
	var dataRows [][]string
	if options.HasHeader {
		headers = records[0]
		dataRows = records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
		dataRows = records
	}
	if len(dataRows) == 0 {
		return 0, ErrEmpty
	}

	flavor := options.Flavor
	if flavor == 0 {
		flavor = sqlbuilder.SQLite
	}
	cols := DetectColumns(headers, dataRows, options)

	if options.CreateTable {
		ctb := flavor.NewCreateTableBuilder()
		ctb.CreateTable(table).IfNotExists()
		for _, c := range cols {
			ctb.Define(flavor.Quote(c.Name), c.Type.SQL())
		}
		query, args := ctb.Build()
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("creating table %s: %w", table, err)
		}
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = flavor.Quote(c.Name)
	}
	batch := max(1, maxParams/len(cols))

	inserted := 0
	for start := 0; start < len(dataRows); start += batch {
		end := min(start+batch, len(dataRows))
		ib := flavor.NewInsertBuilder()
		ib.InsertInto(table).Cols(names...)
		for n, row := range dataRows[start:end] {
			values, err := convertRow(row, cols)
			if err != nil {
				return inserted, fmt.Errorf("row %d: %w", start+n+1, err)
			}
			ib.Values(values...)
		}
		query, args := ib.Build()
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return inserted, fmt.Errorf("inserting into %s: %w", table, err)
		}
		inserted += end - start
	}
	return inserted, nil
}

func convertRow(row []string, cols []Column) ([]any, error) {
	values := make([]any, len(cols))
	for i, c := range cols {
		value := ""
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}
		if value == "" && c.Type != ColumnTypeText {
			values[i] = nil
			continue
		}
		switch c.Type {
		case ColumnTypeInteger:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", c.Name, err)
			}
			values[i] = n
		case ColumnTypeReal:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", c.Name, err)
			}
			values[i] = f
		default:
			values[i] = value
		}
	}
	return values, nil
}

// DetectColumns samples data to determine the SQL type of every column
func DetectColumns(headers []string, dataRows [][]string, options ImportOptions) []Column {
	sampleSize := options.SampleSize
	if sampleSize <= 0 {
		sampleSize = 100
	}
	rowsToSample := min(sampleSize, len(dataRows))

	cols := make([]Column, len(headers))
	for i, header := range headers {
		config := options.ColumnSources[header]
		cols[i] = Column{Name: strings.TrimSpace(header), Type: config.Type}
		if config.Name != "" {
			cols[i].Name = config.Name
		}
		if config.Type != ColumnTypeAuto {
			continue
		}

		isInteger, isReal, hasNonEmpty := true, true, false
		for j := 0; j < rowsToSample; j++ {
			if i >= len(dataRows[j]) {
				continue
			}
			value := strings.TrimSpace(dataRows[j][i])
			if value == "" {
				continue
			}
			hasNonEmpty = true
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				isInteger = false
			}
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				isReal = false
				break
			}
		}

		switch {
		case !hasNonEmpty:
			cols[i].Type = ColumnTypeText
		case isInteger:
			cols[i].Type = ColumnTypeInteger
		case isReal:
			cols[i].Type = ColumnTypeReal
		default:
			cols[i].Type = ColumnTypeText
		}
	}
	return cols
}
