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
	"errors"
	"fmt"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestImportBasicCSV(t *testing.T) {
	csvData := `name,age,score
Alice,30,1.5
Bob,25,2
Charlie,35,`

	db := openDB(t)
	options := DefaultOptions()
	options.CreateTable = true

	n, err := ImportFromReader(context.Background(), db, "people", strings.NewReader(csvData), options)
	if err != nil {
		t.Fatalf("failed to import CSV: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows, got %d", n)
	}

	var name string
	var age int64
	var score sql.NullFloat64
	row := db.QueryRow(`SELECT name, age, score FROM people WHERE name = 'Charlie'`)
	if err := row.Scan(&name, &age, &score); err != nil {
		t.Fatalf("failed to read row: %v", err)
	}
	if age != 35 {
		t.Errorf("expected age 35, got %d", age)
	}
	if score.Valid {
		t.Errorf("expected NULL score, got %v", score.Float64)
	}

	var typ string
	if err := db.QueryRow(`SELECT typeof(score) FROM people WHERE name = 'Alice'`).Scan(&typ); err != nil {
		t.Fatalf("failed to read type: %v", err)
	}
	if typ != "real" {
		t.Errorf("expected real score, got %s", typ)
	}
}

func TestImportWithoutHeader(t *testing.T) {
	csvData := `Alice,30
Bob,25`

	db := openDB(t)
	options := DefaultOptions()
	options.HasHeader = false
	options.CreateTable = true

	if _, err := ImportFromReader(context.Background(), db, "t", strings.NewReader(csvData), options); err != nil {
		t.Fatalf("failed to import CSV: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM t WHERE column_2 > 26`).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestImportIntoExistingTable(t *testing.T) {
	db := openDB(t)
	if _, err := db.Exec(`CREATE TABLE codes (code TEXT, label TEXT)`); err != nil {
		t.Fatal(err)
	}

	options := DefaultOptions()
	options.Delimiter = ';'
	options.ColumnSources["Code"] = ColumnSource{Name: "code", Type: ColumnTypeText}
	options.ColumnSources["Label"] = ColumnSource{Name: "label"}

	csvData := "Code;Label\n007;Bond\n010;Ten\n"
	if _, err := ImportFromReader(context.Background(), db, "codes", strings.NewReader(csvData), options); err != nil {
		t.Fatalf("failed to import CSV: %v", err)
	}

	var code string
	if err := db.QueryRow(`SELECT code FROM codes WHERE label = 'Bond'`).Scan(&code); err != nil {
		t.Fatal(err)
	}
	if code != "007" {
		t.Errorf("expected leading zeros to be kept, got %q", code)
	}
}

func TestImportBatches(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("a,b,c\n")
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&sb, "%d,%d,x%d\n", i, i*2, i)
	}

	db := openDB(t)
	options := DefaultOptions()
	options.CreateTable = true
	n, err := ImportFromReader(context.Background(), db, "big", strings.NewReader(sb.String()), options)
	if err != nil {
		t.Fatalf("failed to import CSV: %v", err)
	}
	if n != 1000 {
		t.Errorf("expected 1000 rows, got %d", n)
	}
}

func TestImportErrors(t *testing.T) {
	db := openDB(t)
	options := DefaultOptions()
	options.CreateTable = true

	_, err := ImportFromReader(context.Background(), db, "t", strings.NewReader("a,b\n"), options)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}

	options.SampleSize = 1
	_, err = ImportFromReader(context.Background(), db, "u", strings.NewReader("n\n1\nnot a number\n"), options)
	if err == nil {
		t.Error("expected an error for a value that does not match the sampled type")
	}
}

func TestDetectColumns(t *testing.T) {
	headers := []string{"int", "real", "text", "empty"}
	rows := [][]string{
		{"1", "1.5", "a", ""},
		{"-2", "3", "4", ""},
	}

	cols := DetectColumns(headers, rows, DefaultOptions())
	want := []ColumnType{ColumnTypeInteger, ColumnTypeReal, ColumnTypeText, ColumnTypeText}
	for i, c := range cols {
		if c.Type != want[i] {
			t.Errorf("column %s: expected %s, got %s", c.Name, want[i].SQL(), c.Type.SQL())
		}
	}
}
