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
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/google/tabula/core/csvimport"
	"github.com/google/tabula/core/logging"
)

//go:embed migrations/*.sql
var migrations embed.FS

//go:embed data/orders.csv
var ordersCSV string

//go:embed data/regions.csv
var regionsCSV string

// seeds are loaded in order; orders reference regions.
var seeds = []struct {
	table string
	csv   string
}{
	{"regions", regionsCSV},
	{"orders", ordersCSV},
}

// OpenDatabase opens the SQLite database at path, applies the embedded
// migrations and loads the seed rows into empty tables. ":memory:" opens a
// private in-memory database.
func OpenDatabase(ctx context.Context, path string, log logging.Logger) (*sql.DB, error) {
	dsn := path + "?_foreign_keys=on"
	if path == ":memory:" {
		dsn = "file::memory:?_foreign_keys=on"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrateUp(db, log); err != nil {
		db.Close()
		return nil, err
	}
	if err := seed(ctx, db, log); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrateUp(db *sql.DB, log logging.Logger) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	// Closing m would close db.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	log.Debugf("applying database migrations")
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func seed(ctx context.Context, db *sql.DB, log logging.Logger) error {
	for _, s := range seeds {
		var n int
		// Table names come from the seeds list above.
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.table).Scan(&n); err != nil {
			return fmt.Errorf("counting %s: %w", s.table, err)
		}
		if n > 0 {
			continue
		}
		inserted, err := csvimport.ImportFromReader(ctx, db, s.table, strings.NewReader(s.csv), csvimport.DefaultOptions())
		if err != nil {
			return fmt.Errorf("seeding %s: %w", s.table, err)
		}
		log.WithField("table", s.table).Infof("seeded %d rows", inserted)
	}
	return nil
}
