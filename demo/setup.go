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
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/formats"
	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/metrics"
	"github.com/google/tabula/core/tables"
)

//go:embed data/tables.yaml
var tablesYAML []byte

// Options configures Setup. Zero values select the defaults of the
// tables package.
type Options struct {
	DatabasePath string // ":memory:" when empty
	Definitions  string // YAML definitions file; the embedded demo tables when empty
	Title        string
	PageSize     int
	WindowSide   int
	Disabled     []formats.Format
	CacheSize    int
	Logger       logging.Logger
	Metrics      *metrics.Metrics
}

// OptionsFromConfig maps a loaded configuration to Options.
func OptionsFromConfig(cfg *config.Configuration, log logging.Logger, m *metrics.Metrics) (Options, error) {
	disabled, err := cfg.DisabledFormats()
	if err != nil {
		return Options{}, err
	}
	return Options{
		DatabasePath: cfg.Database.Path,
		Definitions:  cfg.Tables.Definitions,
		Title:        cfg.Export.Title,
		PageSize:     cfg.Tables.PageSize,
		WindowSide:   cfg.Tables.WindowSide,
		Disabled:     disabled,
		CacheSize:    cfg.Cache.Templates,
		Logger:       log,
		Metrics:      m,
	}, nil
}

// App is a ready demo: a seeded database, a sealed registry and the
// provider serving its records.
type App struct {
	DB       *sql.DB
	Registry *tables.Registry
	Provider *Provider
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}

// Setup opens the demo database and registers the demo tables.
func Setup(ctx context.Context, opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = logging.NewNoOpLogger()
	}
	if opts.DatabasePath == "" {
		opts.DatabasePath = ":memory:"
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = cells.DefaultCacheSize
	}

	defs, err := loadDefinitions(opts.Definitions)
	if err != nil {
		return nil, err
	}

	cellRenderer, err := cells.NewTemplateRenderer(opts.CacheSize)
	if err != nil {
		return nil, err
	}
	regOpts := []tables.Option{
		tables.WithDispatcher(formats.NewDispatcher(opts.Disabled...)),
		tables.WithCellRenderer(cellRenderer),
		tables.WithLogger(log),
		tables.WithMetrics(opts.Metrics),
		tables.WithDefaultPageSize(opts.PageSize),
	}
	if opts.Title != "" {
		regOpts = append(regOpts, tables.WithTitle(opts.Title))
	}
	if opts.WindowSide > 0 {
		regOpts = append(regOpts, tables.WithWindowSide(opts.WindowSide))
	}
	reg, err := tables.NewRegistry(regOpts...)
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		if err := reg.RegisterRaw(def.Name, def.Model, def.Columns, def.PageSize); err != nil {
			return nil, err
		}
	}
	reg.Seal()

	db, err := OpenDatabase(ctx, opts.DatabasePath, log)
	if err != nil {
		return nil, err
	}
	log.Infof("demo ready with %d tables", len(defs))
	return &App{DB: db, Registry: reg, Provider: NewProvider(db)}, nil
}

func loadDefinitions(path string) ([]config.TableDefinition, error) {
	if path == "" {
		return config.ParseTableDefinitions(bytes.NewReader(tablesYAML))
	}
	defs, err := config.LoadTableDefinitions(path)
	if err != nil {
		return nil, fmt.Errorf("loading table definitions: %w", err)
	}
	return defs, nil
}
