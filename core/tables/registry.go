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
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/formats"
	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/metrics"
	"github.com/google/tabula/core/paging"
	"github.com/google/tabula/core/rendering"
)

// Registry holds the table definitions of an application and the
// collaborators shared by their renders. Tables are registered at startup;
// once sealed the registry is read-only and safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
	sealed bool

	dispatcher      *formats.Dispatcher
	cells           cells.Renderer
	html            *rendering.TableRenderer
	logger          logging.Logger
	metrics         *metrics.Metrics
	title           string
	windowSide      int
	defaultPageSize int
	now             func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithDispatcher sets the format dispatcher. The default offers every
// compiled-in format.
func WithDispatcher(d *formats.Dispatcher) Option {
	return func(r *Registry) { r.dispatcher = d }
}

// WithCellRenderer sets the cell renderer. The default evaluates cell
// templates with text/template.
func WithCellRenderer(c cells.Renderer) Option {
	return func(r *Registry) { r.cells = c }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithMetrics sets the render metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithTitle sets the site title printed on exported documents.
func WithTitle(title string) Option {
	return func(r *Registry) { r.title = title }
}

// WithWindowSide sets how many page links are shown on each side of the
// current page.
func WithWindowSide(side int) Option {
	return func(r *Registry) { r.windowSide = side }
}

// WithDefaultPageSize sets the page size of tables registered without one.
func WithDefaultPageSize(size int) Option {
	return func(r *Registry) { r.defaultPageSize = size }
}

// WithClock sets the clock used for document creation dates.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		tables:          make(map[string]*Table),
		title:           "Tabula",
		windowSide:      paging.DefaultSide,
		defaultPageSize: DefaultPageSize,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.dispatcher == nil {
		r.dispatcher = formats.NewDispatcher()
	}
	if r.cells == nil {
		c, err := cells.NewTemplateRenderer(cells.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		r.cells = c
	}
	if r.logger == nil {
		r.logger = logging.NewNoOpLogger()
	}
	if r.defaultPageSize <= 0 {
		r.defaultPageSize = DefaultPageSize
	}

	html, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("parsing table templates: %w", err)
	}
	r.html = html
	return r, nil
}

// Register adds a table. A zero pageSize uses the registry default.
func (r *Registry) Register(name, model string, cols []columns.Spec, pageSize int) error {
	def := Definition{
		Name:     name,
		Model:    model,
		Columns:  append([]columns.Spec(nil), cols...),
		PageSize: pageSize,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("registering %q: %w", name, ErrRegistrySealed)
	}
	if err := def.validate(); err != nil {
		return err
	}
	if def.PageSize == 0 {
		def.PageSize = r.defaultPageSize
	}
	if _, ok := r.tables[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTable, name)
	}
	r.tables[name] = &Table{def: def, reg: r}
	r.logger.WithField("table", name).Debugf("registered %d columns, %d per page", len(def.Columns), def.PageSize)
	return nil
}

// RegisterRaw adds a table whose columns are (display name, sort key, cell
// template) triples.
func (r *Registry) RegisterRaw(name, model string, fields [][]string, pageSize int) error {
	r.mu.RLock()
	sealed := r.sealed
	r.mu.RUnlock()
	if sealed {
		return fmt.Errorf("registering %q: %w", name, ErrRegistrySealed)
	}
	cols, err := columns.ParseSpecs(fields)
	if err != nil {
		return fmt.Errorf("table %q: %w", name, err)
	}
	return r.Register(name, model, cols, pageSize)
}

// Seal forbids further registrations.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Get returns the table registered under name.
func (r *Registry) Get(name string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[name]
	return t, ok
}

// Tables returns the registered table definitions sorted by name.
func (r *Registry) Tables() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.tables))
	for _, t := range r.tables {
		defs = append(defs, t.Definition())
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Formats returns the export formats offered by the registry's dispatcher.
func (r *Registry) Formats() []formats.Format {
	return r.dispatcher.Available()
}

// Renderer returns the HTML renderer, shared with page handlers.
func (r *Registry) Renderer() *rendering.TableRenderer {
	return r.html
}

// RenderMany renders each binding in order. Instance keys are assigned by
// position, starting at "1". The first non-HTML output, if any, is also
// returned on its own so a handler can send it as the response.
func (r *Registry) RenderMany(ctx context.Context, u *url.URL, bindings []Binding) (*Output, []Output, error) {
	outputs := make([]Output, 0, len(bindings))
	var export *Output
	for i, b := range bindings {
		t, ok := r.Get(b.Name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTable, b.Name)
		}
		out, err := t.Render(ctx, u, strconv.Itoa(i+1), b.Source)
		if err != nil {
			return nil, nil, err
		}
		outputs = append(outputs, out)
		if export == nil && !out.IsHTML() {
			first := out
			export = &first
		}
	}
	return export, outputs, nil
}

// RenderManyAsMap is RenderMany with the outputs keyed by table name. When a
// name appears twice the later output wins.
func (r *Registry) RenderManyAsMap(ctx context.Context, u *url.URL, bindings []Binding) (*Output, map[string]Output, error) {
	export, outputs, err := r.RenderMany(ctx, u, bindings)
	if err != nil {
		return nil, nil, err
	}
	byName := make(map[string]Output, len(outputs))
	for _, out := range outputs {
		byName[out.Table] = out
	}
	return export, byName, nil
}
