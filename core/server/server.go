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

package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/safehtml"

	"github.com/google/tabula/core/formats"
	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/records"
	"github.com/google/tabula/core/rendering"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/views"
)

// SourceProvider supplies the records of a table for one request. params
// are the request's query parameters, from which providers read filters.
type SourceProvider interface {
	Source(ctx context.Context, table string, params url.Values) (records.Source, error)
}

// SourceProviderFunc adapts a function to SourceProvider.
type SourceProviderFunc func(ctx context.Context, table string, params url.Values) (records.Source, error)

// Source implements SourceProvider.
func (f SourceProviderFunc) Source(ctx context.Context, table string, params url.Values) (records.Source, error) {
	return f(ctx, table, params)
}

// Server represents the application server with all its dependencies
type Server struct {
	registry       *tables.Registry
	renderer       *rendering.TableRenderer
	provider       SourceProvider
	logger         logging.Logger
	title          string
	subtitle       string
	metricsHandler http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithTitle sets the landing page title and subtitle.
func WithTitle(title, subtitle string) Option {
	return func(s *Server) {
		s.title = title
		s.subtitle = subtitle
	}
}

// WithMetricsHandler serves h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metricsHandler = h }
}

// NewServer creates a new server rendering the tables of registry
func NewServer(registry *tables.Registry, provider SourceProvider, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		renderer: registry.Renderer(),
		provider: provider,
		logger:   logging.NewNoOpLogger(),
		title:    "Tabula",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the HTTP handler of the server.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleLanding)
	r.Get("/tables/{name}", func(w http.ResponseWriter, req *http.Request) {
		s.serveTables(w, req, []string{chi.URLParam(req, "name")})
	})
	r.Get("/view", func(w http.ResponseWriter, req *http.Request) {
		s.serveTables(w, req, splitNames(req.URL.Query().Get("tables")))
	})
	if s.metricsHandler != nil {
		r.Handle("/metrics", s.metricsHandler)
	}
	return r
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// TableHandlerResult represents the result of handling a table request
type TableHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

func (s *Server) serveTables(w http.ResponseWriter, req *http.Request, names []string) {
	var buf bytes.Buffer
	setHeader := func(key, value string) { w.Header().Set(key, value) }
	if res := s.HandleTablesRequest(req.Context(), &buf, req.URL, names, setHeader); res != nil {
		s.logger.WithFields(logging.Fields{
			"table":  strings.Join(names, ","),
			"url":    req.URL.String(),
			"status": res.StatusCode,
		}).Errorf("table request failed: %v", res.Error)
		w.Header().Del("Content-Disposition")
		http.Error(w, res.Message, res.StatusCode)
		return
	}
	_, _ = buf.WriteTo(w)
}

// HandleTablesRequest renders the named tables for requestURL and writes
// the response body to w. When one of the tables is requested in an export
// format that export is the whole response. Returns an error result if the
// request cannot be served, nil on success.
func (s *Server) HandleTablesRequest(ctx context.Context, w io.Writer, requestURL *url.URL, names []string, setHeader func(key, value string)) *TableHandlerResult {
	if len(names) == 0 {
		return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: "At least one table is required"}
	}

	bindings := make([]tables.Binding, 0, len(names))
	for _, name := range names {
		if _, ok := s.registry.Get(name); !ok {
			err := fmt.Errorf("%w: %q", tables.ErrUnknownTable, name)
			return errorResult(err)
		}
		src, err := s.provider.Source(ctx, name, requestURL.Query())
		if err != nil {
			return errorResult(err)
		}
		bindings = append(bindings, tables.Binding{Name: name, Source: src})
	}

	export, outputs, err := s.registry.RenderMany(ctx, requestURL, bindings)
	if err != nil {
		return errorResult(err)
	}

	if export != nil {
		setHeader("Content-Type", export.Export.ContentType)
		setHeader("Content-Disposition", attachment(export.Export.Filename))
		if _, err := w.Write(export.Export.Body); err != nil {
			return &TableHandlerResult{Error: err, StatusCode: http.StatusInternalServerError, Message: "Write failed"}
		}
		return nil
	}

	vm := views.PageViewModel{
		Title:   s.title,
		HomeURL: safehtml.URLSanitized("/"),
		Tables:  make([]safehtml.HTML, len(outputs)),
	}
	if len(names) == 1 {
		t, _ := s.registry.Get(names[0])
		vm.Title = t.Definition().Title()
		vm.Subtitle = s.title
	}
	for i, out := range outputs {
		vm.Tables[i] = out.HTML
	}

	setHeader("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderPage(w, vm); err != nil {
		return &TableHandlerResult{Error: err, StatusCode: http.StatusInternalServerError, Message: "Template rendering error"}
	}
	return nil
}

// attachment formats a Content-Disposition value, quoting filename when needed.
func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

// errorResult maps render errors to HTTP statuses.
func errorResult(err error) *TableHandlerResult {
	switch {
	case errors.Is(err, tables.ErrUnknownTable):
		return &TableHandlerResult{Error: err, StatusCode: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, formats.ErrUnimplementedFormat), errors.Is(err, records.ErrUnknownField):
		return &TableHandlerResult{Error: err, StatusCode: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, formats.ErrFormatUnavailable):
		return &TableHandlerResult{Error: err, StatusCode: http.StatusNotImplemented, Message: err.Error()}
	}
	return &TableHandlerResult{Error: err, StatusCode: http.StatusInternalServerError, Message: "Internal server error"}
}

func (s *Server) handleLanding(w http.ResponseWriter, req *http.Request) {
	var buf bytes.Buffer
	if err := s.HandleLandingRequest(&buf, func(k, v string) { w.Header().Set(k, v) }); err != nil {
		s.logger.Errorf("landing page rendering error: %v", err)
		http.Error(w, "Template rendering error", http.StatusInternalServerError)
		return
	}
	_, _ = buf.WriteTo(w)
}

// HandleLandingRequest renders the list of registered tables
func (s *Server) HandleLandingRequest(w io.Writer, setHeader func(key, value string)) error {
	setHeader("Content-Type", "text/html; charset=utf-8")

	vm := views.LandingViewModel{
		Title:    s.title,
		Subtitle: s.subtitle,
	}
	for _, def := range s.registry.Tables() {
		headers := make([]string, len(def.Columns))
		for i, c := range def.Columns {
			headers[i] = c.DisplayName
		}
		vm.Tables = append(vm.Tables, views.TableInfo{
			Name:        def.Name,
			Model:       def.Model,
			URL:         safehtml.URLSanitized("/tables/" + url.PathEscape(def.Name)),
			ColumnCount: len(def.Columns),
			PageSize:    def.PageSize,
			Columns:     strings.Join(headers, ", "),
		})
	}
	return s.renderer.RenderLanding(w, vm)
}
