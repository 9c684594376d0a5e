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

// Package cells renders the value of one column for one record.
package cells

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/records"
)

// DefaultCacheSize is the number of compiled cell templates kept by default.
const DefaultCacheSize = 256

// Renderer produces the text of a column for a record.
type Renderer interface {
	RenderCell(ctx context.Context, rec records.Record, col columns.Spec) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, rec records.Record, col columns.Spec) (string, error)

// RenderCell implements Renderer.
func (f RendererFunc) RenderCell(ctx context.Context, rec records.Record, col columns.Spec) (string, error) {
	return f(ctx, rec, col)
}

// TemplateRenderer evaluates cell templates with text/template, the record
// being dot. Compiled templates are cached by source text; the cache is
// safe for concurrent use.
type TemplateRenderer struct {
	cache *lru.Cache[string, *template.Template]
	funcs template.FuncMap
}

// NewTemplateRenderer creates a renderer caching up to size compiled
// templates. A non-positive size uses DefaultCacheSize.
func NewTemplateRenderer(size int) (*TemplateRenderer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *template.Template](size)
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{cache: cache, funcs: Funcs()}, nil
}

// Funcs returns the functions available to cell templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"field": func(rec any, name string) any {
			v, _ := records.FieldValue(rec, name)
			return v
		},
		"date": func(layout string, v any) string {
			switch t := v.(type) {
			case time.Time:
				return t.Format(layout)
			case *time.Time:
				if t == nil {
					return ""
				}
				return t.Format(layout)
			}
			return fmt.Sprint(v)
		},
		"default": func(def string, v any) any {
			if v == nil || v == "" {
				return def
			}
			return v
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}
}

// RenderCell implements Renderer. Parse and execution errors are returned
// as produced by text/template.
func (r *TemplateRenderer) RenderCell(_ context.Context, rec records.Record, col columns.Spec) (string, error) {
	tmpl, err := r.compile(col.CellTemplate)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, rec); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *TemplateRenderer) compile(text string) (*template.Template, error) {
	if tmpl, ok := r.cache.Get(text); ok {
		return tmpl, nil
	}
	tmpl, err := template.New("cell").Funcs(r.funcs).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, err
	}
	r.cache.Add(text, tmpl)
	return tmpl, nil
}

// Len returns the number of cached templates.
func (r *TemplateRenderer) Len() int { return r.cache.Len() }
