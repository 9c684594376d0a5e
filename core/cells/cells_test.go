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

package cells

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/records"
)

type order struct {
	ID       int
	Customer string
	Placed   time.Time
}

func TestTemplateRenderer(t *testing.T) {
	ctx := context.Background()
	r, err := NewTemplateRenderer(0)
	require.NoError(t, err)

	rec := order{ID: 7, Customer: "acme", Placed: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name     string
		template string
		record   records.Record
		want     string
	}{
		{"Struct field", "{{.ID}}", rec, "7"},
		{"Functions", "{{upper .Customer}}", rec, "ACME"},
		{"Date", `{{date "02/01/2006" .Placed}}`, rec, "09/03/2024"},
		{"Map record", "{{.name}}", map[string]any{"name": "Lyon"}, "Lyon"},
		{"Missing map key", `{{default "n/a" .name}}`, map[string]any{}, "n/a"},
		{"Field lookup", `{{field . "population"}}`, &records.Row{Values: map[string]any{"population": int64(3)}}, "3"},
		{"Literal", "fixed", rec, "fixed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderCell(ctx, tt.record, columns.NewSpec("Col", "col", tt.template))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateRendererCache(t *testing.T) {
	ctx := context.Background()
	r, err := NewTemplateRenderer(2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := r.RenderCell(ctx, order{}, columns.NewSpec("ID", "id", "{{.ID}}"))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, r.Len())

	for _, text := range []string{"a", "b", "c"} {
		_, err := r.RenderCell(ctx, order{}, columns.NewSpec("X", "x", text))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, r.Len())
}

func TestTemplateRendererErrors(t *testing.T) {
	ctx := context.Background()
	r, err := NewTemplateRenderer(0)
	require.NoError(t, err)

	_, err = r.RenderCell(ctx, order{}, columns.NewSpec("Bad", "bad", "{{.ID"))
	assert.Error(t, err, "parse error")

	_, err = r.RenderCell(ctx, order{}, columns.NewSpec("Missing", "missing", "{{.Nope}}"))
	assert.Error(t, err, "unknown struct field")
}

func TestRendererFunc(t *testing.T) {
	var r Renderer = RendererFunc(func(_ context.Context, rec records.Record, col columns.Spec) (string, error) {
		return col.DisplayName, nil
	})
	got, err := r.RenderCell(context.Background(), nil, columns.NewSpec("Name", "name", ""))
	require.NoError(t, err)
	assert.Equal(t, "Name", got)
}
