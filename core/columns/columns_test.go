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

package columns

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecs(t *testing.T) {
	t.Run("Keeps display order", func(t *testing.T) {
		specs, err := ParseSpecs([][]string{
			{"Name", "name", "{{.Name}}"},
			{"Age", "age", "{{.Age}}"},
		})
		require.NoError(t, err)
		require.Len(t, specs, 2)
		assert.Equal(t, NewSpec("Name", "name", "{{.Name}}"), specs[0])
		assert.Equal(t, []string{"Name", "Age"}, Headers(specs))
	})

	t.Run("Rejects wrong field count", func(t *testing.T) {
		for _, fields := range [][]string{
			{"Name", "name"},
			{"Name", "name", "{{.Name}}", "extra"},
			{},
		} {
			_, err := ParseSpecs([][]string{{"Ok", "ok", "{{.Ok}}"}, fields})
			assert.True(t, errors.Is(err, ErrMalformedColumn), "fields %v: got %v", fields, err)
		}
	})

	t.Run("Rejects empty column list", func(t *testing.T) {
		_, err := ParseSpecs(nil)
		assert.ErrorIs(t, err, ErrNoColumns)
	})

	t.Run("Rejects empty sort key", func(t *testing.T) {
		_, err := ParseSpecs([][]string{{"Name", "", "{{.Name}}"}})
		assert.ErrorIs(t, err, ErrMalformedColumn)
	})
}
