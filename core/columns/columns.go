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
	"fmt"
)

var (
	// ErrMalformedColumn is returned when a column definition does not have
	// exactly a display name, a sort key and a cell template.
	ErrMalformedColumn = errors.New("malformed column spec")
	// ErrNoColumns is returned when a table is defined without columns.
	ErrNoColumns = errors.New("table has no columns")
)

// fieldCount is the number of fields in a raw column definition.
const fieldCount = 3

// Spec describes one displayed column of a table.
type Spec struct {
	DisplayName  string // Header text
	SortKey      string // Record field used for ordering; also names the sort parameter
	CellTemplate string // Per-record expression, opaque to this package
}

// NewSpec creates a new Spec
func NewSpec(displayName, sortKey, cellTemplate string) Spec {
	return Spec{
		DisplayName:  displayName,
		SortKey:      sortKey,
		CellTemplate: cellTemplate,
	}
}

// ParseSpecs builds specs from raw (display name, sort key, cell template)
// triples, as found in configuration files. The order of fields is the
// display order of the columns.
func ParseSpecs(fields [][]string) ([]Spec, error) {
	if len(fields) == 0 {
		return nil, ErrNoColumns
	}
	specs := make([]Spec, 0, len(fields))
	for i, f := range fields {
		if len(f) != fieldCount {
			return nil, fmt.Errorf("%w: column %d has %d fields, want %d", ErrMalformedColumn, i+1, len(f), fieldCount)
		}
		specs = append(specs, NewSpec(f[0], f[1], f[2]))
	}
	if err := Validate(specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// Validate checks that specs is a usable column list.
func Validate(specs []Spec) error {
	if len(specs) == 0 {
		return ErrNoColumns
	}
	for i, s := range specs {
		// the sort key ends up in a query parameter name
		if s.SortKey == "" {
			return fmt.Errorf("%w: column %d (%q) has an empty sort key", ErrMalformedColumn, i+1, s.DisplayName)
		}
	}
	return nil
}

// Headers returns the display names of specs in display order.
func Headers(specs []Spec) []string {
	headers := make([]string, len(specs))
	for i, s := range specs {
		headers[i] = s.DisplayName
	}
	return headers
}
