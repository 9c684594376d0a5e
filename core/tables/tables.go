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
	"errors"
	"fmt"
	"regexp"

	"github.com/google/safehtml"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/formats"
	"github.com/google/tabula/core/records"
)

// DefaultPageSize is the page size of tables registered without one.
const DefaultPageSize = 10

var (
	// ErrUnknownTable is returned when a render names an unregistered table.
	ErrUnknownTable = errors.New("unknown table")

	// ErrRegistrySealed is returned by registrations after Seal.
	ErrRegistrySealed = errors.New("registry is sealed")

	// ErrDuplicateTable is returned when a table name is registered twice.
	ErrDuplicateTable = errors.New("table already registered")

	// ErrInvalidPageSize is returned for negative page sizes.
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrInvalidKey is returned for instance keys that cannot namespace
	// query parameters and element ids.
	ErrInvalidKey = errors.New("invalid instance key")
)

var keyPattern = regexp.MustCompile(`^[-_a-zA-Z0-9]+$`)

// Definition describes a registered table. It is immutable once registered.
type Definition struct {
	Name     string
	Model    string // Human name of the record kind, e.g. "Order"
	Columns  []columns.Spec
	PageSize int
}

// Title returns the document title of the table, "<Model> List".
func (d Definition) Title() string {
	return d.Model + " List"
}

func (d Definition) validate() error {
	if d.Name == "" {
		return errors.New("table name is empty")
	}
	if d.PageSize < 0 {
		return fmt.Errorf("table %q: %w: %d", d.Name, ErrInvalidPageSize, d.PageSize)
	}
	if err := columns.Validate(d.Columns); err != nil {
		return fmt.Errorf("table %q: %w", d.Name, err)
	}
	return nil
}

// Output is the result of rendering one table instance.
type Output struct {
	Table  string
	Key    string
	Format formats.Format
	HTML   safehtml.HTML   // Set for HTML output
	Export *formats.Export // Set for every other format
}

// IsHTML reports whether the output is an HTML fragment.
func (o Output) IsHTML() bool { return o.Format == formats.HTML }

// Binding pairs a registered table name with the records to show.
type Binding struct {
	Name   string
	Source records.Source
}
