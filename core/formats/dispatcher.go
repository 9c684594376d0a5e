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

package formats

import "slices"

// Dispatcher resolves format names to writers. It is built once at startup
// and never modified afterwards, so it can be shared between requests.
type Dispatcher struct {
	writers   map[Format]Writer
	available []Format
}

// NewDispatcher creates a dispatcher offering every compiled-in export
// format except those in disabled. CSV cannot be disabled.
func NewDispatcher(disabled ...Format) *Dispatcher {
	d := &Dispatcher{writers: make(map[Format]Writer)}
	candidates := map[Format]Writer{
		CSV:  csvWriter{},
		PDF:  pdfWriter(),
		TXT:  textWriter{},
		XLSX: xlsxWriter{},
	}
	for _, f := range Known {
		w, ok := candidates[f]
		if !ok || w == nil {
			continue
		}
		if f != CSV && slices.Contains(disabled, f) {
			continue
		}
		d.writers[f] = w
		d.available = append(d.available, f)
	}
	return d
}

// Available returns the export formats this dispatcher offers.
func (d *Dispatcher) Available() []Format {
	return slices.Clone(d.available)
}

// Resolve returns the format named name and its writer. HTML resolves with
// a nil writer since it is rendered by the table itself.
func (d *Dispatcher) Resolve(name string) (Format, Writer, error) {
	f, ok := ParseFormat(name)
	if !ok {
		return "", nil, &UnimplementedFormatError{Format: name}
	}
	if f == HTML {
		return HTML, nil, nil
	}
	w, ok := d.writers[f]
	if !ok {
		return "", nil, &UnavailableFormatError{Format: f}
	}
	return f, w, nil
}
