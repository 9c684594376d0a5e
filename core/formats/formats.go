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

// Package formats maps output format names to document writers.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"
)

// Format is an output format of a table.
type Format string

const (
	HTML Format = "html"
	CSV  Format = "csv"
	PDF  Format = "pdf"
	TXT  Format = "txt"
	XLSX Format = "xlsx"
)

// Known lists every format this package knows about, in display order.
var Known = []Format{HTML, CSV, PDF, TXT, XLSX}

// ParseFormat returns the known format named s.
func ParseFormat(s string) (Format, bool) {
	for _, f := range Known {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

var (
	// ErrUnimplementedFormat matches errors for format names nothing implements.
	ErrUnimplementedFormat = errors.New("unimplemented format")

	// ErrFormatUnavailable matches errors for known formats that are not
	// compiled in or are disabled.
	ErrFormatUnavailable = errors.New("format unavailable")
)

// UnimplementedFormatError is returned when a request names a format that
// does not exist.
type UnimplementedFormatError struct {
	Format string
}

func (e *UnimplementedFormatError) Error() string {
	return fmt.Sprintf("format %q is not implemented", e.Format)
}

// Is makes errors.Is(err, ErrUnimplementedFormat) succeed.
func (e *UnimplementedFormatError) Is(target error) bool {
	return target == ErrUnimplementedFormat
}

// UnavailableFormatError is returned when a request names a known format
// that this build or configuration does not offer.
type UnavailableFormatError struct {
	Format Format
}

func (e *UnavailableFormatError) Error() string {
	return fmt.Sprintf("format %q is not available", e.Format)
}

// Is makes errors.Is(err, ErrFormatUnavailable) succeed.
func (e *UnavailableFormatError) Is(target error) bool {
	return target == ErrFormatUnavailable
}

// Document is a fully materialised table ready for export.
type Document struct {
	Title    string // Site or report title
	Subtitle string // "<Model> List"
	Header   []string
	Rows     [][]string
	Created  time.Time
}

// Writer serialises a Document in one format.
type Writer interface {
	ContentType() string
	Extension() string
	Write(w io.Writer, doc *Document) error
}

// Export is the result of encoding a document, delivered as an attachment.
type Export struct {
	Format      Format
	Filename    string
	ContentType string
	Body        []byte
}

// Encode writes doc with writer into an Export named "report.<ext>".
func Encode(format Format, writer Writer, doc *Document) (*Export, error) {
	var buf bytes.Buffer
	if err := writer.Write(&buf, doc); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", format, err)
	}
	return &Export{
		Format:      format,
		Filename:    "report." + writer.Extension(),
		ContentType: writer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
