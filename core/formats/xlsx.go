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

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

type xlsxWriter struct{}

func (xlsxWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (xlsxWriter) Extension() string { return "xlsx" }

func (xlsxWriter) Write(w io.Writer, doc *Document) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := setRow(f, 1, doc.Header); err != nil {
		return err
	}
	if len(doc.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(doc.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
			return err
		}
	}
	for i, row := range doc.Rows {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}
	if title := sheetTitle(doc.Subtitle); title != "" {
		if err := f.SetSheetName(sheetName, title); err != nil {
			return err
		}
	}
	_, err = f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheetName, cell, &cells)
}

// sheetTitle trims s to the 31 characters a sheet name may hold and drops
// the characters sheet names cannot contain.
func sheetTitle(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		out = append(out, r)
		if len(out) == 31 {
			break
		}
	}
	return string(out)
}
