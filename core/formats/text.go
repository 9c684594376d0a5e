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
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

type textWriter struct{}

func (textWriter) ContentType() string { return "text/plain; charset=utf-8" }
func (textWriter) Extension() string   { return "txt" }

func (textWriter) Write(w io.Writer, doc *Document) error {
	if doc.Subtitle != "" {
		if _, err := fmt.Fprintln(w, doc.Subtitle); err != nil {
			return err
		}
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(doc.Header)
	table.AppendBulk(doc.Rows)
	table.Render()
	return nil
}
