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
	"encoding/csv"
	"io"
)

type csvWriter struct{}

func (csvWriter) ContentType() string { return "text/csv" }
func (csvWriter) Extension() string   { return "csv" }

// Write emits the header row followed by one row per record.
func (csvWriter) Write(w io.Writer, doc *Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(doc.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(doc.Rows); err != nil {
		return err
	}
	return cw.Error()
}
