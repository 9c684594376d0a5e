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

//go:build !nopdf

package formats

import (
	"io"

	"github.com/go-pdf/fpdf"
)

func pdfWriter() Writer { return documentWriter{} }

// documentWriter lays a table out on landscape A4 pages.
type documentWriter struct{}

func (documentWriter) ContentType() string { return "application/pdf" }
func (documentWriter) Extension() string   { return "pdf" }

const (
	pdfMargin     = 10.0
	pdfRowHeight  = 7.0
	pdfFontSize   = 9.0
	pdfTitleSize  = 16.0
	pdfHeaderFill = 220
)

func (documentWriter) Write(w io.Writer, doc *Document) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 2*pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	created := doc.Created.Format("02/01/2006")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr("Created: "+created), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", pdfTitleSize)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", pdfTitleSize-4)
	pdf.CellFormat(0, 8, tr(doc.Subtitle), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(doc.Header) == 0 {
		return pdf.Output(w)
	}

	pageWidth, _ := pdf.GetPageSize()
	colWidth := (pageWidth - 2*pdfMargin) / float64(len(doc.Header))

	header := func() {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(pdfHeaderFill, pdfHeaderFill, pdfHeaderFill)
		pdf.SetDrawColor(128, 128, 128)
		pdf.SetTextColor(0, 0, 0)
		for _, h := range doc.Header {
			pdf.CellFormat(colWidth, pdfRowHeight, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", pdfFontSize)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	for i, row := range doc.Rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-2*pdfMargin {
			pdf.AddPage()
			header()
		}
		// Alternate rows are shaded whitesmoke.
		pdf.SetFillColor(245, 245, 245)
		fill := i%2 == 1
		for j := range doc.Header {
			var text string
			if j < len(row) {
				text = row[j]
			}
			pdf.CellFormat(colWidth, pdfRowHeight, tr(text), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
