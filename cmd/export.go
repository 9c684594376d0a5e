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

package cmd

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/google/tabula/core/formats"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/demo"
)

const exportKey = "1"

var (
	exportFormat  string
	exportSort    string
	exportFilters []string
	exportOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Exports a demo table as CSV, PDF, text or XLSX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := exportURL(exportFormat, exportSort, exportFilters)
		if err != nil {
			return err
		}

		opts, err := demo.OptionsFromConfig(cfg, logger, nil)
		if err != nil {
			return err
		}
		app, err := demo.Setup(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer app.Close()

		name := args[0]
		table, ok := app.Registry.Get(name)
		if !ok {
			return fmt.Errorf("%w: %q", tables.ErrUnknownTable, name)
		}
		src, err := app.Provider.Source(cmd.Context(), name, u.Query())
		if err != nil {
			return err
		}
		out, err := table.Render(cmd.Context(), u, exportKey, src)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if out.IsHTML() {
			_, err = io.WriteString(w, out.HTML.String())
		} else {
			_, err = w.Write(out.Export.Body)
		}
		if err != nil {
			return err
		}
		logger.WithField("table", name).Debugf("exported %s", out.Format)
		return nil
	},
}

// exportURL builds the request URL a browser would send for the export.
func exportURL(format, sort string, filters []string) (*url.URL, error) {
	params := url.Values{}
	f, ok := formats.ParseFormat(format)
	if !ok {
		return nil, &formats.UnimplementedFormatError{Format: format}
	}
	params.Set(query.FormatParam(exportKey), string(f))

	if sort != "" {
		key, dir, _ := strings.Cut(sort, ":")
		if dir == "" {
			dir = string(query.Ascending)
		}
		if _, ok := query.ParseDirection(dir); !ok {
			return nil, fmt.Errorf("--sort %q: direction must be asc or desc", sort)
		}
		params.Set(query.SortParam(exportKey, key), dir)
	}

	for _, filter := range filters {
		column, value, ok := strings.Cut(filter, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("--filter %q: want column=value", filter)
		}
		params.Add(query.FilterPrefix+column, value)
	}
	return &url.URL{Path: "/export", RawQuery: params.Encode()}, nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(formats.CSV), "output format (csv, pdf, txt, xlsx, html)")
	exportCmd.Flags().StringVarP(&exportSort, "sort", "s", "", "sort column as key:asc or key:desc")
	exportCmd.Flags().StringArrayVar(&exportFilters, "filter", nil, "filter rows as column=value (repeatable)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
