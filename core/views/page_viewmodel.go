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

package views

import "github.com/google/safehtml"

// PageViewModel is a full page holding one or more rendered tables.
type PageViewModel struct {
	Title    string
	Subtitle string
	HomeURL  safehtml.URL
	Tables   []safehtml.HTML
}

// LandingViewModel lists the registered tables.
type LandingViewModel struct {
	Title    string
	Subtitle string
	Tables   []TableInfo
}

// TableInfo describes one registered table on the landing page.
type TableInfo struct {
	Name        string
	Model       string
	URL         safehtml.URL
	ColumnCount int
	PageSize    int
	Columns     string // Display names, comma separated
}
