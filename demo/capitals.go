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

package demo

import "strings"

// Capital is a capital city kept in memory.
type Capital struct {
	Name       string
	Country    string
	Region     string
	Population int
	Founded    int
}

// CanonicalURL links a capital to its encyclopedia article.
func (c Capital) CanonicalURL() string {
	return "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(c.Name, " ", "_")
}

var capitals = []Capital{
	{"Nairobi", "Kenya", "Africa", 4397073, 1899},
	{"Cairo", "Egypt", "Africa", 10025657, 969},
	{"Accra", "Ghana", "Africa", 2388000, 1650},
	{"Brasília", "Brazil", "Americas", 2817068, 1960},
	{"Ottawa", "Canada", "Americas", 1017449, 1826},
	{"Buenos Aires", "Argentina", "Americas", 3120612, 1536},
	{"Mexico City", "Mexico", "Americas", 9209944, 1325},
	{"Tokyo", "Japan", "Asia", 14094034, 1457},
	{"New Delhi", "India", "Asia", 249998, 1911},
	{"Hanoi", "Vietnam", "Asia", 8053663, 1010},
	{"Seoul", "South Korea", "Asia", 9428372, 1394},
	{"Brussels", "Belgium", "Europe", 1222637, 979},
	{"Lisbon", "Portugal", "Europe", 545796, 1147},
	{"Oslo", "Norway", "Europe", 709037, 1040},
	{"Vienna", "Austria", "Europe", 2005760, 1155},
	{"Canberra", "Australia", "Oceania", 456692, 1913},
	{"Wellington", "New Zealand", "Oceania", 215400, 1840},
}

// Capitals returns a copy of the capital cities.
func Capitals() []Capital {
	return append([]Capital(nil), capitals...)
}
