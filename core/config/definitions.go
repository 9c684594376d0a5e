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

package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// TableDefinition is one table of a definitions file.
type TableDefinition struct {
	Name     string     `yaml:"name"`
	Model    string     `yaml:"model"`
	PageSize int        `yaml:"page_size"`
	Columns  [][]string `yaml:"columns"` // [display name, sort key, cell template]
}

type definitionsFile struct {
	Tables []TableDefinition `yaml:"tables"`
}

// ParseTableDefinitions decodes a YAML definitions document.
func ParseTableDefinitions(r io.Reader) ([]TableDefinition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file definitionsFile
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing table definitions: %w", err)
	}
	for i, def := range file.Tables {
		if def.Name == "" {
			return nil, fmt.Errorf("table definition %d: missing name", i)
		}
	}
	return file.Tables, nil
}

// LoadTableDefinitions reads a definitions file from disk.
func LoadTableDefinitions(path string) ([]TableDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTableDefinitions(f)
}
