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

// Package config loads tabula's configuration from defaults, an optional
// YAML file and TABULA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/google/tabula/core/formats"
)

// EnvPrefix prefixes environment overrides, e.g. TABULA_SERVER_ADDR.
const EnvPrefix = "TABULA"

type Configuration struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`
	Tables struct {
		Definitions string `mapstructure:"definitions"` // Path to a YAML definitions file; embedded demo tables when empty
		PageSize    int    `mapstructure:"page_size"`
		WindowSide  int    `mapstructure:"window_side"`
	} `mapstructure:"tables"`
	Formats struct {
		Disabled []string `mapstructure:"disabled"`
	} `mapstructure:"formats"`
	Export struct {
		Title string `mapstructure:"title"`
	} `mapstructure:"export"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Cache struct {
		Templates int `mapstructure:"templates"`
	} `mapstructure:"cache"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:8097")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("tables.definitions", "")
	v.SetDefault("tables.page_size", 10)
	v.SetDefault("tables.window_side", 5)
	v.SetDefault("formats.disabled", []string{})
	v.SetDefault("export.title", "Tabula")
	v.SetDefault("database.path", ":memory:")
	v.SetDefault("cache.templates", 256)
	v.SetDefault("metrics.enabled", true)
}

// Load reads the configuration. When cfgFile is empty a "tabula.yaml" in
// the working directory is used if present.
func Load(cfgFile string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("tabula")
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot check by type.
func (c *Configuration) Validate() error {
	if c.Tables.PageSize <= 0 {
		return fmt.Errorf("tables.page_size must be positive, got %d", c.Tables.PageSize)
	}
	if c.Tables.WindowSide <= 0 {
		return fmt.Errorf("tables.window_side must be positive, got %d", c.Tables.WindowSide)
	}
	_, err := c.DisabledFormats()
	return err
}

// DisabledFormats parses formats.disabled. Unknown names are an error.
func (c *Configuration) DisabledFormats() ([]formats.Format, error) {
	var out []formats.Format
	for _, name := range c.Formats.Disabled {
		// Environment values arrive as one space separated string.
		for _, field := range strings.FieldsFunc(name, func(r rune) bool { return r == ',' || r == ' ' }) {
			f, ok := formats.ParseFormat(field)
			if !ok || f == formats.HTML {
				return nil, fmt.Errorf("formats.disabled: cannot disable %q", field)
			}
			out = append(out, f)
		}
	}
	return out, nil
}
