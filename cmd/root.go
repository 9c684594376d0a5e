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
	"os"

	"github.com/spf13/cobra"

	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/logging"
)

var (
	cfgFile      string
	logLevelFlag string

	cfg    *config.Configuration
	logger = logging.New()
)

var rootCmd = &cobra.Command{
	Use:   "tabula",
	Short: "Paged, sortable tables with CSV, PDF, text and spreadsheet exports",
	Long: `Tabula renders registered tables as HTML pages with pagination and
sortable headers, and exports them as CSV, PDF, plain text or XLSX.

The demo tables are served from an SQLite database seeded on startup.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevelFlag != "" {
			loaded.Logging.Level = logLevelFlag
		}
		if err := logger.SetLevel(loaded.Logging.Level); err != nil {
			return err
		}
		if err := logger.SetFormat(loaded.Logging.Format); err != nil {
			return err
		}
		logger.SetOutput(cmd.ErrOrStderr())
		cfg = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tabula.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
}
