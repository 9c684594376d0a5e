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
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/google/tabula/core/metrics"
	"github.com/google/tabula/core/server"
	"github.com/google/tabula/demo"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the web server for the demo tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var m *metrics.Metrics
		var serverOpts []server.Option
		if cfg.Metrics.Enabled {
			reg := prometheus.NewRegistry()
			var err error
			if m, err = metrics.New(reg); err != nil {
				return err
			}
			serverOpts = append(serverOpts, server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		}

		opts, err := demo.OptionsFromConfig(cfg, logger, m)
		if err != nil {
			return err
		}
		app, err := demo.Setup(ctx, opts)
		if err != nil {
			return err
		}
		defer app.Close()

		serverOpts = append(serverOpts,
			server.WithLogger(logger),
			server.WithTitle(cfg.Export.Title, "Paged, sortable tables with exports"),
		)
		srv := server.NewServer(app.Registry, app.Provider, serverOpts...)

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		httpServer := &http.Server{
			Addr:              addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			logger.Infof("serving on http://%s", addr)
			errc <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
