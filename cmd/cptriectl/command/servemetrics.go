// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package command

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gaissmai/cptrie/internal/config"
)

var serveMetricsAddr string

// ServeMetrics serves this process's default prometheus registry over
// HTTP at /metrics. The internal/metrics collectors register on their
// first use by a freeze in the same process, which this command does
// not perform, so they are not part of its output; metrics from other
// cptriectl build invocations are not visible here.
var ServeMetrics = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Serve this process's default prometheus registry over HTTP.",
	RunE:  runServeMetrics,
}

func init() {
	ServeMetrics.Flags().StringVar(&serveMetricsAddr, "addr", "", "listen address; empty uses the config default")
}

func runServeMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := config.New(cmd.Flags())
	if err != nil {
		return err
	}
	addr := serveMetricsAddr
	if addr == "" {
		addr = cfg.MetricsAddr
	}

	log.Infow("serving metrics", "addr", addr)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
