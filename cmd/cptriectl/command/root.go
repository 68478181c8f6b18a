// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package command implements cptriectl's subcommands, in the style of
// vitess's cmd/*/command packages: one package-level *cobra.Command per
// verb, wired together in Root's init.
package command

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaissmai/cptrie/internal/blog"
)

var (
	logLevel string
	log      *blog.Logger

	// Root is cptriectl's entry point command.
	Root = &cobra.Command{
		Use:   "cptriectl",
		Short: "Build, inspect, and query serialized code-point tries.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			level, err := zap.ParseAtomicLevel(logLevel)
			if err != nil {
				return err
			}
			zc.Level = level
			z, err := zc.Build()
			if err != nil {
				return err
			}
			log = blog.New(z)
			return nil
		},
	}
)

func init() {
	Root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	Root.AddCommand(Build)
	Root.AddCommand(Inspect)
	Root.AddCommand(Lookup)
	Root.AddCommand(ServeMetrics)
}
