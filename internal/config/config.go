// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package config binds cmd/cptriectl's flags and config file to a
// single typed Config struct via viper, the way the pack's viper users
// bind individual settings to a registry (vitess's go/viperutil wraps
// viper with a generics-based Value[T] registry; this CLI is small
// enough that binding pflag.FlagSet directly to one struct is the
// simpler idiomatic fit — see DESIGN.md's internal/config entry).
package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds cmd/cptriectl's resolved settings: flags, environment
// variables (CPTRIE_ prefixed), and an optional config file, in that
// precedence order (viper's default).
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
	// ValueBits selects Freeze's output width for the build subcommand.
	ValueBits int
	// MetricsAddr is the listen address for the serve-metrics subcommand.
	MetricsAddr string
}

// New builds a viper instance bound to flags, reads an optional config
// file (name "cptrie", searched in ".", "$HOME/.cptrie",
// "/etc/cptrie"), and decodes the result into a Config.
func New(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("cptrie")
	v.AutomaticEnv()

	v.SetConfigName("cptrie")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.cptrie")
	v.AddConfigPath("/etc/cptrie")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	v.SetDefault("log-level", "info")
	v.SetDefault("value-bits", 16)
	v.SetDefault("metrics-addr", ":9090")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		LogLevel:    v.GetString("log-level"),
		ValueBits:   v.GetInt("value-bits"),
		MetricsAddr: v.GetString("metrics-addr"),
	}, nil
}
