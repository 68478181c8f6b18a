// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsWithoutFlags(t *testing.T) {
	t.Parallel()

	cfg, err := New(nil)
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 16, cfg.ValueBits)
	require.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestNew_FlagsOverrideDefaults(t *testing.T) {
	t.Parallel()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.Int("value-bits", 16, "")
	flags.String("metrics-addr", ":9090", "")
	require.NoError(t, flags.Parse([]string{"--log-level=debug", "--value-bits=32"}))

	cfg, err := New(flags)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 32, cfg.ValueBits)
	require.Equal(t, ":9090", cfg.MetricsAddr)
}
