// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command cptriectl builds, inspects, and queries serialized code-point
// tries: the outer surface the cptrie library itself doesn't ship,
// since it's a library, not a tool (SPEC_FULL.md supplemented feature
// #5).
package main

import (
	"fmt"
	"os"

	"github.com/gaissmai/cptrie/cmd/cptriectl/command"
)

func main() {
	if err := command.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
