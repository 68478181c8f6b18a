// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaissmai/cptrie"
)

// Inspect loads a serialized trie and prints its header fields.
var Inspect = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print header fields of a serialized trie.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	buf, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	frozen, err := cptrie.Load(buf)
	if err != nil {
		return err
	}
	defer frozen.Close()

	fmt.Printf("file:       %s\n", args[0])
	fmt.Printf("size:       %d bytes\n", len(buf))
	fmt.Printf("highStart:  U+%04X\n", frozen.HighStart())
	fmt.Printf("highValue:  %d\n", frozen.HighValue())
	fmt.Printf("errorValue: %d\n", frozen.ErrorValue())
	return nil
}
