// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gaissmai/cptrie"
)

var lookupRange bool

// Lookup loads a serialized trie and queries it for one or more code
// points, given as hex.
var Lookup = &cobra.Command{
	Use:   "lookup <file> <codepoint> [codepoint...]",
	Short: "Query a serialized trie for one or more code points (hex).",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runLookup,
}

func init() {
	Lookup.Flags().BoolVar(&lookupRange, "range", false, "also print how far the value stays constant from each code point onward")
}

func runLookup(cmd *cobra.Command, args []string) error {
	buf, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	frozen, err := cptrie.Load(buf)
	if err != nil {
		return err
	}
	defer frozen.Close()

	for _, hexCP := range args[1:] {
		cp, err := strconv.ParseInt(hexCP, 16, 32)
		if err != nil {
			return fmt.Errorf("bad code point %q: %w", hexCP, err)
		}
		v := frozen.Get(int32(cp))
		if !lookupRange {
			fmt.Printf("U+%04X -> %d\n", cp, v)
			continue
		}
		end, mapped := frozen.GetRange(int32(cp), nil)
		fmt.Printf("U+%04X -> %d, constant through U+%04X (mapped=%d)\n", cp, v, end, mapped)
	}
	return nil
}
