// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package command

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gaissmai/cptrie"
	"github.com/gaissmai/cptrie/internal/config"
)

var (
	buildOut          string
	buildValueBits    int
	buildInitialValue int
	buildErrorValue   int
	buildOverwrite    bool

	// Build constructs a trie from a rule file and serializes it.
	Build = &cobra.Command{
		Use:   "build <rules-file>",
		Short: "Build a trie from a rule file, freeze it, and write the serialized form.",
		Long: `Build reads a rule file of one range-to-value assignment per line:

  # comment lines start with '#'
  0041-005A 1
  0061-007A 1
  0000-10FFFF 0

Each line is <lo>[-<hi>] <value>, hex code points, decimal value. Ranges
are applied in file order through SetRange with the --overwrite setting
(default true: last write wins); a single code point is always written.`,
		Args: cobra.ExactArgs(1),
		RunE: runBuild,
	}
)

func init() {
	flags := Build.Flags()
	flags.StringVarP(&buildOut, "out", "o", "trie.bin", "output file for the serialized trie")
	flags.IntVar(&buildValueBits, "value-bits", 0, "16 or 32; 0 uses the config default")
	flags.IntVar(&buildInitialValue, "initial-value", 0, "value returned for code points never set")
	flags.IntVar(&buildErrorValue, "error-value", -1, "value returned for out-of-range code points")
	flags.BoolVar(&buildOverwrite, "overwrite", true, "overwrite already-set values within a range")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.New(cmd.Flags())
	if err != nil {
		return err
	}
	valueBits := buildValueBits
	if valueBits == 0 {
		valueBits = cfg.ValueBits
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	runID := uuid.New()
	log.Infow("starting build", "runID", runID, "rulesFile", args[0], "valueBits", valueBits)

	b := cptrie.Open(int32(buildInitialValue), int32(buildErrorValue))
	b.SetLogger(log)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := applyRule(b, line); err != nil {
			return fmt.Errorf("%s:%d: %w", args[0], lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	frozen, err := b.Freeze(cptrie.ValueBits(valueBits))
	if err != nil {
		return err
	}

	buf := frozen.Serialize()
	if err := os.WriteFile(buildOut, buf, 0o644); err != nil {
		return err
	}

	log.Infow("build complete", "runID", runID, "outFile", buildOut, "bytes", len(buf))
	fmt.Printf("wrote %d bytes to %s\n", len(buf), buildOut)
	return nil
}

// applyRule parses and applies one "<lo>[-<hi>] <value>" rule line.
func applyRule(b *cptrie.Builder, line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("expected \"<range> <value>\", got %q", line)
	}

	value, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return fmt.Errorf("bad value %q: %w", fields[1], err)
	}

	lo, hi, err := parseRange(fields[0])
	if err != nil {
		return err
	}

	if lo == hi {
		return b.Set(lo, int32(value))
	}
	return b.SetRange(lo, hi, int32(value), buildOverwrite)
}

func parseRange(s string) (lo, hi int32, err error) {
	parts := strings.SplitN(s, "-", 2)
	loVal, err := strconv.ParseInt(parts[0], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad code point %q: %w", parts[0], err)
	}
	if len(parts) == 1 {
		return int32(loVal), int32(loVal), nil
	}
	hiVal, err := strconv.ParseInt(parts[1], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad code point %q: %w", parts[1], err)
	}
	return int32(loVal), int32(hiVal), nil
}
