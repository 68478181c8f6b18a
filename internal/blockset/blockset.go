// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package blockset provides growable, bit-per-index-block flag storage
// for the cptrie builder and freezer.
//
// The trie builder uses one Set for a per-block boolean concern that is
// orthogonal to a block's tagged state (all-same/mixed/same-as/moved):
// whether a block's data is also referenced by a supplementary block
// ("SUPP_DATA"). That is naturally a bitset indexed by block number
// rather than a map, since block numbers are dense and bounded.
package blockset

import "github.com/bits-and-blooms/bitset"

// Set is a bit-per-block flag vector. The zero value is ready to use.
type Set struct {
	bits *bitset.BitSet
}

// New returns a Set with room for n blocks preallocated.
func New(n int) Set {
	return Set{bits: bitset.New(uint(n))}
}

// Test reports whether the flag is set for block i.
func (s Set) Test(i int) bool {
	if s.bits == nil {
		return false
	}
	return s.bits.Test(uint(i))
}

// Set raises the flag for block i, growing the underlying bitset if needed.
func (s *Set) Set(i int) {
	if s.bits == nil {
		s.bits = bitset.New(uint(i + 1))
	}
	s.bits.Set(uint(i))
}

// Clear lowers the flag for block i.
func (s *Set) Clear(i int) {
	if s.bits == nil {
		return
	}
	s.bits.Clear(uint(i))
}

// ClearAll lowers every flag without releasing the backing storage,
// so a scratch Set can be reused across compaction passes.
func (s *Set) ClearAll() {
	if s.bits == nil {
		return
	}
	s.bits.ClearAll()
}
