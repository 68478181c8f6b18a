// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

import "github.com/gaissmai/cptrie/internal/blockset"

// blockState is the tagged state of one index block's low two bits
// (spec.md §3, §9 "polymorphic index state"). A block's meaning for
// index[i] depends entirely on its blockState; this is intentionally a
// two-bit tag plus one int32 rather than an interface or a
// discriminated struct-of-pointers, matching the source's C encoding
// and bart's own preference for flat fixed-shape structs over
// polymorphism (node[V] in the teacher never uses interfaces for its
// per-slot state either).
type blockState uint8

const (
	// blockAllSame: index[i] is the single uniform value for the block.
	blockAllSame blockState = iota
	// blockMixed: index[i] is an offset into the data array where the
	// block's dataBlockLength values live.
	blockMixed
	// blockSameAs: index[i] is the index of an earlier block with
	// byte-identical contents.
	blockSameAs
	// blockMoved: index[i] is the block's final offset into the
	// compacted data array.
	blockMoved
)

// blockTable holds one flags/index pair per index block, plus the
// orthogonal "referenced by a supplementary block" bit tracked in a
// separate bitset (spec.md §3's "orthogonal bit SUPP_DATA").
type blockTable struct {
	state []blockState
	index []int32
	supp  blockset.Set
}

// indexTableMargin reserves a few extra slots past n on the index slice
// only. compactIndex2's closing padding loop can write a handful of
// entries past its local iLimit when the trie covers the full Unicode
// range (suppHighStart == unicodeLimit, so local iLimit == the global
// maximum this table was sized for); the margin keeps that bounded
// write from running past the end of the backing array. state and supp
// never need it: nothing writes to them past n.
const indexTableMargin = index2BlockLength

func newBlockTable(n int) blockTable {
	return blockTable{
		state: make([]blockState, n),
		index: make([]int32, n+indexTableMargin),
		supp:  blockset.New(n),
	}
}

func (t *blockTable) len() int { return len(t.state) }

func (t *blockTable) setAllSame(i int, value int32) {
	t.state[i] = blockAllSame
	t.index[i] = value
}

func (t *blockTable) setMixed(i int, offset int32) {
	t.state[i] = blockMixed
	t.index[i] = offset
}

func (t *blockTable) setSameAs(i int, j int) {
	t.state[i] = blockSameAs
	t.index[i] = int32(j)
}

func (t *blockTable) setMoved(i int, offset int32) {
	t.state[i] = blockMoved
	t.index[i] = offset
}

func (t *blockTable) isSuppData(i int) bool { return t.supp.Test(i) }
func (t *blockTable) markSuppData(i int)    { t.supp.Set(i) }

// clone deep-copies the table up to n blocks, for Builder.Clone.
func (t *blockTable) clone(n int) blockTable {
	out := newBlockTable(n)
	copy(out.state, t.state[:n])
	copy(out.index, t.index[:n])
	for i := 0; i < n; i++ {
		if t.isSuppData(i) {
			out.markSuppData(i)
		}
	}
	return out
}
