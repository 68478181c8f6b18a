// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package cptrie implements a compact, immutable Unicode code-point trie:
// a two-level index over a densely packed data array mapping each of the
// 0x110000 Unicode code points to a small unsigned integer property
// value.
//
// A Builder is opened with Open, populated with Set/SetRange, and then
// collapsed into a read-only Frozen with Freeze. Freeze runs a
// multi-pass compaction that deduplicates and byte-overlaps equal data
// blocks and splits the index into an unshifted BMP region and a
// shifted supplementary region, before serializing to a single
// contiguous buffer (Frozen.Serialize).
package cptrie

import "github.com/gaissmai/cptrie/internal/blog"

// Builder is the mutable, single-threaded handle used to construct a
// trie before it is frozen. The zero value is not usable; construct one
// with Open.
type Builder struct {
	blocks blockTable
	data   []int32

	initialValue int32
	errorValue   int32
	highStart    int32

	frozen          bool
	frozenValueBits ValueBits
	frozenTrie      *Frozen

	log *blog.Logger
}

// Open returns a fresh Builder. initial is returned by Get for any code
// point never explicitly Set; errorVal is returned for out-of-range
// inputs.
func Open(initial, errorVal int32) *Builder {
	b := &Builder{
		blocks:       newBlockTable(iLimit),
		data:         make([]int32, 0, initialDataLength),
		initialValue: initial,
		errorValue:   errorVal,
		log:          blog.NoOp(),
	}
	return b
}

// SetLogger installs a diagnostics logger used during Freeze. Passing
// nil restores the no-op default.
func (b *Builder) SetLogger(l *blog.Logger) {
	if l == nil {
		l = blog.NoOp()
	}
	b.log = l
}

// IsFrozen reports whether Freeze has already been called on b.
func (b *Builder) IsFrozen() bool { return b.frozen }

// Clone returns a deep copy of b. Cloning a frozen builder is an
// IllegalArgument error — freeze destroys the builder's mutable arrays.
func (b *Builder) Clone() (*Builder, error) {
	if b.frozen {
		return nil, newErr("Clone", KindIllegalArgument, "cannot clone a frozen builder")
	}
	out := &Builder{
		blocks:       b.blocks.clone(b.blocks.len()),
		data:         append([]int32(nil), b.data...),
		initialValue: b.initialValue,
		errorValue:   b.errorValue,
		highStart:    b.highStart,
		log:          b.log,
	}
	return out, nil
}

// ensureHighStart extends highStart upward, rounded up to the next
// data-block boundary, so that cp is covered. New blocks start as
// blockAllSame/initialValue (spec.md §4.1, §4.2).
func (b *Builder) ensureHighStart(cp int32) {
	if cp < b.highStart {
		return
	}
	newLimit := (cp + dataBlockLength) &^ (dataBlockLength - 1)
	if newLimit > unicodeLimit {
		newLimit = unicodeLimit
	}
	firstNew := b.highStart >> shift2
	lastNew := newLimit >> shift2
	for i := firstNew; i < lastNew; i++ {
		b.blocks.setAllSame(int(i), b.initialValue)
	}
	b.highStart = newLimit
}

// growData grows the data array along the fixed ladder
// (initialDataLength -> mediumDataLength -> maxDataLength) so that at
// least n more entries fit.
func (b *Builder) growData(n int) {
	need := len(b.data) + n
	if need <= cap(b.data) {
		return
	}
	newCap := cap(b.data)
	if newCap < initialDataLength {
		newCap = initialDataLength
	}
	for newCap < need {
		switch {
		case newCap < mediumDataLength:
			newCap = mediumDataLength
		case newCap < maxDataLength:
			newCap = maxDataLength
		default:
			// already at the maximum; caller must fail.
			return
		}
	}
	grown := make([]int32, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// getDataBlock returns the data-array offset of the mutable
// dataBlockLength-slot run backing the block containing cp, allocating
// and materializing it from the block's current uniform value if the
// block is not already blockMixed (spec.md §4.2).
func (b *Builder) getDataBlock(cp int32) (int32, error) {
	i := int(cp >> shift2)
	switch b.blocks.state[i] {
	case blockMixed:
		return b.blocks.index[i], nil
	default:
		uniform := b.blocks.index[i]
		if len(b.data)+dataBlockLength > cap(b.data) {
			b.growData(dataBlockLength)
			if len(b.data)+dataBlockLength > cap(b.data) {
				return 0, newErr("getDataBlock", KindMemoryAllocation, "data array exhausted at %d entries", cap(b.data))
			}
		}
		offset := int32(len(b.data))
		b.data = b.data[:len(b.data)+dataBlockLength]
		for k := 0; k < dataBlockLength; k++ {
			b.data[int(offset)+k] = uniform
		}
		b.blocks.setMixed(i, offset)
		return offset, nil
	}
}
