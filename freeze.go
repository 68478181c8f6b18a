// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

import "github.com/gaissmai/cptrie/internal/metrics"

// frozenLayout holds every value the serializer needs, computed once by
// Freeze and never mutated afterward.
type frozenLayout struct {
	valueBits ValueBits

	index          []int32 // physical index-2 array: BMP part (unshifted, direct), then compacted supplementary part; index-1 is spliced in only at serialize time
	index1         []int32 // per supplementary index-1 slot: logical position of that slot's index-2 block, offset by index1Offset relative to index's physical layout
	index1Offset   int32   // (highStart-bmpLimit)>>shift1: the gap index1's logical positions reserve for the (not-yet-spliced) index-1 table itself
	data           []int32
	highStart      int32
	highValue      int32
	initialValue   int32
	errorValue     int32
	dataNullOffset int32
	index2Null     int32
}

// Freeze runs the compaction pipeline (spec.md §4.3) and returns a
// read-only Frozen. The compaction runs at most once per Builder;
// calling Freeze again with the same valueBits is a no-op that returns the
// same Frozen, per spec.md §1's "idempotent only when called with the
// same valueBits" lifecycle rule. Calling it again with a different
// width is IllegalArgument.
func (b *Builder) Freeze(valueBits ValueBits) (*Frozen, error) {
	if !valueBits.valid() {
		return nil, newErr("Freeze", KindIllegalArgument, "valueBits must be 16 or 32, got %d", valueBits)
	}
	if b.frozen {
		if b.frozenValueBits != valueBits {
			return nil, newErr("Freeze", KindIllegalArgument, "already frozen with a different valueBits")
		}
		return b.frozenTrie, nil
	}

	stop := metrics.ObserveFreezeDuration()
	defer stop()

	// §4.3.1 value masking.
	if valueBits == Bits16 {
		b.maskValues(0xFFFF)
	}

	// §4.3.2 high-start finalization.
	highValue := b.Get(maxUnicode)
	highStart := b.findHighStart(highValue)
	if highStart&(cpPerIndex1Entry-1) != 0 {
		i := highStart >> shift2
		for highStart&(cpPerIndex1Entry-1) != 0 {
			b.blocks.setAllSame(int(i), highValue)
			i++
			highStart += dataBlockLength
		}
	}
	if highStart == unicodeLimit {
		highValue = b.initialValue
	}

	var suppHighStart int32
	if highStart <= bmpLimit {
		for i := highStart >> shift2; i < bmpILimit; i++ {
			b.blocks.setAllSame(int(i), highValue)
		}
		suppHighStart = bmpLimit
	} else {
		suppHighStart = highStart
	}

	asciiValues := b.captureASCII()
	newDataLength, dataNullIndex := b.compactWholeDataBlocks(int(suppHighStart >> shift2))
	newData, dataNullOffset := b.compactData(suppHighStart, newDataLength, dataNullIndex, asciiValues)
	indexLength, physicalIndexLength, index1, index2NullOffset := b.compactIndex2(suppHighStart, dataNullOffset, dataNullIndex)

	// §4.3.6 bounds check (invariant I4).
	var dataMove int32
	if valueBits == Bits16 {
		dataMove = int32(indexLength)
	}
	if (dataMove+int32(len(newData)))>>indexShift > 0xFFFF {
		return nil, newErr("Freeze", KindIndexOutOfBounds, "shifted data length exceeds 16 bits")
	}
	for _, e := range b.blocks.index[:bmpILimit] {
		if dataMove+e > 0xFFFF {
			return nil, newErr("Freeze", KindIndexOutOfBounds, "unshifted BMP index entry exceeds 16 bits")
		}
	}

	var index1Offset int32
	if highStart > bmpLimit {
		index1Offset = (highStart - bmpLimit) >> shift1
	}

	layout := &frozenLayout{
		valueBits:      valueBits,
		index:          append([]int32(nil), b.blocks.index[:physicalIndexLength]...),
		index1:         index1,
		index1Offset:   index1Offset,
		data:           newData,
		highStart:      highStart,
		highValue:      highValue,
		initialValue:   b.initialValue,
		errorValue:     b.errorValue,
		dataNullOffset: dataNullOffset,
		index2Null:     index2NullOffset,
	}

	metrics.ObserveBuildStats(len(newData), indexLength)
	b.log.Infow("trie frozen",
		"highStart", highStart,
		"highValue", highValue,
		"dataLength", len(newData),
		"indexLength", indexLength,
		"valueBits", int(valueBits),
	)

	frozen := &Frozen{layout: layout}
	b.frozen = true
	b.frozenValueBits = valueBits
	b.frozenTrie = frozen
	// The builder's mutable arrays are no longer needed; drop them so
	// Freeze's caller can discard the Builder without holding onto the
	// (much larger) build-time data array via a lingering reference.
	b.data = nil
	b.blocks = blockTable{}

	return frozen, nil
}

// maskValues masks initialValue, highValue (via subsequent Get calls
// still reading masked ALL_SAME entries) and every stored value to
// mask, except errorValue — "errorValue may be outside the normal
// range" is adopted as a contract per spec.md §9.
func (b *Builder) maskValues(mask int32) {
	b.initialValue &= mask
	iLimit := int(b.highStart >> shift2)
	for i := 0; i < iLimit; i++ {
		if b.blocks.state[i] == blockAllSame {
			b.blocks.index[i] &= mask
		}
	}
	for i := range b.data {
		b.data[i] &= mask
	}
}

// findHighStart scans blocks backward from the builder's current
// highStart while each is uniformly equal to highValue, returning the
// first (data-block-aligned) code point that isn't (spec.md §4.3.2).
func (b *Builder) findHighStart(highValue int32) int32 {
	i := b.highStart >> shift2
	for i > 0 {
		i--
		var match bool
		if b.blocks.state[i] == blockAllSame {
			match = b.blocks.index[i] == highValue
		} else {
			offset := int(b.blocks.index[i])
			match = allValuesSame(b.data[offset:offset+dataBlockLength], highValue)
		}
		if !match {
			return (i + 1) << shift2
		}
	}
	return 0
}
