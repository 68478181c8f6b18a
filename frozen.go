// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

import "encoding/binary"

// Frozen is a read-only, concurrency-safe trie produced by
// Builder.Freeze or Load. All methods are safe for concurrent use by
// multiple goroutines, since nothing here is ever mutated after
// construction.
type Frozen struct {
	layout *frozenLayout
}

// IsFrozen always reports true; it exists so callers holding either a
// *Builder or a *Frozen behind a common "is this still mutable" check
// don't need a type switch.
func (f *Frozen) IsFrozen() bool { return true }

// HighStart returns the smallest code point above which every value is
// uniformly HighValue.
func (f *Frozen) HighStart() int32 { return f.layout.highStart }

// HighValue returns the uniform value held by every code point at or
// above HighStart.
func (f *Frozen) HighValue() int32 { return f.layout.highValue }

// ErrorValue returns the value Get returns for out-of-range code points.
func (f *Frozen) ErrorValue() int32 { return f.layout.errorValue }

// Close releases f's backing arrays early, ahead of garbage collection.
// f is unusable afterward; Close is idempotent.
func (f *Frozen) Close() error {
	f.layout = nil
	return nil
}

// blockOffset returns the data-array offset of the dataBlockLength-cp
// block containing cp, resolving the BMP direct index or the
// supplementary index-1 -> index-2 indirection (spec.md §6's runtime
// counterpart to compactIndex2, §4.3.5).
func (l *frozenLayout) blockOffset(cp int32) int32 {
	i := cp >> shift2
	if cp < bmpLimit {
		return l.index[i]
	}

	i1 := (i >> shift1_2) - omittedBMPIndex1Length
	i2 := l.index1[i1]

	physical := i2
	if i2 >= bmpILimit {
		physical -= l.index1Offset
	}
	localIdx := i & (index2BlockLength - 1)
	return l.index[int(physical)+int(localIdx)]
}

// Get returns the value stored for cp, or errorValue if cp is outside
// [0, 0x10FFFF] (spec.md §4.4, §6, invariants P1-P3).
func (f *Frozen) Get(cp int32) int32 {
	l := f.layout
	if cp < 0 || cp > maxUnicode {
		return l.errorValue
	}
	if cp >= l.highStart {
		return l.highValue
	}
	offset := l.blockOffset(cp)
	return l.data[int(offset)+int(cp&(dataBlockLength-1))]
}

// GetRange returns the largest end such that mapper(Get(cp)) is
// constant over [start,end], along with that mapped value (spec.md
// §4.2, SPEC_FULL.md supplemented feature #1). end is maxUnicode if the
// run extends to the end of Unicode, or -1 if start is out of range.
//
// mapper's NullValue substitution is calibrated against
// Builder.initialValue, which Load cannot recover from the serialized
// format (it is not a header field) — a Frozen produced by Load treats
// highValue as its initialValue for this purpose. See DESIGN.md's
// frozen.go entry.
func (f *Frozen) GetRange(start int32, mapper *RangeMapper) (end int32, value int32) {
	l := f.layout
	if start < 0 || start > maxUnicode {
		return -1, 0
	}

	value = mapper.apply(l.initialValue, f.Get(start))
	cp := start

	for cp <= maxUnicode {
		if cp >= l.highStart {
			v := mapper.apply(l.initialValue, l.highValue)
			if v != value {
				return cp - 1, value
			}
			return maxUnicode, value
		}

		offset := l.blockOffset(cp)
		base := cp &^ (dataBlockLength - 1)
		blockLimit := base + dataBlockLength
		if blockLimit > l.highStart {
			blockLimit = l.highStart
		}
		for ; cp < blockLimit; cp++ {
			v := mapper.apply(l.initialValue, l.data[int(offset)+int(cp-base)])
			if v != value {
				return cp - 1, value
			}
		}
	}

	return maxUnicode, value
}

// Load parses a buffer produced by Frozen.Serialize (spec.md §6). It
// reads directly out of buf rather than defensively copying it first,
// matching the source's utrie3_openFromSerialized zero-copy intent
// (SPEC_FULL.md supplemented feature #4); the index and data arrays
// are still widened from their packed on-disk width into plain int32
// slices once, since Go's type system offers no safe way to alias a
// []byte as []uint16/[]uint32 without unsafe, which this module avoids.
//
// Returns InvalidFormat for a short buffer, an unrecognized signature,
// or an unrecognized valueBits code (SUPPLEMENTED FEATURES #3).
func Load(buf []byte) (*Frozen, error) {
	if len(buf) < headerSize {
		return nil, newErr("Load", KindInvalidFormat, "buffer of %d bytes shorter than header", len(buf))
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != signature {
		return nil, newErr("Load", KindInvalidFormat, "bad signature")
	}

	options := binary.LittleEndian.Uint32(buf[4:8])
	valueBits, ok := valueBitsFromCode(options & 0xFFF)
	if !ok {
		return nil, newErr("Load", KindInvalidFormat, "unrecognized valueBits code %d", options&0xFFF)
	}
	optionsHigh := int32(options >> 12)

	indexLength := int(binary.LittleEndian.Uint16(buf[8:10]))
	shiftedDataLength := int(binary.LittleEndian.Uint16(buf[10:12]))
	index2Null := int32(binary.LittleEndian.Uint16(buf[12:14]))
	highStart := int32(binary.LittleEndian.Uint16(buf[14:16])) << shift1
	highValue := int32(binary.LittleEndian.Uint32(buf[16:20]))
	errorValue := int32(binary.LittleEndian.Uint32(buf[20:24]))

	dataLength := shiftedDataLength << indexShift

	var dataMove int32
	if valueBits == Bits16 {
		dataMove = int32(indexLength)
	}

	var dataNullOffset int32 = noDataNullOffset
	if optionsHigh != 0xFFFFF {
		dataNullOffset = optionsHigh - dataMove
	}

	var index1Length int
	if highStart > bmpLimit {
		index1Length = int(highStart-bmpLimit) >> shift1
	}
	suppIndexLength := indexLength - bmpILimit - index1Length

	need := headerSize + indexLength*2
	if valueBits == Bits16 {
		need += dataLength * 2
	} else {
		need += dataLength * 4
	}
	if len(buf) < need {
		return nil, newErr("Load", KindInvalidFormat, "buffer of %d bytes too short for declared lengths (need %d)", len(buf), need)
	}

	pos := headerSize
	index := make([]int32, bmpILimit+suppIndexLength)
	for i := 0; i < bmpILimit; i++ {
		raw := int32(binary.LittleEndian.Uint16(buf[pos : pos+2]))
		index[i] = raw - dataMove
		pos += 2
	}

	var index1 []int32
	if index1Length > 0 {
		index1 = make([]int32, index1Length)
		for i := 0; i < index1Length; i++ {
			index1[i] = int32(binary.LittleEndian.Uint16(buf[pos : pos+2]))
			pos += 2
		}
		for i := 0; i < suppIndexLength; i++ {
			raw := int32(binary.LittleEndian.Uint16(buf[pos : pos+2]))
			index[bmpILimit+i] = (raw << indexShift) - dataMove
			pos += 2
		}
	}

	data := make([]int32, dataLength)
	switch valueBits {
	case Bits16:
		for i := 0; i < dataLength; i++ {
			data[i] = int32(binary.LittleEndian.Uint16(buf[pos : pos+2]))
			pos += 2
		}
	case Bits32:
		for i := 0; i < dataLength; i++ {
			data[i] = int32(binary.LittleEndian.Uint32(buf[pos : pos+4]))
			pos += 4
		}
	}

	var index1Offset int32
	if highStart > bmpLimit {
		index1Offset = (highStart - bmpLimit) >> shift1
	}

	layout := &frozenLayout{
		valueBits:      valueBits,
		index:          index,
		index1:         index1,
		index1Offset:   index1Offset,
		data:           data,
		highStart:      highStart,
		highValue:      highValue,
		initialValue:   highValue,
		errorValue:     errorValue,
		dataNullOffset: dataNullOffset,
		index2Null:     index2Null,
	}
	return &Frozen{layout: layout}, nil
}
