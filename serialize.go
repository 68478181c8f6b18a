// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

import "encoding/binary"

// Serialize emits the frozen trie as a single contiguous little-endian
// byte buffer: a fixed header, the index array (BMP index-2, then an
// index-1 table if there are supplementary code points, then the
// shifted supplementary index-2), and finally the data array at either
// 16 or 32 bits per value (spec.md §4.4, §6).
//
// No third-party codec is used here: the format is a fixed binary
// header plus flat arrays, and encoding/binary.LittleEndian is the
// idiomatic and sufficient tool for that — see DESIGN.md's serialize.go
// entry for why no ecosystem library improves on this.
func (f *Frozen) Serialize() []byte {
	l := f.layout

	index1Length := 0
	if l.highStart > bmpLimit {
		index1Length = int(l.highStart-bmpLimit) >> shift1
	}
	finalIndexLength := bmpILimit + index1Length + (len(l.index) - bmpILimit)

	var dataMove int32
	if l.valueBits == Bits16 {
		dataMove = int32(finalIndexLength)
	}

	size := headerSize + finalIndexLength*2
	if l.valueBits == Bits16 {
		size += len(l.data) * 2
	} else {
		size += len(l.data) * 4
	}

	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:4], signature)

	var optionsHigh uint32
	if l.dataNullOffset == noDataNullOffset {
		// sentinel: all-ones in the 20-bit field, stored unshifted by
		// dataMove (spec.md §6).
		optionsHigh = 0xFFFFF
	} else {
		optionsHigh = uint32(l.dataNullOffset) + uint32(dataMove)
	}
	options := (optionsHigh << 12) | l.valueBits.code()
	binary.LittleEndian.PutUint32(buf[4:8], options)

	binary.LittleEndian.PutUint16(buf[8:10], uint16(finalIndexLength))
	binary.LittleEndian.PutUint16(buf[10:12], uint16(len(l.data)>>indexShift))
	binary.LittleEndian.PutUint16(buf[12:14], uint16(l.index2Null))
	binary.LittleEndian.PutUint16(buf[14:16], uint16(l.highStart>>shift1))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(l.highValue))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(l.errorValue))

	pos := headerSize
	for i := 0; i < bmpILimit; i++ {
		binary.LittleEndian.PutUint16(buf[pos:pos+2], uint16(dataMove+l.index[i]))
		pos += 2
	}
	if index1Length > 0 {
		for _, v := range l.index1 {
			binary.LittleEndian.PutUint16(buf[pos:pos+2], uint16(v))
			pos += 2
		}
		for i := bmpILimit; i < len(l.index); i++ {
			binary.LittleEndian.PutUint16(buf[pos:pos+2], uint16((dataMove+l.index[i])>>indexShift))
			pos += 2
		}
	}

	switch l.valueBits {
	case Bits16:
		for _, v := range l.data {
			binary.LittleEndian.PutUint16(buf[pos:pos+2], uint16(v))
			pos += 2
		}
	case Bits32:
		for _, v := range l.data {
			binary.LittleEndian.PutUint32(buf[pos:pos+4], uint32(v))
			pos += 4
		}
	}

	return buf
}
