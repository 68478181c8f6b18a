// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

// captureASCII snapshots the values of code points [0,asciiLimit) while
// they are still readable through Get. This must happen before
// compactWholeDataBlocks runs: that pass can flip an ASCII block to
// blockSameAs, a state Get does not resolve (it only ever sees states
// it can itself have produced), so reading ASCII values after
// compaction would return errorValue for any deduplicated ASCII block
// (cf. utrie3builder.cpp's asciiData[] snapshot taken before
// compactWholeDataBlocks runs).
func (b *Builder) captureASCII() []int32 {
	values := make([]int32, asciiLimit)
	for cp := int32(0); cp < asciiLimit; cp++ {
		values[cp] = b.Get(cp)
	}
	return values
}

// compactData writes the deduplicated blocks out to a fresh data array,
// overlapping each new block with the tail of the previous one as much
// as possible (spec.md §4.3.4). suppHighStart is the (possibly
// BMP-pinned) high-water mark from freeze's highStart finalization.
// newDataLength and dataNullIndex come from freeze's own call to
// compactWholeDataBlocks — compactData must not call it a second time,
// since the block table has already been mutated to blockSameAs by
// then, and re-running the pass over that mutated state feeds
// back-reference indices into the AllSameBlocks cache as if they were
// values. Returns the new data array and the dataNullOffset to record
// in the header (or noDataNullOffset).
func (b *Builder) compactData(suppHighStart int32, newDataLength int, dataNullIndex int32, asciiValues []int32) (newData []int32, dataNullOffset int32) {
	iLimit := int(suppHighStart >> shift2)

	newData = make([]int32, asciiLimit, newDataLength+asciiLimit)
	copy(newData, asciiValues)
	for i := 0; i < asciiILimit; i++ {
		b.blocks.setMoved(i, int32(i*dataBlockLength))
	}

	// Pass A: BMP blocks whose data is not also needed by a
	// supplementary block, unshifted granularity 1. Writing these
	// before anything else maximizes the chance that unshifted BMP
	// indexes stay representable.
	newData = b.writeBlocks(newData, asciiILimit, bmpILimit, 1, false)

	// Pad to a data-granularity boundary, repeating the last written
	// value: this maximizes overlap with the first supplementary block.
	for len(newData)&(dataGranularity-1) != 0 {
		newData = append(newData, newData[len(newData)-1])
	}

	// Pass B: everything not yet written — BMP blocks shared with
	// supplementary code points, plus genuine supplementary blocks —
	// at full data granularity.
	newData = b.writeBlocks(newData, asciiILimit, iLimit, dataGranularity, true)

	// Resolve blockSameAs back-references now that every target is
	// blockMoved. There are no cycles: every SAME_AS points to a lower
	// block index (spec.md §9).
	for i := asciiILimit; i < iLimit; i++ {
		if b.blocks.state[i] == blockSameAs {
			j := int(b.blocks.index[i])
			b.blocks.setMoved(i, b.blocks.index[j])
		}
	}

	if dataNullIndex >= 0 {
		dataNullOffset = b.blocks.index[dataNullIndex]
	} else {
		dataNullOffset = noDataNullOffset
	}

	return newData, dataNullOffset
}

// writeBlocks sweeps [from,to) once, writing every still-unmoved
// blockAllSame/blockMixed block. When includeSuppData is false, blocks
// flagged SUPP_DATA are skipped (left for the second, dataGranularity
// pass); when true, every remaining block is written regardless.
func (b *Builder) writeBlocks(newData []int32, from, to, granularity int, includeSuppData bool) []int32 {
	for i := from; i < to; i++ {
		state := b.blocks.state[i]
		if state != blockAllSame && state != blockMixed {
			continue
		}
		if !includeSuppData && b.blocks.isSuppData(i) {
			continue
		}

		if state == blockAllSame {
			value := b.blocks.index[i]
			if n := findAllSameBlock(newData, value, dataBlockLength, granularity); n >= 0 {
				b.blocks.setMoved(i, int32(n))
				continue
			}
			overlap := getAllSameOverlap(newData, value, dataBlockLength, granularity)
			b.blocks.setMoved(i, int32(len(newData)-overlap))
			for k := overlap; k < dataBlockLength; k++ {
				newData = append(newData, value)
			}
		} else {
			offset := int(b.blocks.index[i])
			block := b.data[offset : offset+dataBlockLength]
			if n := findSameBlock(newData, block, granularity); n >= 0 {
				b.blocks.setMoved(i, int32(n))
				continue
			}
			overlap := getOverlap(newData, block, granularity)
			b.blocks.setMoved(i, int32(len(newData)-overlap))
			for k := overlap; k < dataBlockLength; k++ {
				newData = append(newData, block[k])
			}
		}
	}
	return newData
}

// findSameBlock searches p for a byte-identical run of len(block)
// values, at offsets that are multiples of granularity.
func findSameBlock(p []int32, block []int32, granularity int) int {
	limit := len(p) - len(block)
	for start := 0; start <= limit; start += granularity {
		if equalRun(p[start:start+len(block)], block) {
			return start
		}
	}
	return -1
}

func findAllSameBlock(p []int32, value int32, blockLength, granularity int) int {
	limit := len(p) - blockLength
	for start := 0; start <= limit; start += granularity {
		if allValuesSame(p[start:start+blockLength], value) {
			return start
		}
	}
	return -1
}

// getOverlap returns the largest k, truncated to a multiple of
// granularity, such that the last k values of p equal the first k
// values of block.
func getOverlap(p []int32, block []int32, granularity int) int {
	overlap := len(block) - granularity
	for overlap > 0 && !equalRun(p[len(p)-overlap:], block[:overlap]) {
		overlap -= granularity
	}
	if overlap < 0 {
		overlap = 0
	}
	return overlap
}

func getAllSameOverlap(p []int32, value int32, blockLength, granularity int) int {
	min := len(p) - (blockLength - granularity)
	i := len(p)
	for i > min && p[i-1] == value {
		i--
	}
	overlap := len(p) - i
	return overlap &^ (granularity - 1)
}
