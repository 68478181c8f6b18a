// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

// compactIndex2 compacts the supplementary portion of the per-block
// index array (spec.md §4.3.5). Each block.index[i] entry for
// i in [bmpILimit, iLimit) is by now a final blockMoved data offset —
// treated here as one "index-2 entry" — and this pass deduplicates
// and overlaps runs of index2BlockLength of them exactly the way
// compactData deduplicates and overlaps runs of data values, just at
// granularity 1 (index-2 entries are always 16-bit, unshifted until
// serialization time).
//
// index1 receives, per supplementary index-1 slot, the final start
// offset of that slot's index-2 block, already adjusted by the space
// that will be reserved for the index-1 table itself once it is
// spliced between the BMP and supplementary index-2 regions at
// serialization time.
//
// Writes happen in place on b.blocks.index: newStart never runs ahead
// of start, since compaction can only shrink or preserve the region.
//
// Two lengths come out of this pass, and they differ by offset (the
// index-1 table's eventual size): physicalLength is how many entries
// of b.blocks.index actually hold compacted index-2 data — this is
// what Freeze must slice the array to. indexLength is the *final*
// length once the index-1 table is spliced in at serialize time (used
// for the header field and the I4 bounds check); it is never a valid
// slice bound on b.blocks.index itself.
func (b *Builder) compactIndex2(suppHighStart int32, dataNullOffset int32, dataNullIndex int32) (indexLength, physicalLength int, index1 []int32, index2NullOffset int32) {
	if suppHighStart <= bmpLimit {
		return bmpILimit, bmpILimit, nil, noIndex2NullOffset
	}

	index := b.blocks.index
	iLimit := int(suppHighStart >> shift2)

	start := bmpILimit
	newStart := bmpILimit
	offset := int(suppHighStart-bmpLimit) >> shift1
	nullOffset := int32(noIndex2NullOffset)

	index1Length := int(suppHighStart-bmpLimit) >> shift1
	index1 = make([]int32, index1Length)

	for start < iLimit {
		block := index[start : start+index2BlockLength]

		var i2 int32
		switch {
		case nullOffset >= 0 && allValuesSame(block, dataNullOffset):
			i2 = nullOffset

		default:
			if n := findSameBlock(index[:bmpILimit], block, 1); n >= 0 {
				i2 = int32(n)
			} else if n := findSameBlock(index[bmpILimit:newStart], block, 1); n >= 0 {
				i2 = int32(bmpILimit + offset + n)
			} else {
				var overlap int
				if newStart == bmpILimit {
					overlap = 0
				} else {
					overlap = getOverlap(index[bmpILimit:newStart], block, 1)
				}
				i2 = int32(offset + newStart - overlap)
				if overlap > 0 || newStart != start {
					for k := overlap; k < index2BlockLength; k++ {
						index[newStart] = index[start+k]
						newStart++
					}
				} else {
					newStart += index2BlockLength
				}
			}

			// i2 addresses either the BMP region directly (i2 <
			// bmpILimit, physical position == i2) or the supplementary
			// region logically shifted by offset (physical position ==
			// i2-offset) — the same duality the runtime lookup in
			// frozen.go resolves. Only look at the physical bytes once
			// that's been undone.
			physical := int(i2)
			if i2 >= bmpILimit {
				physical -= offset
			}
			if nullOffset < 0 && dataNullIndex >= 0 && physical >= 0 && physical+index2BlockLength <= len(index) &&
				allValuesSame(index[physical:physical+index2BlockLength], dataNullOffset) {
				nullOffset = i2
			}
		}

		index1[(start>>shift1_2)-omittedBMPIndex1Length] = i2
		start += index2BlockLength
	}

	index2NullOffset = nullOffset

	length := newStart + offset
	for length&((dataGranularity-1)|1) != 0 {
		index[newStart] = indexPaddingFill
		newStart++
		length++
	}

	return length, newStart, index1, index2NullOffset
}
