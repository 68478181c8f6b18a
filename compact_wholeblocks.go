// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

import "github.com/gaissmai/cptrie/internal/metrics"

// compactWholeDataBlocks is the first compaction pass (spec.md §4.3.3):
// demote fully-uniform mixed blocks to blockAllSame, then deduplicate
// whole blocks — mixed blocks against earlier byte-identical mixed
// blocks, all-same blocks against the AllSameBlocks cache (falling back
// to a full scan on cache overflow). Returns an upper bound on the
// number of data-array slots the surviving unique blocks will need, and
// records dataNullIndex, the block index of the most-referenced
// all-same value.
func (b *Builder) compactWholeDataBlocks(iLimit int) (newDataLength int, dataNullIndex int32) {
	var cache allSameBlocks

	for i := 0; i < iLimit; i++ {
		value := b.blocks.index[i]

		if b.blocks.state[i] == blockMixed {
			offset := int(value)
			block := b.data[offset : offset+dataBlockLength]
			value = block[0]
			if allValuesSame(block[1:], value) {
				b.blocks.setAllSame(i, value)
				// fall through to the blockAllSame handling below.
			} else {
				j := b.findEqualMixedBlock(block, i)
				if j >= 0 {
					if i >= bmpILimit {
						b.blocks.markSuppData(j)
					}
					b.blocks.setSameAs(i, j)
					metrics.IncBlocksDeduped(1)
					continue
				}
				newDataLength += dataBlockLength
				continue
			}
		}

		result, other := cache.findOrAdd(value, int32(i))
		switch result {
		case allSameBlockNewUnique:
			newDataLength += dataBlockLength
			continue
		case allSameBlockOverflow:
			// Cache was full: fall back to a full scan for a duplicate
			// blockAllSame block with this exact value.
			found := int32(-1)
			for j := 0; j < i; j++ {
				if b.blocks.state[j] == blockAllSame && b.blocks.index[j] == value {
					found = int32(j)
					break
				}
			}
			if found < 0 {
				cache.add(value, int32(i))
				newDataLength += dataBlockLength
				continue
			}
			cache.add(value, found)
			other = found
		}
		if i >= bmpILimit {
			b.blocks.markSuppData(int(other))
		}
		b.blocks.setSameAs(i, int(other))
		metrics.IncBlocksDeduped(1)
	}

	dataNullIndex = cache.mostReferenced()
	return newDataLength, dataNullIndex
}

// findEqualMixedBlock searches blocks [0,i) for an earlier blockMixed
// block whose dataBlockLength values are byte-identical to block.
func (b *Builder) findEqualMixedBlock(block []int32, i int) int {
	for j := 0; j < i; j++ {
		if b.blocks.state[j] != blockMixed {
			continue
		}
		offset := int(b.blocks.index[j])
		if equalRun(b.data[offset:offset+dataBlockLength], block) {
			return j
		}
	}
	return -1
}

func allValuesSame(p []int32, value int32) bool {
	for _, v := range p {
		if v != value {
			return false
		}
	}
	return true
}

func equalRun(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
