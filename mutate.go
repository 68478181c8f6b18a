// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

// Set writes v for a single code point (spec.md §4.2).
func (b *Builder) Set(cp int32, v int32) error {
	if b.frozen {
		return newErr("Set", KindNoWritePermission, "")
	}
	if cp < 0 || cp > maxUnicode {
		return newErr("Set", KindIllegalArgument, "code point %d out of range", cp)
	}
	b.ensureHighStart(cp)
	offset, err := b.getDataBlock(cp)
	if err != nil {
		return err
	}
	b.data[int(offset)+int(cp&(dataBlockLength-1))] = v
	return nil
}

// SetRange writes v for every code point in [lo,hi] (inclusive). When
// overwrite is false, only code points currently holding initialValue
// are changed (spec.md §4.2).
func (b *Builder) SetRange(lo, hi int32, v int32, overwrite bool) error {
	if b.frozen {
		return newErr("SetRange", KindNoWritePermission, "")
	}
	if lo < 0 || hi > maxUnicode || lo > hi {
		return newErr("SetRange", KindIllegalArgument, "invalid range [%d,%d]", lo, hi)
	}
	if !overwrite && v == b.initialValue {
		return nil
	}

	b.ensureHighStart(hi)

	limit := hi + 1

	// Phase (a): suffix of the first block, if lo is mid-block.
	if lo&(dataBlockLength-1) != 0 {
		firstBlockLimit := (lo + dataBlockLength) &^ (dataBlockLength - 1)
		if firstBlockLimit > limit {
			firstBlockLimit = limit
		}
		if err := b.writePartialBlock(lo, firstBlockLimit, v, overwrite); err != nil {
			return err
		}
		lo = firstBlockLimit
	}

	// Phase (b): whole blocks.
	for lo < limit && limit-lo >= dataBlockLength {
		i := int(lo >> shift2)
		switch b.blocks.state[i] {
		case blockAllSame:
			cur := b.blocks.index[i]
			if overwrite || cur == b.initialValue {
				b.blocks.setAllSame(i, v)
			}
		case blockMixed:
			offset := b.blocks.index[i]
			for k := 0; k < dataBlockLength; k++ {
				slot := int(offset) + k
				if overwrite || b.data[slot] == b.initialValue {
					b.data[slot] = v
				}
			}
		default:
			return newErr("SetRange", KindIllegalArgument, "unexpected block state at %d", i)
		}
		lo += dataBlockLength
	}

	// Phase (c): prefix of the last block, if limit is mid-block.
	if lo < limit {
		if err := b.writePartialBlock(lo, limit, v, overwrite); err != nil {
			return err
		}
	}

	return nil
}

// writePartialBlock forces the block containing [lo,limit) to blockMixed
// and writes v into the given sub-range, respecting overwrite.
func (b *Builder) writePartialBlock(lo, limit int32, v int32, overwrite bool) error {
	offset, err := b.getDataBlock(lo)
	if err != nil {
		return err
	}
	base := lo &^ (dataBlockLength - 1)
	for cp := lo; cp < limit; cp++ {
		slot := int(offset) + int(cp-base)
		if overwrite || b.data[slot] == b.initialValue {
			b.data[slot] = v
		}
	}
	return nil
}

// Get returns the value stored for cp, or errorValue if cp is outside
// [0, 0x10FFFF] (spec.md §4.2). After a successful Freeze, Get delegates
// to the frozen trie, since Freeze releases the builder's own arrays.
func (b *Builder) Get(cp int32) int32 {
	if b.frozen {
		return b.frozenTrie.Get(cp)
	}
	if cp < 0 || cp > maxUnicode {
		return b.errorValue
	}
	if cp >= b.highStart {
		// pre-freeze, everything at/above highStart is still
		// initialValue: highStart only ever grows to cover explicit
		// writes.
		return b.initialValue
	}
	i := int(cp >> shift2)
	switch b.blocks.state[i] {
	case blockAllSame:
		return b.blocks.index[i]
	case blockMixed:
		return b.data[int(b.blocks.index[i])+int(cp&(dataBlockLength-1))]
	default:
		return b.errorValue
	}
}

// RangeMapper optionally post-processes the value returned by GetRange.
// NullValue replaces every value equal to the trie's initialValue before
// Map is applied, without changing the trie's own initialValue (spec.md
// §4.2, SPEC_FULL.md supplemented feature #1). Code points explicitly
// set to initialValue and code points never set are treated alike.
type RangeMapper struct {
	NullValue int32
	Map       func(v int32) int32
}

func (m *RangeMapper) apply(initialValue, v int32) int32 {
	if m == nil {
		return v
	}
	if v == initialValue {
		v = m.NullValue
	}
	if m.Map != nil {
		v = m.Map(v)
	}
	return v
}

// GetRange returns the largest end such that mapper(Get(cp)) is constant
// over [start,end], along with that mapped value. end is maxUnicode if
// the run extends to the end of Unicode, or -1 if start is out of range
// (spec.md §4.2).
func (b *Builder) GetRange(start int32, mapper *RangeMapper) (end int32, value int32) {
	if b.frozen {
		return b.frozenTrie.GetRange(start, mapper)
	}
	if start < 0 || start > maxUnicode {
		return -1, 0
	}

	value = mapper.apply(b.initialValue, b.Get(start))
	cp := start

	for cp <= maxUnicode {
		if cp >= b.highStart {
			// Uniform initialValue from here to the end of Unicode.
			v := mapper.apply(b.initialValue, b.initialValue)
			if v != value {
				return cp - 1, value
			}
			return maxUnicode, value
		}

		i := int(cp >> shift2)
		switch b.blocks.state[i] {
		case blockAllSame:
			v := mapper.apply(b.initialValue, b.blocks.index[i])
			if v != value {
				return cp - 1, value
			}
			cp = (cp &^ (dataBlockLength - 1)) + dataBlockLength

		case blockMixed:
			offset := b.blocks.index[i]
			base := cp &^ (dataBlockLength - 1)
			for ; cp < base+dataBlockLength && cp <= maxUnicode; cp++ {
				v := mapper.apply(b.initialValue, b.data[int(offset)+int(cp-base)])
				if v != value {
					return cp - 1, value
				}
			}

		default:
			return cp - 1, value
		}
	}

	return maxUnicode, value
}
