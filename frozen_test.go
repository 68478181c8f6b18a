// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// P4: serialize then re-load agrees with the frozen trie for every
// probed code point, across both value widths and a supplementary
// range so the index-1 decode path in Load is exercised too.
func TestSerializeLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := map[string]ValueBits{"Bits16": Bits16, "Bits32": Bits32}
	for name, vb := range cases {
		vb := vb
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := Open(0, 0xBAD)
			require.NoError(t, b.SetRange(0, 0x2F, 1, true))
			require.NoError(t, b.Set(0x41, 2))
			require.NoError(t, b.SetRange(0x10000, 0x107FF, 3, true))
			require.NoError(t, b.SetRange(0x20000, 0x2FFFF, 4, true))

			frozen, err := b.Freeze(vb)
			require.NoError(t, err)

			buf := frozen.Serialize()
			loaded, err := Load(buf)
			require.NoError(t, err)

			probes := []int32{-1, 0, 0x10, 0x2F, 0x30, 0x41, 0x42,
				0x10000, 0x10100, 0x107FF, 0x10800,
				0x20000, 0x28000, 0x2FFFF, 0x30000,
				maxUnicode, 0x110000}
			for _, cp := range probes {
				require.EqualValuesf(t, frozen.Get(cp), loaded.Get(cp), "cp=%#x", cp)
			}
			require.Equal(t, frozen.HighStart(), loaded.HighStart())
			require.Equal(t, frozen.HighValue(), loaded.HighValue())
			require.Equal(t, frozen.ErrorValue(), loaded.ErrorValue())
		})
	}
}

// Scenario 6: two tries differing only in one code point's value should
// serialize to byte strings that differ only in the bytes encoding that
// value.
func TestSerialize_DifferByOneValue(t *testing.T) {
	t.Parallel()

	build := func(v int32) []byte {
		b := Open(0, 0xBAD)
		require.NoError(t, b.Set(0x1234, v))
		frozen, err := b.Freeze(Bits16)
		require.NoError(t, err)
		return frozen.Serialize()
	}

	a := build(100)
	c := build(200)
	require.Len(t, a, len(c))

	diffs := 0
	for i := range a {
		if a[i] != c[i] {
			diffs++
		}
	}
	require.NotZero(t, diffs)
	// Only the one 16-bit data slot encoding the differing value should
	// change; everything else (header, index, every other data slot) is
	// identical.
	require.LessOrEqual(t, diffs, 2)
}

func TestLoad_RejectsBadSignature(t *testing.T) {
	t.Parallel()

	buf := make([]byte, headerSize)
	_, err := Load(buf)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoad_RejectsShortBuffer(t *testing.T) {
	t.Parallel()

	_, err := Load(make([]byte, 4))
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoad_RejectsBadValueBitsCode(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	frozen, err := b.Freeze(Bits16)
	require.NoError(t, err)
	buf := frozen.Serialize()

	// Corrupt the low 12 bits of the options field (valueBits code) to
	// an out-of-range value.
	buf[4] = 0x0F
	buf[5] = 0x0F

	_, err = Load(buf)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestFrozen_Close(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	frozen, err := b.Freeze(Bits16)
	require.NoError(t, err)
	require.NoError(t, frozen.Close())
	require.NoError(t, frozen.Close())
}
