// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_UnsetCodePointsReadInitialValue(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	require.EqualValues(t, 0xBAD, b.Get(-1))
	require.EqualValues(t, 0xBAD, b.Get(0x110000))
	require.EqualValues(t, 0, b.Get(0))
	require.EqualValues(t, 0, b.Get(0x10FFFF))
}

func TestSet_SingleCodePoints(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	require.NoError(t, b.Set(0x41, 7))
	require.NoError(t, b.Set(0x42, 7))

	require.EqualValues(t, 7, b.Get(0x41))
	require.EqualValues(t, 7, b.Get(0x42))
	require.EqualValues(t, 0, b.Get(0x40))
	require.EqualValues(t, 0, b.Get(0x43))

	end, value := b.GetRange(0x41, nil)
	require.EqualValues(t, 0x42, end)
	require.EqualValues(t, 7, value)
}

func TestSetRange_OverwriteTrue(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	require.NoError(t, b.SetRange(0, 0x7F, 1, true))
	require.NoError(t, b.SetRange(0x80, maxUnicode, 2, true))

	for cp := int32(0); cp <= 0x7F; cp++ {
		require.EqualValuesf(t, 1, b.Get(cp), "cp=%#x", cp)
	}
	require.EqualValues(t, 2, b.Get(0x80))
	require.EqualValues(t, 2, b.Get(maxUnicode))
}

// P7: setRange with overwrite=false only touches slots currently equal
// to initialValue, and repeating it is idempotent.
func TestSetRange_OverwriteFalseOnlyTouchesInitialValue(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	require.NoError(t, b.Set(10, 99))
	require.NoError(t, b.SetRange(0, 20, 5, false))

	require.EqualValues(t, 5, b.Get(0))
	require.EqualValues(t, 99, b.Get(10), "already-set slot must survive overwrite=false")
	require.EqualValues(t, 5, b.Get(20))

	// Idempotent: applying again changes nothing further.
	require.NoError(t, b.SetRange(0, 20, 5, false))
	require.EqualValues(t, 99, b.Get(10))
}

func TestSetRange_SpanningMultipleBlocksAndPartialEdges(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	lo, hi := int32(dataBlockLength-3), int32(dataBlockLength*3+5)
	require.NoError(t, b.SetRange(lo, hi, 42, true))

	for cp := lo - 2; cp < lo; cp++ {
		require.EqualValuesf(t, 0, b.Get(cp), "cp=%#x below range", cp)
	}
	for cp := lo; cp <= hi; cp++ {
		require.EqualValuesf(t, 42, b.Get(cp), "cp=%#x in range", cp)
	}
	require.EqualValues(t, 0, b.Get(hi+1))
}

func TestSet_OutOfRangeIsIllegalArgument(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	err := b.Set(-1, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrIllegalArgument))

	err = b.Set(maxUnicode+1, 1)
	require.True(t, errors.Is(err, ErrIllegalArgument))
}

func TestSetRange_InvalidBoundsIsIllegalArgument(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	err := b.SetRange(10, 5, 1, true)
	require.True(t, errors.Is(err, ErrIllegalArgument))
}

func TestMutation_AfterFreezeIsNoWritePermission(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	_, err := b.Freeze(Bits16)
	require.NoError(t, err)

	require.True(t, errors.Is(b.Set(1, 1), ErrNoWritePermission))
	require.True(t, errors.Is(b.SetRange(1, 2, 1, true), ErrNoWritePermission))
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	require.NoError(t, b.Set(5, 1))

	c, err := b.Clone()
	require.NoError(t, err)
	require.NoError(t, c.Set(5, 2))

	require.EqualValues(t, 1, b.Get(5))
	require.EqualValues(t, 2, c.Get(5))
}

func TestClone_FrozenIsIllegalArgument(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	_, err := b.Freeze(Bits16)
	require.NoError(t, err)

	_, err = b.Clone()
	require.True(t, errors.Is(err, ErrIllegalArgument))
}
