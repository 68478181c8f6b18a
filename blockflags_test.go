// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockTable_NewHasMarginPastLen(t *testing.T) {
	t.Parallel()

	tbl := newBlockTable(10)
	require.Equal(t, 10, tbl.len())
	require.Len(t, tbl.state, 10)
	require.Len(t, tbl.index, 10+indexTableMargin)
}

func TestBlockTable_StateTransitions(t *testing.T) {
	t.Parallel()

	tbl := newBlockTable(4)

	tbl.setAllSame(0, 7)
	require.Equal(t, blockAllSame, tbl.state[0])
	require.EqualValues(t, 7, tbl.index[0])

	tbl.setMixed(1, 128)
	require.Equal(t, blockMixed, tbl.state[1])
	require.EqualValues(t, 128, tbl.index[1])

	tbl.setSameAs(2, 1)
	require.Equal(t, blockSameAs, tbl.state[2])
	require.EqualValues(t, 1, tbl.index[2])

	tbl.setMoved(3, 256)
	require.Equal(t, blockMoved, tbl.state[3])
	require.EqualValues(t, 256, tbl.index[3])
}

func TestBlockTable_SuppDataBitIsOrthogonalToState(t *testing.T) {
	t.Parallel()

	tbl := newBlockTable(3)
	tbl.setAllSame(0, 5)

	require.False(t, tbl.isSuppData(0))
	tbl.markSuppData(0)
	require.True(t, tbl.isSuppData(0))
	// Marking the SUPP_DATA bit must not disturb the block's state/value.
	require.Equal(t, blockAllSame, tbl.state[0])
	require.EqualValues(t, 5, tbl.index[0])

	require.False(t, tbl.isSuppData(1))
}

func TestBlockTable_CloneIsIndependentAndPreservesSuppBits(t *testing.T) {
	t.Parallel()

	tbl := newBlockTable(4)
	tbl.setAllSame(0, 1)
	tbl.setMixed(1, 64)
	tbl.markSuppData(1)

	clone := tbl.clone(2)
	require.Equal(t, blockAllSame, clone.state[0])
	require.Equal(t, blockMixed, clone.state[1])
	require.True(t, clone.isSuppData(1))
	require.False(t, clone.isSuppData(0))

	// Mutating the clone must not affect the original.
	clone.setAllSame(0, 99)
	require.EqualValues(t, 1, tbl.index[0])
	require.EqualValues(t, 99, clone.index[0])
}
