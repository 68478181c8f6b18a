// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllValuesSame(t *testing.T) {
	t.Parallel()

	require.True(t, allValuesSame(nil, 7))
	require.True(t, allValuesSame([]int32{7, 7, 7}, 7))
	require.False(t, allValuesSame([]int32{7, 7, 8}, 7))
}

func TestEqualRun(t *testing.T) {
	t.Parallel()

	require.True(t, equalRun([]int32{1, 2, 3}, []int32{1, 2, 3}))
	require.False(t, equalRun([]int32{1, 2, 3}, []int32{1, 2, 4}))
	require.False(t, equalRun([]int32{1, 2}, []int32{1, 2, 3}))
}

// Two identical repeated ranges set far apart should fold their mixed
// data blocks onto one another during Freeze, without changing any
// looked-up value.
func TestFreeze_DedupsIdenticalMixedBlocks(t *testing.T) {
	t.Parallel()

	b := Open(0, 0xBAD)
	for i := int32(0); i < dataBlockLength; i++ {
		require.NoError(t, b.Set(0x1000+i, i%5))
		require.NoError(t, b.Set(0x2000+i, i%5))
	}

	frozen, err := b.Freeze(Bits16)
	require.NoError(t, err)

	for i := int32(0); i < dataBlockLength; i++ {
		require.EqualValuesf(t, i%5, frozen.Get(0x1000+i), "cp=%#x", 0x1000+i)
		require.EqualValuesf(t, i%5, frozen.Get(0x2000+i), "cp=%#x", 0x2000+i)
	}
}
