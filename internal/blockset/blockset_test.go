// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package blockset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_ZeroValueIsReadyToUse(t *testing.T) {
	t.Parallel()

	var s Set
	require.False(t, s.Test(0))
	require.False(t, s.Test(41))

	s.Set(41)
	require.True(t, s.Test(41))
	require.False(t, s.Test(40))
}

func TestSet_ClearAndClearAll(t *testing.T) {
	t.Parallel()

	s := New(8)
	s.Set(1)
	s.Set(3)
	require.True(t, s.Test(1))

	s.Clear(1)
	require.False(t, s.Test(1))
	require.True(t, s.Test(3))

	s.ClearAll()
	require.False(t, s.Test(3))
}

func TestSet_ClearOnZeroValueIsNoop(t *testing.T) {
	t.Parallel()

	var s Set
	require.NotPanics(t, func() {
		s.Clear(5)
		s.ClearAll()
	})
}

func TestSet_GrowsPastInitialCapacity(t *testing.T) {
	t.Parallel()

	s := New(4)
	s.Set(100)
	require.True(t, s.Test(100))
}
