// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestIncBlocksDeduped_AccumulatesAcrossCalls(t *testing.T) {
	before := testutil.ToFloat64(blocksDeduped)

	IncBlocksDeduped(3)
	IncBlocksDeduped(2)

	require.Equal(t, before+5, testutil.ToFloat64(blocksDeduped))
}

func TestObserveFreezeDuration_RecordsAtLeastOneSample(t *testing.T) {
	countBefore := freezeSampleCount(t)

	stop := ObserveFreezeDuration()
	stop()

	require.Equal(t, countBefore+1, freezeSampleCount(t))
}

// freezeSampleCount reads the freeze-duration histogram's sample count
// from the default registry, where register puts it; 0 before the
// first registration.
func freezeSampleCount(t *testing.T) uint64 {
	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "cptrie_build_freeze_duration_seconds" {
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func TestObserveBuildStats_SetsGauges(t *testing.T) {
	ObserveBuildStats(4096, 1280)

	require.Equal(t, float64(4096), testutil.ToFloat64(dataLength))
	require.Equal(t, float64(1280), testutil.ToFloat64(indexLength))
}
