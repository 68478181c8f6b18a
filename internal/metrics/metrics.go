// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package metrics exposes prometheus collectors for the trie build and
// freeze pipeline: how long freezing took, and how large the resulting
// serialized layout turned out to be. Registration happens against the
// default registry lazily, on first use, so importing cptrie never
// requires a caller to wire up prometheus unless they actually scrape
// it (via cmd/cptriectl's serve-metrics command).
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	freezeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cptrie",
		Subsystem: "build",
		Name:      "freeze_duration_seconds",
		Help:      "Time spent compacting a trie in Builder.Freeze.",
		Buckets:   prometheus.DefBuckets,
	})

	dataLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cptrie",
		Subsystem: "build",
		Name:      "data_length",
		Help:      "Number of entries in the most recently frozen trie's data array.",
	})

	indexLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cptrie",
		Subsystem: "build",
		Name:      "index_length",
		Help:      "Number of 16-bit entries in the most recently frozen trie's index array.",
	})

	blocksDeduped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cptrie",
		Subsystem: "build",
		Name:      "blocks_deduped_total",
		Help:      "Number of data blocks folded onto an earlier byte-identical block during compaction.",
	})
)

func register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(freezeDuration, dataLength, indexLength, blocksDeduped)
	})
}

// IncBlocksDeduped records n blocks folded onto an earlier identical
// block during a compaction pass (SPEC_FULL.md supplemented feature #2).
func IncBlocksDeduped(n int) {
	register()
	blocksDeduped.Add(float64(n))
}

// ObserveFreezeDuration starts a timer and returns a function that
// records the elapsed time when called, meant to be used with defer:
//
//	stop := metrics.ObserveFreezeDuration()
//	defer stop()
func ObserveFreezeDuration() func() {
	register()
	start := time.Now()
	return func() {
		freezeDuration.Observe(time.Since(start).Seconds())
	}
}

// ObserveBuildStats records the final sizes of a frozen trie's index
// and data arrays.
func ObserveBuildStats(dataLen, indexLen int) {
	register()
	dataLength.Set(float64(dataLen))
	indexLength.Set(float64(indexLen))
}
