// elCall: a high-throughput toolkit for nanopore read processing.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elcall/blob/master/LICENSE.txt>.

package stats

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMergeAndSum(t *testing.T) {
	s := make(NamedStats)
	s.Merge("writer", NamedStats{"total": 10, "unmapped": 10})
	s.Merge("demuxer", NamedStats{"total": 5})
	s.Merge("", NamedStats{"elapsed_ms": 3})

	assert.Equal(t, NamedStats{
		"writer.total":    10,
		"writer.unmapped": 10,
		"demuxer.total":   5,
		"elapsed_ms":      3,
	}, s)
	assert.Equal(t, float64(15), s.Sum("total"))
	assert.Equal(t, []string{"demuxer.total", "elapsed_ms", "writer.total", "writer.unmapped"}, s.Keys())
}

func TestSplitKey(t *testing.T) {
	stage, counter := SplitKey("classifier.num_barcodes_demuxed")
	assert.Equal(t, "classifier", stage)
	assert.Equal(t, "num_barcodes_demuxed", counter)

	stage, counter = SplitKey("elapsed_ms")
	assert.Equal(t, "", stage)
	assert.Equal(t, "elapsed_ms", counter)
}

func TestCollectSkipsUnnamed(t *testing.T) {
	reporters := []Reporter{
		func() (string, NamedStats) { return "a", NamedStats{"x": 1} },
		func() (string, NamedStats) { return "", NamedStats{"y": 2} },
	}
	assert.Equal(t, NamedStats{"a.x": 1}, Collect(reporters))
}

func TestSamplerCallsCallables(t *testing.T) {
	var counter atomic.Int64
	reporters := []Reporter{func() (string, NamedStats) {
		return "node", NamedStats{"count": float64(counter.Add(1))}
	}}

	var mu sync.Mutex
	var seen []NamedStats
	sampler := NewSampler(time.Millisecond, reporters, []Callable{func(s NamedStats) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	}})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 3
	}, 5*time.Second, time.Millisecond)
	sampler.Terminate()
	sampler.Terminate()

	mu.Lock()
	n := len(seen)
	for _, s := range seen {
		assert.Contains(t, s, "node.count")
		assert.Contains(t, s, ElapsedKey)
	}
	mu.Unlock()

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, n, len(seen), "no samples after Terminate")
	mu.Unlock()

	snapshot := sampler.Snapshot()
	assert.Contains(t, snapshot, "node.count")
}

func TestSamplerSurvivesPanickingCallable(t *testing.T) {
	var calls atomic.Int64
	sampler := NewSampler(time.Millisecond, nil, []Callable{
		func(NamedStats) { panic("boom") },
		func(NamedStats) { calls.Add(1) },
	})
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 5*time.Second, time.Millisecond)
	sampler.Terminate()
}

func TestPrometheusCallable(t *testing.T) {
	reg := prometheus.NewRegistry()
	callable, err := NewPrometheusCallable(reg, "elcall")
	require.NoError(t, err)

	callable(NamedStats{"writer.total": 7, "elapsed_ms": 12})

	expected := `
# HELP elcall_pipeline_counter Latest value of a pipeline stage counter
# TYPE elcall_pipeline_counter gauge
elcall_pipeline_counter{counter="elapsed_ms",stage=""} 12
elcall_pipeline_counter{counter="total",stage="writer"} 7
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "elcall_pipeline_counter"))

	_, err = NewPrometheusCallable(reg, "elcall")
	assert.Error(t, err, "duplicate registration")
}

func TestLogCallableIsThrottled(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	callable := NewLogCallable(zap.New(core), time.Hour)
	for i := 0; i < 10; i++ {
		callable(NamedStats{"writer.total": float64(i)})
	}
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "pipeline stats", entry.Message)
	assert.Equal(t, float64(0), entry.ContextMap()["writer.total"])
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, WriteJSON(path, NamedStats{"b.y": 2, "a.x": 1.5}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(data), "a.x"), strings.Index(string(data), "b.y"))

	var back map[string]float64
	require.NoError(t, sonic.Unmarshal(data, &back))
	assert.Equal(t, map[string]float64{"a.x": 1.5, "b.y": 2}, back)
}

func TestProgressTracker(t *testing.T) {
	var out strings.Builder
	tracker := NewProgressTracker(&out, 0, true)
	tracker.Update(NamedStats{"BarcodeDemuxerNode.demuxed_reads": 7, "BarcodeClassifierNode.unclassified": 2})
	assert.Equal(t, "\r> Output records written: 7", out.String())
	assert.Equal(t, int64(7), tracker.Written())

	core, logs := observer.New(zap.InfoLevel)
	defer zap.ReplaceGlobals(zap.New(core))()
	tracker.Update(NamedStats{
		"BarcodeDemuxerNode.demuxed_reads":           10,
		"BarcodeClassifierNode.num_barcodes_demuxed": 8,
		"BarcodeClassifierNode.unclassified":         2,
	})
	tracker.Summarize(2 * time.Second)
	assert.True(t, strings.HasSuffix(out.String(), "\r\033[K"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(10), entries[0].ContextMap()["reads_written"])
	assert.Equal(t, float64(5), entries[0].ContextMap()["reads_per_second"])
	assert.Equal(t, int64(8), entries[1].ContextMap()["classified"])
}

func TestProgressTrackerPercentage(t *testing.T) {
	var out strings.Builder
	tracker := NewProgressTracker(&out, 200, true)
	tracker.Update(NamedStats{"HtsWriter.written": 50})
	tracker.Update(NamedStats{"HtsWriter.written": 51})
	tracker.Update(NamedStats{"HtsWriter.written": 400})
	assert.Equal(t, "\r> Progress:  25%\033[K\r> Progress: 100%\033[K", out.String())

	var quiet strings.Builder
	tracker = NewProgressTracker(&quiet, 0, false)
	tracker.Update(NamedStats{"HtsWriter.written": 50})
	tracker.Summarize(0)
	assert.Empty(t, quiet.String())
}
