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
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// A ProgressTracker follows the output counters of a pipeline. As a
// Callable it redraws a progress line on an interactive terminal;
// Summarize logs the totals once the pipeline is done.
type ProgressTracker struct {
	out           io.Writer
	expectedReads int
	interactive   bool

	mu           sync.Mutex
	written      float64
	barcoded     float64
	unclassified float64
	lastPercent  int
	drawn        bool
}

// NewProgressTracker returns a tracker that draws on out if
// interactive is true. If expectedReads is positive, progress is shown
// as a percentage of it.
func NewProgressTracker(out io.Writer, expectedReads int, interactive bool) *ProgressTracker {
	return &ProgressTracker{
		out:           out,
		expectedReads: expectedReads,
		interactive:   interactive,
		lastPercent:   -1,
	}
}

// Update takes the counters of a snapshot. It has the signature of a
// Callable.
func (t *ProgressTracker) Update(s NamedStats) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.written = s.Sum("demuxed_reads") + s.Sum("written")
	t.barcoded = s.Sum("num_barcodes_demuxed")
	t.unclassified = s.Sum("unclassified")
	if !t.interactive {
		return
	}
	if t.expectedReads > 0 {
		percent := int(100 * t.written / float64(t.expectedReads))
		if percent > 100 {
			percent = 100
		}
		if percent == t.lastPercent {
			return
		}
		t.lastPercent = percent
		fmt.Fprintf(t.out, "\r> Progress: %3d%%\033[K", percent)
	} else {
		fmt.Fprintf(t.out, "\r> Output records written: %d", int64(t.written))
	}
	t.drawn = true
}

// Written returns the number of output records seen by the last update.
func (t *ProgressTracker) Written() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int64(t.written)
}

// Summarize clears the progress line and logs the totals.
func (t *ProgressTracker) Summarize(elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.drawn {
		fmt.Fprint(t.out, "\r\033[K")
		t.drawn = false
	}
	fields := []zap.Field{
		zap.Int64("reads_written", int64(t.written)),
		zap.Duration("elapsed", elapsed),
	}
	if seconds := elapsed.Seconds(); seconds > 0 {
		fields = append(fields, zap.Float64("reads_per_second", t.written/seconds))
	}
	zap.L().Info("> Finished", fields...)
	if t.barcoded > 0 || t.unclassified > 0 {
		zap.L().Info("> Barcoded",
			zap.Int64("classified", int64(t.barcoded)),
			zap.Int64("unclassified", int64(t.unclassified)))
	}
}
