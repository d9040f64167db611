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

// Package stats collects named numeric counters from running pipeline
// stages and forwards them to reporters such as a progress display, a
// Prometheus registry or the log.
package stats

import (
	"sort"
	"strings"
)

// NamedStats maps counter names to values. Counters of one pipeline
// stage are plain names like "reads_called"; once merged for the whole
// pipeline they are prefixed with the stage name, as in
// "basecaller.reads_called".
type NamedStats map[string]float64

// A Reporter returns the name of a stage and a snapshot of its
// counters. An empty name excludes the stage from aggregation.
type Reporter func() (string, NamedStats)

// A Callable consumes a merged snapshot.
type Callable func(NamedStats)

// Merge copies the counters of other into s, prefixing each key with
// prefix and a dot. An empty prefix copies the keys unchanged.
func (s NamedStats) Merge(prefix string, other NamedStats) {
	for key, value := range other {
		if prefix != "" {
			key = prefix + "." + key
		}
		s[key] = value
	}
}

// Keys returns the counter names in sorted order.
func (s NamedStats) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of s.
func (s NamedStats) Clone() NamedStats {
	result := make(NamedStats, len(s))
	for key, value := range s {
		result[key] = value
	}
	return result
}

// Sum adds up the values of every key ending in "."+counter, which
// totals one counter across all stages that publish it.
func (s NamedStats) Sum(counter string) (total float64) {
	suffix := "." + counter
	for key, value := range s {
		if key == counter || strings.HasSuffix(key, suffix) {
			total += value
		}
	}
	return total
}

// SplitKey splits a merged key into its stage name and counter name.
// Keys without a stage prefix return an empty stage name.
func SplitKey(key string) (stage, counter string) {
	if i := strings.IndexByte(key, '.'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}

// Collect calls every reporter once and merges their counters.
func Collect(reporters []Reporter) NamedStats {
	result := make(NamedStats)
	for _, reporter := range reporters {
		name, counters := reporter()
		if name == "" {
			continue
		}
		result.Merge(name, counters)
	}
	return result
}
