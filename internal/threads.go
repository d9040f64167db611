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

package internal

import "runtime"

// WorkerVsWriterThreadAllocation splits a thread budget between
// processing workers and output writers, giving writers the given
// fraction. Both counts are at least 1. A budget of 0 means all
// available CPUs.
func WorkerVsWriterThreadAllocation(threads int, writerFraction float64) (workers, writers int) {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	writers = int(float64(threads) * writerFraction)
	if writers < 1 {
		writers = 1
	}
	workers = threads - writers
	if workers < 1 {
		workers = 1
	}
	return
}
