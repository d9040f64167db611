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
	"sync"
	"time"

	"go.uber.org/zap"
)

// ElapsedKey is the counter a Sampler adds to every snapshot, holding
// the milliseconds since the sampler started.
const ElapsedKey = "elapsed_ms"

// A Sampler polls a set of reporters on its own goroutine at a fixed
// period and hands each merged snapshot to a set of callables. It
// only reads counters that stages already publish, so it never blocks
// message processing.
type Sampler struct {
	period    time.Duration
	reporters []Reporter
	callables []Callable
	start     time.Time

	mu   sync.Mutex
	done chan struct{}
	wait sync.WaitGroup
}

// NewSampler starts sampling. The reporter and callable slices are
// copied, so callers may keep appending to their own.
func NewSampler(period time.Duration, reporters []Reporter, callables []Callable) *Sampler {
	s := &Sampler{
		period:    period,
		reporters: append([]Reporter(nil), reporters...),
		callables: append([]Callable(nil), callables...),
		start:     time.Now(),
		done:      make(chan struct{}),
	}
	s.wait.Add(1)
	go s.run()
	return s
}

func (s *Sampler) run() {
	defer s.wait.Done()
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			snapshot := s.Snapshot()
			for _, callable := range s.callables {
				s.call(callable, snapshot)
			}
		}
	}
}

func (s *Sampler) call(callable Callable, snapshot NamedStats) {
	defer func() {
		if x := recover(); x != nil {
			zap.L().Error("stats callable panicked", zap.Any("panic", x))
		}
	}()
	callable(snapshot)
}

// Snapshot polls every reporter once, on the calling goroutine.
func (s *Sampler) Snapshot() NamedStats {
	snapshot := Collect(s.reporters)
	snapshot[ElapsedKey] = float64(time.Since(s.start).Milliseconds())
	return snapshot
}

// Elapsed returns the time since the sampler started.
func (s *Sampler) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Terminate stops the sampling goroutine and waits for it to finish.
// Pipeline stages are not affected. Terminate is idempotent.
func (s *Sampler) Terminate() {
	s.mu.Lock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.mu.Unlock()
	s.wait.Wait()
}
