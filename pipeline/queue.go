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

package pipeline

import (
	"sync"
	"sync/atomic"

	"github.com/exascience/elcall/stats"
)

// Status is the outcome of a queue operation.
type Status int

const (
	// Success means the message was enqueued or dequeued.
	Success Status = iota
	// Terminated means the queue refused the operation because it has
	// been terminated, and for TryPop that nothing is left to drain.
	Terminated
)

func (s Status) String() string {
	if s == Success {
		return "success"
	}
	return "terminated"
}

// A Queue is a bounded multi-producer multi-consumer FIFO of messages
// with an open and a terminated state.
//
// Push blocks while the queue is full, which is how a slow stage
// throttles the stages feeding it. After Terminate, pushes fail
// immediately, while pops keep returning the messages that were
// already enqueued until the queue is empty.
type Queue struct {
	mu         sync.Mutex
	notEmpty   sync.Cond
	notFull    sync.Cond
	ring       []Message
	head, size int
	terminated bool

	pushes    atomic.Uint64
	pops      atomic.Uint64
	published atomic.Int64
}

// NewQueue returns an open queue with the given capacity, which must
// be positive.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		panic("pipeline: queue capacity must be positive")
	}
	q := &Queue{ring: make([]Message, capacity)}
	q.notEmpty.L = &q.mu
	q.notFull.L = &q.mu
	return q
}

// Capacity returns the fixed capacity of q.
func (q *Queue) Capacity() int {
	return len(q.ring)
}

// Push enqueues msg, blocking while the queue is full and open. It
// returns Terminated without enqueuing if the queue is terminated,
// including when that happens while Push is waiting.
func (q *Queue) Push(msg Message) Status {
	q.mu.Lock()
	for q.size == len(q.ring) && !q.terminated {
		q.notFull.Wait()
	}
	if q.terminated {
		q.mu.Unlock()
		return Terminated
	}
	q.ring[(q.head+q.size)%len(q.ring)] = msg
	q.size++
	q.published.Store(int64(q.size))
	q.mu.Unlock()
	q.pushes.Add(1)
	q.notEmpty.Signal()
	return Success
}

// TryPop dequeues the oldest message, blocking while the queue is
// empty and open. Once the queue is terminated it keeps returning
// pending messages and reports Terminated only when none are left.
func (q *Queue) TryPop() (Message, Status) {
	q.mu.Lock()
	for q.size == 0 && !q.terminated {
		q.notEmpty.Wait()
	}
	if q.size == 0 {
		q.mu.Unlock()
		return nil, Terminated
	}
	msg := q.ring[q.head]
	q.ring[q.head] = nil
	q.head = (q.head + 1) % len(q.ring)
	q.size--
	q.published.Store(int64(q.size))
	q.mu.Unlock()
	q.pops.Add(1)
	q.notFull.Signal()
	return msg, Success
}

// Terminate wakes every blocked caller and makes further pushes fail.
// Messages already enqueued stay available to TryPop.
func (q *Queue) Terminate() {
	q.mu.Lock()
	q.terminated = true
	q.mu.Unlock()
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// TerminateAndDiscard terminates the queue and drops every pending
// message. It returns the number of messages dropped. This is meant
// for aborting, not for regular shutdown.
func (q *Queue) TerminateAndDiscard() int {
	q.mu.Lock()
	q.terminated = true
	dropped := q.size
	for ; q.size > 0; q.size-- {
		q.ring[q.head] = nil
		q.head = (q.head + 1) % len(q.ring)
	}
	q.head = 0
	q.published.Store(0)
	q.mu.Unlock()
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
	return dropped
}

// Restart reopens a terminated queue.
func (q *Queue) Restart() {
	q.mu.Lock()
	q.terminated = false
	q.mu.Unlock()
}

// IsTerminated reports whether the queue is terminated.
func (q *Queue) IsTerminated() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.terminated
}

// Stats returns the queue counters. It reads only atomically published
// values and never takes the queue lock.
func (q *Queue) Stats() stats.NamedStats {
	return stats.NamedStats{
		"queue_pushes":   float64(q.pushes.Load()),
		"queue_pops":     float64(q.pops.Load()),
		"queue_size":     float64(q.published.Load()),
		"queue_capacity": float64(len(q.ring)),
	}
}
