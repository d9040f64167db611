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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagged(tag uint64) *ReadPtr {
	return NewReadPtr(&Read{ReadTag: tag})
}

func tagOf(t *testing.T, msg Message) uint64 {
	ptr, ok := msg.(*ReadPtr)
	require.True(t, ok, "unexpected message kind %v", Kind(msg))
	return ptr.Read().ReadTag
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(8)
	for i := uint64(0); i < 8; i++ {
		require.Equal(t, Success, q.Push(tagged(i)))
	}
	for i := uint64(0); i < 8; i++ {
		msg, status := q.TryPop()
		require.Equal(t, Success, status)
		assert.Equal(t, i, tagOf(t, msg))
	}
}

func TestQueueBlocksWhenFull(t *testing.T) {
	q := NewQueue(1)
	require.Equal(t, Success, q.Push(tagged(0)))

	pushed := make(chan Status)
	go func() { pushed <- q.Push(tagged(1)) }()

	select {
	case <-pushed:
		t.Fatal("push on a full queue did not block")
	case <-time.After(20 * time.Millisecond):
	}

	msg, status := q.TryPop()
	require.Equal(t, Success, status)
	assert.Equal(t, uint64(0), tagOf(t, msg))
	assert.Equal(t, Success, <-pushed)

	msg, _ = q.TryPop()
	assert.Equal(t, uint64(1), tagOf(t, msg))
}

func TestQueueTerminateDrains(t *testing.T) {
	q := NewQueue(4)
	q.Push(tagged(0))
	q.Push(tagged(1))
	q.Terminate()

	assert.Equal(t, Terminated, q.Push(tagged(2)), "push after terminate must be rejected")

	msg, status := q.TryPop()
	require.Equal(t, Success, status)
	assert.Equal(t, uint64(0), tagOf(t, msg))
	msg, status = q.TryPop()
	require.Equal(t, Success, status)
	assert.Equal(t, uint64(1), tagOf(t, msg))
	_, status = q.TryPop()
	assert.Equal(t, Terminated, status)
}

func TestQueueTerminateWakesBlockedCallers(t *testing.T) {
	full := NewQueue(1)
	full.Push(tagged(0))
	empty := NewQueue(1)

	var wg sync.WaitGroup
	results := make([]Status, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0] = full.Push(tagged(1))
	}()
	go func() {
		defer wg.Done()
		_, results[1] = empty.TryPop()
	}()
	time.Sleep(10 * time.Millisecond)
	full.Terminate()
	empty.Terminate()
	wg.Wait()

	assert.Equal(t, []Status{Terminated, Terminated}, results)
	assert.Equal(t, float64(1), full.Stats()["queue_size"], "a refused push does not enqueue")
}

func TestQueueTerminateAndDiscard(t *testing.T) {
	q := NewQueue(4)
	q.Push(tagged(0))
	q.Push(tagged(1))
	q.Push(tagged(2))
	assert.Equal(t, 3, q.TerminateAndDiscard())
	_, status := q.TryPop()
	assert.Equal(t, Terminated, status)

	q.Restart()
	for i := uint64(10); i < 14; i++ {
		require.Equal(t, Success, q.Push(tagged(i)))
	}
	for i := uint64(10); i < 14; i++ {
		msg, _ := q.TryPop()
		assert.Equal(t, i, tagOf(t, msg))
	}
}

func TestQueueRestart(t *testing.T) {
	q := NewQueue(2)
	q.Terminate()
	assert.True(t, q.IsTerminated())
	assert.Equal(t, Terminated, q.Push(tagged(0)))
	q.Restart()
	assert.False(t, q.IsTerminated())
	assert.Equal(t, Success, q.Push(tagged(1)))
	msg, status := q.TryPop()
	require.Equal(t, Success, status)
	assert.Equal(t, uint64(1), tagOf(t, msg))
}

func TestQueueStats(t *testing.T) {
	q := NewQueue(3)
	q.Push(tagged(0))
	q.Push(tagged(1))
	q.TryPop()
	s := q.Stats()
	assert.Equal(t, float64(2), s["queue_pushes"])
	assert.Equal(t, float64(1), s["queue_pops"])
	assert.Equal(t, float64(1), s["queue_size"])
	assert.Equal(t, float64(3), s["queue_capacity"])
}

func TestQueueManyProducersAndConsumers(t *testing.T) {
	const producers, perProducer = 8, 500
	q := NewQueue(16)

	var consumers sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[uint64]int)
	for i := 0; i < 4; i++ {
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			for {
				msg, status := q.TryPop()
				if status != Success {
					return
				}
				tag := msg.(*ReadPtr).Read().ReadTag
				mu.Lock()
				seen[tag]++
				mu.Unlock()
			}
		}()
	}

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(tagged(uint64(p*perProducer + i)))
			}
		}(p)
	}
	wg.Wait()
	q.Terminate()
	consumers.Wait()

	assert.Len(t, seen, producers*perProducer)
	for tag, count := range seen {
		assert.Equal(t, 1, count, "tag %v", tag)
	}
}

func TestNewQueuePanicsOnZeroCapacity(t *testing.T) {
	assert.Panics(t, func() { NewQueue(0) })
}
