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
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/exascience/elcall/stats"
)

// FlushOptions control what a node keeps across Terminate.
type FlushOptions struct {
	// PreservePairingCaches keeps per-client caches of reads that are
	// waiting for their partner instead of dropping them.
	PreservePairingCaches bool
}

// DefaultFlushOptions drops all caches.
var DefaultFlushOptions = FlushOptions{}

// A Node is one stage of a pipeline. Concrete stages embed *NodeBase,
// which provides the queue, the workers and the sink wiring, and
// supply Name and SampleStats. A stage with extra state to flush
// overrides Terminate and calls NodeBase.Terminate first.
type Node interface {
	// PushMessage hands msg to the node, blocking while its queue is
	// full. It returns false if the node is terminated, in which case
	// msg is dropped.
	PushMessage(msg Message) bool
	// Terminate stops the node. When it returns, all messages queued
	// before the call have been processed and the node will not send
	// anything to its sinks anymore.
	Terminate(opts FlushOptions)
	// Restart undoes Terminate.
	Restart()
	// Name identifies the node in stats. An empty name excludes the
	// node from stats aggregation.
	Name() string
	// SampleStats returns a snapshot of the counters of the node. It
	// is safe to call at any time.
	SampleStats() stats.NamedStats

	base() *NodeBase
}

type sinkTable struct {
	arena   []Node
	handles []NodeHandle
}

// NodeBase implements the parts of Node that all stages share. Create
// one with NewNodeBase and embed the pointer.
type NodeBase struct {
	name  string
	queue *Queue
	sinks atomic.Pointer[sinkTable]

	mu         sync.Mutex
	workers    sync.WaitGroup
	nWorkers   int
	process    func(Message)
	terminated bool

	panics atomic.Uint64
}

// DefaultQueueSize is the input queue capacity of nodes that are not
// given a positive one.
const DefaultQueueSize = 10000

// NewNodeBase returns a node base with the given stats name and an
// input queue of the given capacity, or of DefaultQueueSize if
// queueSize is not positive.
func NewNodeBase(name string, queueSize int) *NodeBase {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &NodeBase{
		name:  name,
		queue: NewQueue(queueSize),
	}
}

func (b *NodeBase) base() *NodeBase { return b }

// Name returns the name given to NewNodeBase.
func (b *NodeBase) Name() string { return b.name }

// PushMessage implements Node.
func (b *NodeBase) PushMessage(msg Message) bool {
	return b.queue.Push(msg) == Success
}

// GetInputMessage pops the next message of the input queue. It
// returns false once the queue is terminated and drained.
func (b *NodeBase) GetInputMessage() (Message, bool) {
	msg, status := b.queue.TryPop()
	return msg, status == Success
}

// NumSinks returns the number of sinks wired to the node.
func (b *NodeBase) NumSinks() int {
	if table := b.sinks.Load(); table != nil {
		return len(table.handles)
	}
	return 0
}

// SendMessageToSink pushes msg to the sink with the given index,
// blocking while that sink is full. It returns false if the sink is
// terminated.
func (b *NodeBase) SendMessageToSink(index int, msg Message) bool {
	table := b.sinks.Load()
	if table == nil || index < 0 || index >= len(table.handles) {
		panic(fmt.Sprintf("pipeline: node %q has no sink %v", b.name, index))
	}
	return table.arena[table.handles[index]].PushMessage(msg)
}

// SendMessageToSinkSingle pushes msg to the only sink of the node. It
// panics unless the node has exactly one sink.
func (b *NodeBase) SendMessageToSinkSingle(msg Message) bool {
	if n := b.NumSinks(); n != 1 {
		panic(fmt.Sprintf("pipeline: node %q has %v sinks, expected exactly one", b.name, n))
	}
	return b.SendMessageToSink(0, msg)
}

func (b *NodeBase) setSinks(arena []Node, handles []NodeHandle) {
	b.sinks.Store(&sinkTable{arena: arena, handles: append([]NodeHandle(nil), handles...)})
}

// StartWorkers starts n goroutines that pop messages from the input
// queue and call process on each until the queue is terminated and
// drained. A panic in process is logged and counted; the worker then
// carries on with the next message. Restart starts the same workers
// again.
func (b *NodeBase) StartWorkers(n int, process func(Message)) {
	if n < 1 {
		n = 1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nWorkers = n
	b.process = process
	b.startWorkers()
}

func (b *NodeBase) startWorkers() {
	for i := 0; i < b.nWorkers; i++ {
		b.workers.Add(1)
		go b.workerLoop()
	}
}

func (b *NodeBase) workerLoop() {
	defer b.workers.Done()
	for {
		msg, ok := b.GetInputMessage()
		if !ok {
			return
		}
		b.processMessage(msg)
	}
}

func (b *NodeBase) processMessage(msg Message) {
	defer func() {
		if x := recover(); x != nil {
			b.panics.Add(1)
			zap.L().Error("pipeline worker panicked",
				zap.String("node", b.name),
				zap.String("message", Kind(msg)),
				zap.Any("panic", x))
		}
	}()
	b.process(msg)
}

// JoinWorkers waits for all workers to return.
func (b *NodeBase) JoinWorkers() {
	b.workers.Wait()
}

// TerminateInputQueue terminates the input queue. Workers finish the
// messages that are still queued and then return.
func (b *NodeBase) TerminateInputQueue() {
	b.queue.Terminate()
}

// RestartInputQueue reopens the input queue.
func (b *NodeBase) RestartInputQueue() {
	b.queue.Restart()
}

// Terminate implements Node. It is idempotent.
func (b *NodeBase) Terminate(_ FlushOptions) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.terminated {
		return
	}
	b.terminated = true
	b.TerminateInputQueue()
	b.JoinWorkers()
}

// Restart implements Node. It does nothing unless the node is
// terminated.
func (b *NodeBase) Restart() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.terminated {
		return
	}
	b.terminated = false
	b.RestartInputQueue()
	if b.process != nil {
		b.startWorkers()
	}
}

// QueueStats returns the counters of the input queue and the number
// of recovered worker panics.
func (b *NodeBase) QueueStats() stats.NamedStats {
	result := b.queue.Stats()
	result["worker_panics"] = float64(b.panics.Load())
	return result
}

// SampleStats implements Node by returning QueueStats. Stages with
// counters of their own override it.
func (b *NodeBase) SampleStats() stats.NamedStats {
	return b.QueueStats()
}

// Queue returns the input queue, for tests and telemetry.
func (b *NodeBase) Queue() *Queue {
	return b.queue
}
