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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/elcall/stats"
)

// forwardNode sends every message on to its single sink.
type forwardNode struct {
	*NodeBase
	delay time.Duration
}

func newForwardNode(name string, queueSize, threads int, delay time.Duration) *forwardNode {
	n := &forwardNode{NodeBase: NewNodeBase(name, queueSize), delay: delay}
	n.StartWorkers(threads, func(msg Message) {
		if n.delay > 0 {
			time.Sleep(n.delay)
		}
		n.SendMessageToSinkSingle(msg)
	})
	return n
}

// collectNode records the tags of the reads it receives.
type collectNode struct {
	*NodeBase
	delay time.Duration

	mu   sync.Mutex
	tags []uint64
}

func newCollectNode(name string, queueSize int, delay time.Duration) *collectNode {
	n := &collectNode{NodeBase: NewNodeBase(name, queueSize), delay: delay}
	n.StartWorkers(1, func(msg Message) {
		if n.delay > 0 {
			time.Sleep(n.delay)
		}
		ptr := msg.(*ReadPtr)
		n.mu.Lock()
		n.tags = append(n.tags, ptr.Read().ReadTag)
		n.mu.Unlock()
	})
	return n
}

func (n *collectNode) received() []uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]uint64(nil), n.tags...)
}

func (n *collectNode) SampleStats() stats.NamedStats {
	s := n.QueueStats()
	n.mu.Lock()
	s["received"] = float64(len(n.tags))
	n.mu.Unlock()
	return s
}

// closeRecorder appends its name to a shared log when closed.
type closeRecorder struct {
	*forwardNode
	log *[]string
}

func (n *closeRecorder) Close() error {
	*n.log = append(*n.log, n.Name())
	return nil
}

func buildChain(t *testing.T, k, queueSize int, sinkDelay time.Duration) (*Pipeline, *collectNode) {
	d := NewDescriptor()
	sink := newCollectNode("sink", queueSize, sinkDelay)
	next, err := d.AddNode(nil, sink)
	require.NoError(t, err)
	for i := 0; i < k; i++ {
		next, err = d.AddNode([]NodeHandle{next}, newForwardNode("forward", queueSize, 1, 0))
		require.NoError(t, err)
	}
	p, err := Create(d, nil)
	require.NoError(t, err)
	return p, sink
}

func expectedTags(n int) []uint64 {
	tags := make([]uint64, n)
	for i := range tags {
		tags[i] = uint64(i)
	}
	return tags
}

func TestNodeBaseDefaultQueueSize(t *testing.T) {
	assert.Equal(t, DefaultQueueSize, NewNodeBase("n", 0).queue.Capacity())
	assert.Equal(t, 4, NewNodeBase("n", 4).queue.Capacity())
}

func TestNoLossUnderBackpressure(t *testing.T) {
	const n = 2000
	for _, capacity := range []int{1, 3, 64} {
		p, sink := buildChain(t, 3, capacity, 0)
		for i := 0; i < n; i++ {
			require.True(t, p.PushMessage(tagged(uint64(i))))
		}
		p.Terminate(DefaultFlushOptions)
		assert.ElementsMatch(t, expectedTags(n), sink.received(), "capacity %v", capacity)
		require.NoError(t, p.Close())
	}
}

func TestFIFOWithSingleWorker(t *testing.T) {
	const n = 1000
	p, sink := buildChain(t, 2, 4, 0)
	for i := 0; i < n; i++ {
		p.PushMessage(tagged(uint64(i)))
	}
	p.Terminate(DefaultFlushOptions)
	assert.Equal(t, expectedTags(n), sink.received())
}

func TestNoDeadlockOnTerminate(t *testing.T) {
	p, sink := buildChain(t, 2, 2, time.Millisecond)
	for i := 0; i < 50; i++ {
		p.PushMessage(tagged(uint64(i)))
	}

	done := make(chan struct{})
	go func() {
		p.Terminate(DefaultFlushOptions)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("terminate did not return")
	}
	assert.Len(t, sink.received(), 50)
}

func TestTerminateThenRestart(t *testing.T) {
	p, sink := buildChain(t, 2, 8, 0)
	for i := 0; i < 10; i++ {
		p.PushMessage(tagged(uint64(i)))
	}
	p.Terminate(DefaultFlushOptions)
	require.Len(t, sink.received(), 10)

	assert.False(t, p.PushMessage(tagged(999)), "push after terminate must be rejected")

	p.Restart()
	for i := 10; i < 20; i++ {
		require.True(t, p.PushMessage(tagged(uint64(i))))
	}
	p.Terminate(DefaultFlushOptions)
	assert.Equal(t, expectedTags(20), sink.received())

	p.Restart()
	p.Restart()
	require.True(t, p.PushMessage(tagged(20)))
	require.NoError(t, p.Close())
	assert.Equal(t, expectedTags(21), sink.received())
}

func TestCycleIsRejected(t *testing.T) {
	d := NewDescriptor()
	a, err := d.AddNode(nil, newForwardNode("a", 4, 1, 0))
	require.NoError(t, err)
	b, err := d.AddNode([]NodeHandle{a}, newForwardNode("b", 4, 1, 0))
	require.NoError(t, err)
	require.True(t, d.AddNodeSink(a, b))

	p, err := Create(d, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrCycle)

	_, err = Create(d, nil)
	assert.ErrorIs(t, err, ErrConsumed)
}

func TestRejectedGraphClosesSourcesFirst(t *testing.T) {
	var log []string
	d := NewDescriptor()
	sink, err := d.AddNode(nil, &closeRecorder{forwardNode: newForwardNode("sink", 4, 1, 0), log: &log})
	require.NoError(t, err)
	source, err := d.AddNode([]NodeHandle{sink}, &closeRecorder{forwardNode: newForwardNode("source", 4, 1, 0), log: &log})
	require.NoError(t, err)
	require.True(t, d.AddNodeSink(sink, source))

	_, err = Create(d, nil)
	require.ErrorIs(t, err, ErrCycle)
	assert.Equal(t, []string{"source", "sink"}, log)
}

func TestSelfLoopIsRejected(t *testing.T) {
	d := NewDescriptor()
	a, err := d.AddNode(nil, newForwardNode("a", 4, 1, 0))
	require.NoError(t, err)
	require.True(t, d.AddNodeSink(a, a))
	_, err = Create(d, nil)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestInvalidHandles(t *testing.T) {
	d := NewDescriptor()
	_, err := d.AddNode([]NodeHandle{0}, newForwardNode("a", 4, 1, 0))
	assert.ErrorIs(t, err, ErrInvalidNodeHandle, "forward reference")

	a, err := d.AddNode(nil, newCollectNode("a", 4, 0))
	require.NoError(t, err)
	assert.False(t, d.AddNodeSink(a, 5))
	assert.False(t, d.AddNodeSink(InvalidNodeHandle, a))
	assert.ErrorIs(t, d.SetSource(3), ErrInvalidNodeHandle)

	_, err = Create(NewDescriptor(), nil)
	assert.ErrorIs(t, err, ErrNoSource)

	p, err := Create(d, nil)
	require.NoError(t, err)
	assert.Nil(t, p.NodeRef(7))
	require.NoError(t, p.Close())
}

func TestSourceToSinkOrder(t *testing.T) {
	// writer first, classifier feeding it second, like the demux command
	d := NewDescriptor()
	writer, err := d.AddNode(nil, newCollectNode("writer", 4, 0))
	require.NoError(t, err)
	classifier, err := d.AddNode([]NodeHandle{writer}, newForwardNode("classifier", 4, 2, 0))
	require.NoError(t, err)

	p, err := Create(d, nil)
	require.NoError(t, err)
	assert.Equal(t, []NodeHandle{classifier, writer}, p.Order())
	assert.Equal(t, classifier, p.Source())

	node, ok := NodeAs[*collectNode](p, writer)
	require.True(t, ok)
	assert.Equal(t, "writer", node.Name())
	_, ok = NodeAs[*collectNode](p, classifier)
	assert.False(t, ok)
	require.NoError(t, p.Close())
}

func TestSourceToSinkOrderDiamond(t *testing.T) {
	sinks := [][]NodeHandle{
		{1, 2}, // 0
		{3},    // 1
		{3},    // 2
		nil,    // 3
		{0},    // 4
	}
	order, err := sourceToSinkOrder(sinks)
	require.NoError(t, err)
	require.Len(t, order, 5)
	position := make(map[NodeHandle]int)
	for i, h := range order {
		position[h] = i
	}
	for from, to := range sinks {
		for _, sink := range to {
			assert.Less(t, position[NodeHandle(from)], position[sink])
		}
	}
	assert.Equal(t, NodeHandle(4), order[0])
}

func TestExplicitSource(t *testing.T) {
	d := NewDescriptor()
	sink := newCollectNode("sink", 4, 0)
	s, err := d.AddNode(nil, sink)
	require.NoError(t, err)
	_, err = d.AddNode([]NodeHandle{s}, newForwardNode("other", 4, 1, 0))
	require.NoError(t, err)
	require.NoError(t, d.SetSource(s))

	p, err := Create(d, nil)
	require.NoError(t, err)
	p.PushMessage(tagged(1))
	require.NoError(t, p.Close())
	assert.Equal(t, []uint64{1}, sink.received())
}

func TestReportersAndFinalStats(t *testing.T) {
	d := NewDescriptor()
	sink, err := d.AddNode(nil, newCollectNode("sink", 4, 0))
	require.NoError(t, err)
	_, err = d.AddNode([]NodeHandle{sink}, newForwardNode("", 4, 1, 0))
	require.NoError(t, err)

	var reporters []stats.Reporter
	p, err := Create(d, &reporters)
	require.NoError(t, err)
	require.Len(t, reporters, 1, "unnamed nodes are not reported")

	for i := 0; i < 5; i++ {
		p.PushMessage(tagged(uint64(i)))
	}
	final := p.Terminate(DefaultFlushOptions)
	assert.Equal(t, float64(5), final["sink.received"])
	assert.Equal(t, float64(5), final["sink.queue_pops"])
	assert.Equal(t, float64(0), final["sink.worker_panics"])
	for key := range final {
		stage, _ := stats.SplitKey(key)
		assert.Equal(t, "sink", stage)
	}

	name, counters := reporters[0]()
	assert.Equal(t, "sink", name)
	assert.Equal(t, float64(5), counters["received"])
	require.NoError(t, p.Close())
}

func TestStatsSamplingDoesNotInterfere(t *testing.T) {
	const n = 3000
	run := func(sample bool) []uint64 {
		d := NewDescriptor()
		sink := newCollectNode("sink", 8, 0)
		next, err := d.AddNode(nil, sink)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			next, err = d.AddNode([]NodeHandle{next}, newForwardNode("forward", 8, 1, 0))
			require.NoError(t, err)
		}
		var reporters []stats.Reporter
		p, err := Create(d, &reporters)
		require.NoError(t, err)

		var sampler *stats.Sampler
		if sample {
			sampler = stats.NewSampler(time.Microsecond, reporters, []stats.Callable{func(stats.NamedStats) {}})
		}
		for i := 0; i < n; i++ {
			p.PushMessage(tagged(uint64(i)))
		}
		p.Terminate(DefaultFlushOptions)
		if sampler != nil {
			sampler.Terminate()
		}
		require.NoError(t, p.Close())
		return sink.received()
	}
	assert.Equal(t, run(false), run(true))
}

func TestWorkerPanicIsRecovered(t *testing.T) {
	d := NewDescriptor()
	sink := newCollectNode("sink", 4, 0)
	s, err := d.AddNode(nil, sink)
	require.NoError(t, err)

	flaky := &forwardNode{NodeBase: NewNodeBase("flaky", 4)}
	flaky.StartWorkers(2, func(msg Message) {
		if msg.(*ReadPtr).Read().ReadTag%2 == 1 {
			panic("odd tag")
		}
		flaky.SendMessageToSinkSingle(msg)
	})
	_, err = d.AddNode([]NodeHandle{s}, flaky)
	require.NoError(t, err)

	p, err := Create(d, nil)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		p.PushMessage(tagged(uint64(i)))
	}
	final := p.Terminate(DefaultFlushOptions)
	assert.Equal(t, float64(5), final["flaky.worker_panics"])
	assert.ElementsMatch(t, []uint64{0, 2, 4, 6, 8}, sink.received())
	require.NoError(t, p.Close())
}

func TestCloseOrder(t *testing.T) {
	var log []string
	d := NewDescriptor()
	last, err := d.AddNode(nil, newCollectNode("sink", 4, 0))
	require.NoError(t, err)
	for _, name := range []string{"c", "b", "a"} {
		node := &closeRecorder{forwardNode: newForwardNode(name, 4, 1, 0), log: &log}
		last, err = d.AddNode([]NodeHandle{last}, node)
		require.NoError(t, err)
	}
	p, err := Create(d, nil)
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, []string{"a", "b", "c"}, log)
}

type failingCloser struct {
	*collectNode
}

func (failingCloser) Close() error { return errors.New("disk full") }

func TestCloseReportsErrors(t *testing.T) {
	d := NewDescriptor()
	_, err := d.AddNode(nil, failingCloser{newCollectNode("sink", 4, 0)})
	require.NoError(t, err)
	p, err := Create(d, nil)
	require.NoError(t, err)
	assert.EqualError(t, p.Close(), "disk full")
}

func TestSendToSinkSinglePanicsWithoutExactlyOneSink(t *testing.T) {
	n := NewNodeBase("lonely", 1)
	assert.Panics(t, func() { n.SendMessageToSinkSingle(tagged(0)) })
	assert.Panics(t, func() { n.SendMessageToSink(0, tagged(0)) })
}
