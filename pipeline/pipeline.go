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

// Package pipeline runs read processing stages as a directed acyclic
// graph of nodes connected by bounded queues.
//
// Every node owns an input queue and a pool of worker goroutines, and
// sends its results to the nodes it is wired to, its sinks. Nodes are
// registered with a Descriptor, which is turned into a Pipeline by
// Create once the graph is complete. The Pipeline stops nodes from
// source to sink, so that a node is only asked to stop once nothing
// upstream can send it work anymore, and restarts them in reverse.
package pipeline

import (
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/exascience/elcall/stats"
)

const (
	white = iota
	grey
	black
)

// sourceToSinkOrder returns the nodes in an order where every node
// comes before all of its sinks, or ErrCycle.
func sourceToSinkOrder(sinks [][]NodeHandle) ([]NodeHandle, error) {
	colour := make([]int, len(sinks))
	postOrder := make([]NodeHandle, 0, len(sinks))

	var visit func(NodeHandle) error
	visit = func(node NodeHandle) error {
		switch colour[node] {
		case grey:
			return ErrCycle
		case black:
			return nil
		}
		colour[node] = grey
		for _, sink := range sinks[node] {
			if err := visit(sink); err != nil {
				return err
			}
		}
		colour[node] = black
		postOrder = append(postOrder, node)
		return nil
	}

	for node := range sinks {
		if err := visit(NodeHandle(node)); err != nil {
			return nil, err
		}
	}

	for i, j := 0, len(postOrder)-1; i < j; i, j = i+1, j-1 {
		postOrder[i], postOrder[j] = postOrder[j], postOrder[i]
	}
	return postOrder, nil
}

// A Pipeline owns a validated graph of nodes.
type Pipeline struct {
	nodes  []Node
	order  []NodeHandle
	source NodeHandle

	mu         sync.Mutex
	terminated bool
	closed     bool
}

// Create turns a descriptor into a pipeline. It fails with ErrCycle if
// the edges do not form a DAG, in which case all nodes of the
// descriptor are terminated and closed. If reporters is not nil, one
// stats reporter is appended to it for every named node.
func Create(d *Descriptor, reporters *[]stats.Reporter) (*Pipeline, error) {
	if d.consumed {
		return nil, ErrConsumed
	}
	d.consumed = true
	if len(d.nodes) == 0 {
		return nil, ErrNoSource
	}

	order, err := sourceToSinkOrder(d.sinks)
	if err != nil {
		zap.L().Error("cannot create pipeline", zap.Error(err))
		d.release()
		return nil, err
	}

	p := &Pipeline{
		nodes:  d.nodes,
		order:  order,
		source: d.source,
	}
	if p.source == InvalidNodeHandle {
		p.source = order[0]
	}
	for handle, node := range p.nodes {
		node.base().setSinks(p.nodes, d.sinks[handle])
	}
	if reporters != nil {
		for _, handle := range order {
			node := p.nodes[handle]
			if node.Name() == "" {
				continue
			}
			*reporters = append(*reporters, func() (string, stats.NamedStats) {
				return node.Name(), node.SampleStats()
			})
		}
	}
	d.nodes = nil
	d.sinks = nil
	return p, nil
}

// Order returns the handles of all nodes in source-to-sink order.
func (p *Pipeline) Order() []NodeHandle {
	return append([]NodeHandle(nil), p.order...)
}

// Source returns the handle of the node that receives PushMessage.
func (p *Pipeline) Source() NodeHandle {
	return p.source
}

// PushMessage feeds msg into the source node, blocking while its
// queue is full. It returns false if the pipeline is terminated.
func (p *Pipeline) PushMessage(msg Message) bool {
	return p.nodes[p.source].PushMessage(msg)
}

// Terminate stops every node, from source to sink, waiting for each
// to finish its queued work before stopping the next. It returns the
// final counters of all named nodes.
func (p *Pipeline) Terminate(opts FlushOptions) stats.NamedStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	final := make(stats.NamedStats)
	for _, handle := range p.order {
		node := p.nodes[handle]
		node.Terminate(opts)
		if name := node.Name(); name != "" {
			final.Merge(name, node.SampleStats())
		}
	}
	p.terminated = true
	return final
}

// Restart restarts every node, from sink to source.
func (p *Pipeline) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	for i := len(p.order) - 1; i >= 0; i-- {
		p.nodes[p.order[i]].Restart()
	}
	p.terminated = false
}

// NodeRef returns the node with the given handle, or nil.
func (p *Pipeline) NodeRef(handle NodeHandle) Node {
	if handle < 0 || int(handle) >= len(p.nodes) {
		return nil
	}
	return p.nodes[handle]
}

// NodeAs returns the node with the given handle as a T.
func NodeAs[T Node](p *Pipeline, handle NodeHandle) (T, bool) {
	node, ok := p.NodeRef(handle).(T)
	return node, ok
}

func closeNodes(nodes []Node, order []NodeHandle) (err error) {
	closeNode := func(node Node) {
		if closer, ok := node.(io.Closer); ok {
			if cerr := closer.Close(); cerr != nil {
				zap.L().Error("failed to close node", zap.String("node", node.Name()), zap.Error(cerr))
				err = errors.Join(err, cerr)
			}
		}
	}
	for _, handle := range order {
		closeNode(nodes[handle])
	}
	return
}

// Close terminates the pipeline if it is still running and then
// closes, from source to sink, every node that implements io.Closer.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	running := !p.terminated && !p.closed
	p.mu.Unlock()
	if running {
		p.Terminate(DefaultFlushOptions)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return closeNodes(p.nodes, p.order)
}
