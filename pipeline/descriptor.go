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

	"go.uber.org/zap"
)

// A NodeHandle identifies a node within one descriptor and the
// pipeline created from it.
type NodeHandle int

// InvalidNodeHandle is never returned for a registered node.
const InvalidNodeHandle NodeHandle = -1

// Errors reported while building a pipeline.
var (
	ErrInvalidNodeHandle = errors.New("invalid node handle")
	ErrCycle             = errors.New("pipeline graph contains a cycle")
	ErrNoSource          = errors.New("pipeline has no nodes")
	ErrConsumed          = errors.New("pipeline descriptor has already been used")
)

// A Descriptor collects nodes and the edges between them before a
// Pipeline is created. Nodes are constructed by the caller before they
// are added, so their resources are acquired at registration time.
// Create consumes the descriptor.
type Descriptor struct {
	nodes    []Node
	sinks    [][]NodeHandle
	source   NodeHandle
	consumed bool
}

// NewDescriptor returns an empty descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{source: InvalidNodeHandle}
}

func (d *Descriptor) valid(handle NodeHandle) bool {
	return handle >= 0 && int(handle) < len(d.nodes)
}

// AddNode registers node with the given sinks and returns its handle.
// Every sink must already be registered.
func (d *Descriptor) AddNode(sinks []NodeHandle, node Node) (NodeHandle, error) {
	if d.consumed {
		return InvalidNodeHandle, ErrConsumed
	}
	if node == nil {
		return InvalidNodeHandle, errors.New("cannot add a nil node")
	}
	for _, sink := range sinks {
		if !d.valid(sink) {
			zap.L().Error("Invalid node handle", zap.Int("sink", int(sink)), zap.String("node", node.Name()))
			return InvalidNodeHandle, ErrInvalidNodeHandle
		}
	}
	handle := NodeHandle(len(d.nodes))
	d.nodes = append(d.nodes, node)
	d.sinks = append(d.sinks, append([]NodeHandle(nil), sinks...))
	return handle, nil
}

// AddNodeSink adds an edge from node to sink. It reports false if
// either handle is not registered.
func (d *Descriptor) AddNodeSink(node, sink NodeHandle) bool {
	if d.consumed || !d.valid(node) || !d.valid(sink) {
		zap.L().Error("Invalid node handle", zap.Int("node", int(node)), zap.Int("sink", int(sink)))
		return false
	}
	d.sinks[node] = append(d.sinks[node], sink)
	return true
}

// SetSource selects the node that receives Pipeline.PushMessage. By
// default this is the first node in source-to-sink order.
func (d *Descriptor) SetSource(handle NodeHandle) error {
	if !d.valid(handle) {
		return ErrInvalidNodeHandle
	}
	d.source = handle
	return nil
}

// Len returns the number of registered nodes.
func (d *Descriptor) Len() int {
	return len(d.nodes)
}

// release stops and closes every node of a descriptor that could not
// be turned into a pipeline. Sinks are registered before the nodes
// that feed them, so reverse registration order puts sources first.
func (d *Descriptor) release() {
	order := make([]NodeHandle, len(d.nodes))
	for i := range order {
		order[i] = NodeHandle(len(d.nodes) - 1 - i)
	}
	for _, handle := range order {
		d.nodes[handle].Terminate(DefaultFlushOptions)
	}
	closeNodes(d.nodes, order)
	d.nodes = nil
	d.sinks = nil
}
