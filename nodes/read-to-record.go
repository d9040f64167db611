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

package nodes

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/exascience/elcall/pipeline"
	"github.com/exascience/elcall/stats"
)

// ReadToRecordNode converts called reads into unaligned alignment
// records, one Record message per record. Messages of other kinds are
// passed on.
type ReadToRecordNode struct {
	*pipeline.NodeBase
	emitMoves bool

	converted atomic.Uint64
	failed    atomic.Uint64
}

// NewReadToRecordNode starts a converter. With emitMoves, records
// carry the move table of their read.
func NewReadToRecordNode(emitMoves bool, threads, queueSize int) *ReadToRecordNode {
	n := &ReadToRecordNode{
		NodeBase:  pipeline.NewNodeBase("ReadToRecordNode", queueSize),
		emitMoves: emitMoves,
	}
	n.StartWorkers(threads, n.process)
	return n
}

func (n *ReadToRecordNode) process(msg pipeline.Message) {
	ptr, ok := msg.(*pipeline.ReadPtr)
	if !ok {
		n.SendMessageToSinkSingle(msg)
		return
	}
	alns, err := ptr.Read().ToAlignments(n.emitMoves)
	if err != nil {
		n.failed.Add(1)
		zap.L().Warn("cannot convert read", zap.Error(err))
		return
	}
	for _, aln := range alns {
		n.SendMessageToSinkSingle(pipeline.Record{Aln: aln})
	}
	n.converted.Add(1)
}

// SampleStats implements pipeline.Node.
func (n *ReadToRecordNode) SampleStats() stats.NamedStats {
	s := n.QueueStats()
	s["reads_converted"] = float64(n.converted.Load())
	s["conversion_errors"] = float64(n.failed.Load())
	return s
}
