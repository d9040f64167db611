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

// Package nodes contains the processing stages of elcall pipelines.
package nodes

import (
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/exascience/elcall/pipeline"
	"github.com/exascience/elcall/stats"
)

// A Model turns raw signal into called bases. Implementations must be
// safe for concurrent use.
type Model interface {
	Call(signal []float32) (seq, qstring string, moves []uint8, err error)
}

// ModelInfo describes a model for the reads it calls.
type ModelInfo struct {
	Name   string
	Stride int
}

// BasecallerNode calls the raw signal of every read it receives with
// a model and forwards the called read. Reads the model fails on are
// logged and dropped. Messages of other kinds are passed on.
type BasecallerNode struct {
	*pipeline.NodeBase
	model Model
	info  ModelInfo

	readsCalled atomic.Uint64
	basesCalled atomic.Uint64
	modelErrors atomic.Uint64
}

// NewBasecallerNode starts a basecaller with the given number of
// worker goroutines.
func NewBasecallerNode(model Model, info ModelInfo, threads, queueSize int) *BasecallerNode {
	n := &BasecallerNode{
		NodeBase: pipeline.NewNodeBase("BasecallerNode", queueSize),
		model:    model,
		info:     info,
	}
	n.StartWorkers(threads, n.process)
	return n
}

func (n *BasecallerNode) process(msg pipeline.Message) {
	ptr, ok := msg.(*pipeline.ReadPtr)
	if !ok {
		n.SendMessageToSinkSingle(msg)
		return
	}
	read := ptr.Read()
	seq, qstring, moves, err := n.model.Call(read.RawData)
	if err != nil {
		n.modelErrors.Add(1)
		zap.L().Warn("basecalling failed", zap.String("read_id", read.ReadID), zap.Error(err))
		return
	}
	read.Seq = seq
	read.Qstring = qstring
	read.Moves = moves
	read.ModelName = n.info.Name
	read.ModelStride = n.info.Stride
	if read.ReadID == "" {
		read.ReadID = uuid.NewString()
	}
	n.readsCalled.Add(1)
	n.basesCalled.Add(uint64(len(seq)))
	n.SendMessageToSinkSingle(ptr.Take())
}

// SampleStats implements pipeline.Node.
func (n *BasecallerNode) SampleStats() stats.NamedStats {
	s := n.QueueStats()
	s["reads_called"] = float64(n.readsCalled.Load())
	s["bases_called"] = float64(n.basesCalled.Load())
	s["model_errors"] = float64(n.modelErrors.Load())
	return s
}
