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

	"github.com/exascience/elcall/barcode"
	"github.com/exascience/elcall/pipeline"
	"github.com/exascience/elcall/stats"
	"github.com/exascience/elcall/utils"
)

// ClassifierNode assigns a barcode to every record and read it
// receives. Records get a BC tag, reads get their Barcode field set.
// Reads without a match are labelled unclassified.
type ClassifierNode struct {
	*pipeline.NodeBase
	classifier *barcode.Classifier

	matched      atomic.Uint64
	unclassified atomic.Uint64
}

// NewClassifierNode starts a classifier for the given kits of the
// registry. All kits are used if kitNames is empty, and the built-in
// registry if registry is nil. Unknown kit names are an error.
func NewClassifierNode(threads int, kitNames []string, registry *barcode.Registry, scoring barcode.Scoring, queueSize int) (*ClassifierNode, error) {
	if registry == nil {
		registry = barcode.Default()
	}
	classifier, err := barcode.NewClassifier(registry, kitNames, scoring)
	if err != nil {
		return nil, err
	}
	n := &ClassifierNode{
		NodeBase:   pipeline.NewNodeBase("BarcodeClassifierNode", queueSize),
		classifier: classifier,
	}
	n.StartWorkers(threads, n.process)
	return n, nil
}

func (n *ClassifierNode) classify(seq string) string {
	result := n.classifier.Barcode(seq)
	if result.IsClassified() {
		n.matched.Add(1)
	} else {
		n.unclassified.Add(1)
	}
	return result.Name
}

func (n *ClassifierNode) process(msg pipeline.Message) {
	switch msg := msg.(type) {
	case pipeline.Record:
		aln := msg.Aln.Clone()
		aln.SetTag(utils.BC, n.classify(aln.SEQ))
		n.SendMessageToSinkSingle(pipeline.Record{Aln: aln})
	case *pipeline.ReadPtr:
		read := msg.Read()
		read.Barcode = n.classify(read.Seq)
		n.SendMessageToSinkSingle(msg.Take())
	default:
		n.SendMessageToSinkSingle(msg)
	}
}

// Terminate implements pipeline.Node.
func (n *ClassifierNode) Terminate(opts pipeline.FlushOptions) {
	n.NodeBase.Terminate(opts)
	zap.L().Debug("> Barcoded", zap.Uint64("matched", n.matched.Load()))
}

// SampleStats implements pipeline.Node.
func (n *ClassifierNode) SampleStats() stats.NamedStats {
	s := n.QueueStats()
	s["num_barcodes_demuxed"] = float64(n.matched.Load())
	s["unclassified"] = float64(n.unclassified.Load())
	return s
}
