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
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/exascience/elcall/pipeline"
	"github.com/exascience/elcall/sam"
	"github.com/exascience/elcall/stats"
)

// WriterNode writes the records it receives to one output file, with a
// single worker so that records are written in arrival order. Reads
// are converted to records first. A failure to write is fatal.
//
// WriterNode has no sinks.
type WriterNode struct {
	*pipeline.NodeBase
	expectedReads int

	mu        sync.Mutex
	file      *sam.OutputFile
	readIDs   map[string]struct{}
	closed    bool
	writeFail func(error)

	total, unmapped, secondary, supplementary atomic.Uint64
	written                                   atomic.Uint64
}

// NewWriterNode creates the output file and starts the writer. If
// expectedReads is positive, the written counter counts distinct read
// ids, so that reads split into several records count once.
func NewWriterNode(path string, mode sam.OutputMode, expectedReads, queueSize int) (*WriterNode, error) {
	file, err := sam.Create(path, mode)
	if err != nil {
		return nil, err
	}
	return newWriterNode(file, expectedReads, queueSize), nil
}

func newWriterNode(file *sam.OutputFile, expectedReads, queueSize int) *WriterNode {
	n := &WriterNode{
		NodeBase:      pipeline.NewNodeBase("HtsWriter", queueSize),
		expectedReads: expectedReads,
		file:          file,
		writeFail: func(err error) {
			zap.L().Fatal("failed to write record", zap.Error(err))
		},
	}
	if expectedReads > 0 {
		n.readIDs = make(map[string]struct{}, expectedReads)
	}
	n.StartWorkers(1, n.process)
	return n
}

// SetHeader writes the header of the output file. It must be called
// before any message is pushed to the writer.
func (n *WriterNode) SetHeader(hdr *sam.Header) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.file.FormatHeader(hdr)
}

func (n *WriterNode) process(msg pipeline.Message) {
	switch msg := msg.(type) {
	case pipeline.Record:
		n.write(msg.Aln)
	case *pipeline.ReadPtr:
		alns, err := msg.Read().ToAlignments(false)
		if err != nil {
			zap.L().Warn("cannot convert read", zap.Error(err))
			return
		}
		for _, aln := range alns {
			n.write(aln)
		}
	case pipeline.ReadPair:
		msg.Release()
	}
}

func (n *WriterNode) write(aln *sam.Alignment) {
	n.total.Add(1)
	if aln.IsUnmapped() {
		n.unmapped.Add(1)
	}
	if aln.IsSecondary() {
		n.secondary.Add(1)
	}
	if aln.IsSupplementary() {
		n.supplementary.Add(1)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.file.WriteAlignment(aln); err != nil {
		n.writeFail(err)
		return
	}
	// duplex reads have an id of the form template;complement
	if strings.Contains(aln.QNAME, ";") {
		return
	}
	if n.readIDs == nil {
		n.written.Add(1)
		return
	}
	if _, ok := n.readIDs[aln.QNAME]; !ok {
		n.readIDs[aln.QNAME] = struct{}{}
		n.written.Add(1)
	}
}

// Terminate implements pipeline.Node.
func (n *WriterNode) Terminate(opts pipeline.FlushOptions) {
	n.NodeBase.Terminate(opts)
	zap.L().Debug("Written records", zap.Uint64("count", n.written.Load()))
}

// Close flushes and closes the output file. The node must be
// terminated first.
func (n *WriterNode) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	return n.file.Close()
}

// SampleStats implements pipeline.Node.
func (n *WriterNode) SampleStats() stats.NamedStats {
	s := n.QueueStats()
	// total is loaded last so that it covers every flag counted
	unmapped := n.unmapped.Load()
	secondary := n.secondary.Load()
	supplementary := n.supplementary.Load()
	total := n.total.Load()
	s["total"] = float64(total)
	s["unmapped"] = float64(unmapped)
	s["secondary"] = float64(secondary)
	s["supplementary"] = float64(supplementary)
	s["primary"] = float64(total) - float64(unmapped) - float64(secondary) - float64(supplementary)
	s["written"] = float64(n.written.Load())
	return s
}
