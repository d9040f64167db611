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
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/willf/bitset"
	"go.uber.org/zap"

	"github.com/exascience/elcall/barcode"
	"github.com/exascience/elcall/internal"
	"github.com/exascience/elcall/pipeline"
	"github.com/exascience/elcall/sam"
	"github.com/exascience/elcall/stats"
	"github.com/exascience/elcall/utils"
)

type demuxFile struct {
	mu      sync.Mutex
	index   uint
	barcode string
	file    *sam.OutputFile
	records atomic.Uint64
}

// DemuxerNode writes every record it receives to a file named after
// the barcode in its BC tag, in the output directory. Records without
// a BC tag go to the unclassified file. Files are created when their
// first record arrives, and get the header set with SetHeader.
// Barcodes whose names map to the same file name share that file.
//
// DemuxerNode has no sinks.
type DemuxerNode struct {
	*pipeline.NodeBase
	outputDir string
	mode      sam.OutputMode
	writeFail func(error)

	mu            sync.Mutex
	header        *sam.Header
	files         map[string]*demuxFile
	headerWritten *bitset.BitSet
	closed        bool

	// copy-on-write list of files in creation order, read by SampleStats
	published atomic.Pointer[[]*demuxFile]
	demuxed   atomic.Uint64
}

// NewDemuxerNode creates the output directory if needed and starts
// the demuxer. With emitFastq the files are FASTQ, otherwise SAM.
func NewDemuxerNode(outputDir string, threads int, emitFastq bool, queueSize int) (*DemuxerNode, error) {
	mode := sam.SAM
	if emitFastq {
		mode = sam.FASTQ
	}
	return newDemuxerNode(outputDir, mode, threads, queueSize)
}

func newDemuxerNode(outputDir string, mode sam.OutputMode, threads, queueSize int) (*DemuxerNode, error) {
	if err := internal.EnsureDirectory(outputDir); err != nil {
		return nil, err
	}
	n := &DemuxerNode{
		NodeBase:      pipeline.NewNodeBase("BarcodeDemuxerNode", queueSize),
		outputDir:     outputDir,
		mode:          mode,
		files:         make(map[string]*demuxFile),
		headerWritten: bitset.New(64),
		writeFail: func(err error) {
			zap.L().Fatal("failed to write demultiplexed record", zap.Error(err))
		},
	}
	n.StartWorkers(threads, n.process)
	return n, nil
}

// SetHeader sets the header of all output files. It must be called
// before any message is pushed to the demuxer.
func (n *DemuxerNode) SetHeader(hdr *sam.Header) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.header = hdr.Clone()
}

// FileName returns the path of the output file for a barcode.
func (n *DemuxerNode) FileName(barcodeName string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == filepath.Separator {
			return '_'
		}
		return r
	}, barcodeName)
	return filepath.Join(n.outputDir, name+n.mode.Extension())
}

func (n *DemuxerNode) process(msg pipeline.Message) {
	switch msg := msg.(type) {
	case pipeline.Record:
		n.write(msg.Aln.StringTag(utils.BC), msg.Aln)
	case *pipeline.ReadPtr:
		read := msg.Read()
		alns, err := read.ToAlignments(false)
		if err != nil {
			zap.L().Warn("cannot convert read", zap.Error(err))
			return
		}
		for _, aln := range alns {
			n.write(read.Barcode, aln)
		}
	case pipeline.ReadPair:
		msg.Release()
	}
}

// outputFile returns the file for a barcode, creating it on first use.
// Files are keyed by path, so a file is never created twice.
func (n *DemuxerNode) outputFile(barcodeName string) (*demuxFile, error) {
	path := n.FileName(barcodeName)
	n.mu.Lock()
	defer n.mu.Unlock()
	if f, ok := n.files[path]; ok {
		return f, nil
	}
	file, err := sam.Create(path, n.mode)
	if err != nil {
		return nil, err
	}
	current := n.fileList()
	f := &demuxFile{index: uint(len(current)), barcode: barcodeName, file: file}
	n.files[path] = f
	list := make([]*demuxFile, len(current), len(current)+1)
	copy(list, current)
	list = append(list, f)
	n.published.Store(&list)
	return f, nil
}

func (n *DemuxerNode) fileList() []*demuxFile {
	if list := n.published.Load(); list != nil {
		return *list
	}
	return nil
}

// needsHeader returns the header if it still has to be written to the
// file with the given index, and marks it as written. Files are locked
// before the node, never the other way around.
func (n *DemuxerNode) needsHeader(index uint) *sam.Header {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.header == nil || n.headerWritten.Test(index) {
		return nil
	}
	n.headerWritten.Set(index)
	return n.header
}

func (n *DemuxerNode) write(barcodeName string, aln *sam.Alignment) {
	if barcodeName == "" {
		barcodeName = barcode.Unclassified
	}
	f, err := n.outputFile(barcodeName)
	if err != nil {
		n.writeFail(err)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if hdr := n.needsHeader(f.index); hdr != nil {
		if err := f.file.FormatHeader(hdr); err != nil {
			n.writeFail(err)
			return
		}
	}
	if err := f.file.WriteAlignment(aln); err != nil {
		n.writeFail(err)
		return
	}
	f.records.Add(1)
	n.demuxed.Add(1)
}

// Barcodes returns, for each output file in creation order, the
// barcode that created it.
func (n *DemuxerNode) Barcodes() []string {
	list := n.fileList()
	names := make([]string, len(list))
	for i, f := range list {
		names[i] = f.barcode
	}
	return names
}

// Close closes all output files. The node must be terminated first.
func (n *DemuxerNode) Close() (err error) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	files := n.fileList()
	n.mu.Unlock()

	for _, f := range files {
		f.mu.Lock()
		err = errors.Join(err, f.file.Close())
		f.mu.Unlock()
	}
	return err
}

// SampleStats implements pipeline.Node.
func (n *DemuxerNode) SampleStats() stats.NamedStats {
	s := n.QueueStats()
	s["demuxed_reads"] = float64(n.demuxed.Load())
	list := n.fileList()
	s["output_files"] = float64(len(list))
	for _, f := range list {
		s["reads_"+f.barcode] = float64(f.records.Load())
	}
	return s
}
