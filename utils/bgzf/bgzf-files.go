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

// Package bgzf writes blocked gzip files, the compressed container of
// .sam.gz and .fastq.gz output. Blocks are deflated in parallel and
// written back in order with a pargo pipeline.
package bgzf

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"sync"

	"github.com/exascience/pargo/pipeline"
	"github.com/klauspost/compress/flate"
)

// IsGzip reports whether the given byte scanner produces gzip data.
// Only the first byte is inspected, and it is unread again.
func IsGzip(scanner io.ByteScanner) (bool, error) {
	b, err := scanner.ReadByte()
	if err != nil {
		return false, err
	}
	if err := scanner.UnreadByte(); err != nil {
		return false, err
	}
	return b == 0x1f, nil
}

const (
	// maxBlockSize is the largest compressed block BGZF allows.
	maxBlockSize = 0x10000

	// maxInputSize bounds the uncompressed payload of one block so
	// that even incompressible data stays below maxBlockSize.
	maxInputSize = 0xff00

	headerSize  = 18
	trailerSize = 8
)

var (
	blockHeader = [headerSize]byte{
		0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00,
		0x00, 0x00, 0x00, 0xff, 0x06, 0x00,
		0x42, 0x43, 0x02, 0x00, 0x00, 0x00,
	}

	eofBlock = []byte{
		0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00,
		0x00, 0x00, 0x00, 0xff, 0x06, 0x00,
		0x42, 0x43, 0x02, 0x00, 0x1b, 0x00,
		0x03, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
)

type (
	chunk struct {
		data []byte
	}

	// Writer compresses into a BGZF stream. Writes are buffered into
	// blocks that are compressed concurrently. Close must be called to
	// flush the last block and append the end-of-file marker.
	Writer struct {
		w       io.Writer
		level   int
		p       pipeline.Pipeline
		wait    sync.WaitGroup
		current *chunk
		blocks  chan *chunk
		next    *chunk
		closed  bool
		written int64
	}

	blockSource Writer
)

func (*blockSource) Err() error {
	return nil
}

func (*blockSource) Prepare(_ context.Context) int {
	return -1
}

func (src *blockSource) Fetch(_ int) int {
	if block, ok := <-src.blocks; ok {
		src.next = block
		return 1
	}
	src.next = nil
	return 0
}

func (src *blockSource) Data() interface{} {
	return src.next
}

var (
	chunkPool = sync.Pool{New: func() interface{} {
		return &chunk{data: make([]byte, 0, maxBlockSize)}
	}}

	deflaterPool sync.Pool
)

// NewWriter returns a Writer that compresses with flate.DefaultCompression.
func NewWriter(w io.Writer) *Writer {
	bgzf, _ := NewWriterLevel(w, flate.DefaultCompression)
	return bgzf
}

// NewWriterLevel returns a Writer with the given compression level,
// which is one of the levels accepted by flate.NewWriter.
func NewWriterLevel(w io.Writer, level int) (*Writer, error) {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return nil, fmt.Errorf("invalid BGZF compression level %v", level)
	}
	bgzf := &Writer{
		w:       w,
		level:   level,
		current: chunkPool.Get().(*chunk),
		blocks:  make(chan *chunk, 1),
	}
	bgzf.p.Source((*blockSource)(bgzf))
	bgzf.p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			return bgzf.compress(data.(*chunk))
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			block := data.(*chunk)
			n, err := w.Write(block.data)
			if err != nil {
				bgzf.p.SetErr(err)
			}
			bgzf.written += int64(n)
			block.data = block.data[:0]
			chunkPool.Put(block)
			return nil
		})),
	)
	bgzf.wait.Add(1)
	go func() {
		defer bgzf.wait.Done()
		bgzf.p.Run()
	}()
	return bgzf, nil
}

func (bgzf *Writer) deflater(out io.Writer) (*flate.Writer, error) {
	if pooled := deflaterPool.Get(); pooled != nil {
		fw := pooled.(*flate.Writer)
		fw.Reset(out)
		return fw, nil
	}
	return flate.NewWriter(out, bgzf.level)
}

func (bgzf *Writer) compress(raw *chunk) *chunk {
	out := chunkPool.Get().(*chunk)
	buf := bytes.NewBuffer(out.data[:0])
	buf.Write(blockHeader[:])

	fw, err := bgzf.deflater(buf)
	if err != nil {
		bgzf.p.SetErr(err)
		return out
	}
	if _, err := fw.Write(raw.data); err != nil {
		bgzf.p.SetErr(err)
	} else if err := fw.Close(); err != nil {
		bgzf.p.SetErr(err)
	}
	deflaterPool.Put(fw)

	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint32(trailer[0:4], crc32.ChecksumIEEE(raw.data))
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(raw.data)))
	buf.Write(trailer[:])

	out.data = buf.Bytes()
	if len(out.data) > maxBlockSize {
		bgzf.p.SetErr(fmt.Errorf("compressed BGZF block of %v bytes exceeds the maximum block size", len(out.data)))
	} else {
		binary.LittleEndian.PutUint16(out.data[16:18], uint16(len(out.data)-1))
	}

	raw.data = raw.data[:0]
	chunkPool.Put(raw)
	return out
}

func (bgzf *Writer) sendBlock() (err error) {
	defer func() {
		if x := recover(); x != nil {
			err = errors.New(fmt.Sprint(x))
		}
	}()
	bgzf.blocks <- bgzf.current
	bgzf.current = nil
	return nil
}

// Write implements io.Writer.
func (bgzf *Writer) Write(p []byte) (n int, err error) {
	if bgzf.closed {
		return 0, errors.New("write to closed BGZF writer")
	}
	n = len(p)
	for len(p) > 0 {
		if bgzf.current == nil {
			bgzf.current = chunkPool.Get().(*chunk)
		}
		room := maxInputSize - len(bgzf.current.data)
		if len(p) < room {
			bgzf.current.data = append(bgzf.current.data, p...)
			return n, nil
		}
		bgzf.current.data = append(bgzf.current.data, p[:room]...)
		p = p[room:]
		if err := bgzf.sendBlock(); err != nil {
			return n - len(p), err
		}
	}
	return n, nil
}

// Close flushes pending data, waits for all blocks to be written, and
// appends the BGZF end-of-file marker. It does not close the
// underlying writer.
func (bgzf *Writer) Close() error {
	if bgzf.closed {
		return nil
	}
	bgzf.closed = true
	var sendErr error
	if bgzf.current != nil && len(bgzf.current.data) > 0 {
		sendErr = bgzf.sendBlock()
	}
	close(bgzf.blocks)
	bgzf.wait.Wait()
	if sendErr != nil {
		return sendErr
	}
	if err := bgzf.p.Err(); err != nil {
		return err
	}
	n, err := bgzf.w.Write(eofBlock)
	bgzf.written += int64(n)
	return err
}

// CompressedBytes returns how many bytes have been written to the
// underlying writer so far. It is only accurate after Close.
func (bgzf *Writer) CompressedBytes() int64 {
	return bgzf.written
}
