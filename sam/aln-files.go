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

package sam

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/exascience/pargo/pipeline"
	"github.com/klauspost/compress/gzip"

	"github.com/exascience/elcall/internal"
	"github.com/exascience/elcall/utils/bgzf"
)

const (
	minBatchSize = 256
	maxBatchSize = 4096
)

// InputFile is a SAM file opened for reading. Plain and gzip or BGZF
// compressed files are accepted. The header is parsed on Open; the
// alignment section is read lazily, once, by Read.
//
// InputFile implements pipeline.Source, producing batches of raw
// alignment lines.
type InputFile struct {
	rc     io.Closer
	gz     *gzip.Reader
	buf    *bufio.Reader
	header *Header

	readList map[string]struct{}
	limit    int64
	stopped  atomic.Bool
	ctx      context.Context

	err  error
	data []string
}

// Open opens a SAM file for input. The name "-" or "/dev/stdin" reads
// from os.Stdin.
func Open(name string) (*InputFile, error) {
	var file *os.File
	if name == "-" || name == "/dev/stdin" {
		file = os.Stdin
	} else {
		var err error
		if file, err = os.Open(name); err != nil {
			return nil, err
		}
	}
	f, err := NewInputFile(file)
	if err != nil {
		if file != os.Stdin {
			_ = file.Close()
		}
		return nil, fmt.Errorf("%v, while opening %v", err, name)
	}
	return f, nil
}

// NewInputFile reads SAM text from r, which is closed by Close if it
// is an io.Closer.
func NewInputFile(r io.Reader) (*InputFile, error) {
	f := &InputFile{}
	if rc, ok := r.(io.Closer); ok {
		f.rc = rc
	}
	f.buf = bufio.NewReader(r)
	if compressed, err := bgzf.IsGzip(f.buf); err == nil && compressed {
		if f.gz, err = gzip.NewReader(f.buf); err != nil {
			return nil, err
		}
		f.buf = bufio.NewReader(f.gz)
	} else if err != nil && err != io.EOF {
		return nil, err
	}
	hdr, err := ParseHeader(f.buf)
	if err != nil {
		return nil, err
	}
	f.header = hdr
	return f, nil
}

// Header returns the parsed header section.
func (f *InputFile) Header() *Header {
	return f.header
}

// SetReadList restricts Read to alignments whose QNAME is in ids. An
// empty list means no restriction.
func (f *InputFile) SetReadList(ids []string) {
	if len(ids) == 0 {
		f.readList = nil
		return
	}
	f.readList = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		f.readList[id] = struct{}{}
	}
}

// SetLimit makes Read stop after n alignments. Zero means no limit.
func (f *InputFile) SetLimit(n int) {
	f.limit = int64(n)
}

// Err implements the method of the pipeline.Source interface.
func (f *InputFile) Err() error {
	if f.err == io.EOF {
		return nil
	}
	return f.err
}

// Prepare implements the method of the pipeline.Source interface.
func (*InputFile) Prepare(_ context.Context) int {
	return -1
}

// Fetch implements the method of the pipeline.Source interface.
func (f *InputFile) Fetch(size int) (fetched int) {
	f.data = nil
	if f.err != nil || f.stopped.Load() {
		return 0
	}
	if f.ctx != nil {
		if err := f.ctx.Err(); err != nil {
			f.err = err
			return 0
		}
	}
	lines := make([]string, 0, size)
	for len(lines) < size {
		line, err := f.buf.ReadString('\n')
		if err != nil && err != io.EOF {
			f.err = err
			break
		}
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			f.err = io.EOF
			break
		}
	}
	f.data = lines
	return len(lines)
}

// Data implements the method of the pipeline.Source interface.
func (f *InputFile) Data() interface{} {
	return f.data
}

// Read parses the alignment section in parallel and hands the
// alignments to receive one at a time, in file order, on a single
// goroutine. Reading stops early when receive returns false, when the
// limit set with SetLimit is reached, or when ctx is cancelled. Read
// returns the number of alignments passed to receive.
func (f *InputFile) Read(ctx context.Context, receive func(*Alignment) bool) (int, error) {
	var delivered int64
	f.ctx = ctx
	var p pipeline.Pipeline
	p.Source(f)
	p.SetVariableBatchSize(minBatchSize, maxBatchSize)
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			lines := data.([]string)
			alns := make([]*Alignment, 0, len(lines))
			for _, line := range lines {
				aln, err := ParseAlignment(line)
				if err != nil {
					p.SetErr(fmt.Errorf("%v, while parsing SAM alignment %q", err, line))
					return alns
				}
				if f.readList != nil {
					if _, ok := f.readList[aln.QNAME]; !ok {
						continue
					}
				}
				alns = append(alns, aln)
			}
			return alns
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			for _, aln := range data.([]*Alignment) {
				if f.stopped.Load() {
					return nil
				}
				if !receive(aln) {
					f.stopped.Store(true)
					return nil
				}
				delivered++
				if f.limit > 0 && delivered >= f.limit {
					f.stopped.Store(true)
					return nil
				}
			}
			return nil
		})),
	)
	p.Run()
	if err := p.Err(); err != nil {
		return int(delivered), err
	}
	return int(delivered), f.Err()
}

// Close closes the input file.
func (f *InputFile) Close() (err error) {
	if f.gz != nil {
		err = f.gz.Close()
	}
	if f.rc != nil && f.rc != os.Stdin {
		if cerr := f.rc.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// OutputMode selects the container written by an OutputFile.
type OutputMode int

// Output modes.
const (
	SAM OutputMode = iota
	SAMGZ
	FASTQ
	FASTQGZ
)

var outputModeNames = [...]string{"sam", "sam.gz", "fastq", "fastq.gz"}

func (mode OutputMode) String() string {
	if mode < 0 || int(mode) >= len(outputModeNames) {
		return fmt.Sprintf("OutputMode(%d)", int(mode))
	}
	return outputModeNames[mode]
}

// Extension returns the file name extension for mode, including the
// leading dot.
func (mode OutputMode) Extension() string {
	return "." + mode.String()
}

// IsFastq reports whether mode writes FASTQ records.
func (mode OutputMode) IsFastq() bool {
	return mode == FASTQ || mode == FASTQGZ
}

// ParseOutputMode parses one of "sam", "sam.gz", "fastq" or "fastq.gz".
func ParseOutputMode(s string) (OutputMode, error) {
	for i, name := range outputModeNames {
		if s == name {
			return OutputMode(i), nil
		}
	}
	return SAM, fmt.Errorf("unknown output type %v, expected one of %v", s, strings.Join(outputModeNames[:], ", "))
}

// OutputFile is a SAM or FASTQ file opened for writing. It is not
// safe for concurrent use.
type OutputFile struct {
	mode OutputMode
	wc   io.Closer
	gz   *bgzf.Writer
	out  *bufio.Writer
}

// Create creates an output file. The name "-" or "/dev/stdout" writes
// to os.Stdout.
func Create(name string, mode OutputMode) (*OutputFile, error) {
	if name == "-" || name == "/dev/stdout" {
		return NewOutputFile(os.Stdout, mode), nil
	}
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return NewOutputFile(file, mode), nil
}

// NewOutputFile writes to w, which is closed by Close if it is an
// io.Closer other than os.Stdout.
func NewOutputFile(w io.Writer, mode OutputMode) *OutputFile {
	f := &OutputFile{mode: mode}
	if wc, ok := w.(io.Closer); ok && w != os.Stdout {
		f.wc = wc
	}
	if mode == SAMGZ || mode == FASTQGZ {
		f.gz = bgzf.NewWriter(w)
		w = f.gz
	}
	f.out = bufio.NewWriterSize(w, 1<<16)
	return f
}

// Mode returns the output mode of f.
func (f *OutputFile) Mode() OutputMode {
	return f.mode
}

// FormatHeader writes the header. FASTQ files have no header, so this
// is a no-op for them.
func (f *OutputFile) FormatHeader(hdr *Header) error {
	if f.mode.IsFastq() {
		return nil
	}
	return hdr.Format(f.out)
}

// WriteAlignment writes one alignment.
func (f *OutputFile) WriteAlignment(aln *Alignment) (err error) {
	// scratch space is shared by all open files
	buf := internal.ReserveByteBuffer()
	if f.mode.IsFastq() {
		buf, err = aln.FormatFastq(buf)
	} else {
		buf, err = aln.Format(buf)
	}
	if err == nil {
		_, err = f.out.Write(buf)
	}
	internal.ReleaseByteBuffer(buf)
	return err
}

// Close flushes buffered output and closes the file.
func (f *OutputFile) Close() error {
	err := f.out.Flush()
	if f.gz != nil {
		if gerr := f.gz.Close(); err == nil {
			err = gerr
		}
	}
	if f.wc != nil {
		if cerr := f.wc.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
