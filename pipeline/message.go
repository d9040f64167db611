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
	"fmt"
	"sync/atomic"

	"github.com/exascience/elcall/sam"
)

// A Message is one unit of work flowing between pipeline nodes. The
// set of message kinds is closed: it is exactly *ReadPtr, Record,
// ReadPair and CacheFlush. Sending a message transfers it; the sender
// must not use it afterwards.
type Message interface {
	accept(h Handler)
}

// A Handler has one method per message kind. Visit dispatches on the
// kind of a message, so a Handler is the way to process every kind
// with the compiler checking that none is forgotten.
type Handler interface {
	HandleRead(read *ReadPtr)
	HandleRecord(record Record)
	HandleReadPair(pair ReadPair)
	HandleCacheFlush(flush CacheFlush)
}

// Visit calls the method of h that matches the kind of msg.
func Visit(msg Message, h Handler) {
	msg.accept(h)
}

// Kind returns a short name for the kind of msg, for log messages.
func Kind(msg Message) string {
	switch msg.(type) {
	case *ReadPtr:
		return "read"
	case Record:
		return "record"
	case ReadPair:
		return "read_pair"
	case CacheFlush:
		return "cache_flush"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", msg)
	}
}

type readBox struct {
	read  *Read
	views atomic.Int32
}

// A ReadPtr is the exclusive, mutable owner of a Read. It can hand out
// any number of read-only ReadView values; while views are alive the
// owner must not modify the read. A ReadPtr is moved, never copied:
// Take returns a new owner and empties the old one.
type ReadPtr struct {
	box *readBox
}

// NewReadPtr wraps read in an owning handle.
func NewReadPtr(read *Read) *ReadPtr {
	return &ReadPtr{box: &readBox{read: read}}
}

func (p *ReadPtr) accept(h Handler) { h.HandleRead(p) }

// Valid reports whether p still owns a read.
func (p *ReadPtr) Valid() bool {
	return p != nil && p.box != nil
}

// Read returns the owned read for modification. It panics if p has
// been moved from.
func (p *ReadPtr) Read() *Read {
	if !p.Valid() {
		panic("pipeline: use of moved-from ReadPtr")
	}
	return p.box.read
}

// Take transfers ownership to a new handle and leaves p empty.
func (p *ReadPtr) Take() *ReadPtr {
	if !p.Valid() {
		panic("pipeline: use of moved-from ReadPtr")
	}
	result := &ReadPtr{box: p.box}
	p.box = nil
	return result
}

// View returns a read-only view of the owned read. The view must be
// released with Release once it is no longer needed.
func (p *ReadPtr) View() ReadView {
	if !p.Valid() {
		panic("pipeline: use of moved-from ReadPtr")
	}
	p.box.views.Add(1)
	return ReadView{box: p.box}
}

// Shared reports whether any view on the read is still alive.
func (p *ReadPtr) Shared() bool {
	return p.Valid() && p.box.views.Load() > 0
}

// A ReadView is a read-only view on a read owned by a ReadPtr. The
// view keeps the read alive even after its owner is dropped.
type ReadView struct {
	box *readBox
}

// Valid reports whether v refers to a read.
func (v ReadView) Valid() bool {
	return v.box != nil
}

// Read returns the viewed read. Callers must not modify it.
func (v ReadView) Read() *Read {
	return v.box.read
}

// Release gives up the view.
func (v ReadView) Release() {
	if v.box != nil {
		v.box.views.Add(-1)
	}
}

// A Record carries one finished alignment record. Records are
// immutable once sent; a stage that needs to annotate one works on a
// clone.
type Record struct {
	Aln *sam.Alignment
}

func (r Record) accept(h Handler) { h.HandleRecord(r) }

// A ReadPair pairs two reads that belong together, such as the
// template and complement strand of a duplex read, together with the
// overlapping window of each.
type ReadPair struct {
	Read1, Read2         ReadView
	Read1Start, Read1End uint64
	Read2Start, Read2End uint64
}

func (p ReadPair) accept(h Handler) { h.HandleReadPair(p) }

// Release releases both views of the pair.
func (p ReadPair) Release() {
	p.Read1.Release()
	p.Read2.Release()
}

// A CacheFlush tells stages holding per-client state to drop the
// state of the given client.
type CacheFlush struct {
	ClientID int32
}

func (f CacheFlush) accept(h Handler) { h.HandleCacheFlush(f) }
