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
	"sort"

	"github.com/exascience/elcall/utils"
)

// FileFormatVersion is the SAM format version written into @HD lines.
const FileFormatVersion = "1.6"

// A Header represents the header section of a SAM file.
type Header struct {
	HD          utils.StringMap
	SQ, RG, PG  []utils.StringMap
	CO          []string
	UserRecords map[string][]utils.StringMap
}

// NewHeader returns an empty header.
func NewHeader() *Header { return &Header{} }

// EnsureHD returns the @HD line, creating a minimal one if needed.
func (hdr *Header) EnsureHD() utils.StringMap {
	if hdr.HD == nil {
		hdr.HD = utils.StringMap{"VN": FileFormatVersion}
	}
	return hdr.HD
}

// AddPG appends a @PG line.
func (hdr *Header) AddPG(record utils.StringMap) {
	hdr.PG = append(hdr.PG, record)
}

// AddUserRecord appends a header line with a user-defined record type.
func (hdr *Header) AddUserRecord(code string, record utils.StringMap) {
	if hdr.UserRecords == nil {
		hdr.UserRecords = make(map[string][]utils.StringMap)
	}
	hdr.UserRecords[code] = append(hdr.UserRecords[code], record)
}

func cloneStringMap(m utils.StringMap) utils.StringMap {
	if m == nil {
		return nil
	}
	c := make(utils.StringMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneStringMaps(ms []utils.StringMap) []utils.StringMap {
	if ms == nil {
		return nil
	}
	c := make([]utils.StringMap, len(ms))
	for i, m := range ms {
		c[i] = cloneStringMap(m)
	}
	return c
}

// Clone returns a deep copy of the header. Writers that share one
// input header across several output files each take their own copy.
func (hdr *Header) Clone() *Header {
	result := &Header{
		HD: cloneStringMap(hdr.HD),
		SQ: cloneStringMaps(hdr.SQ),
		RG: cloneStringMaps(hdr.RG),
		PG: cloneStringMaps(hdr.PG),
		CO: append([]string(nil), hdr.CO...),
	}
	if hdr.UserRecords != nil {
		result.UserRecords = make(map[string][]utils.StringMap, len(hdr.UserRecords))
		for code, records := range hdr.UserRecords {
			result.UserRecords[code] = cloneStringMaps(records)
		}
	}
	return result
}

// IsHeaderUserTag reports whether a header record type code is a
// user-defined one, which SAM marks with lower-case letters.
func IsHeaderUserTag(code string) bool {
	for _, c := range code {
		if ('a' <= c) && (c <= 'z') {
			return true
		}
	}
	return false
}

// An Alignment represents one SAM alignment line. Reads that have not
// been mapped are stored with RNAME "*", POS 0 and CIGAR "*".
type Alignment struct {
	QNAME string
	FLAG  uint16
	RNAME string
	POS   int32
	MAPQ  byte
	CIGAR string
	RNEXT string
	PNEXT int32
	TLEN  int32
	SEQ   string
	QUAL  string
	TAGS  utils.TagMap
}

// NewAlignment returns an alignment with room for a few optional tags.
func NewAlignment() *Alignment {
	return &Alignment{TAGS: make(utils.TagMap, 0, 16)}
}

// NewUnmappedAlignment returns the unaligned record for a read with
// the given name, sequence and quality string.
func NewUnmappedAlignment(qname, seq, qual string) *Alignment {
	aln := NewAlignment()
	aln.QNAME = qname
	aln.FLAG = Unmapped
	aln.RNAME = "*"
	aln.CIGAR = "*"
	aln.RNEXT = "*"
	aln.SEQ = seq
	aln.QUAL = qual
	if aln.SEQ == "" {
		aln.SEQ = "*"
	}
	if aln.QUAL == "" {
		aln.QUAL = "*"
	}
	return aln
}

// Clone returns a copy of aln that shares no mutable state with it.
func (aln *Alignment) Clone() *Alignment {
	result := *aln
	result.TAGS = aln.TAGS.Clone()
	return &result
}

// Tag returns the value of an optional field.
func (aln *Alignment) Tag(tag utils.Symbol) (interface{}, bool) {
	return aln.TAGS.Get(tag)
}

// StringTag returns the value of an optional field of type Z, or ""
// if the field is missing or of a different type.
func (aln *Alignment) StringTag(tag utils.Symbol) string {
	if value, ok := aln.TAGS.Get(tag); ok {
		switch v := value.(type) {
		case string:
			return v
		case utils.Symbol:
			return *v
		}
	}
	return ""
}

// SetTag sets an optional field.
func (aln *Alignment) SetTag(tag utils.Symbol, value interface{}) {
	aln.TAGS.Set(tag, value)
}

// Bit values of the FLAG field.
const (
	Multiple      = 0x1
	Proper        = 0x2
	Unmapped      = 0x4
	NextUnmapped  = 0x8
	Reversed      = 0x10
	NextReversed  = 0x20
	First         = 0x40
	Last          = 0x80
	Secondary     = 0x100
	QCFailed      = 0x200
	Duplicate     = 0x400
	Supplementary = 0x800
)

func (aln *Alignment) IsMultiple() bool      { return (aln.FLAG & Multiple) != 0 }
func (aln *Alignment) IsUnmapped() bool      { return (aln.FLAG & Unmapped) != 0 }
func (aln *Alignment) IsReversed() bool      { return (aln.FLAG & Reversed) != 0 }
func (aln *Alignment) IsSecondary() bool     { return (aln.FLAG & Secondary) != 0 }
func (aln *Alignment) IsQCFailed() bool      { return (aln.FLAG & QCFailed) != 0 }
func (aln *Alignment) IsDuplicate() bool     { return (aln.FLAG & Duplicate) != 0 }
func (aln *Alignment) IsSupplementary() bool { return (aln.FLAG & Supplementary) != 0 }

// FlagEvery reports whether all bits of flag are set.
func (aln *Alignment) FlagEvery(flag uint16) bool { return (aln.FLAG & flag) == flag }

// FlagNotAny reports whether none of the bits of flag are set.
func (aln *Alignment) FlagNotAny(flag uint16) bool { return (aln.FLAG & flag) == 0 }

// A ByteArray is the value of an optional field of type H.
type ByteArray []byte

// headerKeys returns the keys of a header line with ID and VN first
// and the rest in alphabetical order, so output is reproducible.
func headerKeys(record utils.StringMap) []string {
	keys := make([]string, 0, len(record))
	for _, key := range []string{"ID", "VN"} {
		if _, ok := record[key]; ok {
			keys = append(keys, key)
		}
	}
	fixed := len(keys)
	for key := range record {
		if key != "ID" && key != "VN" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys[fixed:])
	return keys
}
