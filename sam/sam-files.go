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
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/exascience/elcall/utils"
)

func (sc *StringScanner) parseHeaderField() (tag, value string) {
	tag, ok := sc.readUntil(':')
	if !ok || (len(tag) != 2) {
		sc.fail(fmt.Errorf("invalid field tag %q", tag))
		return "", ""
	}
	value, _ = sc.readUntil('\t')
	return tag, value
}

func (sc *StringScanner) parseHeaderLine() utils.StringMap {
	record := make(utils.StringMap)
	for sc.Len() > 0 {
		tag, value := sc.parseHeaderField()
		if sc.err != nil {
			break
		}
		if !record.SetUniqueEntry(tag, value) {
			sc.fail(fmt.Errorf("duplicate field tag %v in a SAM header line", tag))
			break
		}
	}
	return record
}

// ParseHeader reads the header section at the start of reader. It
// stops at the first line that does not start with '@', leaving that
// line unread.
func ParseHeader(reader *bufio.Reader) (*Header, error) {
	hdr := NewHeader()
	var sc StringScanner
	for first := true; ; first = false {
		switch data, err := reader.Peek(1); {
		case err == io.EOF:
			return hdr, nil
		case err != nil:
			return hdr, err
		case data[0] != '@':
			return hdr, nil
		}
		bytes, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return hdr, err
		}
		bytes = trimNewline(bytes)
		if len(bytes) < 3 {
			return hdr, fmt.Errorf("truncated SAM header line %q", bytes)
		}
		code := string(bytes[0:3])
		var line string
		if len(bytes) > 4 {
			if bytes[3] != '\t' {
				return hdr, fmt.Errorf("header code %v not followed by a tab when parsing a SAM header", code)
			}
			line = string(bytes[4:])
		}
		sc.Reset(line)
		switch code {
		case "@HD":
			if !first {
				return hdr, errors.New("@HD line not in first line when parsing a SAM header")
			}
			hdr.HD = sc.parseHeaderLine()
		case "@SQ":
			hdr.SQ = append(hdr.SQ, sc.parseHeaderLine())
		case "@RG":
			hdr.RG = append(hdr.RG, sc.parseHeaderLine())
		case "@PG":
			hdr.PG = append(hdr.PG, sc.parseHeaderLine())
		case "@CO":
			hdr.CO = append(hdr.CO, line)
		default:
			if !IsHeaderUserTag(code) {
				return hdr, fmt.Errorf("unknown SAM record type code %v", code)
			}
			hdr.AddUserRecord(code, sc.parseHeaderLine())
		}
		if err := sc.Err(); err != nil {
			return hdr, fmt.Errorf("%v, while parsing SAM header line %v", err, code)
		}
	}
}

func trimNewline(bytes []byte) []byte {
	if n := len(bytes); n > 0 && bytes[n-1] == '\n' {
		bytes = bytes[:n-1]
	}
	if n := len(bytes); n > 0 && bytes[n-1] == '\r' {
		bytes = bytes[:n-1]
	}
	return bytes
}

func formatHeaderLine(out *bufio.Writer, code string, record utils.StringMap) {
	out.WriteString(code)
	for _, key := range headerKeys(record) {
		out.WriteByte('\t')
		out.WriteString(key)
		out.WriteByte(':')
		out.WriteString(record[key])
	}
	out.WriteByte('\n')
}

// Format writes the header in SAM text form.
func (hdr *Header) Format(out *bufio.Writer) error {
	if hdr.HD != nil {
		formatHeaderLine(out, "@HD", hdr.HD)
	}
	for _, record := range hdr.SQ {
		formatHeaderLine(out, "@SQ", record)
	}
	for _, record := range hdr.RG {
		formatHeaderLine(out, "@RG", record)
	}
	for _, record := range hdr.PG {
		formatHeaderLine(out, "@PG", record)
	}
	for _, comment := range hdr.CO {
		out.WriteString("@CO\t")
		out.WriteString(comment)
		out.WriteByte('\n')
	}
	for code, records := range hdr.UserRecords {
		for _, record := range records {
			formatHeaderLine(out, code, record)
		}
	}
	return out.Flush()
}

func (sc *StringScanner) parseNumericArray() interface{} {
	ntype, ok := sc.readByteUntil(',')
	if !ok {
		sc.fail(errors.New("missing entry in numeric array"))
		return nil
	}
	var entries []string
	for {
		entry, sep := sc.readUntil2(',', '\t')
		entries = append(entries, entry)
		if sep != ',' {
			break
		}
	}
	switch ntype {
	case 'c':
		result := make([]int8, len(entries))
		for i, e := range entries {
			result[i] = int8(sc.parseInt(e, 8))
		}
		return result
	case 'C':
		result := make([]uint8, len(entries))
		for i, e := range entries {
			result[i] = uint8(sc.parseUint(e, 8))
		}
		return result
	case 's':
		result := make([]int16, len(entries))
		for i, e := range entries {
			result[i] = int16(sc.parseInt(e, 16))
		}
		return result
	case 'S':
		result := make([]uint16, len(entries))
		for i, e := range entries {
			result[i] = uint16(sc.parseUint(e, 16))
		}
		return result
	case 'i':
		result := make([]int32, len(entries))
		for i, e := range entries {
			result[i] = int32(sc.parseInt(e, 32))
		}
		return result
	case 'I':
		result := make([]uint32, len(entries))
		for i, e := range entries {
			result[i] = uint32(sc.parseUint(e, 32))
		}
		return result
	case 'f':
		result := make([]float32, len(entries))
		for i, e := range entries {
			result[i] = sc.parseFloat(e)
		}
		return result
	default:
		sc.fail(fmt.Errorf("invalid numeric array type %q", ntype))
		return nil
	}
}

func (sc *StringScanner) parseOptionalField() (tag utils.Symbol, value interface{}) {
	tagname, ok := sc.readUntil(':')
	if !ok || (len(tagname) != 2) {
		sc.fail(fmt.Errorf("invalid field tag %q in SAM alignment line", tagname))
		return nil, nil
	}
	tag = utils.Intern(tagname)
	typebyte, ok := sc.readByteUntil(':')
	if !ok {
		sc.fail(fmt.Errorf("invalid field type %q in SAM alignment line", typebyte))
		return nil, nil
	}
	switch typebyte {
	case 'A':
		c, _ := sc.readByteUntil('\t')
		return tag, c
	case 'i':
		s, _ := sc.readUntil('\t')
		return tag, int32(sc.parseInt(s, 32))
	case 'f':
		s, _ := sc.readUntil('\t')
		return tag, sc.parseFloat(s)
	case 'Z':
		s, _ := sc.readUntil('\t')
		return tag, s
	case 'H':
		s, _ := sc.readUntil('\t')
		if len(s)%2 != 0 {
			sc.fail(fmt.Errorf("odd length hex array %q", s))
			return nil, nil
		}
		result := make(ByteArray, 0, len(s)/2)
		for i := 0; i < len(s); i += 2 {
			val, err := strconv.ParseUint(s[i:i+2], 16, 8)
			if err != nil {
				sc.fail(err)
				return nil, nil
			}
			result = append(result, byte(val))
		}
		return tag, result
	case 'B':
		return tag, sc.parseNumericArray()
	default:
		sc.fail(fmt.Errorf("unknown field type %q in SAM alignment line", typebyte))
		return nil, nil
	}
}

// ParseAlignment parses one SAM alignment line, without its
// terminating newline.
func ParseAlignment(line string) (*Alignment, error) {
	var sc StringScanner
	sc.Reset(line)
	aln := NewAlignment()
	aln.QNAME = sc.mandatory()
	aln.FLAG = uint16(sc.parseUint(sc.mandatory(), 16))
	aln.RNAME = sc.mandatory()
	aln.POS = int32(sc.parseInt(sc.mandatory(), 32))
	aln.MAPQ = byte(sc.parseUint(sc.mandatory(), 8))
	aln.CIGAR = sc.mandatory()
	aln.RNEXT = sc.mandatory()
	aln.PNEXT = int32(sc.parseInt(sc.mandatory(), 32))
	aln.TLEN = int32(sc.parseInt(sc.mandatory(), 32))
	aln.SEQ = sc.mandatory()
	aln.QUAL, _ = sc.readUntil('\t')
	for sc.Len() > 0 {
		tag, value := sc.parseOptionalField()
		if sc.err != nil {
			break
		}
		aln.TAGS.Set(tag, value)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return aln, nil
}

func appendInts[T int8 | int16 | int32](out []byte, kind string, values []T) []byte {
	out = append(out, kind...)
	for _, v := range values {
		out = strconv.AppendInt(append(out, ','), int64(v), 10)
	}
	return out
}

func appendUints[T uint8 | uint16 | uint32](out []byte, kind string, values []T) []byte {
	out = append(out, kind...)
	for _, v := range values {
		out = strconv.AppendUint(append(out, ','), uint64(v), 10)
	}
	return out
}

// FormatTag appends one optional field in SAM text form, including
// its leading tab.
func FormatTag(out []byte, tag utils.Symbol, value interface{}) ([]byte, error) {
	out = append(out, '\t')
	out = append(out, *tag...)

	switch val := value.(type) {
	case byte:
		out = append(append(out, ":A:"...), val)
	case int32:
		out = strconv.AppendInt(append(out, ":i:"...), int64(val), 10)
	case int:
		out = strconv.AppendInt(append(out, ":i:"...), int64(val), 10)
	case float32:
		out = strconv.AppendFloat(append(out, ":f:"...), float64(val), 'g', -1, 32)
	case string:
		out = append(append(out, ":Z:"...), val...)
	case utils.Symbol:
		out = append(append(out, ":Z:"...), *val...)
	case ByteArray:
		out = append(out, ":H:"...)
		for _, b := range val {
			if b < 16 {
				out = append(out, '0')
			}
			out = strconv.AppendUint(out, uint64(b), 16)
		}
	case []int8:
		out = appendInts(out, ":B:c", val)
	case []uint8:
		out = appendUints(out, ":B:C", val)
	case []int16:
		out = appendInts(out, ":B:s", val)
	case []uint16:
		out = appendUints(out, ":B:S", val)
	case []int32:
		out = appendInts(out, ":B:i", val)
	case []uint32:
		out = appendUints(out, ":B:I", val)
	case []float32:
		out = append(out, ":B:f"...)
		for _, v := range val {
			out = strconv.AppendFloat(append(out, ','), float64(v), 'g', -1, 32)
		}
	default:
		return nil, fmt.Errorf("unknown SAM alignment TAG type %T for tag %v", value, *tag)
	}

	return out, nil
}

// Format appends aln in SAM text form, including the newline.
func (aln *Alignment) Format(out []byte) ([]byte, error) {
	out = append(append(out, aln.QNAME...), '\t')
	out = append(strconv.AppendUint(out, uint64(aln.FLAG), 10), '\t')
	out = append(append(out, aln.RNAME...), '\t')
	out = append(strconv.AppendInt(out, int64(aln.POS), 10), '\t')
	out = append(strconv.AppendUint(out, uint64(aln.MAPQ), 10), '\t')
	out = append(append(out, aln.CIGAR...), '\t')
	out = append(append(out, aln.RNEXT...), '\t')
	out = append(strconv.AppendInt(out, int64(aln.PNEXT), 10), '\t')
	out = append(strconv.AppendInt(out, int64(aln.TLEN), 10), '\t')
	out = append(append(out, aln.SEQ...), '\t')
	out = append(out, aln.QUAL...)

	var err error
	for _, entry := range aln.TAGS {
		if out, err = FormatTag(out, entry.Key, entry.Value); err != nil {
			return nil, err
		}
	}

	return append(out, '\n'), nil
}

// FormatFastq appends aln as a FASTQ record. Optional fields follow
// the read name, separated by tabs, the way samtools fastq -T does it.
// A missing quality string is replaced by the lowest quality score.
func (aln *Alignment) FormatFastq(out []byte) ([]byte, error) {
	out = append(append(out, '@'), aln.QNAME...)
	var err error
	for _, entry := range aln.TAGS {
		if out, err = FormatTag(out, entry.Key, entry.Value); err != nil {
			return nil, err
		}
	}
	seq := aln.SEQ
	if seq == "*" {
		seq = ""
	}
	out = append(append(append(out, '\n'), seq...), "\n+\n"...)
	if aln.QUAL == "*" || len(aln.QUAL) != len(seq) {
		for range seq {
			out = append(out, '!')
		}
	} else {
		out = append(out, aln.QUAL...)
	}
	return append(out, '\n'), nil
}
