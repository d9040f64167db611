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
	"fmt"
	"strconv"
)

// A StringScanner walks over one SAM line. The first error it runs
// into sticks: all later calls become no-ops, so a whole line can be
// parsed before checking Err once.
type StringScanner struct {
	index int
	data  string
	err   error
}

// Err returns the first error that occurred while scanning.
func (sc *StringScanner) Err() error {
	return sc.err
}

// Reset prepares the scanner for scanning s.
func (sc *StringScanner) Reset(s string) {
	sc.index = 0
	sc.data = s
	sc.err = nil
}

// Len returns the number of bytes left to scan, or 0 after an error.
func (sc *StringScanner) Len() int {
	if sc.err != nil {
		return 0
	}
	return len(sc.data) - sc.index
}

func (sc *StringScanner) fail(err error) {
	if sc.err == nil {
		sc.err = err
	}
}

// readByteUntil reads a single byte that must be followed by c or by
// the end of the data.
func (sc *StringScanner) readByteUntil(c byte) (b byte, found bool) {
	if sc.err != nil || sc.index >= len(sc.data) {
		sc.fail(fmt.Errorf("unexpected end of line while scanning for %q", c))
		return 0, false
	}
	start := sc.index
	next := start + 1
	if next >= len(sc.data) {
		sc.index = len(sc.data)
		return sc.data[start], false
	}
	if sc.data[next] != c {
		sc.fail(fmt.Errorf("unexpected character %q, expected %q", sc.data[next], c))
		return 0, false
	}
	sc.index = next + 1
	return sc.data[start], true
}

func (sc *StringScanner) readUntil(c byte) (s string, found bool) {
	if sc.err != nil {
		return "", false
	}
	start := sc.index
	for end := start; end < len(sc.data); end++ {
		if sc.data[end] == c {
			sc.index = end + 1
			return sc.data[start:end], true
		}
	}
	sc.index = len(sc.data)
	return sc.data[start:], false
}

func (sc *StringScanner) readUntil2(c1, c2 byte) (s string, b byte) {
	if sc.err != nil {
		return "", 0
	}
	start := sc.index
	for end := start; end < len(sc.data); end++ {
		if c := sc.data[end]; (c == c1) || (c == c2) {
			sc.index = end + 1
			return sc.data[start:end], c
		}
	}
	sc.index = len(sc.data)
	return sc.data[start:], 0
}

func (sc *StringScanner) parseInt(s string, bitSize int) int64 {
	value, err := strconv.ParseInt(s, 10, bitSize)
	if err != nil {
		sc.fail(err)
	}
	return value
}

func (sc *StringScanner) parseUint(s string, bitSize int) uint64 {
	value, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		sc.fail(err)
	}
	return value
}

func (sc *StringScanner) parseFloat(s string) float32 {
	value, err := strconv.ParseFloat(s, 32)
	if err != nil {
		sc.fail(err)
	}
	return float32(value)
}

// mandatory returns the next tab-separated field, which must be
// followed by another field.
func (sc *StringScanner) mandatory() string {
	if sc.err != nil {
		return ""
	}
	value, ok := sc.readUntil('\t')
	if !ok {
		sc.fail(fmt.Errorf("missing tabulator in SAM alignment line"))
		return ""
	}
	return value
}
