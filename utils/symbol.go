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

package utils

import (
	"github.com/exascience/pargo/sync"

	"github.com/exascience/elcall/internal"
)

// A Symbol is a unique pointer to a string. Two symbols are equal
// exactly when the strings they were interned from are equal, so
// symbols can be compared with == instead of a string comparison.
//
// Optional SAM tags are keyed by symbols.
type Symbol *string

type symbolKey string

func (s symbolKey) Hash() uint64 {
	return internal.StringHash(string(s))
}

var symbolTable = sync.NewMap(0)

// Intern returns the Symbol for the given string. It is safe for
// multiple goroutines to call Intern concurrently.
func Intern(s string) Symbol {
	entry, _ := symbolTable.LoadOrStore(symbolKey(s), Symbol(&s))
	return entry.(Symbol)
}

// Well-known tags written by the read processing stages.
var (
	BC = Intern("BC")
	RG = Intern("RG")
	MV = Intern("mv")
	QS = Intern("qs")
	DU = Intern("du")
	NS = Intern("ns")
	TS = Intern("ts")
	MX = Intern("mx")
	CH = Intern("ch")
	ST = Intern("st")
	RN = Intern("rn")
	F5 = Intern("f5")
	PI = Intern("pi")
	SP = Intern("sp")
	SM = Intern("sm")
	SD = Intern("sd")
	SV = Intern("sv")
	DX = Intern("dx")
)
