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

// A StringMap holds the fields of one SAM header line, keyed by their
// two-letter tag.
type StringMap map[string]string

// SetUniqueEntry adds key/value unless key is already present, in
// which case the map is left untouched and false is returned.
func (record StringMap) SetUniqueEntry(key, value string) bool {
	if _, found := record[key]; found {
		return false
	}
	record[key] = value
	return true
}

// Find returns the index of the first record for which predicate
// holds, or -1.
func Find(records []StringMap, predicate func(StringMap) bool) int {
	for i, record := range records {
		if predicate(record) {
			return i
		}
	}
	return -1
}
