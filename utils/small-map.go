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

// TagEntry is one key/value pair of a TagMap.
type TagEntry struct {
	Key   Symbol
	Value interface{}
}

// A TagMap associates symbols with values, preserving insertion
// order. Alignment records carry only a handful of optional tags, and
// for such small sizes a linear scan over a slice is faster and
// smaller than a native map.
type TagMap []TagEntry

// Get returns the value stored for key, and whether it was present.
func (m TagMap) Get(key Symbol) (interface{}, bool) {
	for _, entry := range m {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Set replaces the value stored for key, or appends a new entry at
// the end if key is not present yet.
func (m *TagMap) Set(key Symbol, value interface{}) {
	for i := range *m {
		if (*m)[i].Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, TagEntry{key, value})
}

// Delete removes the entry for key and reports whether there was one.
func (m *TagMap) Delete(key Symbol) bool {
	for i, entry := range *m {
		if entry.Key == key {
			*m = append((*m)[:i], (*m)[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no backing storage with m.
func (m TagMap) Clone() TagMap {
	if m == nil {
		return nil
	}
	return append(make(TagMap, 0, len(m)), m...)
}
