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

// Package barcode classifies reads by the barcode sequences that
// library preparation kits ligate to their ends.
package barcode

import (
	"fmt"
	"sort"
	"strings"
)

// KitInfo describes how the barcodes of a kit are arranged around the
// read. The top flanks surround the barcode at the front of the read;
// the bottom flanks surround it at the rear for double-ended kits.
//
// The classifier only scores the front barcode. DoubleEnds,
// EndsDifferent and the bottom flanks are kept so the kits command and
// custom arrangements describe the whole kit, but they do not affect
// classification.
type KitInfo struct {
	DoubleEnds       bool
	EndsDifferent    bool
	TopFrontFlank    string
	TopRearFlank     string
	BottomFrontFlank string
	BottomRearFlank  string
	Barcodes         []string
}

// A Registry holds kits and barcode sequences. A registry is never
// modified once it is handed out; With returns an extended copy.
type Registry struct {
	kits     map[string]KitInfo
	barcodes map[string]string
}

var defaultRegistry = &Registry{kits: builtinKits, barcodes: builtinBarcodes}

// Default returns the registry of built-in kits.
func Default() *Registry {
	return defaultRegistry
}

// Kit returns the kit with the given name.
func (r *Registry) Kit(name string) (KitInfo, bool) {
	kit, ok := r.kits[name]
	return kit, ok
}

// Sequence returns the sequence of the barcode with the given name.
func (r *Registry) Sequence(name string) (string, bool) {
	seq, ok := r.barcodes[name]
	return seq, ok
}

// KitNames returns the names of all kits in the registry, sorted.
func (r *Registry) KitNames() []string {
	names := make([]string, 0, len(r.kits))
	for name := range r.kits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KitNames returns the names of the built-in kits, sorted.
func KitNames() []string {
	return defaultRegistry.KitNames()
}

// With returns a registry that contains everything in r plus the kit
// and barcodes of the arrangement. A kit or barcode of the
// arrangement replaces an existing one with the same name, unless the
// sequences differ, which is an error for barcodes.
func (r *Registry) With(a *Arrangement) (*Registry, error) {
	kit, sequences, err := a.KitInfo()
	if err != nil {
		return nil, err
	}
	result := &Registry{
		kits:     make(map[string]KitInfo, len(r.kits)+1),
		barcodes: make(map[string]string, len(r.barcodes)+len(sequences)),
	}
	for name, info := range r.kits {
		result.kits[name] = info
	}
	for name, seq := range r.barcodes {
		result.barcodes[name] = seq
	}
	for name, seq := range sequences {
		if old, ok := result.barcodes[name]; ok && old != seq {
			return nil, fmt.Errorf("barcode %v of arrangement %v conflicts with an existing barcode", name, a.Name)
		}
		result.barcodes[name] = seq
	}
	for _, name := range kit.Barcodes {
		if _, ok := result.barcodes[name]; !ok {
			return nil, fmt.Errorf("no sequence for barcode %v of arrangement %v", name, a.Name)
		}
	}
	result.kits[a.Name] = kit
	return result, nil
}

// checkKitNames verifies that all names refer to kits of the registry.
func (r *Registry) checkKitNames(names []string) error {
	var unknown []string
	for _, name := range names {
		if _, ok := r.kits[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown barcoding kit(s) %v, choose from %v",
			strings.Join(unknown, ", "), strings.Join(r.KitNames(), " "))
	}
	return nil
}
