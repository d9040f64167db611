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

package barcode

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Default edit distance limits for accepting a barcode.
const (
	DefaultMaxBarcodeDist = 5
	DefaultMaxFlankDist   = 18
)

// An Arrangement describes a custom barcoding kit. It is read from a
// TOML file of the form
//
//	[arrangement]
//	name = "MY-KIT"
//	mask1_front = "ATCGCCTACCGTGA"
//	mask1_rear = "TTGCCTGTCGCTCTATCTTC"
//	barcode1_pattern = "BC%02i"
//	first_index = 1
//	last_index = 12
//
//	[sequences]
//	BC01 = "AAGAAAGTTGTCGGTGTCTTTGTG"
//
//	[scoring]
//	max_barcode_dist = 5
//	max_flank_dist = 18
//
// The mask2 flanks are only present for double-ended kits. Barcodes
// without an entry in [sequences] must be built-in barcodes.
type Arrangement struct {
	Name            string `toml:"name"`
	Mask1Front      string `toml:"mask1_front"`
	Mask1Rear       string `toml:"mask1_rear"`
	Mask2Front      string `toml:"mask2_front"`
	Mask2Rear       string `toml:"mask2_rear"`
	Barcode1Pattern string `toml:"barcode1_pattern"`
	Barcode2Pattern string `toml:"barcode2_pattern"`
	FirstIndex      int    `toml:"first_index"`
	LastIndex       int    `toml:"last_index"`

	Sequences map[string]string `toml:"-"`
	Scoring   Scoring           `toml:"-"`
}

// Scoring holds the edit distance limits of a classifier.
type Scoring struct {
	MaxBarcodeDist int `toml:"max_barcode_dist"`
	MaxFlankDist   int `toml:"max_flank_dist"`
}

// DefaultScoring returns the built-in limits.
func DefaultScoring() Scoring {
	return Scoring{MaxBarcodeDist: DefaultMaxBarcodeDist, MaxFlankDist: DefaultMaxFlankDist}
}

type arrangementFile struct {
	Arrangement Arrangement       `toml:"arrangement"`
	Sequences   map[string]string `toml:"sequences"`
	Scoring     *Scoring          `toml:"scoring"`
}

// ParseArrangement parses the contents of an arrangement file.
func ParseArrangement(data []byte) (*Arrangement, error) {
	var file arrangementFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	a := file.Arrangement
	a.Sequences = file.Sequences
	a.Scoring = DefaultScoring()
	if file.Scoring != nil {
		if file.Scoring.MaxBarcodeDist > 0 {
			a.Scoring.MaxBarcodeDist = file.Scoring.MaxBarcodeDist
		}
		if file.Scoring.MaxFlankDist > 0 {
			a.Scoring.MaxFlankDist = file.Scoring.MaxFlankDist
		}
	}
	switch {
	case a.Name == "":
		return nil, fmt.Errorf("arrangement has no name")
	case a.Barcode1Pattern == "":
		return nil, fmt.Errorf("arrangement %v has no barcode1_pattern", a.Name)
	case a.FirstIndex < 0 || a.LastIndex < a.FirstIndex:
		return nil, fmt.Errorf("arrangement %v has an invalid index range %v-%v", a.Name, a.FirstIndex, a.LastIndex)
	case (a.Mask2Front == "") != (a.Mask2Rear == ""):
		return nil, fmt.Errorf("arrangement %v needs both or neither of mask2_front and mask2_rear", a.Name)
	}
	for name, seq := range a.Sequences {
		seq = strings.ToUpper(seq)
		if strings.Trim(seq, "ACGT") != "" {
			return nil, fmt.Errorf("invalid sequence %v for barcode %v", seq, name)
		}
		a.Sequences[name] = seq
	}
	return &a, nil
}

// LoadArrangement reads an arrangement file.
func LoadArrangement(path string) (*Arrangement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := ParseArrangement(data)
	if err != nil {
		return nil, fmt.Errorf("%v, while loading barcode arrangement %v", err, path)
	}
	return a, nil
}

var intVerb = regexp.MustCompile(`%(0?[0-9]*)i`)

// expandPattern turns a pattern such as BC%02i into a barcode name.
func expandPattern(pattern string, index int) string {
	return fmt.Sprintf(intVerb.ReplaceAllString(pattern, "%${1}d"), index)
}

// BarcodeNames returns the names of the barcodes of the arrangement,
// in index order.
func (a *Arrangement) BarcodeNames() []string {
	names := make([]string, 0, a.LastIndex-a.FirstIndex+1)
	for i := a.FirstIndex; i <= a.LastIndex; i++ {
		names = append(names, expandPattern(a.Barcode1Pattern, i))
	}
	return names
}

// KitInfo returns the kit described by the arrangement and the
// sequences it defines.
func (a *Arrangement) KitInfo() (KitInfo, map[string]string, error) {
	kit := KitInfo{
		DoubleEnds:       a.Mask2Front != "",
		EndsDifferent:    a.Barcode2Pattern != "" && a.Barcode2Pattern != a.Barcode1Pattern,
		TopFrontFlank:    a.Mask1Front,
		TopRearFlank:     a.Mask1Rear,
		BottomFrontFlank: a.Mask2Front,
		BottomRearFlank:  a.Mask2Rear,
		Barcodes:         a.BarcodeNames(),
	}
	if len(kit.Barcodes) == 0 {
		return KitInfo{}, nil, fmt.Errorf("arrangement %v has no barcodes", a.Name)
	}
	sequences := make(map[string]string, len(a.Sequences))
	for name, seq := range a.Sequences {
		sequences[name] = seq
	}
	return kit, sequences, nil
}
