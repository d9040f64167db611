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
	"github.com/exascience/pargo/parallel"
)

// Unclassified is the label of reads without a barcode match.
const Unclassified = "unclassified"

// windowSize is the number of bases at either end of a read that is
// searched for a barcode.
const windowSize = 150

// parallelThreshold is the number of adapters above which scoring is
// split across goroutines.
const parallelThreshold = 64

// A ScoreResult is the outcome of classifying one read. Score is the
// edit distance of the match.
type ScoreResult struct {
	Score int
	Name  string
	Kit   string
}

// UnclassifiedResult is returned for reads without an acceptable
// barcode match.
var UnclassifiedResult = ScoreResult{Score: 100000, Name: Unclassified, Kit: Unclassified}

// IsClassified reports whether the result names a barcode.
func (r ScoreResult) IsClassified() bool {
	return r.Name != Unclassified
}

type adapter struct {
	name, kit string
	sequence  []byte
	topPrimer []byte
}

// A Classifier assigns barcodes to read sequences. It is safe for
// concurrent use.
type Classifier struct {
	adapters []adapter
	scoring  Scoring
}

// NewClassifier returns a classifier for the barcodes of the given
// kits of the registry, or of all its kits if kitNames is empty.
func NewClassifier(registry *Registry, kitNames []string, scoring Scoring) (*Classifier, error) {
	if len(kitNames) == 0 {
		kitNames = registry.KitNames()
	} else if err := registry.checkKitNames(kitNames); err != nil {
		return nil, err
	}
	c := &Classifier{scoring: scoring}
	for _, kitName := range kitNames {
		kit, _ := registry.Kit(kitName)
		for _, name := range kit.Barcodes {
			seq, _ := registry.Sequence(name)
			c.adapters = append(c.adapters, adapter{
				name:      name,
				kit:       kitName,
				sequence:  []byte(seq),
				topPrimer: []byte(kit.TopFrontFlank + seq + kit.TopRearFlank),
			})
		}
	}
	return c, nil
}

// NumAdapters returns the number of barcodes the classifier tests.
func (c *Classifier) NumAdapters() int {
	return len(c.adapters)
}

var complement = [256]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'N': 'N',
	'a': 't', 'c': 'g', 'g': 'c', 't': 'a', 'n': 'n',
}

// ReverseComplement returns the reverse complement of a nucleotide
// sequence. Bases other than ACGTN become N.
func ReverseComplement(seq []byte) []byte {
	result := make([]byte, len(seq))
	for i, b := range seq {
		c := complement[b]
		if c == 0 {
			c = 'N'
		}
		result[len(seq)-1-i] = c
	}
	return result
}

// infixDistance returns the edit distance between query and the
// substring of target it matches best. Gaps before and after the
// match in target are free.
func infixDistance(query, target []byte) int {
	m := len(query)
	column := make([]int, m+1)
	for i := range column {
		column[i] = i
	}
	best := column[m]
	for _, t := range target {
		diagonal := column[0]
		column[0] = 0
		for i := 1; i <= m; i++ {
			up := column[i]
			cost := diagonal
			if query[i-1] != t {
				cost++
			}
			if v := up + 1; v < cost {
				cost = v
			}
			if v := column[i-1] + 1; v < cost {
				cost = v
			}
			column[i] = cost
			diagonal = up
		}
		if column[m] < best {
			best = column[m]
		}
	}
	return best
}

func window(seq []byte) []byte {
	if len(seq) > windowSize {
		return seq[:windowSize]
	}
	return seq
}

type best struct {
	score, index, count int
}

func joinBest(x, y interface{}) interface{} {
	l, r := x.(best), y.(best)
	switch {
	case l.count == 0:
		return r
	case r.count == 0, l.score < r.score:
		return l
	case r.score < l.score:
		return r
	default:
		l.count += r.count
		return l
	}
}

// bestAdapter scores the adapters against the front window and the
// reverse complement window, and returns the lowest score, the first
// adapter with that score, and how many adapters share it.
func (c *Classifier) bestAdapter(front, rear []byte, withFlanks bool) best {
	score := func(low, high int) interface{} {
		result := best{}
		for i := low; i < high; i++ {
			query := c.adapters[i].sequence
			if withFlanks {
				query = c.adapters[i].topPrimer
			}
			s := infixDistance(query, front)
			if r := infixDistance(query, rear); r < s {
				s = r
			}
			result = joinBest(result, best{score: s, index: i, count: 1}).(best)
		}
		return result
	}
	if len(c.adapters) < parallelThreshold {
		return score(0, len(c.adapters)).(best)
	}
	return parallel.RangeReduce(0, len(c.adapters), 0, score, joinBest).(best)
}

// Barcode classifies a read sequence. Bare barcodes are tried first
// with a strict limit; if no single barcode is within that limit,
// barcodes with their kit flanks are tried with a looser one.
func (c *Classifier) Barcode(seq string) ScoreResult {
	if len(c.adapters) == 0 {
		return UnclassifiedResult
	}
	fwd := []byte(seq)
	front := window(fwd)
	rear := window(ReverseComplement(fwd))

	if b := c.bestAdapter(front, rear, false); b.score <= c.scoring.MaxBarcodeDist && b.count == 1 {
		return c.result(b)
	}
	if b := c.bestAdapter(front, rear, true); b.score <= c.scoring.MaxFlankDist && b.count == 1 {
		return c.result(b)
	}
	return UnclassifiedResult
}

func (c *Classifier) result(b best) ScoreResult {
	a := &c.adapters[b.index]
	return ScoreResult{Score: b.score, Name: a.name, Kit: a.kit}
}
