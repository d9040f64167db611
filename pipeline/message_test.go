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
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/elcall/sam"
	"github.com/exascience/elcall/utils"
)

type kindCounter struct {
	reads, records, pairs, flushes int
}

func (k *kindCounter) HandleRead(*ReadPtr)         { k.reads++ }
func (k *kindCounter) HandleRecord(Record)         { k.records++ }
func (k *kindCounter) HandleReadPair(ReadPair)     { k.pairs++ }
func (k *kindCounter) HandleCacheFlush(CacheFlush) { k.flushes++ }

func TestVisit(t *testing.T) {
	owner := tagged(1)
	msgs := []Message{
		tagged(0),
		Record{Aln: sam.NewUnmappedAlignment("r", "A", "!")},
		ReadPair{Read1: owner.View(), Read2: owner.View()},
		CacheFlush{ClientID: 3},
		CacheFlush{ClientID: 4},
	}
	var k kindCounter
	for _, msg := range msgs {
		Visit(msg, &k)
	}
	assert.Equal(t, kindCounter{reads: 1, records: 1, pairs: 1, flushes: 2}, k)
	assert.Equal(t, []string{"read", "record", "read_pair", "cache_flush", "cache_flush"},
		[]string{Kind(msgs[0]), Kind(msgs[1]), Kind(msgs[2]), Kind(msgs[3]), Kind(msgs[4])})
}

func TestReadPtrMoveAndViews(t *testing.T) {
	owner := NewReadPtr(&Read{ReadID: "abc"})
	view := owner.View()
	assert.True(t, owner.Shared())

	moved := owner.Take()
	assert.False(t, owner.Valid())
	assert.Panics(t, func() { owner.Read() })
	assert.Panics(t, func() { owner.Take() })
	assert.Panics(t, func() { owner.View() })

	assert.Equal(t, "abc", moved.Read().ReadID)
	assert.Equal(t, "abc", view.Read().ReadID, "a view outlives the move of its owner")
	assert.True(t, moved.Shared())
	view.Release()
	assert.False(t, moved.Shared())

	moved.Read().Seq = "ACGT"
	pair := ReadPair{Read1: moved.View(), Read2: moved.View(), Read1End: 4, Read2End: 4}
	assert.Equal(t, "ACGT", pair.Read2.Read().Seq)
	pair.Release()
	assert.False(t, moved.Shared())
}

func TestNewRead(t *testing.T) {
	r := NewRead()
	_, err := uuid.Parse(r.ReadID)
	assert.NoError(t, err)
	assert.Equal(t, int32(-1), r.ClientID)
	assert.Equal(t, 1, r.SplitCount)
	assert.NotEqual(t, r.ReadID, NewRead().ReadID)
}

func TestMeanQScore(t *testing.T) {
	r := &Read{Qstring: "++++"} // Q10 everywhere
	assert.InDelta(t, 10, r.MeanQScore(), 1e-4)

	// error probabilities 0.1 and 0.001 average to 0.0505
	r = &Read{Qstring: "+?"}
	assert.InDelta(t, 12.967, r.MeanQScore(), 1e-3)

	r = &Read{Qstring: "!!!!++", MeanQScoreStartPos: 4}
	assert.InDelta(t, 10, r.MeanQScore(), 1e-4)

	r = &Read{Qstring: "++", MeanQScoreStartPos: 60}
	assert.InDelta(t, 10, r.MeanQScore(), 1e-4)

	assert.Equal(t, float32(0), (&Read{}).MeanQScore())
}

func TestEndTimeMs(t *testing.T) {
	r := &Read{StartTimeMs: 1000, StartSample: 0, EndSample: 8000, SampleRate: 4000}
	assert.Equal(t, uint64(3000), r.EndTimeMs())
	r.SampleRate = 0
	assert.Equal(t, uint64(1000), r.EndTimeMs())
}

func TestReadGroup(t *testing.T) {
	assert.Equal(t, "", (&Read{ModelName: "m"}).ReadGroup())
	assert.Equal(t, "run", (&Read{RunID: "run"}).ReadGroup())
	assert.Equal(t, "run_m", (&Read{RunID: "run", ModelName: "m"}).ReadGroup())
}

func TestToAlignments(t *testing.T) {
	r := &Read{
		ReadID:            "read-1",
		Seq:               "ACGT",
		Qstring:           "++++",
		Moves:             []uint8{1, 0, 1, 1, 0, 1},
		ModelStride:       5,
		RawData:           make([]float32, 30),
		NumTrimmedSamples: 10,
		SampleRate:        4000,
		RunID:             "run",
		ModelName:         "fast",
		Barcode:           "barcode07",
		Attributes: Attributes{
			Mux: 2, ReadNumber: 17, ChannelNumber: 5,
			StartTime: "2023-01-01T00:00:00Z", Filename: "batch0.pod5",
		},
	}
	alns, err := r.ToAlignments(true)
	require.NoError(t, err)
	require.Len(t, alns, 1)
	aln := alns[0]
	assert.Equal(t, "read-1", aln.QNAME)
	assert.True(t, aln.IsUnmapped())
	assert.Equal(t, "ACGT", aln.SEQ)
	assert.Equal(t, "++++", aln.QUAL)

	tag := func(s utils.Symbol) interface{} {
		v, ok := aln.Tag(s)
		require.True(t, ok, *s)
		return v
	}
	assert.Equal(t, int32(10), tag(utils.QS))
	assert.Equal(t, int32(40), tag(utils.NS))
	assert.Equal(t, int32(10), tag(utils.TS))
	assert.Equal(t, float32(0.01), tag(utils.DU))
	assert.Equal(t, int32(2), tag(utils.MX))
	assert.Equal(t, int32(5), tag(utils.CH))
	assert.Equal(t, int32(17), tag(utils.RN))
	assert.Equal(t, "batch0.pod5", tag(utils.F5))
	assert.Equal(t, "run_fast", aln.StringTag(utils.RG))
	assert.Equal(t, "barcode07", aln.StringTag(utils.BC))
	assert.Equal(t, []int8{5, 1, 0, 1, 1, 0, 1}, tag(utils.MV))

	out, err := aln.Format(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\tmv:B:c,5,1,0,1,1,0,1")

	alns, err = r.ToAlignments(false)
	require.NoError(t, err)
	_, ok := alns[0].Tag(utils.MV)
	assert.False(t, ok)

	_, err = (&Read{}).ToAlignments(false)
	assert.ErrorIs(t, err, ErrMissingReadID)
}

func TestToAlignmentsDuplex(t *testing.T) {
	r := &Read{ReadID: "a;b", Seq: "AC", Qstring: "++", IsDuplex: true}
	alns, err := r.ToAlignments(false)
	require.NoError(t, err)
	dx, _ := alns[0].Tag(utils.DX)
	assert.Equal(t, int32(1), dx)
	_, ok := alns[0].Tag(utils.NS)
	assert.False(t, ok)
}
