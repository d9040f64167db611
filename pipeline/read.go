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
	"errors"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/exascience/elcall/sam"
	"github.com/exascience/elcall/utils"
)

// Attributes are the acquisition details of a read as recorded by the
// sequencer.
type Attributes struct {
	Mux           uint32 // the mux of the read
	ReadNumber    uint32 // the read number within the channel
	ChannelNumber int32
	StartTime     string // ISO 8601 acquisition start time
	Filename      string // the raw data file the read came from
}

// A Read is a single nanopore read, from raw signal to called bases.
type Read struct {
	RawData     []float32
	ModelStride int

	ReadID     string // UUID4
	Seq        string
	Qstring    string // Phred+33 quality string
	Moves      []uint8
	RunID      string
	FlowcellID string
	ModelName  string

	Attributes Attributes

	StartTimeMs uint64

	// ReadTag identifies an input read; split reads share the tag of
	// their parent and differ in SubreadID.
	ReadTag  uint64
	ClientID int32 // -1 when not serving a client
	IsDuplex bool

	Digitisation float32
	Range        float32
	Offset       float32
	SampleRate   uint64

	Shift         float32
	Scale         float32
	ScalingMethod string
	Scaling       float32

	ParentReadID      string
	NumTrimmedSamples uint64

	StartSample               uint64
	EndSample                 uint64
	RunAcquisitionStartTimeMs uint64

	MeanQScoreStartPos uint32

	SubreadID  int
	SplitCount int

	Barcode           string
	RNAPolyTailLength int
}

// NewRead returns a read with a fresh random read id and the defaults
// of a standalone, unsplit read.
func NewRead() *Read {
	return &Read{
		ReadID:            uuid.NewString(),
		ClientID:          -1,
		SplitCount:        1,
		RNAPolyTailLength: -1,
	}
}

// EndTimeMs returns the acquisition time of the last sample.
func (r *Read) EndTimeMs() uint64 {
	if r.SampleRate == 0 || r.EndSample < r.StartSample {
		return r.StartTimeMs
	}
	return r.StartTimeMs + ((r.EndSample-r.StartSample)*1000)/r.SampleRate
}

func meanQScore(qstring string) float32 {
	if len(qstring) == 0 {
		return 0
	}
	errorProbs := make([]float64, len(qstring))
	for i := 0; i < len(qstring); i++ {
		q := float64(qstring[i]) - 33
		errorProbs[i] = math.Pow(10, -q/10)
	}
	meanError := stat.Mean(errorProbs, nil)
	return float32(-10 * math.Log10(meanError))
}

// MeanQScore returns the Phred-scaled mean of the per-base error
// probabilities, starting at MeanQScoreStartPos. Reads shorter than
// that position use the whole quality string.
func (r *Read) MeanQScore() float32 {
	if int(r.MeanQScoreStartPos) >= len(r.Qstring) {
		return meanQScore(r.Qstring)
	}
	return meanQScore(r.Qstring[r.MeanQScoreStartPos:])
}

// ReadGroup returns the read group id, which is the run id followed
// by the model name, or "" without a run id.
func (r *Read) ReadGroup() string {
	if r.RunID == "" {
		return ""
	}
	if r.ModelName == "" {
		return r.RunID
	}
	return r.RunID + "_" + r.ModelName
}

// ErrMissingReadID is returned when converting a read that has no id.
var ErrMissingReadID = errors.New("read has no read id")

// ToAlignments returns the unaligned SAM records of a called read.
// With emitMoves, the move table is added as an mv tag whose first
// entry is the model stride.
func (r *Read) ToAlignments(emitMoves bool) ([]*sam.Alignment, error) {
	if r.ReadID == "" {
		return nil, ErrMissingReadID
	}
	aln := sam.NewUnmappedAlignment(r.ReadID, r.Seq, r.Qstring)

	aln.SetTag(utils.QS, int32(math.Round(float64(r.MeanQScore()))))
	if r.IsDuplex {
		aln.SetTag(utils.DX, int32(1))
	} else {
		numSamples := uint64(len(r.RawData)) + r.NumTrimmedSamples
		if r.SampleRate > 0 {
			aln.SetTag(utils.DU, float32(numSamples)/float32(r.SampleRate))
		}
		aln.SetTag(utils.NS, int32(numSamples))
		aln.SetTag(utils.TS, int32(r.NumTrimmedSamples))
		aln.SetTag(utils.MX, int32(r.Attributes.Mux))
		aln.SetTag(utils.CH, r.Attributes.ChannelNumber)
		if r.Attributes.StartTime != "" {
			aln.SetTag(utils.ST, r.Attributes.StartTime)
		}
		aln.SetTag(utils.RN, int32(r.Attributes.ReadNumber))
		if r.Attributes.Filename != "" {
			aln.SetTag(utils.F5, r.Attributes.Filename)
		}
		if r.ScalingMethod != "" {
			aln.SetTag(utils.SM, r.Shift)
			aln.SetTag(utils.SD, r.Scale)
			aln.SetTag(utils.SV, r.ScalingMethod)
		}
		aln.SetTag(utils.DX, int32(0))
		if r.ParentReadID != "" && r.ParentReadID != r.ReadID {
			aln.SetTag(utils.PI, r.ParentReadID)
			aln.SetTag(utils.SP, int32(r.SubreadID))
		}
	}
	if rg := r.ReadGroup(); rg != "" {
		aln.SetTag(utils.RG, rg)
	}
	if r.Barcode != "" {
		aln.SetTag(utils.BC, r.Barcode)
	}
	if emitMoves && len(r.Moves) > 0 {
		moves := make([]int8, 0, len(r.Moves)+1)
		moves = append(moves, int8(r.ModelStride))
		for _, m := range r.Moves {
			moves = append(moves, int8(m))
		}
		aln.SetTag(utils.MV, moves)
	}
	return []*sam.Alignment{aln}, nil
}
