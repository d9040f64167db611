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

// Package sam is the alignment record codec used at the edges of the
// read pipeline.
//
// It models SAM headers and alignment records, parses and formats
// them as SAM text, and writes them to plain or BGZF-compressed SAM
// and FASTQ files. Input files are exposed as pargo pipeline sources
// so that record parsing happens in parallel batches while records
// are still handed to the caller in file order. See
// https://godoc.org/github.com/ExaScience/pargo/pipeline for details
// of pargo pipelines.
package sam
