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

// elcall runs nanopore read processing pipelines: reads flow through
// a graph of concurrent stages that classify barcodes, pair duplex
// reads and write SAM or FASTQ output.
//
// The commands read unaligned SAM records, so that the stages can be
// exercised on reads basecalled elsewhere.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/elcall/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: demux, convert, kits")
	fmt.Fprint(os.Stderr, "\n", cmd.DemuxHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ConvertHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.KitsHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "demux":
		err = cmd.Demux()
	case "convert":
		err = cmd.Convert()
	case "kits":
		err = cmd.Kits()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
