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

package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/exascience/elcall/barcode"
)

// KitsHelp is the help string for this command.
const KitsHelp = "kits parameters:\n" +
	"elcall kits\n" +
	"[--barcode-arrangement toml-file]\n"

// listKits writes one line per kit of registry: its name, the number
// of barcodes, and whether it is double ended.
func listKits(w io.Writer, registry *barcode.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "KIT\tBARCODES\tDOUBLE ENDS")
	for _, name := range registry.KitNames() {
		kit, _ := registry.Kit(name)
		fmt.Fprintf(tw, "%v\t%v\t%v\n", name, len(kit.Barcodes), kit.DoubleEnds)
	}
	return tw.Flush()
}

// Kits implements the elcall kits command.
func Kits() error {
	var arrangement string

	var flags flag.FlagSet
	flags.StringVar(&arrangement, "barcode-arrangement", "", "TOML file with a custom barcode arrangement")
	parseFlags(flags, 2, KitsHelp)

	registry := barcode.Default()
	if arrangement != "" {
		a, err := barcode.LoadArrangement(arrangement)
		if err != nil {
			return err
		}
		if registry, err = registry.With(a); err != nil {
			return err
		}
	}
	return listKits(os.Stdout, registry)
}
