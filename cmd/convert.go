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
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/exascience/elcall/internal"
	"github.com/exascience/elcall/nodes"
	"github.com/exascience/elcall/pipeline"
	"github.com/exascience/elcall/sam"
	"github.com/exascience/elcall/stats"
)

// ConvertHelp is the help string for this command.
const ConvertHelp = "convert parameters:\n" +
	"elcall convert sam-file output-file\n" +
	"[--output-type sam|sam.gz|fastq|fastq.gz]\n" +
	"[--kit-name name[,name]...]\n" +
	"[--barcode-arrangement toml-file]\n" +
	"[--threads nr]\n" +
	"[--max-reads nr]\n" +
	"[--read-ids file]\n" +
	"[--stats-json file]\n" +
	"[--verbose]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// outputModeFor returns the output type named by typeName, or the one
// implied by the extension of filename if typeName is empty.
func outputModeFor(typeName, filename string) (sam.OutputMode, error) {
	if typeName != "" {
		return sam.ParseOutputMode(strings.ToLower(typeName))
	}
	lower := strings.ToLower(filename)
	for _, mode := range []sam.OutputMode{sam.SAMGZ, sam.FASTQGZ, sam.SAM, sam.FASTQ} {
		if strings.HasSuffix(lower, mode.Extension()) {
			return mode, nil
		}
	}
	if strings.HasSuffix(lower, ".fq.gz") {
		return sam.FASTQGZ, nil
	}
	if strings.HasSuffix(lower, ".fq") {
		return sam.FASTQ, nil
	}
	return sam.SAM, nil
}

// Convert implements the elcall convert command.
func Convert() error {
	var (
		outputType, readIDs, statsJSON, profile, logPath string
		verbose, timed                                   bool
		threads, maxReads                                int
		barcoding                                        classifierOptions
	)

	var flags flag.FlagSet
	flags.StringVar(&outputType, "output-type", "", "output format, inferred from the output file name if not given")
	barcoding.addFlags(&flags)
	flags.IntVar(&threads, "threads", 0, "number of worker threads, 0 for all CPUs")
	flags.IntVar(&maxReads, "max-reads", 0, "stop after this many reads, 0 for all")
	flags.StringVar(&readIDs, "read-ids", "", "file with the ids of the reads to process")
	flags.StringVar(&statsJSON, "stats-json", "", "write the final pipeline counters to this file")
	flags.BoolVar(&verbose, "verbose", false, "log at debug level")
	flags.BoolVar(&timed, "timed", false, "log the elapsed time")
	flags.StringVar(&profile, "profile", "", "write a CPU profile to this file prefix")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(flags, 4, ConvertHelp)

	input := getFilename(os.Args[2], ConvertHelp)
	output := getFilename(os.Args[3], ConvertHelp)

	mode, err := outputModeFor(outputType, output)
	if err != nil {
		return err
	}

	cfg, cleanup, err := setupCommand(verbose, logPath)
	if err != nil {
		return err
	}
	defer cleanup()

	if !checkExist("", input) {
		return fmt.Errorf("cannot read input %v", input)
	}
	readList, err := loadReadList(readIDs)
	if err != nil {
		return err
	}
	workers, _ := internal.WorkerVsWriterThreadAllocation(threads, 0.1)

	in, err := sam.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()
	in.SetReadList(readList)
	in.SetLimit(maxReads)

	header := in.Header().Clone()
	header.AddPG(programRecord("convert"))

	expected := maxReads
	if readList != nil && (expected == 0 || len(readList) < expected) {
		expected = len(readList)
	}

	d := pipeline.NewDescriptor()
	writer, err := nodes.NewWriterNode(output, mode, expected, cfg.Pipeline.WriterQueueSize)
	if err != nil {
		return err
	}
	writerHandle, err := d.AddNode(nil, writer)
	if err != nil {
		return err
	}
	if barcoding.enabled() {
		classifier, err := barcoding.newClassifierNode(workers, cfg.Pipeline.QueueSize)
		if err != nil {
			return err
		}
		if _, err := d.AddNode([]pipeline.NodeHandle{writerHandle}, classifier); err != nil {
			return err
		}
	}

	var reporters []stats.Reporter
	p, err := pipeline.Create(d, &reporters)
	if err != nil {
		return err
	}
	if w, ok := pipeline.NodeAs[*nodes.WriterNode](p, writerHandle); ok {
		if err := w.SetHeader(header); err != nil {
			_ = p.Close()
			return err
		}
	}

	// the progress line would interleave with records written to stdout
	interactive := internal.IsTerminal(os.Stderr) && output != "-" && output != "/dev/stdout"
	tracker := stats.NewProgressTracker(os.Stderr, expected, interactive)
	sampler, stopSampler, err := startSampler(cfg, reporters, tracker.Update)
	if err != nil {
		_ = p.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	zap.L().Info("> Converting", zap.String("input", input), zap.String("output", output), zap.Stringer("type", mode))
	runErr := timedRun(timed, profile, "Converting reads.", 1, func() error {
		_, err := feedPipeline(ctx, in, p)
		return err
	})
	final := p.Terminate(pipeline.DefaultFlushOptions)
	stopSampler()
	tracker.Update(final)
	tracker.Summarize(sampler.Elapsed())

	if statsJSON != "" {
		if err := stats.WriteJSON(statsJSON, final); err != nil {
			zap.L().Error("cannot write stats", zap.String("file", statsJSON), zap.Error(err))
		}
	}
	return errors.Join(runErr, p.Close())
}
