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

	"github.com/exascience/elcall/barcode"
	"github.com/exascience/elcall/internal"
	"github.com/exascience/elcall/nodes"
	"github.com/exascience/elcall/pipeline"
	"github.com/exascience/elcall/sam"
	"github.com/exascience/elcall/stats"
	"github.com/exascience/elcall/utils"
)

// DemuxHelp is the help string for this command.
const DemuxHelp = "demux parameters:\n" +
	"elcall demux [sam-file] --output-dir dir\n" +
	"[--kit-name name[,name]...]\n" +
	"[--barcode-arrangement toml-file]\n" +
	"[--no-classify]\n" +
	"[--emit-fastq]\n" +
	"[--threads nr]\n" +
	"[--max-reads nr]\n" +
	"[--read-ids file]\n" +
	"[--stats-json file]\n" +
	"[--verbose]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// classifierOptions are the barcoding flags shared by demux and convert.
type classifierOptions struct {
	kitNames    string
	arrangement string
}

func (o *classifierOptions) addFlags(flags *flag.FlagSet) {
	flags.StringVar(&o.kitNames, "kit-name", "", "comma-separated barcoding kits to classify against")
	flags.StringVar(&o.arrangement, "barcode-arrangement", "", "TOML file with a custom barcode arrangement")
}

func (o *classifierOptions) enabled() bool {
	return o.kitNames != "" || o.arrangement != ""
}

// newClassifierNode builds a classifier for the requested kits, adding
// the custom arrangement to the built-in kits if one is given.
func (o *classifierOptions) newClassifierNode(threads, queueSize int) (*nodes.ClassifierNode, error) {
	registry := barcode.Default()
	scoring := barcode.DefaultScoring()
	var kits []string
	if o.kitNames != "" {
		for _, name := range strings.Split(o.kitNames, ",") {
			if name = strings.TrimSpace(name); name != "" {
				kits = append(kits, name)
			}
		}
	}
	if o.arrangement != "" {
		a, err := barcode.LoadArrangement(o.arrangement)
		if err != nil {
			return nil, err
		}
		if registry, err = registry.With(a); err != nil {
			return nil, err
		}
		scoring = a.Scoring
		kits = append(kits, a.Name)
	}
	return nodes.NewClassifierNode(threads, kits, registry, scoring, queueSize)
}

// programRecord returns the @PG line added to output headers.
func programRecord(id string) utils.StringMap {
	return utils.StringMap{
		"ID": id,
		"PN": utils.ProgramName,
		"VN": utils.ProgramVersion,
		"CL": strings.Join(os.Args, " "),
	}
}

// feedPipeline pushes every record of input into p until the input is
// exhausted, the pipeline stops accepting messages, or ctx is done.
func feedPipeline(ctx context.Context, input *sam.InputFile, p *pipeline.Pipeline) (int, error) {
	return input.Read(ctx, func(aln *sam.Alignment) bool {
		return p.PushMessage(pipeline.Record{Aln: aln})
	})
}

// Demux implements the elcall demux command.
func Demux() error {
	var (
		outputDir, readIDs, statsJSON, profile, logPath string
		noClassify, emitFastq, verbose, timed           bool
		threads, maxReads                               int
		barcoding                                       classifierOptions
	)

	input, first := optionalFilename(2, DemuxHelp)

	var flags flag.FlagSet
	flags.StringVar(&outputDir, "output-dir", "", "directory for the per-barcode output files")
	barcoding.addFlags(&flags)
	flags.BoolVar(&noClassify, "no-classify", false, "split on existing BC tags without classifying")
	flags.BoolVar(&emitFastq, "emit-fastq", false, "write FASTQ instead of SAM")
	flags.IntVar(&threads, "threads", 0, "number of worker threads, 0 for all CPUs")
	flags.IntVar(&maxReads, "max-reads", 0, "stop after this many reads, 0 for all")
	flags.StringVar(&readIDs, "read-ids", "", "file with the ids of the reads to process")
	flags.StringVar(&statsJSON, "stats-json", "", "write the final pipeline counters to this file")
	flags.BoolVar(&verbose, "verbose", false, "log at debug level")
	flags.BoolVar(&timed, "timed", false, "log the elapsed time")
	flags.StringVar(&profile, "profile", "", "write a CPU profile to this file prefix")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(flags, first, DemuxHelp)

	switch {
	case outputDir == "":
		return errors.New("missing --output-dir")
	case noClassify && barcoding.enabled():
		return errors.New("--no-classify cannot be combined with --kit-name or --barcode-arrangement")
	case !noClassify && !barcoding.enabled():
		return errors.New("either --kit-name, --barcode-arrangement or --no-classify is required")
	}
	if input == "-" && internal.IsTerminal(os.Stdin) {
		fmt.Fprint(os.Stderr, DemuxHelp)
		return errors.New("no input file given and stdin is a terminal")
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

	workers, writers := internal.WorkerVsWriterThreadAllocation(threads, 0.1)
	zap.L().Debug("> Thread allocation", zap.Int("barcoding", workers), zap.Int("writing", writers))

	in, err := sam.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()
	in.SetReadList(readList)
	in.SetLimit(maxReads)

	header := in.Header().Clone()
	header.AddPG(programRecord("demux"))

	d := pipeline.NewDescriptor()
	demuxer, err := nodes.NewDemuxerNode(outputDir, writers, emitFastq, cfg.Pipeline.WriterQueueSize)
	if err != nil {
		return err
	}
	demuxHandle, err := d.AddNode(nil, demuxer)
	if err != nil {
		return err
	}
	if !noClassify {
		classifier, err := barcoding.newClassifierNode(workers, cfg.Pipeline.QueueSize)
		if err != nil {
			return err
		}
		if _, err := d.AddNode([]pipeline.NodeHandle{demuxHandle}, classifier); err != nil {
			return err
		}
	}

	var reporters []stats.Reporter
	p, err := pipeline.Create(d, &reporters)
	if err != nil {
		return err
	}
	if demux, ok := pipeline.NodeAs[*nodes.DemuxerNode](p, demuxHandle); ok {
		demux.SetHeader(header)
	}

	expected := maxReads
	if readList != nil && (expected == 0 || len(readList) < expected) {
		expected = len(readList)
	}
	tracker := stats.NewProgressTracker(os.Stderr, expected, internal.IsTerminal(os.Stderr))
	sampler, stopSampler, err := startSampler(cfg, reporters, tracker.Update)
	if err != nil {
		_ = p.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	zap.L().Info("> Demultiplexing", zap.String("input", input), zap.String("output-dir", outputDir))
	var read int
	runErr := timedRun(timed, profile, "Demultiplexing reads.", 1, func() (err error) {
		read, err = feedPipeline(ctx, in, p)
		return err
	})
	final := p.Terminate(pipeline.DefaultFlushOptions)
	stopSampler()
	tracker.Update(final)
	tracker.Summarize(sampler.Elapsed())
	zap.L().Debug("> Input records", zap.Int("count", read))

	if statsJSON != "" {
		if err := stats.WriteJSON(statsJSON, final); err != nil {
			zap.L().Error("cannot write stats", zap.String("file", statsJSON), zap.Error(err))
		}
	}
	return errors.Join(runErr, p.Close())
}
