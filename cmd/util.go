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
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sys/unix"

	"github.com/exascience/elcall/internal"
	"github.com/exascience/elcall/stats"
	"github.com/exascience/elcall/utils"
)

// ProgramMessage is the first line printed when the elcall binary is
// called.
var ProgramMessage string

func init() {
	ProgramMessage = fmt.Sprint(
		"\n", utils.ProgramName, " version ", utils.ProgramVersion,
		" compiled with ", runtime.Version(),
		" - see ", utils.ProgramURL, " for more information.\n",
	)
}

// HelpMessage is printed to show the --help flag
const HelpMessage = "Print command details:\n" +
	"[--help]\n"

func getFilename(s, help string) string {
	switch s {
	case "-h", "--h", "-help", "--help":
		fmt.Fprint(os.Stderr, help)
		os.Exit(0)
	case "-":
		return s
	default:
		if strings.HasPrefix(s, "-") {
			fmt.Fprintln(os.Stderr, "Filename(s) in command line missing.")
			fmt.Fprint(os.Stderr, help)
			os.Exit(1)
		}
	}
	return s
}

// optionalFilename returns the positional argument at os.Args[index]
// if there is one, and the index of the first flag.
func optionalFilename(index int, help string) (string, int) {
	if len(os.Args) > index && (os.Args[index] == "-" || !strings.HasPrefix(os.Args[index], "-")) {
		return getFilename(os.Args[index], help), index + 1
	}
	if len(os.Args) > index {
		switch os.Args[index] {
		case "-h", "--h", "-help", "--help":
			getFilename(os.Args[index], help)
		}
	}
	return "-", index
}

func parseFlags(flags flag.FlagSet, requiredArgs int, help string) {
	if len(os.Args) < requiredArgs {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
	flags.SetOutput(io.Discard)
	if err := flags.Parse(os.Args[requiredArgs:]); err != nil {
		x := 0
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			x = 1
		}
		fmt.Fprint(os.Stderr, help)
		os.Exit(x)
	}
	if flags.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Cannot parse remaining parameters:", flags.Args())
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
}

func logCheckFile(parameter, format string, v ...interface{}) {
	if parameter != "" {
		zap.L().Error(fmt.Sprintf(format+" for command line parameter %v.", append(v, parameter)...))
	} else {
		zap.L().Error(fmt.Sprintf(format+".", v...))
	}
}

func checkExist(parameter, filename string) bool {
	if len(filename) == 0 {
		logCheckFile(parameter, "Missing filename")
		return false
	}
	if filename == "-" {
		return true
	}
	if filename[0] == '-' {
		logCheckFile(parameter, "Missing filename before %v", filename)
		return false
	}
	if _, err := os.Stat(filename); err == nil {
		return true
	} else if os.IsNotExist(err) {
		logCheckFile(parameter, "File %v does not exist", filename)
		return false
	} else if os.IsPermission(err) {
		logCheckFile(parameter, "No permission to read file %v", filename)
		return false
	} else {
		logCheckFile(parameter, "Error %v when trying to access file %v", err, filename)
		return false
	}
}

// loadReadList reads one read id per line. Anything after the first
// whitespace on a line is ignored, as are empty lines. An empty
// filename returns a nil list.
func loadReadList(filename string) ([]string, error) {
	if filename == "" {
		return nil, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if fields := strings.Fields(scanner.Text()); len(fields) > 0 {
			ids = append(ids, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%v, while reading read list %v", err, filename)
	}
	return ids, nil
}

func createLogFilename() string {
	t := time.Now()
	zone, _ := t.Zone()
	return fmt.Sprintf("logs/elcall/elcall-%d-%02d-%02d-%02d-%02d-%02d-%09d-%v.log", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), zone)
}

// setLogOutput redirects stderr to a fresh log file under path and
// tees the global logger to the log file and the original stderr. The
// returned function restores the previous global logger.
func setLogOutput(path string) (func(), error) {
	fullPath := filepath.Join(path, createLogFilename())
	if err := os.MkdirAll(filepath.Dir(fullPath), 0700); err != nil {
		return nil, err
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(f, ProgramMessage)

	orgStderr, err := unix.Dup(2)
	if err != nil {
		return nil, err
	}
	ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
	if err := unix.Dup2(int(f.Fd()), 2); err != nil {
		return nil, err
	}

	current := zap.L()
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(io.MultiWriter(f, ferr)), current.Core())
	logger := zap.New(core)
	restore := zap.ReplaceGlobals(logger)
	zap.L().Info("Created log file", zap.String("path", fullPath))
	zap.L().Info("Command line", zap.Strings("args", os.Args))
	return func() {
		_ = logger.Sync()
		restore()
	}, nil
}

func timedRun(timed bool, profile, msg string, phase int64, f func() error) error {
	if profile != "" {
		filename := profile + strconv.FormatInt(phase, 10) + ".prof"
		file, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := pprof.StartCPUProfile(file); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}
	if timed {
		zap.L().Info(msg)
		start := time.Now()
		defer func() {
			zap.L().Info("Elapsed time", zap.Duration("elapsed", time.Since(start)))
		}()
	}
	return f()
}

// startSampler starts sampling the reporters into the given callables,
// plus a periodic log line and, if cfg names a metrics address, a
// Prometheus endpoint. The returned function stops both.
func startSampler(cfg *internal.Config, reporters []stats.Reporter, callables ...stats.Callable) (*stats.Sampler, func(), error) {
	callables = append(callables, stats.NewLogCallable(zap.L(), cfg.Pipeline.StatsLogPeriod))
	stopServer := func() {}
	if cfg.Metrics.Address != "" {
		reg := prometheus.NewRegistry()
		callable, err := stats.NewPrometheusCallable(reg, utils.ProgramName)
		if err != nil {
			return nil, nil, err
		}
		callables = append(callables, callable)
		stopServer = stats.ServeMetrics(cfg.Metrics.Address, reg)
	}
	sampler := stats.NewSampler(cfg.Pipeline.StatsPeriod, reporters, callables)
	return sampler, func() {
		sampler.Terminate()
		stopServer()
	}, nil
}

// setupCommand loads the environment configuration and installs the
// global logger, teed to a log file if logPath is set. The returned
// function flushes the logger.
func setupCommand(verbose bool, logPath string) (*internal.Config, func(), error) {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	cleanup, err := internal.SetupLogging(cfg.Logging, verbose)
	if err != nil {
		return nil, nil, err
	}
	if logPath == "" {
		return cfg, cleanup, nil
	}
	restore, err := setLogOutput(logPath)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return cfg, func() {
		restore()
		cleanup()
	}, nil
}
