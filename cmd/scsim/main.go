// Package main provides the command-line harness for scsim.
// It loads a program image, drives the clock and prints the final state.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"

	"github.com/pkg/errors"

	"github.com/sarchlab/scsim/config"
	"github.com/sarchlab/scsim/emu"
	"github.com/sarchlab/scsim/loader"
	"github.com/sarchlab/scsim/log"
	"github.com/sarchlab/scsim/verify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	configPath string
	cycles     uint64
	strict     bool
	dmemWords  uint64
	expectPath string
	logLevel   string
	logJSON    bool
	verbose    bool
	quiet      bool
	program    string
	set        map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("scsim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{set: make(map[string]bool)}
	fs.StringVar(&opts.configPath, "config", "", "Path to simulator configuration JSON file")
	fs.Uint64Var(&opts.cycles, "cycles", 0, "Run exactly this many cycles (0: run until the PC leaves the program)")
	fs.BoolVar(&opts.strict, "strict", false, "Fail on unsupported instructions instead of executing them as no-ops")
	fs.Uint64Var(&opts.dmemWords, "dmem", 0, "Data memory size in words (overrides config)")
	fs.StringVar(&opts.expectPath, "expect", "", "Path to an expected-state file to check after the run")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (overrides config)")
	fs.BoolVar(&opts.logJSON, "log-json", false, "Log as JSON")
	fs.BoolVar(&opts.verbose, "v", false, "Trace every cycle")
	fs.BoolVar(&opts.quiet, "q", false, "Do not print the final state")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: scsim [options] <program.hex>\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return nil, errors.New("missing program image")
	}

	opts.program = fs.Arg(0)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	return opts, nil
}

// buildConfig merges the configuration file with explicit flags.
func buildConfig(opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		var err error
		cfg, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.set["strict"] {
		if opts.strict {
			cfg.UnsupportedPolicy = config.PolicyFail
		} else {
			cfg.UnsupportedPolicy = config.PolicyNoop
		}
	}
	if opts.set["dmem"] {
		if opts.dmemWords > math.MaxUint32 {
			return nil, errors.Errorf("-dmem %d exceeds %d words", opts.dmemWords, uint64(math.MaxUint32))
		}
		cfg.DataMemoryWords = uint32(opts.dmemWords)
	}
	if opts.set["log-level"] {
		cfg.LogLevel = opts.logLevel
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	if opts.set["log-json"] && opts.logJSON {
		cfg.LogFormat = config.LogFormatJSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setupLogging(cfg *config.Config, stderr io.Writer) error {
	level, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}

	logType, err := log.ParseLoggerType(cfg.LogFormat)
	if err != nil {
		return err
	}

	log.Init(log.Options{LogLevel: level, Type: logType, Out: stderr})
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	if err := setupLogging(cfg, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	prog, err := loader.Load(opts.program)
	if err != nil {
		log.Loader.Error().Err(err).Msg("failed to load program")
		fmt.Fprintf(stderr, "Error loading program: %v\n", err)
		return 1
	}

	log.Loader.Info().
		Str("path", prog.Source).
		Int("words", prog.Len()).
		Msg("program loaded")

	emulator := emu.NewEmulator(
		emu.WithConfig(cfg),
		emu.WithLogger(log.Sim),
	)
	emulator.LoadProgram(prog.Words)

	if opts.cycles > 0 {
		err = emulator.RunCycles(opts.cycles)
	} else {
		err = emulator.Run(ctx)
	}

	exitCode := 0
	if err != nil {
		log.Sim.Error().
			Err(err).
			Uint32("pc", emulator.PC()).
			Uint64("cycles", emulator.Cycles()).
			Msg("simulation stopped")
		fmt.Fprintf(stderr, "Simulation error: %v\n", err)
		exitCode = 1
	} else {
		log.Sim.Info().
			Uint32("pc", emulator.PC()).
			Uint64("cycles", emulator.Cycles()).
			Msg("simulation finished")
	}

	snap := emulator.Snapshot()

	if !opts.quiet {
		if err := verify.Dump(stdout, snap); err != nil {
			fmt.Fprintf(stderr, "Error writing state: %v\n", err)
			return 1
		}
	}

	if opts.expectPath != "" {
		exp, err := verify.LoadExpectation(opts.expectPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading expectations: %v\n", err)
			return 1
		}

		if err := verify.Check(exp, snap); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 3
		}

		fmt.Fprintf(stdout, "Passed!\n")
	}

	return exitCode
}
