// Command mmseqs-mcp exposes the MMseqs2 MSA pipeline as MCP tools, and as
// one-shot command-line runs for local use.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/seqlab/mmseqs-mcp/internal/config"
	"github.com/seqlab/mmseqs-mcp/internal/mmseqs"
	"github.com/seqlab/mmseqs-mcp/internal/pipeline"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ServeMCP   bool
	HTTPAddr   string
	Query      string
	FastaFile  string
	Name       string
	OutputDir  string
	Database   string
	Bin        string
	EasySearch bool
	Pad        string
	PadOut     string
	StatusDir  string
	Verbose    bool
	Version    bool

	GPU           bool
	Threads       int
	Sensitivity   float64
	NumIterations int
	EValue        float64
	MaxSeqs       int
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("mmseqs-mcp", flag.ContinueOnError)
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.StringVar(&flags.HTTPAddr, "http", "", "run as MCP server on the given HTTP address")
	fs.StringVar(&flags.Query, "query", "", "query sequence (one-letter codes)")
	fs.StringVar(&flags.FastaFile, "fasta", "", "path to a query FASTA file")
	fs.StringVar(&flags.Name, "name", "", "sequence name (default: query, or the first FASTA header)")
	fs.StringVar(&flags.OutputDir, "out", "", "output directory (default: a fresh temporary directory)")
	fs.StringVar(&flags.Database, "db", "", "reference database prefix (default: $MMSEQS2_DB_PATH)")
	fs.StringVar(&flags.Bin, "bin", "", "path to the mmseqs binary (default: $MMSEQS_BIN or PATH lookup)")
	fs.BoolVar(&flags.EasySearch, "easy-search", false, "run a one-shot tabular search instead of the MSA pipeline")
	fs.StringVar(&flags.Pad, "pad", "", "pad the given database for GPU search and exit")
	fs.StringVar(&flags.PadOut, "pad-out", "", "output prefix for -pad (default: <db>_padded)")
	fs.StringVar(&flags.StatusDir, "status", "", "report the artifact chain in the given working directory and exit")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable step-level progress output")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	fs.BoolVar(&flags.GPU, "gpu", false, "use GPU acceleration for search (requires a padded database)")
	fs.IntVar(&flags.Threads, "threads", 0, "number of CPU threads (default: mmseqs default)")
	fs.Float64Var(&flags.Sensitivity, "s", 0, "search sensitivity (default: mmseqs default)")
	fs.IntVar(&flags.NumIterations, "num-iterations", 0, "number of iterative search rounds (default: mmseqs default)")
	fs.Float64Var(&flags.EValue, "e", 0, "e-value threshold (default: mmseqs default)")
	fs.IntVar(&flags.MaxSeqs, "max-seqs", 0, "maximum number of result sequences (default: mmseqs default)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only flags the user actually set become search options; everything
	// else defers to the config file and then to mmseqs itself.
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	if flags.StatusDir != "" {
		return runStatus(flags.StatusDir, flags.Name)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(flags.Verbose || cfg.Verbose)

	seq, err := newSequencer(flags, cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case flags.Pad != "":
		return runPad(ctx, seq, flags.Pad, flags.PadOut)
	case flags.ServeMCP || flags.HTTPAddr != "":
		return runServe(ctx, flags, cfg, seq)
	default:
		return runOneShot(ctx, flags, cfg, seq, buildOptions(cfg, flags, setFlags))
	}
}

// buildOptions layers explicitly set CLI flags over the config file defaults.
func buildOptions(cfg *config.ProjectConfig, flags cliFlags, set map[string]bool) pipeline.Options {
	opts := cfg.Options()
	if set["gpu"] {
		opts.UseGPU = pipeline.Bool(flags.GPU)
	}
	if set["threads"] {
		opts.Threads = pipeline.Int(flags.Threads)
	}
	if set["s"] {
		opts.Sensitivity = pipeline.Float64(flags.Sensitivity)
	}
	if set["num-iterations"] {
		opts.NumIterations = pipeline.Int(flags.NumIterations)
	}
	if set["e"] {
		opts.EValue = pipeline.Float64(flags.EValue)
	}
	if set["max-seqs"] {
		opts.MaxSeqs = pipeline.Int(flags.MaxSeqs)
	}
	return opts
}

// newSequencer wires binary discovery, the process runner, and the default
// database into a pipeline sequencer.
func newSequencer(flags cliFlags, cfg *config.ProjectConfig, log *slog.Logger) (*pipeline.Sequencer, error) {
	bin, err := mmseqs.Locate(firstNonEmpty(flags.Bin, cfg.BinPath))
	if err != nil {
		// Serving without a resolvable binary is allowed; tool calls then
		// fail at invocation time with the PATH lookup error.
		if !flags.ServeMCP && flags.HTTPAddr == "" {
			return nil, err
		}
		log.Warn("mmseqs binary not found, falling back to PATH lookup at invocation time", "error", err)
		bin = "mmseqs"
	}

	db := firstNonEmpty(flags.Database, cfg.DatabasePath, mmseqs.DefaultDatabase())

	runner := mmseqs.NewExecRunner(bin, log)
	return pipeline.NewSequencer(runner, db, log), nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
