package main

import (
	"context"
	"fmt"

	"github.com/seqlab/mmseqs-mcp/internal/config"
	"github.com/seqlab/mmseqs-mcp/internal/pipeline"
)

// runOneShot executes a single pipeline run (MSA or easy-search) and prints
// the final artifact path to stdout.
func runOneShot(ctx context.Context, flags cliFlags, cfg *config.ProjectConfig, seq *pipeline.Sequencer, opts pipeline.Options) error {
	if flags.Query == "" && flags.FastaFile == "" {
		return fmt.Errorf("one of -query or -fasta is required (or -serve-mcp / -http to run as a server)")
	}

	workDir := firstNonEmpty(flags.OutputDir, cfg.WorkDir)

	if flags.EasySearch {
		res, err := seq.EasySearch(ctx, pipeline.SearchRequest{
			Sequence:  flags.Query,
			FastaFile: flags.FastaFile,
			Name:      flags.Name,
			WorkDir:   workDir,
			Database:  flags.Database,
			Padded:    cfg.Padded,
			Options:   opts,
		})
		if err != nil {
			return err
		}
		fmt.Println(res.HitsPath)
		return nil
	}

	res, err := seq.GenerateMSA(ctx, pipeline.Request{
		Sequence:  flags.Query,
		FastaFile: flags.FastaFile,
		Name:      flags.Name,
		WorkDir:   workDir,
		Database:  flags.Database,
		Padded:    cfg.Padded,
		Options:   opts,
	})
	if err != nil {
		return err
	}
	fmt.Println(res.A3MPath)
	return nil
}

// runPad prepares a padded database variant and prints its prefix.
func runPad(ctx context.Context, seq *pipeline.Sequencer, db, out string) error {
	padded, err := seq.PadDatabase(ctx, db, out)
	if err != nil {
		return err
	}
	fmt.Println(padded)
	return nil
}
