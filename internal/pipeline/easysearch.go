package pipeline

import (
	"context"
	"fmt"
	"os"
)

// SearchRequest describes a one-shot easy-search run producing tabular hits.
// Exactly one of Sequence and FastaFile must be set.
type SearchRequest struct {
	Sequence  string
	FastaFile string
	Name      string
	WorkDir   string
	Database  string
	Padded    bool
	Options   Options
}

// SearchResult is the outcome of a successful easy-search run.
type SearchResult struct {
	// HitsPath is the tabular (BLAST m8) hit file.
	HitsPath string

	// WorkDir is the directory holding the hit file and scratch data.
	WorkDir string
}

// EasySearch runs the one-shot tabular-hits variant. It is an independent
// entry point from GenerateMSA: easy-search performs its own query database
// creation internally, so the two flows share only the materialization of a
// raw sequence into a FASTA file.
func (s *Sequencer) EasySearch(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	full := Request{
		Sequence:  req.Sequence,
		FastaFile: req.FastaFile,
		Name:      req.Name,
		Database:  req.Database,
		Padded:    req.Padded,
		Options:   req.Options,
	}
	db, err := s.preflight(&full)
	if err != nil {
		return nil, err
	}

	workDir, err := ensureWorkDir(req.WorkDir)
	if err != nil {
		return nil, err
	}

	job, queryFasta, err := s.materializeQuery(full, workDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(job.TmpDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	s.log.Info("easy-search", "job", job.Name, "database", db)
	args := []string{"easy-search", queryFasta, db, job.HitsFile(), job.TmpDir()}
	args = append(args, req.Options.flags()...)
	if err := s.step(ctx, 1, "easy-search", args...); err != nil {
		return nil, err
	}

	return &SearchResult{HitsPath: job.HitsFile(), WorkDir: workDir}, nil
}
