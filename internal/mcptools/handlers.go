package mcptools

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/seqlab/mmseqs-mcp/internal/artifacts"
	"github.com/seqlab/mmseqs-mcp/internal/pipeline"
)

// MSAService handles MCP tool calls. It wraps a pipeline.Sequencer and
// applies configured defaults to incoming requests.
type MSAService struct {
	seq      *pipeline.Sequencer
	defaults pipeline.Options
	workDir  string
	padded   bool
}

// NewMSAService creates an MSAService around the given sequencer.
func NewMSAService(seq *pipeline.Sequencer) *MSAService {
	return &MSAService{seq: seq}
}

// SetDefaults installs search option defaults applied to requests that leave
// the corresponding field unset.
func (s *MSAService) SetDefaults(opts pipeline.Options) {
	s.defaults = opts
}

// SetWorkDir sets the default working directory for runs that do not specify
// an output directory.
func (s *MSAService) SetWorkDir(dir string) {
	s.workDir = dir
}

// SetPadded declares the configured default database as padded even when its
// name does not follow the _padded convention.
func (s *MSAService) SetPadded(padded bool) {
	s.padded = padded
}

// GenerateMSA runs the full MSA pipeline for one query and returns either
// the a3m content or the output path.
func (s *MSAService) GenerateMSA(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateMSAInput,
) (*mcp.CallToolResult, GenerateMSAOutput, error) {
	format := input.ReturnFormat
	if format == "" {
		format = "a3m"
	}
	if format != "a3m" && format != "path" {
		return nil, GenerateMSAOutput{}, fmt.Errorf("returnFormat must be a3m or path, got %q", format)
	}

	res, err := s.seq.GenerateMSA(ctx, pipeline.Request{
		Sequence:  input.Sequence,
		FastaFile: input.FastaFile,
		Name:      input.SequenceName,
		WorkDir:   s.resolveWorkDir(input.OutputDir),
		Database:  input.DatabasePath,
		Padded:    s.padded,
		Options:   s.options(input.SearchParams),
	})
	if err != nil {
		return nil, failedMSAOutput(err), nil
	}

	out := GenerateMSAOutput{
		Path:   res.A3MPath,
		MSADir: res.MSADir,
		Status: "completed",
	}

	if format == "a3m" {
		content, err := os.ReadFile(res.A3MPath)
		if err != nil {
			return nil, GenerateMSAOutput{}, fmt.Errorf("read MSA output: %w", err)
		}
		out.A3M = string(content)
	}

	return nil, out, nil
}

// GenerateMSAFromFile runs the full MSA pipeline for a FASTA file, always
// preserving intermediate files in the given output directory.
func (s *MSAService) GenerateMSAFromFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateMSAFromFileInput,
) (*mcp.CallToolResult, GenerateMSAOutput, error) {
	if input.FastaFile == "" {
		return nil, GenerateMSAOutput{}, fmt.Errorf("fastaFile is required")
	}
	if input.OutputDir == "" {
		return nil, GenerateMSAOutput{}, fmt.Errorf("outputDir is required")
	}

	res, err := s.seq.GenerateMSA(ctx, pipeline.Request{
		FastaFile: input.FastaFile,
		WorkDir:   input.OutputDir,
		Database:  input.DatabasePath,
		Padded:    s.padded,
		Options:   s.options(input.SearchParams),
	})
	if err != nil {
		return nil, failedMSAOutput(err), nil
	}

	return nil, GenerateMSAOutput{
		Path:   res.A3MPath,
		MSADir: res.MSADir,
		Status: "completed",
	}, nil
}

// GenerateMSABatch runs independent MSA pipelines for several sequences
// concurrently, each in its own subdirectory.
func (s *MSAService) GenerateMSABatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateMSABatchInput,
) (*mcp.CallToolResult, GenerateMSABatchOutput, error) {
	if len(input.Sequences) == 0 {
		return nil, GenerateMSABatchOutput{}, fmt.Errorf("sequences is required")
	}

	queries := make([]pipeline.BatchQuery, 0, len(input.Sequences))
	for name, seq := range input.Sequences {
		queries = append(queries, pipeline.BatchQuery{Name: name, Sequence: seq})
	}

	results, err := s.seq.GenerateMSABatch(ctx, pipeline.BatchRequest{
		Queries:     queries,
		WorkDir:     s.resolveWorkDir(input.OutputDir),
		Database:    input.DatabasePath,
		Padded:      s.padded,
		Options:     s.options(input.SearchParams),
		MaxParallel: input.MaxParallel,
	})
	if err != nil {
		return nil, GenerateMSABatchOutput{Status: "failed"}, err
	}

	out := GenerateMSABatchOutput{Status: "completed"}
	for _, r := range results {
		job := BatchJobOutput{
			Name:    r.Name,
			Path:    r.A3MPath,
			WorkDir: r.WorkDir,
			Status:  "completed",
		}
		if r.Err != nil {
			job.Status = "failed"
			job.Message = r.Err.Error()
			out.Status = "partial"
		}
		out.Jobs = append(out.Jobs, job)
	}

	return nil, out, nil
}

// EasySearch runs the one-shot tabular-hits search.
func (s *MSAService) EasySearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EasySearchInput,
) (*mcp.CallToolResult, EasySearchOutput, error) {
	res, err := s.seq.EasySearch(ctx, pipeline.SearchRequest{
		Sequence:  input.Sequence,
		FastaFile: input.FastaFile,
		Name:      input.SequenceName,
		WorkDir:   s.resolveWorkDir(input.OutputDir),
		Database:  input.DatabasePath,
		Padded:    s.padded,
		Options:   s.options(input.SearchParams),
	})
	if err != nil {
		return nil, EasySearchOutput{Status: "failed", Message: err.Error()}, nil
	}

	return nil, EasySearchOutput{HitsPath: res.HitsPath, Status: "completed"}, nil
}

// PadDatabase prepares a padded database variant for GPU-mode search.
func (s *MSAService) PadDatabase(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PadDatabaseInput,
) (*mcp.CallToolResult, PadDatabaseOutput, error) {
	if input.DatabasePath == "" {
		return nil, PadDatabaseOutput{}, fmt.Errorf("databasePath is required")
	}

	padded, err := s.seq.PadDatabase(ctx, input.DatabasePath, input.OutputPath)
	if err != nil {
		return nil, PadDatabaseOutput{Status: "failed", Message: err.Error()}, nil
	}

	return nil, PadDatabaseOutput{PaddedPath: padded, Status: "completed"}, nil
}

// JobStatus reports which artifacts of a pipeline run exist on disk.
func (s *MSAService) JobStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input JobStatusInput,
) (*mcp.CallToolResult, JobStatusOutput, error) {
	if input.WorkDir == "" {
		return nil, JobStatusOutput{}, fmt.Errorf("workDir is required")
	}

	names := []string{input.Name}
	if input.Name == "" {
		names = artifacts.ListJobs(input.WorkDir)
	}

	out := JobStatusOutput{}
	for _, name := range names {
		chain := artifacts.ScanChain(input.WorkDir, name)
		jc := JobChain{Name: chain.Name, NextStep: chain.NextStep}
		for _, a := range chain.Artifacts {
			jc.Artifacts = append(jc.Artifacts, JobArtifact{
				Step:    a.Step,
				Label:   a.Label,
				Path:    a.Path,
				Present: a.Present,
			})
		}
		out.Jobs = append(out.Jobs, jc)
	}

	return nil, out, nil
}

// options merges per-request search parameters over the configured defaults.
func (s *MSAService) options(p SearchParams) pipeline.Options {
	opts := s.defaults
	if p.Sensitivity != nil {
		opts.Sensitivity = p.Sensitivity
	}
	if p.NumIterations != nil {
		opts.NumIterations = p.NumIterations
	}
	if p.EValue != nil {
		opts.EValue = p.EValue
	}
	if p.MaxSeqs != nil {
		opts.MaxSeqs = p.MaxSeqs
	}
	if p.GPU != nil {
		opts.UseGPU = p.GPU
	}
	if p.Threads != nil {
		opts.Threads = p.Threads
	}
	return opts
}

// resolveWorkDir prefers the request directory, then the configured default.
// Empty means the sequencer creates a fresh temporary directory.
func (s *MSAService) resolveWorkDir(requested string) string {
	if requested != "" {
		return requested
	}
	return s.workDir
}

// failedMSAOutput maps a pipeline error to a structured failure, tagging the
// originating step when one was reached.
func failedMSAOutput(err error) GenerateMSAOutput {
	out := GenerateMSAOutput{Status: "failed", Message: err.Error()}
	var stepErr *pipeline.StepError
	if errors.As(err, &stepErr) {
		out.FailedStep = stepErr.Step
	}
	return out
}
