package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
)

// BatchQuery is one query within a batch run.
type BatchQuery struct {
	Sequence  string
	FastaFile string
	Name      string
}

// BatchRequest runs independent MSA jobs concurrently. Each job gets its own
// subdirectory of WorkDir, so jobs never share artifact paths or scratch
// space. GPU and thread arbitration across concurrent jobs is the operator's
// responsibility.
type BatchRequest struct {
	Queries     []BatchQuery
	WorkDir     string
	Database    string
	Padded      bool
	Options     Options
	MaxParallel int
}

// BatchResult is the per-query outcome of a batch run.
type BatchResult struct {
	Name    string
	A3MPath string
	WorkDir string
	Err     error
}

// GenerateMSABatch runs one pipeline per query, bounded by MaxParallel
// (default 2). Results are returned in query order; a failed query carries
// its error without aborting the others.
func (s *Sequencer) GenerateMSABatch(ctx context.Context, req BatchRequest) ([]BatchResult, error) {
	if len(req.Queries) == 0 {
		return nil, &PreconditionError{Reason: "at least one query is required"}
	}

	workDir, err := ensureWorkDir(req.WorkDir)
	if err != nil {
		return nil, err
	}

	limit := req.MaxParallel
	if limit <= 0 {
		limit = 2
	}

	results := make([]BatchResult, len(req.Queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, q := range req.Queries {
		g.Go(func() error {
			jobDir := filepath.Join(workDir, jobDirName(q.Name))
			res, err := s.GenerateMSA(ctx, Request{
				Sequence:  q.Sequence,
				FastaFile: q.FastaFile,
				Name:      q.Name,
				WorkDir:   jobDir,
				Database:  req.Database,
				Padded:    req.Padded,
				Options:   req.Options,
			})
			results[i] = BatchResult{Name: q.Name, WorkDir: jobDir, Err: err}
			if err == nil {
				results[i].A3MPath = res.A3MPath
				results[i].Name = res.Job.Name
			}
			return nil
		})
	}

	// Goroutines record failures per query and never return an error.
	g.Wait()

	return results, nil
}

// jobDirName derives a unique subdirectory name for one batch job. The ULID
// suffix keeps repeated names from colliding.
func jobDirName(name string) string {
	id := strings.ToLower(ulid.Make().String())
	if name == "" {
		return "job-" + id
	}
	return fmt.Sprintf("%s-%s", name, id)
}
