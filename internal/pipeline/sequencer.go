// Package pipeline maps a single logical MSA request onto the fixed sequence
// of MMseqs2 invocations that fulfills it.
//
// The pipeline is a workflow, not a general DAG: five steps in a strict
// linear order (create query DB, search, convert to MSA, unpack, optional
// concatenation), each blocking on completion of the previous one. There are
// no branches, no cycles, and no retries; a failed step surfaces immediately
// with the step identified.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/seqlab/mmseqs-mcp/internal/mmseqs"
)

// Step names in the fixed pipeline order. Step indices reported by StepError
// are 1-based positions in this order.
const (
	StepCreateDB   = "createdb"
	StepSearch     = "search"
	StepResult2MSA = "result2msa"
	StepUnpackDB   = "unpackdb"
	StepConcat     = "concat"
)

// Request describes one MSA pipeline run. Exactly one of Sequence and
// FastaFile must be set.
type Request struct {
	// Sequence is the raw query sequence (one-letter codes).
	Sequence string

	// FastaFile is the path to an existing FASTA file with the query
	// sequence(s).
	FastaFile string

	// Name identifies the sequence. Defaults to "query" for raw sequences,
	// or the first FASTA header when a file is supplied.
	Name string

	// WorkDir is the directory for all artifacts. Empty means a fresh
	// temporary directory. Concurrent jobs must use distinct directories or
	// distinct names.
	WorkDir string

	// Database is the reference database prefix. Empty falls back to the
	// sequencer default (MMSEQS2_DB_PATH).
	Database string

	// Padded declares the database as padded when its name does not follow
	// the _padded convention. GPU-mode search requires a padded database.
	Padded bool

	// SkipConcat leaves the unpacked per-query files unmerged.
	SkipConcat bool

	// Options tunes the search step.
	Options Options
}

// MSAResult is the outcome of a successful pipeline run.
type MSAResult struct {
	// A3MPath is the concatenated alignment file. Empty when the request
	// skipped concatenation.
	A3MPath string

	// MSADir is the directory of unpacked per-query .a3m files.
	MSADir string

	// WorkDir is the working directory holding the full artifact chain.
	WorkDir string

	// Job names the artifact chain.
	Job Job
}

// Sequencer turns MSA requests into ordered mmseqs invocations. It holds no
// shared mutable state; one Sequencer may serve concurrent jobs as long as
// each job has a distinct working directory or job name.
type Sequencer struct {
	runner mmseqs.Runner
	db     string
	log    *slog.Logger
}

// NewSequencer creates a Sequencer. defaultDB is used when a request carries
// no database; a nil logger disables logging.
func NewSequencer(runner mmseqs.Runner, defaultDB string, log *slog.Logger) *Sequencer {
	if log == nil {
		log = mmseqs.NopLogger()
	}
	return &Sequencer{runner: runner, db: defaultDB, log: log}
}

// GenerateMSA runs the full pipeline: materialize query, search, convert to
// MSA, unpack, concatenate. Any step exiting non-zero surfaces as a
// *StepError; missing inputs surface as a *PreconditionError before any
// external process is spawned.
func (s *Sequencer) GenerateMSA(ctx context.Context, req Request) (*MSAResult, error) {
	db, err := s.preflight(&req)
	if err != nil {
		return nil, err
	}

	workDir, err := ensureWorkDir(req.WorkDir)
	if err != nil {
		return nil, err
	}

	job, queryFasta, err := s.materializeQuery(req, workDir)
	if err != nil {
		return nil, err
	}

	// Step 1: create the query database.
	s.logStep(1, StepCreateDB, job)
	if err := s.step(ctx, 1, StepCreateDB, "createdb", queryFasta, job.QueryDB()); err != nil {
		return nil, err
	}

	// Step 2: search against the reference database. This may run for hours
	// on deep iterative searches; it blocks until the external process exits.
	s.logStep(2, StepSearch, job)
	args := []string{"search", job.QueryDB(), db, job.ResultDB(), job.TmpDir()}
	args = append(args, req.Options.flags()...)
	if err := s.step(ctx, 2, StepSearch, args...); err != nil {
		return nil, err
	}

	// Step 3: convert the result database to an MSA database. Format mode 6
	// produces a3m, which downstream consumers expect.
	s.logStep(3, StepResult2MSA, job)
	if err := s.step(ctx, 3, StepResult2MSA,
		"result2msa", job.QueryDB(), db, job.ResultDB(), job.MSADB(),
		"--msa-format-mode", "6"); err != nil {
		return nil, err
	}

	// Step 4: unpack the MSA database into one file per query.
	s.logStep(4, StepUnpackDB, job)
	if err := s.step(ctx, 4, StepUnpackDB,
		"unpackdb", job.MSADB(), job.MSADir(), "--unpack-suffix", ".a3m"); err != nil {
		return nil, err
	}

	result := &MSAResult{
		MSADir:  job.MSADir(),
		WorkDir: workDir,
		Job:     job,
	}

	if req.SkipConcat {
		return result, nil
	}

	// Step 5: concatenate the unpacked files in filename order.
	s.logStep(5, StepConcat, job)
	if err := concatA3M(job.MSADir(), job.OutputA3M()); err != nil {
		return nil, &StepError{Step: 5, Name: StepConcat, Err: err}
	}
	result.A3MPath = job.OutputA3M()

	return result, nil
}

// preflight validates the request and resolves the database prefix. It runs
// entirely before any external process is spawned.
func (s *Sequencer) preflight(req *Request) (string, error) {
	if req.Sequence == "" && req.FastaFile == "" {
		return "", &PreconditionError{Reason: "either a sequence or a FASTA file must be provided"}
	}
	if req.Sequence != "" && req.FastaFile != "" {
		return "", &PreconditionError{Reason: "only one of sequence or FASTA file may be provided"}
	}
	if req.FastaFile != "" {
		if _, err := os.Stat(req.FastaFile); err != nil {
			return "", &PreconditionError{Reason: fmt.Sprintf("FASTA file not found at %s", req.FastaFile)}
		}
	}

	if err := req.Options.validate(); err != nil {
		return "", err
	}

	db := req.Database
	if db == "" {
		db = s.db
	}
	if db == "" {
		return "", &PreconditionError{Reason: "no reference database configured"}
	}
	if _, err := os.Stat(db); err != nil {
		return "", &PreconditionError{Reason: fmt.Sprintf("database not found at %s", db)}
	}

	if req.Options.gpuRequested() && !req.Padded && !looksPadded(db) {
		return "", &ConfigurationError{
			Reason: fmt.Sprintf("GPU search requires a padded database, but %s does not follow the _padded convention (run makepaddedseqdb first, or set padded explicitly)", db),
		}
	}

	return db, nil
}

// materializeQuery writes a raw sequence to a FASTA file, or resolves the
// job name from the first header of a supplied file.
func (s *Sequencer) materializeQuery(req Request, workDir string) (Job, string, error) {
	if req.Sequence != "" {
		name := req.Name
		if name == "" {
			name = "query"
		}
		job := NewJob(workDir, name)
		fasta := job.QueryFASTA()
		content := fmt.Sprintf(">%s\n%s\n", name, req.Sequence)
		if err := os.WriteFile(fasta, []byte(content), 0o644); err != nil {
			return Job{}, "", fmt.Errorf("write query FASTA: %w", err)
		}
		return job, fasta, nil
	}

	name := req.Name
	if name == "" {
		name = readFastaName(req.FastaFile)
	}
	return NewJob(workDir, name), req.FastaFile, nil
}

// step runs one external invocation, mapping a failure to a *StepError
// carrying the step index and captured stderr.
func (s *Sequencer) step(ctx context.Context, num int, name string, args ...string) error {
	res, err := s.runner.Run(ctx, args...)
	if err != nil {
		stepErr := &StepError{Step: num, Name: name, Command: args, Err: err}
		if res != nil {
			stepErr.Stderr = string(res.Stderr)
			stepErr.ExitCode = res.ExitCode
		}
		return stepErr
	}
	return nil
}

func (s *Sequencer) logStep(num int, name string, job Job) {
	s.log.Info("pipeline step", "step", fmt.Sprintf("%d/5", num), "name", name, "job", job.Name)
}

// looksPadded reports whether a database prefix follows the naming convention
// of databases prepared with makepaddedseqdb.
func looksPadded(db string) bool {
	return strings.HasSuffix(filepath.Base(db), "_padded")
}

// ensureWorkDir creates the working directory, or a fresh temporary one when
// none was given.
func ensureWorkDir(dir string) (string, error) {
	if dir == "" {
		tmp, err := os.MkdirTemp("", "mmseqs2_")
		if err != nil {
			return "", fmt.Errorf("create temp work dir: %w", err)
		}
		return tmp, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &PreconditionError{Reason: fmt.Sprintf("cannot create working directory %s: %v", dir, err)}
	}
	return dir, nil
}

// readFastaName extracts the identifier from the first header line of a
// FASTA file. Falls back to "query" when no header is found.
func readFastaName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "query"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			fields := strings.Fields(line[1:])
			if len(fields) > 0 {
				return fields[0]
			}
		}
		break
	}
	return "query"
}

// concatA3M merges all .a3m files under dir into out, in sorted filename
// order. filepath.Glob returns sorted matches, which keeps reruns
// byte-identical given identical inputs.
func concatA3M(dir, out string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.a3m"))
	if err != nil {
		return fmt.Errorf("glob %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .a3m files produced in %s", dir)
	}

	outFile, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}

	for _, match := range matches {
		in, err := os.Open(match)
		if err != nil {
			outFile.Close()
			return fmt.Errorf("open %s: %w", match, err)
		}
		_, err = io.Copy(outFile, in)
		in.Close()
		if err != nil {
			outFile.Close()
			return fmt.Errorf("copy %s: %w", match, err)
		}
	}

	return outFile.Close()
}
