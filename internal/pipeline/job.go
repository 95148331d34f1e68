package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Job names the artifact chain of one pipeline run inside a working
// directory. Each artifact is produced by exactly one step and consumed by at
// most the next; names must be unique per working directory so concurrent
// jobs sharing one do not collide.
type Job struct {
	// Name is the job identifier, usually the query sequence name.
	Name string

	// Dir is the working directory holding all artifacts.
	Dir string
}

// NewJob creates a Job in dir. An empty name is replaced with a fresh ULID so
// artifact names never collide.
func NewJob(dir, name string) Job {
	if name == "" {
		name = strings.ToLower(ulid.Make().String())
	}
	return Job{Name: name, Dir: dir}
}

// QueryFASTA is the materialized query sequence file (<name>.fasta).
func (j Job) QueryFASTA() string { return filepath.Join(j.Dir, j.Name+".fasta") }

// QueryDB is the query database produced by createdb (<name>_db).
func (j Job) QueryDB() string { return filepath.Join(j.Dir, j.Name+"_db") }

// ResultDB is the search result database (<name>_result_db).
func (j Job) ResultDB() string { return filepath.Join(j.Dir, j.Name+"_result_db") }

// MSADB is the alignment database produced by result2msa (<name>_msa_db).
func (j Job) MSADB() string { return filepath.Join(j.Dir, j.Name+"_msa_db") }

// MSADir is the directory of unpacked per-query .a3m files (<name>_msa/).
func (j Job) MSADir() string { return filepath.Join(j.Dir, j.Name+"_msa") }

// OutputA3M is the concatenated alignment file (<name>.a3m).
func (j Job) OutputA3M() string { return filepath.Join(j.Dir, j.Name+".a3m") }

// HitsFile is the tabular hit file written by easy-search (<name>.m8).
func (j Job) HitsFile() string { return filepath.Join(j.Dir, j.Name+".m8") }

// TmpDir is the scratch directory the external tool uses for intermediate
// computation. It is created before the search step and never cleaned up
// here.
func (j Job) TmpDir() string { return filepath.Join(j.Dir, "tmp") }
