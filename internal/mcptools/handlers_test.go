package mcptools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqlab/mmseqs-mcp/internal/mmseqs"
	"github.com/seqlab/mmseqs-mcp/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// fakeRunner records invocations and fabricates the artifacts each mmseqs
// subcommand would produce.
type fakeRunner struct {
	mu     sync.Mutex
	calls  [][]string
	failOn string
	stderr string
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (*mmseqs.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, args)
	f.mu.Unlock()

	sub := args[0]
	if sub == f.failOn {
		return &mmseqs.Result{Stderr: []byte(f.stderr), ExitCode: 1},
			fmt.Errorf("mmseqs %s exited 1", sub)
	}

	switch sub {
	case "createdb":
		os.WriteFile(args[2], nil, 0o644)
	case "search":
		os.WriteFile(args[3], nil, 0o644)
	case "result2msa":
		os.WriteFile(args[4], nil, 0o644)
	case "unpackdb":
		os.MkdirAll(args[2], 0o755)
		os.WriteFile(filepath.Join(args[2], "0.a3m"), []byte(">q\nMKTAYIAKQR\n"), 0o644)
	case "easy-search":
		os.WriteFile(args[3], []byte("q\thit\t0.99\n"), 0o644)
	case "makepaddedseqdb":
		os.WriteFile(args[2], nil, 0o644)
	}
	return &mmseqs.Result{}, nil
}

// newTestService wires an MSAService over a fake runner and a database file
// on disk.
func newTestService(t *testing.T) (*MSAService, *fakeRunner, string) {
	t.Helper()
	fake := &fakeRunner{}
	db := filepath.Join(t.TempDir(), "uniref.db")
	require.NoError(t, os.WriteFile(db, []byte("db"), 0o644))

	seq := pipeline.NewSequencer(fake, db, nil)
	return NewMSAService(seq), fake, db
}

// ---------------------------------------------------------------------------
// TestGenerateMSATool
// ---------------------------------------------------------------------------

func TestGenerateMSATool(t *testing.T) {
	t.Run("returns the a3m content by default", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, out, err := svc.GenerateMSA(context.Background(), nil, GenerateMSAInput{
			Sequence:  "MKTAYIAKQR",
			OutputDir: t.TempDir(),
		})
		require.NoError(t, err)

		assert.Equal(t, "completed", out.Status)
		assert.Equal(t, ">q\nMKTAYIAKQR\n", out.A3M)
		assert.FileExists(t, out.Path)
	})

	t.Run("path format omits the content", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, out, err := svc.GenerateMSA(context.Background(), nil, GenerateMSAInput{
			Sequence:     "MKTAYIAKQR",
			OutputDir:    t.TempDir(),
			ReturnFormat: "path",
		})
		require.NoError(t, err)

		assert.Empty(t, out.A3M)
		assert.FileExists(t, out.Path)
		assert.DirExists(t, out.MSADir)
	})

	t.Run("rejects an unknown return format", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.GenerateMSA(context.Background(), nil, GenerateMSAInput{
			Sequence:     "MKTAYIAKQR",
			ReturnFormat: "pdf",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "returnFormat")
	})

	t.Run("a missing database is a structured failure", func(t *testing.T) {
		svc, fake, _ := newTestService(t)

		_, out, err := svc.GenerateMSA(context.Background(), nil, GenerateMSAInput{
			Sequence:     "MKTAYIAKQR",
			DatabasePath: "/tmp/does-not-exist/uniref_db",
		})
		require.NoError(t, err, "pipeline failures surface as structured output")

		assert.Equal(t, "failed", out.Status)
		assert.Contains(t, out.Message, "database not found")
		assert.Zero(t, out.FailedStep, "no step was reached")
		assert.Empty(t, fake.calls)
	})

	t.Run("a step failure is tagged with its index", func(t *testing.T) {
		svc, fake, _ := newTestService(t)
		fake.failOn = "search"
		fake.stderr = "Invalid database read"

		_, out, err := svc.GenerateMSA(context.Background(), nil, GenerateMSAInput{
			Sequence:  "MKTAYIAKQR",
			OutputDir: t.TempDir(),
		})
		require.NoError(t, err)

		assert.Equal(t, "failed", out.Status)
		assert.Equal(t, 2, out.FailedStep)
		assert.Contains(t, out.Message, "Invalid database read")
	})

	t.Run("request options override configured defaults", func(t *testing.T) {
		svc, fake, _ := newTestService(t)
		svc.SetDefaults(pipeline.Options{Threads: pipeline.Int(8), EValue: pipeline.Float64(0.01)})

		_, _, err := svc.GenerateMSA(context.Background(), nil, GenerateMSAInput{
			Sequence:     "MKTAYIAKQR",
			OutputDir:    t.TempDir(),
			SearchParams: SearchParams{Threads: pipeline.Int(16)},
		})
		require.NoError(t, err)

		search := fake.calls[1]
		assert.Contains(t, search, "--threads")
		assert.Contains(t, search, "16", "request value wins over the default")
		assert.Contains(t, search, "-e")
		assert.Contains(t, search, "0.01", "untouched defaults still apply")
	})
}

// ---------------------------------------------------------------------------
// TestGenerateMSAFromFileTool
// ---------------------------------------------------------------------------

func TestGenerateMSAFromFileTool(t *testing.T) {
	t.Run("requires fastaFile and outputDir", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.GenerateMSAFromFile(context.Background(), nil, GenerateMSAFromFileInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fastaFile is required")

		_, _, err = svc.GenerateMSAFromFile(context.Background(), nil, GenerateMSAFromFileInput{
			FastaFile: "/tmp/query.fasta",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outputDir is required")
	})

	t.Run("preserves results in the output directory", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		outDir := t.TempDir()

		fasta := filepath.Join(t.TempDir(), "dhfr.fasta")
		require.NoError(t, os.WriteFile(fasta, []byte(">dhfr\nMKTAYIAKQR\n"), 0o644))

		_, out, err := svc.GenerateMSAFromFile(context.Background(), nil, GenerateMSAFromFileInput{
			FastaFile: fasta,
			OutputDir: outDir,
		})
		require.NoError(t, err)

		assert.Equal(t, "completed", out.Status)
		assert.Equal(t, filepath.Join(outDir, "dhfr.a3m"), out.Path)
		assert.FileExists(t, out.Path)
	})
}

// ---------------------------------------------------------------------------
// TestGenerateMSABatchTool
// ---------------------------------------------------------------------------

func TestGenerateMSABatchTool(t *testing.T) {
	t.Run("runs every sequence and reports per-job status", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, out, err := svc.GenerateMSABatch(context.Background(), nil, GenerateMSABatchInput{
			Sequences: map[string]string{
				"alpha": "MKTAYIAKQR",
				"beta":  "GATTACAGAT",
			},
			OutputDir: t.TempDir(),
		})
		require.NoError(t, err)

		assert.Equal(t, "completed", out.Status)
		require.Len(t, out.Jobs, 2)
		for _, job := range out.Jobs {
			assert.Equal(t, "completed", job.Status)
			assert.FileExists(t, job.Path)
		}
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.GenerateMSABatch(context.Background(), nil, GenerateMSABatchInput{})
		require.Error(t, err)
	})
}

// ---------------------------------------------------------------------------
// TestEasySearchTool
// ---------------------------------------------------------------------------

func TestEasySearchTool(t *testing.T) {
	t.Run("returns the tabular hit file path", func(t *testing.T) {
		svc, fake, _ := newTestService(t)

		_, out, err := svc.EasySearch(context.Background(), nil, EasySearchInput{
			Sequence:  "MKTAYIAKQR",
			OutputDir: t.TempDir(),
		})
		require.NoError(t, err)

		assert.Equal(t, "completed", out.Status)
		assert.FileExists(t, out.HitsPath)
		require.Len(t, fake.calls, 1)
		assert.Equal(t, "easy-search", fake.calls[0][0])
	})

	t.Run("failures are structured", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, out, err := svc.EasySearch(context.Background(), nil, EasySearchInput{
			Sequence:     "MKTAYIAKQR",
			DatabasePath: "/tmp/does-not-exist/uniref_db",
		})
		require.NoError(t, err)

		assert.Equal(t, "failed", out.Status)
		assert.Contains(t, out.Message, "database not found")
	})
}

// ---------------------------------------------------------------------------
// TestPadDatabaseTool
// ---------------------------------------------------------------------------

func TestPadDatabaseTool(t *testing.T) {
	t.Run("pads and returns the new prefix", func(t *testing.T) {
		svc, _, db := newTestService(t)

		_, out, err := svc.PadDatabase(context.Background(), nil, PadDatabaseInput{
			DatabasePath: db,
		})
		require.NoError(t, err)

		assert.Equal(t, "completed", out.Status)
		assert.Equal(t, db+"_padded", out.PaddedPath)
	})

	t.Run("requires a database path", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.PadDatabase(context.Background(), nil, PadDatabaseInput{})
		require.Error(t, err)
	})
}

// ---------------------------------------------------------------------------
// TestJobStatusTool
// ---------------------------------------------------------------------------

func TestJobStatusTool(t *testing.T) {
	t.Run("reports the artifact chain after a run", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		workDir := t.TempDir()

		_, msaOut, err := svc.GenerateMSA(context.Background(), nil, GenerateMSAInput{
			Sequence:     "MKTAYIAKQR",
			SequenceName: "dhfr",
			OutputDir:    workDir,
			ReturnFormat: "path",
		})
		require.NoError(t, err)
		require.Equal(t, "completed", msaOut.Status)

		_, out, err := svc.JobStatus(context.Background(), nil, JobStatusInput{
			WorkDir: workDir,
			Name:    "dhfr",
		})
		require.NoError(t, err)

		require.Len(t, out.Jobs, 1)
		assert.Equal(t, "dhfr", out.Jobs[0].Name)
		assert.Equal(t, -1, out.Jobs[0].NextStep, "completed run has the full chain")
		require.Len(t, out.Jobs[0].Artifacts, 5)
		for _, a := range out.Jobs[0].Artifacts {
			assert.True(t, a.Present, "artifact for step %d should exist", a.Step)
		}
	})

	t.Run("requires a working directory", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.JobStatus(context.Background(), nil, JobStatusInput{})
		require.Error(t, err)
	})
}
