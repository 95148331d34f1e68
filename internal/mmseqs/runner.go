package mmseqs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// Result holds the captured output of one mmseqs invocation.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner invokes one mmseqs subcommand and blocks until it exits. args are
// the subcommand and its arguments, without the binary name. A non-zero exit
// returns both a populated Result and a non-nil error.
type Runner interface {
	Run(ctx context.Context, args ...string) (*Result, error)
}

// ExecRunner runs the mmseqs binary via os/exec.
type ExecRunner struct {
	// Bin is the path to the mmseqs binary.
	Bin string

	// Log receives per-invocation debug output. Nil disables logging.
	Log *slog.Logger
}

var _ Runner = (*ExecRunner)(nil)

// NewExecRunner creates an ExecRunner for the given binary path.
func NewExecRunner(bin string, log *slog.Logger) *ExecRunner {
	if log == nil {
		log = NopLogger()
	}
	return &ExecRunner{Bin: bin, Log: log}
}

// Run executes the binary with the given arguments, capturing stdout and
// stderr. Cancellation of ctx kills the process.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (*Result, error) {
	r.Log.Debug("invoking mmseqs", "bin", r.Bin, "args", args)

	cmd := exec.CommandContext(ctx, r.Bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, fmt.Errorf("mmseqs %s exited %d: %w", firstArg(args), res.ExitCode, err)
		}
		return res, fmt.Errorf("start mmseqs %s: %w", firstArg(args), err)
	}

	return res, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
