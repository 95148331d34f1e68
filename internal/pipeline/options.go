package pipeline

import (
	"fmt"
	"strconv"
)

// Options tunes the search step. Each set field maps 1:1 to a flag on the
// mmseqs search invocation; nil fields are omitted so the external tool's
// own defaults apply.
type Options struct {
	// Sensitivity is the thoroughness-vs-speed trade-off (-s). Higher values
	// search more exhaustively.
	Sensitivity *float64

	// NumIterations is the number of profile-search refinement rounds
	// (--num-iterations). Must be >= 1 when set.
	NumIterations *int

	// EValue is the significance threshold (-e).
	EValue *float64

	// MaxSeqs caps the number of returned sequences (--max-seqs).
	MaxSeqs *int

	// UseGPU enables GPU-accelerated search (--gpu). Requires a padded
	// reference database.
	UseGPU *bool

	// Threads is the CPU thread count (--threads).
	Threads *int
}

// Float64 returns a pointer to v, for setting optional fields.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for setting optional fields.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for setting optional fields.
func Bool(v bool) *bool { return &v }

// gpuRequested reports whether GPU mode is explicitly enabled.
func (o Options) gpuRequested() bool {
	return o.UseGPU != nil && *o.UseGPU
}

// validate rejects option values the search step cannot accept.
func (o Options) validate() error {
	if o.NumIterations != nil && *o.NumIterations < 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("numIterations must be >= 1, got %d", *o.NumIterations)}
	}
	if o.Threads != nil && *o.Threads < 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("threads must be >= 1, got %d", *o.Threads)}
	}
	return nil
}

// flags renders the set options as mmseqs search flags, in a fixed order.
// Unset options produce no flag.
func (o Options) flags() []string {
	var args []string
	if o.UseGPU != nil {
		args = append(args, "--gpu", boolFlag(*o.UseGPU))
	}
	if o.Threads != nil {
		args = append(args, "--threads", strconv.Itoa(*o.Threads))
	}
	if o.Sensitivity != nil {
		args = append(args, "-s", formatFloat(*o.Sensitivity))
	}
	if o.NumIterations != nil {
		args = append(args, "--num-iterations", strconv.Itoa(*o.NumIterations))
	}
	if o.EValue != nil {
		args = append(args, "-e", formatFloat(*o.EValue))
	}
	if o.MaxSeqs != nil {
		args = append(args, "--max-seqs", strconv.Itoa(*o.MaxSeqs))
	}
	return args
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
