// Package artifacts inspects the artifact chain a pipeline run leaves in its
// working directory.
package artifacts

import (
	"os"
	"strings"

	"github.com/seqlab/mmseqs-mcp/internal/pipeline"
)

// Artifact describes one entry of the artifact chain.
type Artifact struct {
	// Step is the 1-based pipeline step that produces this artifact.
	Step int

	// Label is a human-readable description (e.g. "query database").
	Label string

	// Path is the absolute location within the working directory.
	Path string

	// Present reports whether the artifact exists on disk.
	Present bool
}

// ChainStatus holds the completion state of one job's artifact chain.
type ChainStatus struct {
	Name      string
	Dir       string
	Artifacts []Artifact

	// NextStep is the first pipeline step whose artifact is missing,
	// or -1 when the chain is complete.
	NextStep int
}

var stepLabels = [5]string{
	"query database",
	"search result database",
	"MSA database",
	"unpacked alignments",
	"concatenated alignment",
}

// ScanChain checks which artifacts of the named job exist in dir.
func ScanChain(dir, name string) ChainStatus {
	job := pipeline.Job{Name: name, Dir: dir}

	paths := [5]string{
		job.QueryDB(),
		job.ResultDB(),
		job.MSADB(),
		job.MSADir(),
		job.OutputA3M(),
	}

	status := ChainStatus{
		Name:      name,
		Dir:       dir,
		Artifacts: make([]Artifact, 5),
		NextStep:  -1,
	}

	for i, path := range paths {
		_, err := os.Stat(path)
		status.Artifacts[i] = Artifact{
			Step:    i + 1,
			Label:   stepLabels[i],
			Path:    path,
			Present: err == nil,
		}
		if err != nil && status.NextStep == -1 {
			status.NextStep = i + 1
		}
	}

	return status
}

// ListJobs scans a directory for jobs by their concatenated .a3m outputs and
// query databases, returning the distinct job names found.
func ListJobs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		base, ok := jobNameFromArtifact(name)
		if !ok || seen[base] {
			continue
		}
		seen[base] = true
		names = append(names, base)
	}
	return names
}

// jobNameFromArtifact recovers a job name from a known artifact filename.
func jobNameFromArtifact(filename string) (string, bool) {
	for _, suffix := range []string{"_db", ".a3m", ".fasta"} {
		if !strings.HasSuffix(filename, suffix) || filename == suffix {
			continue
		}
		base := strings.TrimSuffix(filename, suffix)
		// Derived databases resolve through the plain _db artifact instead.
		if suffix == "_db" && (strings.HasSuffix(base, "_result") || strings.HasSuffix(base, "_msa")) {
			return "", false
		}
		return base, true
	}
	return "", false
}
