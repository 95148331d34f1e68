// Package config loads project-level settings from mmseqs.yml.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/seqlab/mmseqs-mcp/internal/pipeline"
)

// SearchDefaults holds default search options applied to requests that leave
// the corresponding field unset. Nil fields defer to the external tool.
type SearchDefaults struct {
	Sensitivity   *float64 `yaml:"sensitivity,omitempty"`
	NumIterations *int     `yaml:"numIterations,omitempty"`
	EValue        *float64 `yaml:"eValue,omitempty"`
	MaxSeqs       *int     `yaml:"maxSeqs,omitempty"`
	GPU           *bool    `yaml:"gpu,omitempty"`
	Threads       *int     `yaml:"threads,omitempty"`
}

// ProjectConfig holds settings loaded from mmseqs.yml.
type ProjectConfig struct {
	// BinPath is an explicit path to the mmseqs binary.
	BinPath string `yaml:"binPath,omitempty"`

	// DatabasePath is the reference database prefix. Takes precedence over
	// the MMSEQS2_DB_PATH environment variable.
	DatabasePath string `yaml:"databasePath,omitempty"`

	// Padded declares DatabasePath as padded when its name does not follow
	// the _padded convention.
	Padded bool `yaml:"padded,omitempty"`

	// WorkDir is the default working directory for pipeline runs.
	WorkDir string `yaml:"workDir,omitempty"`

	// Search supplies default search options.
	Search SearchDefaults `yaml:"search,omitempty"`

	// Verbose enables step-level progress output.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Load attempts to read mmseqs.yml or mmseqs.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"mmseqs.yml", "mmseqs.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// Options converts the configured search defaults to pipeline options.
func (c *ProjectConfig) Options() pipeline.Options {
	return pipeline.Options{
		Sensitivity:   c.Search.Sensitivity,
		NumIterations: c.Search.NumIterations,
		EValue:        c.Search.EValue,
		MaxSeqs:       c.Search.MaxSeqs,
		UseGPU:        c.Search.GPU,
		Threads:       c.Search.Threads,
	}
}
