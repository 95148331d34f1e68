package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("reads mmseqs.yml", func(t *testing.T) {
		dir := t.TempDir()
		content := `
binPath: /opt/mmseqs/bin/mmseqs
databasePath: /data/uniref100.fasta.db_padded
workDir: /scratch/msa
search:
  threads: 64
  sensitivity: 7.5
  numIterations: 10
  eValue: 0.001
  maxSeqs: 100000
  gpu: true
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mmseqs.yml"), []byte(content), 0o644))

		cfg, err := Load(dir)
		require.NoError(t, err)

		assert.Equal(t, "/opt/mmseqs/bin/mmseqs", cfg.BinPath)
		assert.Equal(t, "/data/uniref100.fasta.db_padded", cfg.DatabasePath)
		assert.Equal(t, "/scratch/msa", cfg.WorkDir)

		opts := cfg.Options()
		require.NotNil(t, opts.Threads)
		assert.Equal(t, 64, *opts.Threads)
		require.NotNil(t, opts.Sensitivity)
		assert.Equal(t, 7.5, *opts.Sensitivity)
		require.NotNil(t, opts.UseGPU)
		assert.True(t, *opts.UseGPU)
	})

	t.Run("absent file yields a zero-value config", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)

		assert.Empty(t, cfg.DatabasePath)
		opts := cfg.Options()
		assert.Nil(t, opts.Threads)
		assert.Nil(t, opts.UseGPU)
	})

	t.Run("unset search options stay nil", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mmseqs.yaml"),
			[]byte("search:\n  threads: 8\n"), 0o644))

		cfg, err := Load(dir)
		require.NoError(t, err)

		opts := cfg.Options()
		require.NotNil(t, opts.Threads)
		assert.Equal(t, 8, *opts.Threads)
		assert.Nil(t, opts.Sensitivity, "unspecified options must not gain defaults")
		assert.Nil(t, opts.EValue)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mmseqs.yml"),
			[]byte("search: [broken\n"), 0o644))

		_, err := Load(dir)
		require.Error(t, err)
	})
}
