package mmseqs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		bin := filepath.Join(t.TempDir(), "mmseqs")
		require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))

		got, err := Locate(bin)
		require.NoError(t, err)
		assert.Equal(t, bin, got)
	})

	t.Run("falls back to MMSEQS_BIN", func(t *testing.T) {
		bin := filepath.Join(t.TempDir(), "mmseqs")
		require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
		t.Setenv(BinEnvVar, bin)

		got, err := Locate("")
		require.NoError(t, err)
		assert.Equal(t, bin, got)
	})

	t.Run("reports all searched locations when nothing is found", func(t *testing.T) {
		t.Setenv(BinEnvVar, "")
		t.Setenv("PATH", t.TempDir())

		_, err := Locate("/nonexistent/mmseqs")

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Searched, "/nonexistent/mmseqs")
		assert.Contains(t, notFound.Searched, "$PATH")
	})
}

func TestDefaultDatabase(t *testing.T) {
	t.Run("environment variable takes precedence", func(t *testing.T) {
		t.Setenv(DBPathEnvVar, "/data/uniref50.db")
		assert.Equal(t, "/data/uniref50.db", DefaultDatabase())
	})

	t.Run("falls back to the UniRef100 padded database", func(t *testing.T) {
		t.Setenv(DBPathEnvVar, "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got := DefaultDatabase()
		assert.Equal(t, filepath.Join(home, ".db/protein/uniref100/uniref100.fasta.db_padded"), got)
	})

	t.Run("expands a leading tilde", func(t *testing.T) {
		t.Setenv(DBPathEnvVar, "~/dbs/uniref.db")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(home, "dbs/uniref.db"), DefaultDatabase())
	})
}
