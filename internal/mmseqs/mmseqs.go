// Package mmseqs locates the MMseqs2 binary and runs its subcommands.
//
// All heavy computation (k-mer indexing, prefiltering, alignment, GPU
// dispatch) happens inside the external mmseqs executable. This package only
// finds the binary, spawns it, and captures its output.
package mmseqs

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// BinEnvVar overrides binary discovery with an explicit path.
	BinEnvVar = "MMSEQS_BIN"

	// DBPathEnvVar names the default reference database prefix.
	DBPathEnvVar = "MMSEQS2_DB_PATH"

	// defaultDatabase is consulted when DBPathEnvVar is unset.
	defaultDatabase = "~/.db/protein/uniref100/uniref100.fasta.db_padded"
)

// NotFoundError indicates the mmseqs binary could not be located.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mmseqs binary not found (searched: %s)", strings.Join(e.Searched, ", "))
}

// Locate finds the mmseqs binary. Precedence: the explicit path argument,
// the MMSEQS_BIN environment variable, then a PATH lookup.
func Locate(explicit string) (string, error) {
	var searched []string

	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit, nil
		}
		searched = append(searched, explicit)
	}

	if env := os.Getenv(BinEnvVar); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env, nil
		}
		searched = append(searched, "$"+BinEnvVar+"="+env)
	}

	if path, err := exec.LookPath("mmseqs"); err == nil {
		return path, nil
	}
	searched = append(searched, "$PATH")

	return "", &NotFoundError{Searched: searched}
}

// DefaultDatabase returns the reference database prefix from the
// MMSEQS2_DB_PATH environment variable, falling back to the UniRef100 padded
// database under the user's home directory.
func DefaultDatabase() string {
	path := os.Getenv(DBPathEnvVar)
	if path == "" {
		path = defaultDatabase
	}
	return ExpandHome(path)
}

// ExpandHome replaces a leading ~ with the current user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
