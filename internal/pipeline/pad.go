package pipeline

import (
	"context"
	"fmt"
	"os"
)

// PadDatabase prepares a padded variant of a reference database for GPU-mode
// search. This is a one-time administrative step; the output prefix defaults
// to <db>_padded.
func (s *Sequencer) PadDatabase(ctx context.Context, db, out string) (string, error) {
	if db == "" {
		return "", &PreconditionError{Reason: "database prefix is required"}
	}
	if _, err := os.Stat(db); err != nil {
		return "", &PreconditionError{Reason: fmt.Sprintf("database not found at %s", db)}
	}
	if out == "" {
		out = db + "_padded"
	}

	s.log.Info("padding database", "database", db, "output", out)
	if err := s.step(ctx, 1, "makepaddedseqdb", "makepaddedseqdb", db, out); err != nil {
		return "", err
	}
	return out, nil
}
