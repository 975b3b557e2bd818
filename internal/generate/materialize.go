package generate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Policy controls what Materialize does when the target file already exists.
type Policy int

const (
	// SkipIfExists leaves an existing file untouched. Presence check only:
	// the existing content is never read or diffed.
	SkipIfExists Policy = iota
	// ForceOverwrite always writes, whether or not the target exists.
	ForceOverwrite
)

// Result reports what Materialize did for one target path.
type Result int

const (
	// Created means the file did not exist and was written.
	Created Result = iota
	// Skipped means the file existed and was left untouched.
	Skipped
	// Overwritten means the file existed and was replaced.
	Overwritten
)

// String returns the lower-case result name for logs and summaries.
func (r Result) String() string {
	switch r {
	case Created:
		return "created"
	case Skipped:
		return "skipped"
	case Overwritten:
		return "overwritten"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Materialize commits one artifact to disk at path, creating parent
// directories as needed. I/O failures (permission denied, a parent that is a
// file) are returned wrapped with the failing path, never swallowed.
func Materialize(path string, content []byte, policy Policy) (Result, error) {
	exists := false
	if _, err := os.Stat(path); err == nil {
		exists = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("checking %s: %w", path, err)
	}

	if exists && policy == SkipIfExists {
		return Skipped, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}

	if exists {
		return Overwritten, nil
	}
	return Created, nil
}
