// Package reference loads the job description that resumes are compared
// against.
package reference

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrReferenceFileNotFound is returned when the job description path does
// not exist.
var ErrReferenceFileNotFound = errors.New("reference file not found")

// Source describes where a reference text comes from.
type Source struct {
	// Name is used in error messages to give more context about the text.
	Name string
	// Value is an inline reference text.
	Value string
	// File points to a file holding the reference text. When set it takes
	// precedence over Value.
	File string
}

// Load returns the lowercased reference text. An existing but empty file is a
// valid, empty reference.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "job description"
	}

	file := strings.TrimSpace(src.File)
	if file == "" {
		if src.Value == "" {
			return "", fmt.Errorf("%s is not configured", name)
		}
		return strings.ToLower(src.Value), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s file %q", ErrReferenceFileNotFound, name, file)
		}
		return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
	}

	return strings.ToLower(string(data)), nil
}
