package io

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteError reports a failure to create the output directory or file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write docker-compose.yml to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteComposeFile creates any missing parent directories of path and
// replaces the file's content with data.
func WriteComposeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("creating output dir: %w", err)}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
