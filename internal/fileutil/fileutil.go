// Package fileutil provides scoped temporary workspaces and path helpers.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyFileName   = errors.New("file name cannot be empty")
	ErrUnsafeFileName  = errors.New("file name contains path separator or null byte")
	ErrWorkspaceClosed = errors.New("workspace already cleaned up")
)

// Workspace is a per-call temporary directory. All files written through it
// live under one directory that Cleanup removes in a single pass.
type Workspace struct {
	dir    string
	closed bool
}

// NewWorkspace creates a fresh temporary directory using pattern,
// e.g. "docx2pdf-*".
func NewWorkspace(pattern string) (*Workspace, error) {
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("creating temp workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// WriteFile writes data to name inside the workspace and returns the full path.
// name must be a bare file name, not a path.
func (w *Workspace) WriteFile(name string, data []byte) (string, error) {
	if w.closed {
		return "", ErrWorkspaceClosed
	}
	if err := validateFileName(name); err != nil {
		return "", err
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing workspace file: %w", err)
	}
	return path, nil
}

// Path returns the full path name would have inside the workspace,
// without creating it.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Cleanup removes the workspace directory and everything in it.
// Removal is best-effort: failures are reported through logf, never returned.
// Safe to call more than once.
func (w *Workspace) Cleanup(logf func(format string, args ...any)) {
	if w.closed {
		return
	}
	w.closed = true
	if err := os.RemoveAll(w.dir); err != nil && logf != nil {
		logf("warning: failed to remove temp workspace %s: %v", w.dir, err)
	}
}

// validateFileName checks that name is safe to join under the workspace.
func validateFileName(name string) error {
	if name == "" {
		return ErrEmptyFileName
	}
	if strings.ContainsAny(name, "/\\\x00") || name == ".." {
		return fmt.Errorf("%w: %q", ErrUnsafeFileName, name)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than
// a bare name: any string containing a path separator is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
