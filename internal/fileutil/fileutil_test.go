package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWorkspaceLifecycle(t *testing.T) {
	ws, err := NewWorkspace("fileutil-test-*")
	if err != nil {
		t.Fatalf("NewWorkspace() error = %v", err)
	}
	defer ws.Cleanup(nil)

	if ws.Dir() == "" {
		t.Fatal("Dir() returned an empty path")
	}

	path, err := ws.WriteFile("input.docx", []byte("content"))
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if filepath.Dir(path) != ws.Dir() {
		t.Errorf("WriteFile() path %q outside workspace %q", path, ws.Dir())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("read back %q, want %q", data, "content")
	}

	if got := ws.Path("document.html"); got != filepath.Join(ws.Dir(), "document.html") {
		t.Errorf("Path() = %q", got)
	}

	ws.Cleanup(nil)
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("workspace dir still exists after Cleanup: %v", err)
	}
}

func TestWorkspaceWriteAfterCleanup(t *testing.T) {
	ws, err := NewWorkspace("fileutil-test-*")
	if err != nil {
		t.Fatal(err)
	}
	ws.Cleanup(nil)

	if _, err := ws.WriteFile("late.txt", nil); !errors.Is(err, ErrWorkspaceClosed) {
		t.Errorf("WriteFile() after Cleanup = %v, want ErrWorkspaceClosed", err)
	}
}

func TestWorkspaceCleanupIdempotent(t *testing.T) {
	ws, err := NewWorkspace("fileutil-test-*")
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	logf := func(format string, args ...any) { calls++ }
	ws.Cleanup(logf)
	ws.Cleanup(logf)
	if calls != 0 {
		t.Errorf("Cleanup logged %d warnings for a removable dir", calls)
	}
}

func TestWriteFileValidation(t *testing.T) {
	ws, err := NewWorkspace("fileutil-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Cleanup(nil)

	tests := []struct {
		name     string
		fileName string
		wantErr  error
	}{
		{"empty", "", ErrEmptyFileName},
		{"slash", "a/b.txt", ErrUnsafeFileName},
		{"backslash", `a\b.txt`, ErrUnsafeFileName},
		{"null byte", "a\x00b", ErrUnsafeFileName},
		{"dot dot", "..", ErrUnsafeFileName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ws.WriteFile(tt.fileName, []byte("x"))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("WriteFile(%q) = %v, want %v", tt.fileName, err, tt.wantErr)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists() = false for a regular file")
	}
	if FileExists(dir) {
		t.Error("FileExists() = true for a directory")
	}
	if FileExists(filepath.Join(dir, "absent.txt")) {
		t.Error("FileExists() = true for a missing path")
	}
}

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"config", false},
		{"config.yaml", false},
		{"./config.yaml", true},
		{"/etc/app/config.yaml", true},
		{`rel\win.yaml`, true},
	}
	for _, tt := range tests {
		if got := IsFilePath(tt.in); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteFilePermissions(t *testing.T) {
	ws, err := NewWorkspace("fileutil-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Cleanup(nil)

	path, err := ws.WriteFile("perm.txt", []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("workspace file permissions %v leak beyond the owner", perm)
	}
	if !strings.HasPrefix(filepath.Base(ws.Dir()), "fileutil-test-") {
		t.Errorf("workspace dir %q does not use the pattern", ws.Dir())
	}
}
