// Package testutil provides test helpers shared by the indgen packages.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/idsr/indgen/internal/uid"
)

// FixturePath returns the absolute path to a shared test fixture.
func FixturePath(t *testing.T, parts ...string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("could not locate testutil package")
	}
	return filepath.Join(append([]string{filepath.Dir(file), "testdata"}, parts...)...)
}

// MetadataFixture returns the path of the sample metadata snapshot.
func MetadataFixture(t *testing.T) string {
	t.Helper()
	return FixturePath(t, "metadata.json")
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WritePool writes a pool of n random identifiers to dir/uid.json.
func WritePool(t *testing.T, dir string, n int) string {
	t.Helper()
	codes, err := uid.Generate(n)
	if err != nil {
		t.Fatalf("failed to generate identifiers: %v", err)
	}
	path := filepath.Join(dir, "uid.json")
	if err := uid.WritePool(path, codes); err != nil {
		t.Fatalf("failed to write pool %s: %v", path, err)
	}
	return path
}

// ClearEnv unsets the given environment variables for the duration of t.
func ClearEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
	}
}
