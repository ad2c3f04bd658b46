package loader

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func TestFileSystemLoader_ResolveWithExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "partial.gtpl"), []byte("hi"), 0o644))

	l := NewFileSystemLoader(dir)
	path, err := l.Resolve("", "partial")
	assert.NilError(t, err)
	assert.Equal(t, path, filepath.Join(dir, "partial.gtpl"))
}

func TestFileSystemLoader_ResolveExactExtension(t *testing.T) {
	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "x.txt"), []byte("body"), 0o644))

	l := NewFileSystemLoader(dir)
	path, err := l.Resolve("", "x.txt")
	assert.NilError(t, err)
	content, err := l.Read(path)
	assert.NilError(t, err)
	assert.Equal(t, content, "body")
}

func TestFileSystemLoader_BaseTakesPriority(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir1, "shared.gtpl"), []byte("from-dir1"), 0o644))
	assert.NilError(t, os.WriteFile(filepath.Join(dir2, "shared.gtpl"), []byte("from-dir2"), 0o644))

	l := NewFileSystemLoader(dir1)
	path, err := l.Resolve(dir2, "shared")
	assert.NilError(t, err)
	content, _ := l.Read(path)
	assert.Equal(t, content, "from-dir2")
}

func TestFileSystemLoader_NotFound(t *testing.T) {
	l := NewFileSystemLoader(t.TempDir())
	_, err := l.Resolve("", "nope")
	assert.ErrorContains(t, err, "not found")
}
