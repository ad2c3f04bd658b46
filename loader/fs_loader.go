// Package loader implements host.SourceLoader against the local file
// system: include targets are resolved by name against a base
// directory first, then a configured search path, with an extension
// fallback when the name omits one.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileSystemLoader resolves include targets against an ordered list
// of search folders, trying each declared extension in turn when the
// requested name has none of its own.
type FileSystemLoader struct {
	Folders    []string
	Extensions []string
	Logger     *slog.Logger
}

// NewFileSystemLoader creates a loader searching folders in order,
// trying the default extension set (.gtpl, .tt, .txt) for extension-
// less names.
func NewFileSystemLoader(folders ...string) *FileSystemLoader {
	return &FileSystemLoader{
		Folders:    folders,
		Extensions: []string{"gtpl", "tt", "txt"},
		Logger:     slog.Default(),
	}
}

// Exists reports whether path can be read as-is (no search-path or
// extension fallback applied).
func (l *FileSystemLoader) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Read returns the contents of path as-is.
func (l *FileSystemLoader) Read(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("loader: read %s: %w", path, err)
	}
	return string(content), nil
}

// Resolve searches base (if non-empty, tried first) then Folders in
// order for relative, trying each declared extension when relative
// has none of its own, and returns the absolute path of the first
// match. A name that is already absolute and readable resolves to
// itself without consulting the search path.
func (l *FileSystemLoader) Resolve(base, relative string) (string, error) {
	if filepath.IsAbs(relative) && l.Exists(relative) {
		return relative, nil
	}

	ext := filepath.Ext(relative)
	candidates := []string{relative}
	if ext == "" {
		for _, e := range l.Extensions {
			candidates = append(candidates, relative+"."+e)
		}
	}

	folders := l.Folders
	if base != "" {
		folders = append([]string{base}, folders...)
	}

	for _, folder := range folders {
		abs, err := filepath.Abs(folder)
		if err != nil {
			l.log().Warn("loader: invalid folder", "folder", folder, "error", err)
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		for _, c := range candidates {
			candidatePath := filepath.Join(abs, c)
			if l.Exists(candidatePath) {
				return candidatePath, nil
			}
		}
	}
	return "", fmt.Errorf("loader: %q not found in any search folder", relative)
}

func (l *FileSystemLoader) log() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}
