package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/codingersid/gottl/gottlerrors"
	"github.com/codingersid/gottl/host"
	"github.com/codingersid/gottl/model"
)

// Driver fingerprints a bundle's generated sources, consults an
// ArtifactCache, and on a miss invokes a host.CodeCompiler under a
// double-checked, fingerprint-keyed lock so concurrent compiles of the
// same content never race the underlying compiler.
type Driver struct {
	Cache    *ArtifactCache
	Compiler host.CodeCompiler

	keyLocksMu sync.Mutex
	keyLocks   map[string]*sync.Mutex
}

// NewDriver creates a Driver over the given cache and compiler.
func NewDriver(cache *ArtifactCache, c host.CodeCompiler) *Driver {
	return &Driver{
		Cache:    cache,
		Compiler: c,
		keyLocks: make(map[string]*sync.Mutex),
	}
}

func (d *Driver) lockFor(key string) *sync.Mutex {
	d.keyLocksMu.Lock()
	defer d.keyLocksMu.Unlock()
	l, ok := d.keyLocks[key]
	if !ok {
		l = &sync.Mutex{}
		d.keyLocks[key] = l
	}
	return l
}

// Compile computes the bundle's fingerprint and returns the cached
// artifact if present; otherwise it compiles under an exclusive,
// fingerprint-keyed lock (double-checked) and stores the result. In
// debug mode, sources are additionally written to scratchDir (each
// item's original content alongside its generated source, generated
// files suffixed "_src") so the host compiler's diagnostics point
// into files a human can open.
func (d *Driver) Compile(ctx context.Context, bundle *model.Bundle, sources map[string]string, debug bool, scratchDir, outputName string) (*host.Artifact, error) {
	fingerprint := Fingerprint(sources)

	if a, ok := d.Cache.Get(fingerprint); ok {
		return a, nil
	}

	lock := d.lockFor(fingerprint)
	lock.Lock()
	defer lock.Unlock()

	if a, ok := d.Cache.Get(fingerprint); ok {
		return a, nil
	}

	var scratchFiles []string
	if debug && scratchDir != "" {
		written, err := writeScratchFiles(bundle, sources, scratchDir)
		if err != nil {
			return nil, err
		}
		scratchFiles = written
	}

	req := host.CompileRequest{
		Sources:    sources,
		References: append([]string{}, bundle.AssemblyReferences...),
		OutputName: outputName,
		Debug:      debug,
		ScratchDir: scratchDir,
	}

	artifact, diags, err := d.Compiler.Compile(ctx, req)
	if err != nil {
		return nil, d.enrich(bundle, diags, err)
	}

	// Scratch sources exist only to give the host compiler's diagnostics
	// somewhere to point; once compilation has succeeded they have
	// served their purpose and are removed. A failed compile leaves
	// them in place for a human to inspect. The compiled artifact
	// itself (artifact.Path) is never touched here.
	removeScratchFiles(scratchFiles)

	d.Cache.Set(fingerprint, &artifact)
	return &artifact, nil
}

// enrich augments a compilation failure with ±1 line of template
// source context around the first error diagnostic, best-effort. The
// result is always a CompilationError: with no error diagnostic it
// carries cause's message, and its Snippet is empty when no item
// matches the diagnostic's file.
func (d *Driver) enrich(bundle *model.Bundle, diags []host.Diagnostic, cause error) error {
	var first *host.Diagnostic
	for i := range diags {
		if diags[i].IsError {
			first = &diags[i]
			break
		}
	}
	if first == nil {
		return &gottlerrors.CompilationError{Message: cause.Error()}
	}

	snippet := Snippet(bundle, first.File, first.Line)
	return &gottlerrors.CompilationError{
		Location: gottlerrors.Location{Template: first.File, Line: first.Line},
		Message:  first.Message,
		Snippet:  snippet,
	}
}

// Snippet returns up to 3 lines (±1 around line) of the original
// source of the item owning file, or "" if no item matches. Never
// raises: any lookup failure just yields an empty snippet.
func Snippet(bundle *model.Bundle, file string, line int) string {
	if bundle == nil || file == "" || line <= 0 {
		return ""
	}
	var item *model.TemplateItem
	for _, it := range bundle.Templates {
		if it.Name == file {
			item = it
			break
		}
	}
	if item == nil {
		return ""
	}
	lines := strings.Split(item.Content, "\n")
	lo := line - 2
	if lo < 0 {
		lo = 0
	}
	hi := line + 1
	if hi > len(lines) {
		hi = len(lines)
	}
	if lo >= hi {
		return ""
	}
	var b strings.Builder
	for i := lo; i < hi; i++ {
		fmt.Fprintf(&b, "%d: %s\n", i+1, lines[i])
	}
	return strings.TrimRight(b.String(), "\n")
}

// writeScratchFiles writes one file per template's original content
// plus one file per generated source under scratchDir, and returns
// every path it wrote so the caller can remove exactly those files
// (and nothing else -- in particular, never the compiled artifact)
// once they're no longer needed.
func writeScratchFiles(bundle *model.Bundle, sources map[string]string, scratchDir string) ([]string, error) {
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("scratch dir: %w", err)
	}
	var written []string
	for _, item := range bundle.Templates {
		if item.Name == "" {
			continue
		}
		origPath := filepath.Join(scratchDir, sanitizeScratchName(item.Name))
		if err := os.WriteFile(origPath, []byte(item.Content), 0o644); err != nil {
			return written, fmt.Errorf("scratch write %s: %w", origPath, err)
		}
		written = append(written, origPath)
	}
	i := 0
	for name, src := range sources {
		genPath := filepath.Join(scratchDir, sanitizeScratchName(name)+"_src_"+strconv.Itoa(i)+".go")
		if err := os.WriteFile(genPath, []byte(src), 0o644); err != nil {
			return written, fmt.Errorf("scratch write %s: %w", genPath, err)
		}
		written = append(written, genPath)
		i++
	}
	return written, nil
}

// removeScratchFiles deletes each listed path, ignoring errors: cleanup
// is best-effort and must never turn a successful compile into a
// failure.
func removeScratchFiles(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

func sanitizeScratchName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '_' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
