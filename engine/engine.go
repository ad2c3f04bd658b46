// Package engine implements the Engine façade and its Init → Processed
// → Compiled state machine: functional Options configure it at
// construction, a sync.RWMutex guards its state, and an explicit
// Status field tracks lifecycle phase instead of inferring it from
// cache presence.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/codingersid/gottl/codegen"
	"github.com/codingersid/gottl/compiler"
	"github.com/codingersid/gottl/gottlerrors"
	"github.com/codingersid/gottl/host"
	"github.com/codingersid/gottl/model"
	"github.com/codingersid/gottl/parser"
)

// Status is the engine's lifecycle phase; it only ever increases.
type Status int

const (
	Init Status = iota
	Processed
	Compiled
)

func (s Status) String() string {
	switch s {
	case Init:
		return "Init"
	case Processed:
		return "Processed"
	case Compiled:
		return "Compiled"
	default:
		return "Unknown"
	}
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the engine's structured logger (default:
// slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithBaseClass sets the default base class new items get when they
// don't set one via a `template inherits=` directive.
func WithBaseClass(name string) Option {
	return func(e *Engine) { e.defaultBaseClass = name }
}

// WithNamespace sets the generated package/namespace name.
func WithNamespace(ns string) Option {
	return func(e *Engine) { e.bundle.Namespace = ns }
}

// WithLoader sets the SourceLoader used to resolve include targets
// that aren't already present in the bundle by name.
func WithLoader(l host.SourceLoader) Option {
	return func(e *Engine) { e.loader = l }
}

// WithCompiler overrides the default GoPluginCompiler.
func WithCompiler(c host.CodeCompiler) Option {
	return func(e *Engine) { e.driver = compiler.NewDriver(compiler.NewArtifactCache(), c) }
}

// WithDebug enables debug-mode codegen (//line pragmas) and scratch
// file retention on compile failure.
func WithDebug(debug bool) Option {
	return func(e *Engine) { e.debug = debug }
}

// WithScratchDir sets the directory debug-mode scratch files are
// written under.
func WithScratchDir(dir string) Option {
	return func(e *Engine) { e.scratchDir = dir }
}

// WithAssemblyName requests a persisted on-disk artifact under this
// name instead of an in-memory-only compile.
func WithAssemblyName(name string) Option {
	return func(e *Engine) { e.bundle.AssemblyName = name }
}

// Engine is the top-level façade: it owns a Bundle, runs it through
// the resolver and codegen/compiler pipeline, and creates renderable
// instances of the resulting artifact.
type Engine struct {
	mu     sync.RWMutex
	bundle *model.Bundle
	status Status

	defaultBaseClass string
	loader           host.SourceLoader
	driver           *compiler.Driver
	logger           *slog.Logger
	debug            bool
	scratchDir       string

	artifact *host.Artifact
}

// New creates an Engine in status Init.
func New(opts ...Option) *Engine {
	e := &Engine{
		bundle:           model.NewBundle(),
		defaultBaseClass: "runtime.Base",
		driver:           compiler.NewDriver(compiler.NewArtifactCache(), compiler.NewGoPluginCompiler()),
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddTemplateItem adds or replaces a template item by name. Fails with
// StateError once status >= Processed, and with ArgumentError if both
// name and content are empty.
func (e *Engine) AddTemplateItem(name, content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == "" && content == "" {
		return &gottlerrors.ArgumentError{Operation: "AddTemplateItem", Message: "name and content cannot both be empty"}
	}
	if e.status >= Processed {
		return &gottlerrors.StateError{Operation: "AddTemplateItem", Status: e.status.String(), Message: "cannot add items after processing"}
	}

	item := &model.TemplateItem{
		Name:      name,
		ClassName: parser.DeriveClassName(name),
		Content:   content,
	}

	if existing, ok := e.bundle.FindItem(name); ok {
		item.BaseClassName = existing.BaseClassName
		e.bundle.ReplaceItem(item)
	} else {
		e.bundle.AddItem(item)
	}
	return nil
}

// Process runs the lexer and directive resolver over every item and
// advances status to Processed. Idempotent after the first success.
func (e *Engine) Process() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.processLocked()
}

func (e *Engine) processLocked() error {
	if e.status >= Processed {
		return nil
	}
	if len(e.bundle.Templates) == 0 {
		return &gottlerrors.ArgumentError{Operation: "Process", Message: "no template items to process"}
	}

	r := parser.NewResolver(e.bundle, e.loader)
	if err := r.ResolveAll(); err != nil {
		e.logger.Error("process failed", "error", err)
		return err
	}
	e.assignClassNames()
	e.status = Processed
	return nil
}

// assignClassNames resolves class-name collisions by falling back to
// the full item name for any item whose derived class name collides
// with another's: the full name is used, never renamed silently.
func (e *Engine) assignClassNames() {
	counts := make(map[string]int)
	for _, item := range e.bundle.Templates {
		counts[item.ClassName]++
	}
	for _, item := range e.bundle.Templates {
		if counts[item.ClassName] > 1 {
			item.ClassName = parser.SanitizeIdentifier(item.Name)
		}
	}
}

// Compile implicitly runs Process if needed, generates Go source for
// every item, invokes the configured CodeCompiler through the
// fingerprint-keyed ArtifactCache, and advances status to Compiled.
// Idempotent.
func (e *Engine) Compile(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status >= Compiled {
		return nil
	}
	if err := e.processLocked(); err != nil {
		return err
	}

	if artifact := e.loadPersistedArtifact(); artifact != nil {
		e.artifact = artifact
		e.status = Compiled
		return nil
	}

	file := codegen.BuildFile(e.bundle, e.defaultBaseClass)
	emitter := codegen.NewGoEmitter(e.debug)
	src, err := emitter.Emit(file)
	if err != nil {
		return &gottlerrors.CompilationError{Message: err.Error()}
	}

	sources := map[string]string{e.bundle.Namespace + "_gen.go": src}

	outputName := ""
	if e.bundle.AssemblyName != "" {
		outputName = e.bundle.AssemblyName + ".so"
	}

	artifact, err := e.driver.Compile(ctx, e.bundle, sources, e.debug, e.scratchDir, outputName)
	if err != nil {
		e.logger.Error("compile failed", "error", err)
		return err
	}

	e.artifact = artifact
	e.status = Compiled
	return nil
}

// loadPersistedArtifact searches for an already-compiled artifact
// matching the bundle's assembly name and, if the configured compiler
// supports loading one (host.ArtifactLoader), opens it directly instead
// of regenerating and recompiling sources. It searches, in order: the
// assembly name itself if it's an absolute path, the directory holding
// the running executable, and that directory's "bin" subdirectory.
// Returns nil if no assembly name is set, the compiler can't load
// artifacts, or no candidate path exists.
func (e *Engine) loadPersistedArtifact() *host.Artifact {
	if e.bundle.AssemblyName == "" {
		return nil
	}
	loader, ok := e.driver.Compiler.(host.ArtifactLoader)
	if !ok {
		return nil
	}

	for _, path := range persistedArtifactSearchPaths(e.bundle.AssemblyName) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		artifact, err := loader.LoadArtifact(path)
		if err != nil {
			e.logger.Warn("persisted artifact found but failed to load, recompiling", "path", path, "error", err)
			continue
		}
		e.logger.Info("loaded persisted artifact", "path", path)
		return &artifact
	}
	return nil
}

// persistedArtifactSearchPaths returns the candidate .so locations for
// assemblyName, in search order. An absolute assemblyName is the sole
// candidate; otherwise it's resolved relative to the running
// executable's directory and that directory's "bin" subdirectory.
func persistedArtifactSearchPaths(assemblyName string) []string {
	fileName := assemblyName
	if !strings.HasSuffix(fileName, ".so") {
		fileName += ".so"
	}
	if filepath.IsAbs(fileName) {
		return []string{fileName}
	}

	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	baseDir := filepath.Dir(exe)
	return []string{
		filepath.Join(baseDir, fileName),
		filepath.Join(baseDir, "bin", fileName),
	}
}

// CreateInstance returns a freshly constructed instance of className,
// implicitly compiling if needed. An empty className resolves to the
// sole renderable class in the artifact; zero or multiple candidates
// is an AmbiguityError.
func (e *Engine) CreateInstance(ctx context.Context, className string) (host.TemplateRuntime, error) {
	e.mu.RLock()
	status := e.status
	e.mu.RUnlock()

	if status < Compiled {
		if err := e.Compile(ctx); err != nil {
			return nil, err
		}
	}

	e.mu.RLock()
	artifact := e.artifact
	bundle := e.bundle
	e.mu.RUnlock()

	if className == "" {
		renderable := renderableClassNames(bundle)
		if len(renderable) != 1 {
			return nil, &gottlerrors.AmbiguityError{Candidates: renderable}
		}
		className = renderable[0]
	}
	return artifact.New(className)
}

func renderableClassNames(bundle *model.Bundle) []string {
	var names []string
	for _, item := range bundle.Renderable() {
		names = append(names, item.ClassName)
	}
	return names
}

// Render creates an instance of className (see CreateInstance),
// copies data into its Data map, calls Initialize() then Render(),
// and wraps any runtime panic/failure as ExecutionError.
func (e *Engine) Render(ctx context.Context, className string, data map[string]any) (out string, err error) {
	instance, err := e.CreateInstance(ctx, className)
	if err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			err = &gottlerrors.ExecutionError{ClassName: className, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if setter, ok := instance.(interface{ SetData(map[string]any) }); ok {
		setter.SetData(data)
	}
	instance.Initialize()
	return instance.Render(), nil
}

// Status reports the engine's current lifecycle phase.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}
