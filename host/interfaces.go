// Package host declares the contracts the compilation pipeline consumes
// but never implements itself: the host-language code emitter, the
// host-language compiler/toolchain, the template source loader, and the
// runtime base every generated class must satisfy.
//
// Everything in this file is a boundary. The pipeline packages (parser,
// compiler, codegen, engine) depend only on these interfaces; concrete
// adapters (loader.FileSystemLoader, compiler.GoPluginCompiler,
// codegen.GoEmitter, runtime.Base) live in their own packages and are
// wired together by callers of engine.New.
package host

import "context"

// CodeEmitter renders a generated-class AST to host-language source text.
type CodeEmitter interface {
	Emit(file *File) (string, error)
}

// File is the minimal structural AST handed to a CodeEmitter: one
// generated class per template item, grouped under a shared namespace
// and import list. It intentionally stops short of a full CodeDOM -- a
// single target language does not need the indirection.
type File struct {
	Namespace string
	Imports   []string
	Classes   []*Class
}

// Class is one generated template class.
type Class struct {
	Name        string
	BaseClass   string
	SourceName  string // owning template name, for line-pragma emission
	Vars        []Var
	RenderLines []Line
	Members     []Member
}

// Var is a declared `var` directive: a typed, data-backed property.
type Var struct {
	Name string
	Type string
}

// Line is one statement destined for the Render method body.
type Line struct {
	Kind Block // Text, Statement, or Expression -- never Directive/Member
	Text string
	File string
	Num  int
}

// Member is a snippet promoted to class scope by a Member region.
type Member struct {
	Text string
	File string
	Num  int
}

// Block mirrors lexer.BlockKind without importing the lexer package,
// keeping host free of dependencies on the rest of the pipeline.
type Block int

const (
	BlockText Block = iota
	BlockStatement
	BlockExpression
)

// CompileRequest bundles everything a CodeCompiler needs to produce an
// Artifact: the generated sources (keyed by synthetic file name),
// external references, and whether the result should be persisted.
type CompileRequest struct {
	// Sources maps a generated file name to its Go source text.
	Sources map[string]string
	// References are assembly/module references collected from
	// `assembly` directives, resolved to on-disk paths where possible.
	References []string
	// OutputName is the requested artifact name; empty means in-memory
	// only (not persisted to disk).
	OutputName string
	// Debug requests scratch-file preservation and line-accurate
	// compiler diagnostics.
	Debug bool
	// ScratchDir is where Debug-mode sources are written.
	ScratchDir string
}

// Diagnostic is a single message from the host compiler.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Message  string
	IsError  bool
	Snippet  string // enriched ±1 line context, best-effort
}

// Artifact is a loaded, runnable compilation unit.
type Artifact struct {
	// Path is the on-disk location if the artifact was persisted or
	// loaded from disk; empty for purely in-memory artifacts.
	Path string
	// ClassNames lists every class the artifact exposes, in the order
	// they were compiled.
	ClassNames []string
	// New constructs a fresh TemplateRuntime instance of the named
	// generated class.
	New func(className string) (TemplateRuntime, error)
}

// CodeCompiler turns generated sources into a loadable Artifact.
type CodeCompiler interface {
	Compile(ctx context.Context, req CompileRequest) (Artifact, []Diagnostic, error)
}

// ArtifactLoader is an optional capability a CodeCompiler may implement
// to open a previously persisted artifact directly from disk, bypassing
// recompilation entirely. Callers should type-assert for it rather than
// requiring it on CodeCompiler, since an in-memory-only or test
// compiler has nothing on disk to load.
type ArtifactLoader interface {
	LoadArtifact(path string) (Artifact, error)
}

// SourceLoader resolves and reads include targets from wherever
// templates are stored (file system, embedded FS, vendored fetch...).
type SourceLoader interface {
	Exists(path string) bool
	Read(path string) (string, error)
	Resolve(base, relative string) (string, error)
}

// TemplateRuntime is the contract every compiled template class must
// satisfy. Generated classes embed runtime.Base (which supplies
// Initialize, Write, Output, Data, Vars; GetData is a function in the
// same package) and add their own
// Render method; embedding plus the generated Render is what makes the
// combined struct satisfy this interface.
type TemplateRuntime interface {
	Initialize()
	Render() string
}
