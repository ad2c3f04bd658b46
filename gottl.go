// Package gottl is the top-level façade: type aliases for engine.Engine
// and engine.Option, plus two convenience operations (ProcessFile,
// ProcessTemplate) backed by a process-wide, single-flighted engine
// cache instead of constructing a fresh engine per call.
package gottl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/codingersid/gottl/engine"
	"github.com/codingersid/gottl/engine/enginecache"
)

// Version is the current module version.
const Version = "0.1.0"

// Engine is an alias for engine.Engine.
type Engine = engine.Engine

// Option is an alias for engine.Option.
type Option = engine.Option

var (
	WithLogger       = engine.WithLogger
	WithBaseClass    = engine.WithBaseClass
	WithNamespace    = engine.WithNamespace
	WithLoader       = engine.WithLoader
	WithCompiler     = engine.WithCompiler
	WithDebug        = engine.WithDebug
	WithScratchDir   = engine.WithScratchDir
	WithAssemblyName = engine.WithAssemblyName
)

// New creates a new Engine.
func New(opts ...Option) *Engine {
	return engine.New(opts...)
}

var processCache = enginecache.New[Engine]()

// newEngine is a seam tests override to inject a stub CodeCompiler;
// production callers always get engine.New's default GoPluginCompiler.
var newEngine = New

// ProcessFile loads path from disk, computes a cache key over its
// path + content, and renders it via ProcessTemplate.
func ProcessFile(ctx context.Context, path string, data map[string]any) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return ProcessTemplate(ctx, path, string(content), data)
}

// ProcessTemplate gets-or-creates a cached Engine for (name, content)
// -- the only mutator publishing a cache entry is the single-flighted
// factory below, so concurrent callers asking for the same bundle
// never compile it twice -- then renders the sole template class.
func ProcessTemplate(ctx context.Context, name, content string, data map[string]any) (string, error) {
	key := cacheKey(name, content)

	eng, err := processCache.GetOrCreate(key, func() (*Engine, error) {
		e := newEngine()
		if err := e.AddTemplateItem(name, content); err != nil {
			return nil, err
		}
		if err := e.Compile(ctx); err != nil {
			return nil, err
		}
		return e, nil
	})
	if err != nil {
		return "", err
	}

	return eng.Render(ctx, "", data)
}

func cacheKey(name, content string) string {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
