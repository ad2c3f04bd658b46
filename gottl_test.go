package gottl

import (
	"context"
	"testing"

	"github.com/codingersid/gottl/host"
	"gotest.tools/v3/assert"
)

type stubCompiler struct{}

func (stubCompiler) Compile(ctx context.Context, req host.CompileRequest) (host.Artifact, []host.Diagnostic, error) {
	return host.Artifact{
		ClassNames: []string{"Greeting"},
		New: func(className string) (host.TemplateRuntime, error) {
			return &stubRuntime{}, nil
		},
	}, nil, nil
}

type stubRuntime struct{}

func (s *stubRuntime) Initialize()    {}
func (s *stubRuntime) Render() string { return "hello from stub" }

func TestCacheKey_Deterministic(t *testing.T) {
	k1 := cacheKey("a", "b")
	k2 := cacheKey("a", "b")
	assert.Equal(t, k1, k2)
}

func TestCacheKey_DistinguishesNameFromContent(t *testing.T) {
	k1 := cacheKey("a", "bc")
	k2 := cacheKey("ab", "c")
	assert.Assert(t, k1 != k2)
}

func TestProcessTemplate_UsesEngineCache(t *testing.T) {
	orig := newEngine
	defer func() { newEngine = orig }()
	newEngine = func(opts ...Option) *Engine {
		return New(append(opts, WithCompiler(stubCompiler{}))...)
	}

	out, err := ProcessTemplate(context.Background(), "greeting.gtpl", "Greeting.gtpl", nil)
	assert.NilError(t, err)
	assert.Equal(t, out, "hello from stub")
}
