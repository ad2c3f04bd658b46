package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/codingersid/gottl/host"
	"github.com/codingersid/gottl/model"
	"gotest.tools/v3/assert"
)

type fakeCompiler struct {
	calls     int
	artifact  host.Artifact
	diags     []host.Diagnostic
	failOnce  bool
	failError error
}

func (f *fakeCompiler) Compile(ctx context.Context, req host.CompileRequest) (host.Artifact, []host.Diagnostic, error) {
	f.calls++
	if f.failOnce {
		f.failOnce = false
		return host.Artifact{}, f.diags, f.failError
	}
	return f.artifact, nil, nil
}

func TestDriver_CompileCachesByFingerprint(t *testing.T) {
	fc := &fakeCompiler{artifact: host.Artifact{Path: "out.so"}}
	d := NewDriver(NewArtifactCache(), fc)
	bundle := model.NewBundle()
	sources := map[string]string{"a.go": "package a"}

	a1, err := d.Compile(context.Background(), bundle, sources, false, "", "")
	assert.NilError(t, err)
	assert.Equal(t, a1.Path, "out.so")
	assert.Equal(t, fc.calls, 1)

	a2, err := d.Compile(context.Background(), bundle, sources, false, "", "")
	assert.NilError(t, err)
	assert.Equal(t, a2.Path, "out.so")
	assert.Equal(t, fc.calls, 1) // cache hit, compiler not invoked again
}

func TestDriver_CompileErrorEnrichment(t *testing.T) {
	fc := &fakeCompiler{
		failOnce:  true,
		failError: errors.New("build failed"),
		diags: []host.Diagnostic{
			{File: "main.gtpl", Line: 2, Message: "undefined: Foo", IsError: true},
		},
	}
	d := NewDriver(NewArtifactCache(), fc)
	bundle := model.NewBundle()
	bundle.AddItem(&model.TemplateItem{Name: "main.gtpl", Content: "one\ntwo\nthree\n"})

	_, err := d.Compile(context.Background(), bundle, map[string]string{"a.go": "bad"}, false, "", "")
	assert.Assert(t, err != nil)
	assert.ErrorContains(t, err, "undefined: Foo")
}

func TestDriver_DebugScratchFilesRemovedAfterSuccess(t *testing.T) {
	scratchDir := t.TempDir()
	fc := &fakeCompiler{artifact: host.Artifact{Path: "out.so"}}
	d := NewDriver(NewArtifactCache(), fc)
	bundle := model.NewBundle()
	bundle.AddItem(&model.TemplateItem{Name: "main.gtpl", Content: "hi"})

	_, err := d.Compile(context.Background(), bundle, map[string]string{"a.go": "package a"}, true, scratchDir, "")
	assert.NilError(t, err)

	entries, err := os.ReadDir(scratchDir)
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 0)
}

func TestDriver_DebugScratchFilesRetainedOnFailure(t *testing.T) {
	scratchDir := t.TempDir()
	fc := &fakeCompiler{failOnce: true, failError: errors.New("build failed")}
	d := NewDriver(NewArtifactCache(), fc)
	bundle := model.NewBundle()
	bundle.AddItem(&model.TemplateItem{Name: "main.gtpl", Content: "hi"})

	_, err := d.Compile(context.Background(), bundle, map[string]string{"a.go": "package a"}, true, scratchDir, "")
	assert.Assert(t, err != nil)

	entries, err := os.ReadDir(scratchDir)
	assert.NilError(t, err)
	assert.Assert(t, len(entries) > 0)
	assert.Assert(t, fileExists(filepath.Join(scratchDir, "main.gtpl")))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestSnippet_BestEffort(t *testing.T) {
	bundle := model.NewBundle()
	bundle.AddItem(&model.TemplateItem{Name: "x.gtpl", Content: "a\nb\nc\nd\n"})

	snippet := Snippet(bundle, "x.gtpl", 2)
	assert.Assert(t, snippet != "")

	assert.Equal(t, Snippet(bundle, "missing.gtpl", 2), "")
	assert.Equal(t, Snippet(nil, "x.gtpl", 2), "")
	assert.Equal(t, Snippet(bundle, "x.gtpl", 0), "")
}
