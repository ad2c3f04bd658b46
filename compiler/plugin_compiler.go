package compiler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"plugin"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/codingersid/gottl/host"
)

// GoPluginCompiler is the default host.CodeCompiler: it shells out to
// the real `go` toolchain (go build -buildmode=plugin) rather than
// reimplementing a compiler, then loads the result with plugin.Open.
// Go has no in-process compiler API, so os/exec is the only avenue.
type GoPluginCompiler struct {
	// GoBin is the path to the go binary; empty means "go" from PATH.
	GoBin string
}

// NewGoPluginCompiler creates a GoPluginCompiler using the go binary
// found on PATH.
func NewGoPluginCompiler() *GoPluginCompiler {
	return &GoPluginCompiler{}
}

var errPluginsUnsupported = errors.New("compiler: -buildmode=plugin is not supported on this GOOS")

// Compile writes req.Sources to a temporary build directory, runs
// `go build -buildmode=plugin`, and opens the resulting .so with
// plugin.Open. Each generated class is expected to export a
// `New<ClassName>` constructor function of type
// `func() host.TemplateRuntime` for Artifact.New to call.
func (c *GoPluginCompiler) Compile(ctx context.Context, req host.CompileRequest) (host.Artifact, []host.Diagnostic, error) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		return host.Artifact{}, nil, errPluginsUnsupported
	}

	buildDir := req.ScratchDir
	if buildDir == "" {
		dir, err := os.MkdirTemp("", "gottl-build-*")
		if err != nil {
			return host.Artifact{}, nil, fmt.Errorf("compiler: %w", err)
		}
		defer os.RemoveAll(dir)
		buildDir = dir
	}

	var goFiles []string
	for name, src := range req.Sources {
		path := filepath.Join(buildDir, sanitizeScratchName(name)+".go")
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			return host.Artifact{}, nil, fmt.Errorf("compiler: write %s: %w", path, err)
		}
		goFiles = append(goFiles, path)
	}

	outPath := req.OutputName
	if outPath == "" {
		outPath = filepath.Join(buildDir, "artifact.so")
	} else if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(buildDir, outPath)
	}

	args := append([]string{"build", "-buildmode=plugin", "-o", outPath}, goFiles...)
	cmd := exec.CommandContext(ctx, c.goBin(), args...)
	cmd.Dir = buildDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		diags := parseGoBuildOutput(string(output))
		return host.Artifact{}, diags, fmt.Errorf("compiler: go build failed: %w", err)
	}

	artifact, err := openArtifact(outPath, classNamesFromSources(req.Sources))
	if err != nil {
		return host.Artifact{}, nil, err
	}

	// goFiles are the generated build inputs, not the artifact itself;
	// once go build has produced and plugin.Open has loaded outPath,
	// they've served their purpose. Left behind on failure (the error
	// return above) so they can be inspected.
	if req.ScratchDir != "" {
		for _, f := range goFiles {
			_ = os.Remove(f)
		}
	}

	return artifact, nil, nil
}

func (c *GoPluginCompiler) goBin() string {
	if c.GoBin != "" {
		return c.GoBin
	}
	return "go"
}

// LoadArtifact opens a previously compiled .so directly, without
// invoking the go toolchain. It implements host.ArtifactLoader so a
// caller holding a persisted artifact's path can reuse it across
// process restarts instead of recompiling from source. classNames is
// left empty: a loaded artifact's callers already know which class
// they want (they compiled the bundle that produced it), so
// Artifact.New is looked up by name on demand, same as a fresh compile.
func (c *GoPluginCompiler) LoadArtifact(path string) (host.Artifact, error) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		return host.Artifact{}, errPluginsUnsupported
	}
	return openArtifact(path, nil)
}

// openArtifact plugin.Opens path and wraps the result as a
// host.Artifact whose New looks up a `New<ClassName>` constructor
// symbol, the calling convention every generated class satisfies.
func openArtifact(path string, classNames []string) (host.Artifact, error) {
	plug, err := plugin.Open(path)
	if err != nil {
		return host.Artifact{}, fmt.Errorf("compiler: plugin.Open: %w", err)
	}
	return host.Artifact{
		Path:       path,
		ClassNames: classNames,
		New: func(className string) (host.TemplateRuntime, error) {
			sym, err := plug.Lookup("New" + className)
			if err != nil {
				return nil, fmt.Errorf("compiler: class %s: %w", className, err)
			}
			ctor, ok := sym.(func() host.TemplateRuntime)
			if !ok {
				return nil, fmt.Errorf("compiler: class %s: unexpected constructor signature", className)
			}
			return ctor(), nil
		},
	}, nil
}

// classNamesFromSources extracts exported struct names declared as
// `type <Name> struct` -- a best-effort scan good enough to populate
// Artifact.ClassNames without a full AST parse.
var typeDeclRe = regexp.MustCompile(`(?m)^type\s+([A-Za-z_][A-Za-z0-9_]*)\s+struct\b`)

func classNamesFromSources(sources map[string]string) []string {
	var names []string
	for _, src := range sources {
		for _, m := range typeDeclRe.FindAllStringSubmatch(src, -1) {
			names = append(names, m[1])
		}
	}
	return names
}

// goBuildDiagRe matches `go build` error lines of the form
// "file.go:12:3: message".
var goBuildDiagRe = regexp.MustCompile(`^(.+\.go):(\d+):(\d+):\s*(.+)$`)

func parseGoBuildOutput(output string) []host.Diagnostic {
	var diags []host.Diagnostic
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		m := goBuildDiagRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNum, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		diags = append(diags, host.Diagnostic{
			File:    m[1],
			Line:    lineNum,
			Column:  col,
			Message: m[4],
			IsError: true,
		})
	}
	return diags
}
