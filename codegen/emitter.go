package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codingersid/gottl/host"
)

// runtimeImportPath is the generated code's handle on runtime.Base and
// GetData, the generic accessor helper defined in package runtime.
const runtimeImportPath = "github.com/codingersid/gottl/runtime"

// hostImportPath is the generated constructors' handle on
// host.TemplateRuntime.
const hostImportPath = "github.com/codingersid/gottl/host"

// GoEmitter renders a host.File to Go source text: a strings.Builder
// accumulator and a switch over block kind emitting one Go statement
// per block. Debug puts a //line pragma in front of each Render line
// and member snippet that has a source file name and line; no pragma
// follows the snippet to reset the position, and a snippet without a
// source file name gets none.
type GoEmitter struct {
	Debug bool
}

// NewGoEmitter creates an emitter; debug controls //line pragma emission.
func NewGoEmitter(debug bool) *GoEmitter {
	return &GoEmitter{Debug: debug}
}

// Emit renders file to a single Go source string: package clause,
// import block, then one struct + constructor + methods per class.
// "fmt", the runtime package and the host package are added
// automatically when a class needs them, on top of the imports the
// template items themselves declared.
func (e *GoEmitter) Emit(file *host.File) (string, error) {
	var b strings.Builder

	pkg := file.Namespace
	if pkg == "" {
		pkg = "gottlgen"
	}
	fmt.Fprintf(&b, "package %s\n\n", sanitizePackageName(pkg))

	imports := append([]string{}, file.Imports...)
	if needsFmt(file) {
		imports = appendMissing(imports, "fmt")
	}
	if needsRuntime(file) {
		imports = appendMissing(imports, runtimeImportPath)
	}
	if len(file.Classes) > 0 {
		imports = appendMissing(imports, hostImportPath)
	}
	if len(imports) > 0 {
		b.WriteString("import (\n")
		for _, imp := range imports {
			fmt.Fprintf(&b, "\t%q\n", imp)
		}
		b.WriteString(")\n\n")
	}

	for _, class := range file.Classes {
		if err := e.emitClass(&b, class); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func needsFmt(file *host.File) bool {
	for _, class := range file.Classes {
		for _, line := range class.RenderLines {
			if line.Kind == host.BlockExpression {
				return true
			}
		}
	}
	return false
}

func needsRuntime(file *host.File) bool {
	for _, class := range file.Classes {
		if len(class.Vars) > 0 || strings.HasPrefix(class.BaseClass, "runtime.") {
			return true
		}
	}
	return false
}

func appendMissing(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

func (e *GoEmitter) emitClass(b *strings.Builder, class *host.Class) error {
	base := class.BaseClass
	if base == "" {
		return fmt.Errorf("class %s: no base class set", class.Name)
	}

	fmt.Fprintf(b, "type %s struct {\n\t%s\n}\n\n", class.Name, base)
	fmt.Fprintf(b, "func New%s() host.TemplateRuntime { return &%s{} }\n\n", class.Name, class.Name)

	e.emitRender(b, class)
	e.emitMembers(b, class)
	e.emitVarAccessors(b, class)

	return nil
}

func (e *GoEmitter) emitRender(b *strings.Builder, class *host.Class) {
	fmt.Fprintf(b, "func (t *%s) Render() string {\n", class.Name)
	for _, line := range class.RenderLines {
		e.emitLinePragma(b, line.File, line.Num)
		switch line.Kind {
		case host.BlockText:
			fmt.Fprintf(b, "\tt.Write(%s)\n", strconv.Quote(line.Text))
		case host.BlockExpression:
			fmt.Fprintf(b, "\tt.Write(fmt.Sprint(%s))\n", strings.TrimSpace(line.Text))
		case host.BlockStatement:
			fmt.Fprintf(b, "\t%s\n", line.Text)
		}
	}
	b.WriteString("\treturn t.Output.String()\n}\n\n")
}

func (e *GoEmitter) emitMembers(b *strings.Builder, class *host.Class) {
	for _, m := range class.Members {
		e.emitLinePragma(b, m.File, m.Num)
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
}

func (e *GoEmitter) emitVarAccessors(b *strings.Builder, class *host.Class) {
	for _, v := range class.Vars {
		fmt.Fprintf(b, "func (t *%s) %s() %s { return runtime.GetData[%s](t.Data, %q) }\n",
			class.Name, v.Name, v.Type, v.Type, v.Name)
		fmt.Fprintf(b, "func (t *%s) Set%s(v %s) { t.Data[%q] = v }\n\n",
			class.Name, v.Name, v.Type, v.Name)
	}
}

func (e *GoEmitter) emitLinePragma(b *strings.Builder, file string, line int) {
	if !e.Debug || file == "" || line <= 0 {
		return
	}
	fmt.Fprintf(b, "//line %s:%d\n", file, line)
}

// sanitizePackageName ensures a namespace string is a legal Go package
// identifier; invalid characters become '_'.
func sanitizePackageName(ns string) string {
	var b strings.Builder
	for i, r := range ns {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "gottlgen"
	}
	return b.String()
}
