package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/codingersid/gottl/gottlerrors"
	"github.com/codingersid/gottl/host"
	"github.com/codingersid/gottl/lexer"
	"github.com/codingersid/gottl/model"
)

// Resolver walks a Bundle's items, expanding include directives
// (splicing target blocks immediately after the directive),
// accumulating imports/assembly references, typing vars, and
// detecting include cycles.
type Resolver struct {
	Bundle *model.Bundle
	Loader host.SourceLoader
	Types  *TypeRegistry

	resolved   map[*model.TemplateItem]bool
	inProgress []string
}

// NewResolver creates a Resolver over bundle, using loader to fetch
// include targets that are not already present by name.
func NewResolver(bundle *model.Bundle, loader host.SourceLoader) *Resolver {
	return &Resolver{
		Bundle:   bundle,
		Loader:   loader,
		Types:    NewTypeRegistry(),
		resolved: make(map[*model.TemplateItem]bool),
	}
}

// ResolveAll runs the lexer and directive resolver over every item
// currently in the bundle. Items appended by include expansion are
// discovered and resolved by the same loop, since it ranges over the
// live, possibly-growing Bundle.Templates slice by index.
func (r *Resolver) ResolveAll() error {
	for _, ns := range r.Bundle.ImportsGlobal {
		r.Types.RegisterImport(ns)
	}
	for i := 0; i < len(r.Bundle.Templates); i++ {
		if err := r.resolveItem(r.Bundle.Templates[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveItem(item *model.TemplateItem) error {
	if r.resolved[item] {
		return nil
	}
	for _, name := range r.inProgress {
		if strings.EqualFold(name, item.Name) {
			cycle := append(append([]string{}, r.inProgress...), item.Name)
			return &gottlerrors.CycleError{Names: cycle}
		}
	}
	r.inProgress = append(r.inProgress, item.Name)
	defer func() { r.inProgress = r.inProgress[:len(r.inProgress)-1] }()

	if item.Blocks == nil {
		blocks, err := lexer.Tokenize(item.Name, item.Content)
		if err != nil {
			return err
		}
		item.Blocks = blocks
	}

	for _, ns := range r.Bundle.ImportsGlobal {
		item.AddImport(ns)
	}

	i := 0
	for i < len(item.Blocks) {
		block := item.Blocks[i]
		if block.Kind != lexer.Directive {
			i++
			continue
		}
		loc := gottlerrors.Location{Template: block.Name, Line: block.StartLine}
		directive, perr := ParseDirective(block.Text)
		if perr != nil {
			return &gottlerrors.DirectiveError{Location: loc, Message: perr.Error()}
		}

		if err := r.applyDirective(item, directive, loc, &i); err != nil {
			return err
		}
		i++
	}

	r.resolved[item] = true
	return nil
}

// applyDirective dispatches one parsed directive by name. i points at
// the directive block's index and may be mutated by the include case
// to reflect splicing.
func (r *Resolver) applyDirective(item *model.TemplateItem, d Directive, loc gottlerrors.Location, i *int) error {
	switch d.Name {
	case "template":
		if item.Processed {
			return &gottlerrors.DirectiveError{Location: loc, Directive: "template", Message: "duplicate template directive"}
		}
		if name, ok := d.Param("name"); ok && name != "" {
			item.ClassName = name
		}
		if inherits, ok := d.Param("inherits"); ok && inherits != "" {
			item.BaseClassName = inherits
		}
		item.Processed = true
		return nil

	case "assembly":
		name, err := requireParam(d, "name", loc)
		if err != nil {
			return err
		}
		r.Bundle.AddAssemblyReference(name)
		r.Types.RegisterImport(name)
		return nil

	case "import":
		ns, err := requireParam(d, "namespace", loc)
		if err != nil {
			return err
		}
		item.AddImport(ns)
		r.Types.RegisterImport(ns)
		return nil

	case "var":
		name, err := requireParam(d, "name", loc)
		if err != nil {
			return err
		}
		typeName, err := requireParam(d, "type", loc)
		if err != nil {
			return err
		}
		if item.HasVar(name) {
			return &gottlerrors.DirectiveError{Location: loc, Directive: "var", Message: "duplicate var " + name}
		}
		imports, err := r.Types.Resolve(typeName, loc)
		if err != nil {
			return err
		}
		for _, imp := range imports {
			item.AddImport(imp)
			r.Bundle.AddAssemblyReference(imp)
		}
		item.AddVar(model.Var{Name: name, Type: typeName})
		return nil

	case "include":
		name, err := requireParam(d, "name", loc)
		if err != nil {
			return err
		}
		spliced, err := r.resolveInclude(item, name)
		if err != nil {
			return err
		}
		rest := append([]lexer.Block{}, item.Blocks[*i+1:]...)
		item.Blocks = append(item.Blocks[:*i+1:*i+1], append(spliced, rest...)...)
		return nil

	default:
		return &gottlerrors.DirectiveError{Location: loc, Directive: d.Name, Message: "unknown directive"}
	}
}

// resolveInclude resolves an include target by (a) exact
// case-insensitive name match against existing items, then (b) path
// resolution relative to the including item's directory via the
// SourceLoader, creating a new TemplateItem on success. It resolves
// the target's own directives first (recursively, with cycle
// detection) and returns a copy of its final blocks to splice in.
func (r *Resolver) resolveInclude(including *model.TemplateItem, name string) ([]lexer.Block, error) {
	target, ok := r.Bundle.FindItem(name)
	if !ok {
		if r.Loader == nil {
			return nil, fmt.Errorf("include %q: no source loader configured and no existing item with that name", name)
		}
		cwd := ""
		if including.Name != "" {
			cwd = filepath.Dir(including.Name)
		}
		resolvedPath, err := r.Loader.Resolve(cwd, name)
		if err != nil {
			return nil, fmt.Errorf("include %q: %w", name, err)
		}
		content, err := r.Loader.Read(resolvedPath)
		if err != nil {
			return nil, fmt.Errorf("include %q: %w", name, err)
		}
		target = &model.TemplateItem{
			Name:      resolvedPath,
			ClassName: DeriveClassName(resolvedPath),
			Content:   content,
		}
		if !r.Bundle.AddItem(target) {
			target, _ = r.Bundle.FindItem(resolvedPath)
		}
	}
	target.Included = true

	if err := r.resolveItem(target); err != nil {
		return nil, err
	}

	// target's own Directive blocks (var/assembly/template/...) have
	// already been applied against target itself by resolveItem above;
	// they must not be spliced into including's blocks, or including's
	// own walk would dispatch them a second time, against the wrong
	// item.
	out := make([]lexer.Block, 0, len(target.Blocks))
	for _, b := range target.Blocks {
		if b.Kind == lexer.Directive {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
