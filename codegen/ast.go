// Package codegen builds a small Go-flavored structural AST for one
// generated class per template item and renders it to Go source. It
// deliberately stops at host.File/host.Class rather than growing a
// general CodeDOM -- one target language does not need that
// indirection.
package codegen

import (
	"github.com/codingersid/gottl/host"
	"github.com/codingersid/gottl/lexer"
	"github.com/codingersid/gottl/model"
)

// BuildFile constructs a host.File with one host.Class per item in the
// bundle -- included items too, so they can call each other once
// compiled together (the conservative default is to compile all).
// defaultBaseClass is used for items with no base_class_name set.
func BuildFile(bundle *model.Bundle, defaultBaseClass string) *host.File {
	file := &host.File{
		Namespace: bundle.Namespace,
		Imports:   append([]string{}, bundle.ImportsGlobal...),
	}
	seen := make(map[string]bool, len(file.Imports))
	for _, imp := range file.Imports {
		seen[imp] = true
	}

	for _, item := range bundle.Templates {
		class := buildClass(item, defaultBaseClass)
		file.Classes = append(file.Classes, class)
		for _, imp := range item.Imports {
			if !seen[imp] {
				seen[imp] = true
				file.Imports = append(file.Imports, imp)
			}
		}
	}
	return file
}

// buildClass walks one item's resolved blocks, applying the Member
// flip-flop rule: the first Member block opens a member region, the
// next one closes it; blocks inside the region are promoted to class
// members instead of Render lines. Directive blocks are always
// skipped (resolver has already consumed them).
func buildClass(item *model.TemplateItem, defaultBaseClass string) *host.Class {
	base := item.BaseClassName
	if base == "" {
		base = defaultBaseClass
	}
	class := &host.Class{
		Name:       item.ClassName,
		BaseClass:  base,
		SourceName: item.Name,
	}
	for _, v := range item.Vars {
		class.Vars = append(class.Vars, host.Var{Name: v.Name, Type: v.Type})
	}

	inMember := false
	for _, b := range item.Blocks {
		switch b.Kind {
		case lexer.Directive:
			continue
		case lexer.Member:
			inMember = !inMember
			continue
		}
		if inMember {
			class.Members = append(class.Members, host.Member{
				Text: b.Text,
				File: b.Name,
				Num:  b.StartLine,
			})
			continue
		}
		class.RenderLines = append(class.RenderLines, host.Line{
			Kind: blockKind(b.Kind),
			Text: b.Text,
			File: b.Name,
			Num:  b.StartLine,
		})
	}
	return class
}

func blockKind(k lexer.BlockKind) host.Block {
	switch k {
	case lexer.Expression:
		return host.BlockExpression
	case lexer.Statement:
		return host.BlockStatement
	default:
		return host.BlockText
	}
}
