// Package model holds the data model shared by the parser and engine
// packages: TemplateItem, Var, and the Bundle aggregate. It has no
// opinion on lifecycle (engine) or on how blocks got resolved
// (parser); it just carries the data invariantly.
package model

import "github.com/codingersid/gottl/lexer"

// Var is a declared `var name type` directive, resolved to a concrete
// host type reference (see parser.TypeRegistry).
type Var struct {
	Name string
	Type string
}

// TemplateItem is one template in a Bundle.
type TemplateItem struct {
	Name          string
	ClassName     string
	BaseClassName string
	Content       string
	Blocks        []lexer.Block
	Imports       []string // insertion order preserved
	Vars          []Var    // insertion order preserved
	Included      bool
	Processed     bool
	Source        string // generated host-language source, set after codegen

	importSet map[string]bool
	varSet    map[string]bool
}

// AddImport appends namespace to Imports if not already present.
// Returns true if it was newly added.
func (t *TemplateItem) AddImport(namespace string) bool {
	if t.importSet == nil {
		t.importSet = make(map[string]bool, len(t.Imports))
		for _, ns := range t.Imports {
			t.importSet[ns] = true
		}
	}
	if t.importSet[namespace] {
		return false
	}
	t.importSet[namespace] = true
	t.Imports = append(t.Imports, namespace)
	return true
}

// HasVar reports whether a var with this name is already registered.
func (t *TemplateItem) HasVar(name string) bool {
	if t.varSet == nil {
		t.varSet = make(map[string]bool, len(t.Vars))
		for _, v := range t.Vars {
			t.varSet[v.Name] = true
		}
	}
	return t.varSet[name]
}

// AddVar registers a new var. Caller must check HasVar first; spec
// treats a duplicate var name as a fatal DirectiveError, not a no-op.
func (t *TemplateItem) AddVar(v Var) {
	if t.varSet == nil {
		t.varSet = make(map[string]bool, len(t.Vars))
	}
	t.varSet[v.Name] = true
	t.Vars = append(t.Vars, v)
}

// Bundle is the top-level aggregate: a collection of TemplateItems
// compiled together as one artifact, plus the shared assembly/import
// state directives accumulate onto it.
type Bundle struct {
	Templates          []*TemplateItem
	AssemblyReferences []string // insertion order, deduped
	ImportsGlobal      []string
	AssemblyName       string
	Namespace          string

	itemsByName map[string]*TemplateItem // keyed lower-case
	assemblySet map[string]bool
}

// NewBundle creates an empty Bundle.
func NewBundle() *Bundle {
	return &Bundle{
		itemsByName: make(map[string]*TemplateItem),
		assemblySet: make(map[string]bool),
	}
}

// FindItem looks up a TemplateItem by name, case-insensitively.
func (b *Bundle) FindItem(name string) (*TemplateItem, bool) {
	item, ok := b.itemsByName[lowerKey(name)]
	return item, ok
}

// AddItem registers a new TemplateItem. Returns false if an item with
// this name (case-insensitive) already exists.
func (b *Bundle) AddItem(item *TemplateItem) bool {
	key := lowerKey(item.Name)
	if _, exists := b.itemsByName[key]; exists {
		return false
	}
	b.itemsByName[key] = item
	b.Templates = append(b.Templates, item)
	return true
}

// ReplaceItem overwrites an existing item's content in place (used by
// AddTemplateItem when called again before Process for the same name).
func (b *Bundle) ReplaceItem(item *TemplateItem) {
	b.itemsByName[lowerKey(item.Name)] = item
	for i, existing := range b.Templates {
		if lowerKey(existing.Name) == lowerKey(item.Name) {
			b.Templates[i] = item
			return
		}
	}
	b.Templates = append(b.Templates, item)
}

// AddAssemblyReference inserts name into AssemblyReferences if absent.
// Returns true if newly added.
func (b *Bundle) AddAssemblyReference(name string) bool {
	if b.assemblySet[name] {
		return false
	}
	b.assemblySet[name] = true
	b.AssemblyReferences = append(b.AssemblyReferences, name)
	return true
}

// AddGlobalImport appends namespace to ImportsGlobal if absent.
func (b *Bundle) AddGlobalImport(namespace string) bool {
	for _, ns := range b.ImportsGlobal {
		if ns == namespace {
			return false
		}
	}
	b.ImportsGlobal = append(b.ImportsGlobal, namespace)
	return true
}

// Renderable returns every non-included TemplateItem, in bundle order.
func (b *Bundle) Renderable() []*TemplateItem {
	var out []*TemplateItem
	for _, item := range b.Templates {
		if !item.Included {
			out = append(out, item)
		}
	}
	return out
}

func lowerKey(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
