package parser

import (
	"strings"

	"github.com/codingersid/gottl/gottlerrors"
)

// builtinTypes are always resolvable without any import/assembly
// directive, mirroring Go's predeclared types.
var builtinTypes = map[string]bool{
	"string": true, "bool": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
	"byte": true, "rune": true, "any": true, "error": true,
}

// TypeRegistry resolves `var type="…"` strings against the set of
// import paths an item or the bundle has declared. Go has no runtime
// assembly loading, so resolution is static: the only "assembly" a
// var's type can come from is one already named by an
// `import`/`assembly` directive.
type TypeRegistry struct {
	// knownImports is the set of import paths registered so far
	// (global + per-item), used to validate a type's package prefix.
	knownImports map[string]bool
}

// NewTypeRegistry creates a registry seeded with nothing but builtins.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{knownImports: make(map[string]bool)}
}

// RegisterImport records that an import path is available for var
// types to reference.
func (r *TypeRegistry) RegisterImport(path string) {
	r.knownImports[path] = true
}

// Resolve validates a type reference string, recursively resolving
// slice/map element types, and returns the import paths it depends on
// (so the caller can register them on the owning item, per spec: "each
// contributes its module + namespace to the item's imports / bundle
// references").
func (r *TypeRegistry) Resolve(typeName string, loc gottlerrors.Location) ([]string, error) {
	typeName = strings.TrimSpace(typeName)
	if typeName == "" {
		return nil, &gottlerrors.TypeResolutionError{Location: loc, TypeName: typeName, Message: "empty type"}
	}

	switch {
	case strings.HasPrefix(typeName, "[]"):
		return r.Resolve(typeName[2:], loc)
	case strings.HasPrefix(typeName, "map["):
		close := strings.Index(typeName, "]")
		if close == -1 {
			return nil, &gottlerrors.TypeResolutionError{Location: loc, TypeName: typeName, Message: "malformed map type"}
		}
		keyType := typeName[len("map["):close]
		valType := typeName[close+1:]
		keyImports, err := r.Resolve(keyType, loc)
		if err != nil {
			return nil, err
		}
		valImports, err := r.Resolve(valType, loc)
		if err != nil {
			return nil, err
		}
		return append(keyImports, valImports...), nil
	case strings.HasPrefix(typeName, "*"):
		return r.Resolve(typeName[1:], loc)
	}

	if builtinTypes[typeName] {
		return nil, nil
	}

	lastDot := strings.LastIndex(typeName, ".")
	if lastDot == -1 {
		return nil, &gottlerrors.TypeResolutionError{
			Location: loc, TypeName: typeName,
			Message: "not a builtin and not package-qualified (expected pkg/path.TypeName)",
		}
	}
	pkgPath := typeName[:lastDot]
	if !r.knownImports[pkgPath] {
		return nil, &gottlerrors.TypeResolutionError{
			Location: loc, TypeName: typeName,
			Message: "package " + pkgPath + " is not reachable through any import/assembly directive resolved so far",
		}
	}
	return []string{pkgPath}, nil
}
