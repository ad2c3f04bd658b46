package parser

import (
	"path/filepath"
	"strings"
)

// DeriveClassName derives a target-language class identifier from a raw
// template name: the directory portion and extension are stripped, any
// non-identifier character becomes '_', and a non-identifier-start first
// character gets an '_' prefix. Callers needing collision resolution
// (the full name is used, never renamed silently) do that at the
// bundle level, after every item's default has been derived -- see
// engine.assignClassNames.
func DeriveClassName(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if base == "" {
		base = "_"
	}

	var b strings.Builder
	b.Grow(len(base))
	for i, r := range base {
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
	out := b.String()
	if out == "" {
		out = "_"
	}
	return out
}

// SanitizeIdentifier replaces any rune invalid in a Go identifier
// position with '_' and ensures the result does not start with a digit.
// Used by engine.assignClassNames to turn a full item name into the
// class name of an item whose derived class name collides with
// another's.
func SanitizeIdentifier(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range name {
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
	return b.String()
}
