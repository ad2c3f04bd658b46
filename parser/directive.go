// Package parser implements directive parsing, directive resolution,
// and var-type resolution. It consumes lexer.Blocks and a model.Bundle
// and produces a fully resolved Bundle: includes spliced in,
// imports/assembly references accumulated, vars typed.
package parser

import (
	"fmt"
	"strings"

	"github.com/codingersid/gottl/gottlerrors"
)

// Directive is the parsed payload of a Directive block.
type Directive struct {
	Name       string // lowercased
	Parameters map[string]string
}

// Param looks up a parameter case-insensitively.
func (d Directive) Param(key string) (string, bool) {
	v, ok := d.Parameters[strings.ToLower(key)]
	return v, ok
}

// ParseDirective splits a Directive block's payload into a name and a
// key="value" parameter map. Grammar: NAME (SP KEY=STRING)*, double
// quoted values with \" as the only escape, keys case-insensitive.
func ParseDirective(payload string) (Directive, error) {
	s := strings.TrimSpace(payload)
	if s == "" {
		return Directive{}, fmt.Errorf("empty directive")
	}

	i := 0
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	name := strings.ToLower(s[:i])
	params := make(map[string]string)

	for i < len(s) {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}
		keyStart := i
		for i < len(s) && s[i] != '=' && !isSpace(s[i]) {
			i++
		}
		key := strings.ToLower(s[keyStart:i])
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '=' {
			return Directive{}, fmt.Errorf("directive %q: expected '=' after key %q", name, key)
		}
		i++ // skip '='
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '"' {
			return Directive{}, fmt.Errorf("directive %q: expected quoted value for key %q", name, key)
		}
		i++ // skip opening quote
		var value strings.Builder
		closed := false
		for i < len(s) {
			if s[i] == '\\' && i+1 < len(s) && s[i+1] == '"' {
				value.WriteByte('"')
				i += 2
				continue
			}
			if s[i] == '"' {
				closed = true
				i++
				break
			}
			value.WriteByte(s[i])
			i++
		}
		if !closed {
			return Directive{}, fmt.Errorf("directive %q: unterminated string for key %q", name, key)
		}
		if key != "" {
			params[key] = value.String()
		}
	}

	return Directive{Name: name, Parameters: params}, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// requireParam fetches a mandatory parameter or returns a DirectiveError.
func requireParam(d Directive, key string, loc gottlerrors.Location) (string, error) {
	v, ok := d.Param(key)
	if !ok || v == "" {
		return "", &gottlerrors.DirectiveError{
			Location:  loc,
			Directive: d.Name,
			Message:   fmt.Sprintf("missing required parameter %q", key),
		}
	}
	return v, nil
}
