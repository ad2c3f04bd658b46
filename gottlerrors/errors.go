// Package gottlerrors defines the flat, distinguishable error kinds the
// compilation pipeline surfaces to callers. Each kind is its own
// exported type so callers can `errors.As` for the one they care
// about; none of them wrap each other. Only ExecutionError carries a
// Cause, exposed through Unwrap.
package gottlerrors

import "fmt"

// Location pins an error to a place in a template's original source.
type Location struct {
	Template string
	Line     int
}

func (l Location) String() string {
	if l.Template == "" {
		return ""
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.Template, l.Line)
	}
	return l.Template
}

// ArgumentError signals a malformed public call: a null/empty input
// where the operation requires one.
type ArgumentError struct {
	Operation string
	Message   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// StateError signals an operation invoked in the wrong lifecycle phase.
type StateError struct {
	Operation string
	Status    string
	Message   string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: invalid in status %s: %s", e.Operation, e.Status, e.Message)
}

// ParseError signals a lexer failure, such as an unterminated delimiter.
type ParseError struct {
	Location
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Location, e.Message)
}

// DirectiveError signals an unknown directive, a duplicate `template`
// directive, or a missing required parameter.
type DirectiveError struct {
	Location
	Directive string
	Message   string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("directive error at %s (%s): %s", e.Location, e.Directive, e.Message)
}

// CycleError signals an include cycle; Names lists the cycle,
// root-first.
type CycleError struct {
	Names []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("include cycle detected: %v", e.Names)
}

// TypeResolutionError signals a `var` type that could not be resolved.
type TypeResolutionError struct {
	Location
	TypeName string
	Message  string
}

func (e *TypeResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve type %q at %s: %s", e.TypeName, e.Location, e.Message)
}

// CompilationError signals the host compiler reported at least one
// error. Snippet carries the ±1 line enrichment from the original
// template source, when one could be found.
type CompilationError struct {
	Location
	Message string
	Snippet string
}

func (e *CompilationError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("compilation error at %s: %s\n%s", e.Location, e.Message, e.Snippet)
	}
	return fmt.Sprintf("compilation error at %s: %s", e.Location, e.Message)
}

// AmbiguityError signals CreateInstance was called with no class name
// and zero or more than one candidate class.
type AmbiguityError struct {
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	if len(e.Candidates) == 0 {
		return "ambiguity error: no renderable template classes in this bundle"
	}
	return fmt.Sprintf("ambiguity error: class name required, candidates: %v", e.Candidates)
}

// ExecutionError wraps any failure raised by the compiled template at
// render time.
type ExecutionError struct {
	ClassName string
	Cause     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution error in %s: %v", e.ClassName, e.Cause)
}

func (e *ExecutionError) Unwrap() error { return e.Cause }
