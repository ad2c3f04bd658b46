// Package runtime supplies the struct every generated template class
// embeds (host.TemplateRuntime's concrete half): a data map generated
// var accessors read and write, plus an output buffer Render writes
// into. There is no stack/section/error/old-input state here -- this
// engine's template model has no inheritance sections or form-helper
// concerns to carry.
package runtime

import "strings"

// Base is embedded by every generated class. Generated Render methods
// call Write; generated var accessors call GetData/assign into Data.
type Base struct {
	Output strings.Builder
	Data   map[string]any
	Vars   []string
}

// Initialize resets Output and lazily allocates Data. Generated
// classes may override this to seed defaults; the zero-arg
// TemplateRuntime contract means any per-instance construction
// arguments are supplied through an ordinary struct literal or
// constructor instead of a generated initializer block.
func (b *Base) Initialize() {
	b.Output.Reset()
	if b.Data == nil {
		b.Data = make(map[string]any)
	}
}

// Write appends s to the render output, the generated Render method's
// only means of producing text.
func (b *Base) Write(s string) {
	b.Output.WriteString(s)
}

// SetData replaces Data wholesale; the engine façade calls this before
// Initialize/Render to bind caller-supplied render parameters.
func (b *Base) SetData(data map[string]any) {
	b.Data = data
}

// GetData fetches key from data, type-asserting to T; a missing key
// or a type mismatch both yield T's zero value rather than panicking,
// since render-time data is supplied by callers outside the compiler's
// control.
func GetData[T any](data map[string]any, key string) T {
	var zero T
	if data == nil {
		return zero
	}
	v, ok := data[key]
	if !ok {
		return zero
	}
	typed, ok := v.(T)
	if !ok {
		return zero
	}
	return typed
}
