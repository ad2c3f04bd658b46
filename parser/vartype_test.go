package parser

import (
	"testing"

	"github.com/codingersid/gottl/gottlerrors"
	"gotest.tools/v3/assert"
)

func TestTypeRegistry_Builtin(t *testing.T) {
	r := NewTypeRegistry()
	imports, err := r.Resolve("string", gottlerrors.Location{})
	assert.NilError(t, err)
	assert.Equal(t, len(imports), 0)
}

func TestTypeRegistry_SliceOfBuiltin(t *testing.T) {
	r := NewTypeRegistry()
	imports, err := r.Resolve("[]int", gottlerrors.Location{})
	assert.NilError(t, err)
	assert.Equal(t, len(imports), 0)
}

func TestTypeRegistry_PointerOfBuiltin(t *testing.T) {
	r := NewTypeRegistry()
	_, err := r.Resolve("*string", gottlerrors.Location{})
	assert.NilError(t, err)
}

func TestTypeRegistry_MapRequiresBothSides(t *testing.T) {
	r := NewTypeRegistry()
	r.RegisterImport("time")
	imports, err := r.Resolve("map[string]time.Duration", gottlerrors.Location{})
	assert.NilError(t, err)
	assert.DeepEqual(t, imports, []string{"time"})
}

func TestTypeRegistry_QualifiedType_Unregistered(t *testing.T) {
	r := NewTypeRegistry()
	_, err := r.Resolve("time.Duration", gottlerrors.Location{Template: "t", Line: 3})
	assert.ErrorContains(t, err, "not reachable")
}

func TestTypeRegistry_QualifiedType_Registered(t *testing.T) {
	r := NewTypeRegistry()
	r.RegisterImport("time")
	imports, err := r.Resolve("time.Duration", gottlerrors.Location{})
	assert.NilError(t, err)
	assert.DeepEqual(t, imports, []string{"time"})
}

func TestTypeRegistry_UnqualifiedNonBuiltin(t *testing.T) {
	r := NewTypeRegistry()
	_, err := r.Resolve("Widget", gottlerrors.Location{})
	assert.ErrorContains(t, err, "not a builtin")
}

func TestTypeRegistry_Empty(t *testing.T) {
	r := NewTypeRegistry()
	_, err := r.Resolve("   ", gottlerrors.Location{})
	assert.ErrorContains(t, err, "empty type")
}
