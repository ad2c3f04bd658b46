package parser

import (
	"errors"
	"testing"

	"github.com/codingersid/gottl/gottlerrors"
	"gotest.tools/v3/assert"
)

func TestParseDirective_NameOnly(t *testing.T) {
	d, err := ParseDirective("template")
	assert.NilError(t, err)
	assert.Equal(t, d.Name, "template")
	assert.Equal(t, len(d.Parameters), 0)
}

func TestParseDirective_WithParams(t *testing.T) {
	d, err := ParseDirective(`template name="Foo" inherits="Bar"`)
	assert.NilError(t, err)
	assert.Equal(t, d.Name, "template")
	name, ok := d.Param("name")
	assert.Assert(t, ok)
	assert.Equal(t, name, "Foo")
	inherits, ok := d.Param("inherits")
	assert.Assert(t, ok)
	assert.Equal(t, inherits, "Bar")
}

func TestParseDirective_CaseInsensitiveKeys(t *testing.T) {
	d, err := ParseDirective(`import Namespace="fmt"`)
	assert.NilError(t, err)
	v, ok := d.Param("NAMESPACE")
	assert.Assert(t, ok)
	assert.Equal(t, v, "fmt")
}

func TestParseDirective_EscapedQuote(t *testing.T) {
	d, err := ParseDirective(`var name="x" type="map[string]string" comment="say \"hi\""`)
	assert.NilError(t, err)
	v, _ := d.Param("comment")
	assert.Equal(t, v, `say "hi"`)
}

func TestParseDirective_UnterminatedString(t *testing.T) {
	_, err := ParseDirective(`var name="x" type="string`)
	assert.ErrorContains(t, err, "unterminated string")
}

func TestParseDirective_MissingEquals(t *testing.T) {
	_, err := ParseDirective(`var name "x"`)
	assert.ErrorContains(t, err, "expected '='")
}

func TestParseDirective_Empty(t *testing.T) {
	_, err := ParseDirective("   ")
	assert.ErrorContains(t, err, "empty directive")
}

func TestRequireParam_Missing(t *testing.T) {
	d := Directive{Name: "var", Parameters: map[string]string{}}
	_, err := requireParam(d, "name", gottlerrors.Location{Template: "t", Line: 1})
	assert.Assert(t, err != nil)
	var de *gottlerrors.DirectiveError
	assert.Assert(t, errors.As(err, &de))
	assert.Equal(t, de.Directive, "var")
}
