package compiler

import (
	"testing"

	"github.com/codingersid/gottl/host"
	"gotest.tools/v3/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	sources := map[string]string{"a.go": "package a", "b.go": "package b"}
	f1 := Fingerprint(sources)
	f2 := Fingerprint(sources)
	assert.Equal(t, f1, f2)
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	f1 := Fingerprint(map[string]string{"a.go": "1", "b.go": "2"})
	f2 := Fingerprint(map[string]string{"b.go": "2", "a.go": "1"})
	assert.Equal(t, f1, f2)
}

func TestFingerprint_ContentSensitive(t *testing.T) {
	f1 := Fingerprint(map[string]string{"a.go": "1"})
	f2 := Fingerprint(map[string]string{"a.go": "2"})
	assert.Assert(t, f1 != f2)
}

func TestArtifactCache_GetSet(t *testing.T) {
	c := NewArtifactCache()
	_, ok := c.Get("missing")
	assert.Assert(t, !ok)

	a := &host.Artifact{Path: "x.so"}
	c.Set("key", a)
	got, ok := c.Get("key")
	assert.Assert(t, ok)
	assert.Equal(t, got.Path, "x.so")
	assert.Equal(t, c.Size(), 1)
}
