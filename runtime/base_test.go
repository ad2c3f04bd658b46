package runtime

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestBase_WriteAndInitialize(t *testing.T) {
	var b Base
	b.Initialize()
	b.Write("hello ")
	b.Write("world")
	assert.Equal(t, b.Output.String(), "hello world")
}

func TestBase_InitializeResetsOutput(t *testing.T) {
	var b Base
	b.Initialize()
	b.Write("stale")
	b.Initialize()
	assert.Equal(t, b.Output.String(), "")
}

func TestGetData_Present(t *testing.T) {
	data := map[string]any{"Name": "Ada"}
	assert.Equal(t, GetData[string](data, "Name"), "Ada")
}

func TestGetData_MissingKey(t *testing.T) {
	data := map[string]any{}
	assert.Equal(t, GetData[string](data, "Missing"), "")
}

func TestGetData_TypeMismatch(t *testing.T) {
	data := map[string]any{"Count": "not-an-int"}
	assert.Equal(t, GetData[int](data, "Count"), 0)
}

func TestGetData_NilMap(t *testing.T) {
	assert.Equal(t, GetData[string](nil, "Name"), "")
}
