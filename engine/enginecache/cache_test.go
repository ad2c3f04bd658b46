package enginecache

import (
	"sync"
	"sync/atomic"
	"testing"

	"gotest.tools/v3/assert"
)

func TestCache_GetOrCreate_CallsFactoryOnce(t *testing.T) {
	c := New[int]()
	var calls int32

	factory := func() (*int, error) {
		atomic.AddInt32(&calls, 1)
		v := 42
		return &v, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrCreate("key", factory)
			assert.NilError(t, err)
			assert.Equal(t, *v, 42)
		}()
	}
	wg.Wait()

	assert.Equal(t, atomic.LoadInt32(&calls), int32(1))
	assert.Equal(t, c.Size(), 1)
}

func TestCache_DistinctKeys(t *testing.T) {
	c := New[string]()
	a, err := c.GetOrCreate("a", func() (*string, error) {
		s := "A"
		return &s, nil
	})
	assert.NilError(t, err)
	b, err := c.GetOrCreate("b", func() (*string, error) {
		s := "B"
		return &s, nil
	})
	assert.NilError(t, err)
	assert.Equal(t, *a, "A")
	assert.Equal(t, *b, "B")
	assert.Equal(t, c.Size(), 2)
}

func TestCache_FactoryError_NotCached(t *testing.T) {
	c := New[int]()
	_, err := c.GetOrCreate("k", func() (*int, error) {
		return nil, assertErr{}
	})
	assert.Assert(t, err != nil)
	assert.Equal(t, c.Size(), 0)
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
