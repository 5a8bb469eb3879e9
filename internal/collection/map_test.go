package collection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncMapBasics(t *testing.T) {
	m := NewSyncMap[string, uint64]()

	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Put("a", 1)
	m.Put("b", 2)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), v)
	assert.Equal(t, 2, m.Len())

	m.Delete("a")
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestSyncMapRangeStopsEarly(t *testing.T) {
	m := NewSyncMap[string, int]()
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("c", 3)

	seen := 0
	m.Range(func(key string, value int) bool {
		seen++
		return false
	})
	assert.Equal(t, 1, seen)
}

func TestSyncMapConcurrentAccess(t *testing.T) {
	m := NewSyncMap[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Put(i, i)
			m.Get(i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 32, m.Len())
}
