package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	X, Y    float64
	Hits    int
	Live    bool
	Name    string
	Wait    time.Duration
	Parent  *sample
	private int
}

func TestReflectionCacheFields(t *testing.T) {
	rc := NewReflectionCache()
	fields := rc.Fields(reflect.TypeFor[sample]())

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"X", "Y", "Hits", "Live", "Name", "Wait", "Parent"}, names)

	parent := fields[6]
	assert.True(t, parent.IsPointer)
	assert.Equal(t, reflect.TypeFor[sample](), parent.Type)
	assert.Equal(t, 6, parent.Index)

	assert.True(t, fields[0].Editable())
	assert.True(t, fields[2].Editable())
	assert.True(t, fields[3].Editable())
	assert.False(t, fields[4].Editable(), "strings are read-only")
	assert.False(t, fields[5].Editable(), "durations are shown as text")
	assert.False(t, parent.Editable())

	assert.Same(t, &fields[0], &rc.Fields(reflect.TypeFor[sample]())[0], "second lookup is cached")
	assert.Empty(t, rc.Fields(reflect.TypeFor[int]()))
}

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(3)
	assert.Equal(t, float32(0), h.Average())

	h.Push(10)
	h.Push(20)
	assert.Equal(t, float32(15), h.Average())

	h.Push(30)
	h.Push(40) // overwrites 10
	assert.Equal(t, float32(30), h.Average())
	assert.Equal(t, []float32{40, 20, 30}, h.Values())

	assert.Len(t, NewFrameHistory(0).Values(), 1)
}
