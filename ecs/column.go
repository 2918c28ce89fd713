package ecs

import (
	"iter"
	"math/bits"
	"reflect"
)

// ComponentRegistry assigns every component type a bit in the archetype mask
// and knows how to build a column for it. Each Storage gets its own registry,
// so independent worlds never share type bits.
type ComponentRegistry struct {
	bits    map[reflect.Type]uint
	types   []reflect.Type
	columns []func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		bits: make(map[reflect.Type]uint),
	}
}

// RegisterComponent makes T usable as a component. Registering the same type
// twice is a no-op. A registry holds at most 64 component types.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.bits[t]; ok {
		return
	}
	if len(r.types) == 64 {
		panic("ecs: component registry is full (64 types)")
	}
	r.bits[t] = uint(len(r.types))
	r.types = append(r.types, t)
	r.columns = append(r.columns, func() column {
		return &chunkedColumn[T]{}
	})
}

// maskOf returns the archetype mask for the given component types.
func (r *ComponentRegistry) maskOf(types []reflect.Type) uint64 {
	var mask uint64
	for _, t := range types {
		bit, ok := r.bits[t]
		if !ok {
			panic("ecs: component type " + t.String() + " not registered")
		}
		mask |= 1 << bit
	}
	return mask
}

// typesOf expands a mask back into component types, in bit order.
func (r *ComponentRegistry) typesOf(mask uint64) []reflect.Type {
	types := make([]reflect.Type, 0, bits.OnesCount64(mask))
	for mask != 0 {
		bit := bits.TrailingZeros64(mask)
		types = append(types, r.types[bit])
		mask &^= 1 << bit
	}
	return types
}

// column is the type-erased storage of one component type inside an archetype.
type column interface {
	push(item any) int
	remove(row int)
	at(row int) any
	rows() iter.Seq[int]
	len() int
}

const chunkSize = 64

// chunkedColumn stores values in separately allocated fixed-size chunks so
// pointers handed out by at stay valid while the column grows. Each chunk
// tracks occupancy in a single bitmap word.
type chunkedColumn[T any] struct {
	chunks []*[chunkSize]T
	used   []uint64
	free   []int
	next   int
	count  int
}

func (c *chunkedColumn[T]) push(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		panic("ecs: cannot store " + reflect.TypeOf(item).String() + " in column of " + reflect.TypeFor[T]().String())
	}

	var row int
	if n := len(c.free); n > 0 {
		row = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		row = c.next
		c.next++
		if row/chunkSize >= len(c.chunks) {
			c.chunks = append(c.chunks, new([chunkSize]T))
			c.used = append(c.used, 0)
		}
	}

	chunk, slot := row/chunkSize, row%chunkSize
	c.chunks[chunk][slot] = value
	c.used[chunk] |= 1 << slot
	c.count++
	return row
}

func (c *chunkedColumn[T]) remove(row int) {
	if !c.live(row) {
		return
	}
	chunk, slot := row/chunkSize, row%chunkSize
	var zero T
	c.chunks[chunk][slot] = zero
	c.used[chunk] &^= 1 << slot
	c.free = append(c.free, row)
	c.count--
}

func (c *chunkedColumn[T]) live(row int) bool {
	if row < 0 || row >= c.next {
		return false
	}
	return c.used[row/chunkSize]&(1<<(row%chunkSize)) != 0
}

// at returns a *T for a live row, or nil.
func (c *chunkedColumn[T]) at(row int) any {
	if !c.live(row) {
		return nil
	}
	return &c.chunks[row/chunkSize][row%chunkSize]
}

func (c *chunkedColumn[T]) rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		for chunk, word := range c.used {
			for word != 0 {
				slot := bits.TrailingZeros64(word)
				word &^= 1 << slot
				if !yield(chunk*chunkSize + slot) {
					return
				}
			}
		}
	}
}

func (c *chunkedColumn[T]) len() int {
	return c.count
}
