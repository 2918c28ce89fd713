package ecs

import (
	"iter"
	"reflect"
	"slices"
)

// Archetype is the table holding every entity with one exact set of
// component types. All columns grow and shrink in lockstep, so a row index
// addresses the same entity in each of them.
type Archetype struct {
	id      uint32
	mask    uint64
	types   []reflect.Type
	columns []column
}

func newArchetype(id uint32, mask uint64, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:    id,
		mask:  mask,
		types: registry.typesOf(mask),
	}
	a.columns = make([]column, len(a.types))
	for i, t := range a.types {
		a.columns[i] = registry.columns[registry.bits[t]]()
	}
	return a
}

// spawn appends one entity. components must line up with a.types.
func (a *Archetype) spawn(components []any) uint32 {
	row := -1
	for i, comp := range components {
		r := a.columns[i].push(comp)
		if row != -1 && r != row {
			panic("ecs: archetype columns out of sync")
		}
		row = r
	}
	return uint32(row)
}

func (a *Archetype) delete(row uint32) {
	for _, col := range a.columns {
		col.remove(int(row))
	}
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

func (a *Archetype) component(row uint32, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx == -1 {
		return nil
	}
	return a.columns[idx].at(int(row))
}

// ID returns the archetype's table ID.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types stored in this archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// HasComponent reports whether entities of this archetype carry t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnIndex(t) != -1
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].len()
}

// Iter yields the ids of all live entities in row order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for row := range a.columns[0].rows() {
			if !yield(NewEntityId(a.id, uint32(row))) {
				return
			}
		}
	}
}
