package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// Storage owns all entities, their components and the world's singletons.
type Storage struct {
	registry   *ComponentRegistry
	archetypes []*Archetype // indexed by archetype ID; slot 0 is never used
	byMask     *intmap.Map[uint64, uint32]
	singletons map[reflect.Type]any
}

// NewStorage creates an empty storage backed by the given registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: []*Archetype{nil},
		byMask:     intmap.New[uint64, uint32](16),
		singletons: make(map[reflect.Type]any),
	}
}

// Spawn creates an entity carrying the given components. Components may be
// passed by value or by pointer; the storage keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	types := make([]reflect.Type, len(components))
	for i, comp := range components {
		types[i] = componentType(comp)
	}
	mask := s.registry.maskOf(types)
	archetype := s.archetypeFor(mask)

	ordered := make([]any, len(archetype.types))
	for i, t := range types {
		idx := archetype.columnIndex(t)
		if ordered[idx] != nil {
			panic("ecs: duplicate component " + t.String())
		}
		ordered[idx] = components[i]
	}

	return NewEntityId(archetype.id, archetype.spawn(ordered))
}

func (s *Storage) archetypeFor(mask uint64) *Archetype {
	if id, ok := s.byMask.Get(mask); ok {
		return s.archetypes[id]
	}
	id := uint32(len(s.archetypes))
	archetype := newArchetype(id, mask, s.registry)
	s.archetypes = append(s.archetypes, archetype)
	s.byMask.Put(mask, id)
	return archetype
}

func (s *Storage) archetype(id uint32) *Archetype {
	if id == 0 || int(id) >= len(s.archetypes) {
		return nil
	}
	return s.archetypes[id]
}

// Delete removes the entity and all of its components. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype := s.archetype(id.ArchetypeId()); archetype != nil {
		archetype.delete(id.Index())
	}
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	archetype := s.archetype(id.ArchetypeId())
	if archetype == nil {
		return nil
	}
	return archetype.component(id.Index(), t)
}

// HasComponent reports whether the entity's archetype carries t.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	archetype := s.archetype(id.ArchetypeId())
	return archetype != nil && archetype.HasComponent(t)
}

// Archetypes returns the live archetype tables in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.archetypes[1:]
}

// AddSingleton stores value as the world-wide instance of its type. An
// existing instance is overwritten in place, so outstanding handles stay valid.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	if existing, ok := s.singletons[t]; ok {
		reflect.ValueOf(existing).Elem().Set(rv)
		return
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(rv)
	s.singletons[t] = ptr.Interface()
}

func (s *Storage) singleton(t reflect.Type) any {
	return s.singletons[t]
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return t
}

// ComponentReader is anything that can look up a component by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil when it has none.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}
