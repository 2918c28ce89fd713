package ecs

import "reflect"

// Singleton is a typed handle to a world-wide component that belongs to no
// entity: frame state, input flags, shared devices.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns a handle to the T singleton, creating it from the
// optional initializer (or the zero value) when the storage has none yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.singleton(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.bind(storage)
	return s
}

func (s *Singleton[T]) bind(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.resolve()
}

func (s *Singleton[T]) resolve() {
	if s.storage == nil {
		return
	}
	s.ptr, _ = s.storage.singleton(reflect.TypeFor[T]()).(*T)
}

// Get returns the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.resolve()
	}
	return s.ptr
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
