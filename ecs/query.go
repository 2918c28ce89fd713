package ecs

import (
	"iter"
	"reflect"
)

// Query iterates entities whose components fill the row struct T.
//
// Queries cache the archetypes they match and a per-frame snapshot of their
// rows. Systems registered with a Scheduler get their Query fields bound and
// executed automatically before each run; standalone queries call Execute.
type Query[T any] struct {
	storage *Storage
	layout  *viewLayout

	archetypes []*Archetype
	seen       int

	ids   []EntityId
	rows  []T
	valid bool
}

// NewQuery creates a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.bind(storage)
	return q
}

func (q *Query[T]) bind(storage *Storage) {
	q.storage = storage
	q.layout = newViewLayout(reflect.TypeFor[T]())
	q.archetypes = nil
	q.seen = 0
	q.valid = false
}

// Execute rebuilds the row snapshot from current storage contents.
func (q *Query[T]) Execute() {
	if all := q.storage.Archetypes(); len(all) != q.seen {
		for _, a := range all[q.seen:] {
			if q.layout.matches(a) {
				q.archetypes = append(q.archetypes, a)
			}
		}
		q.seen = len(all)
	}

	q.ids = q.ids[:0]
	q.rows = q.rows[:0]

	var row T
	rv := reflect.ValueOf(&row).Elem()
	for _, a := range q.archetypes {
		if a.Len() == 0 {
			continue
		}
		cols := q.layout.columnsFor(a)
		for index := range a.columns[0].rows() {
			if !q.layout.fill(rv, a, cols, index) {
				continue
			}
			q.ids = append(q.ids, NewEntityId(a.id, uint32(index)))
			q.rows = append(q.rows, row)
		}
	}
	q.valid = true
}

// Iter yields (id, row) pairs from the last Execute.
// It panics if Execute has never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.valid {
		panic("ecs: Query.Iter called before Query.Execute")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.ids {
			if !yield(q.ids[i], q.rows[i]) {
				return
			}
		}
	}
}

// Values yields rows from the last Execute.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.valid {
		panic("ecs: Query.Values called before Query.Execute")
	}
	return func(yield func(T) bool) {
		for _, row := range q.rows {
			if !yield(row) {
				return
			}
		}
	}
}

// First returns the first row, if any.
func (q *Query[T]) First() (T, bool) {
	if !q.valid {
		panic("ecs: Query.First called before Query.Execute")
	}
	if len(q.rows) == 0 {
		var zero T
		return zero, false
	}
	return q.rows[0], true
}

// Len returns the number of rows from the last Execute.
func (q *Query[T]) Len() int {
	return len(q.rows)
}
