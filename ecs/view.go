package ecs

import (
	"reflect"
)

var entityIdType = reflect.TypeFor[EntityId]()

// viewField describes one field of a query row struct.
type viewField struct {
	index     int
	component reflect.Type // nil for the EntityId field
	optional  bool
}

// viewLayout is the reflected shape of a query row struct T: a struct whose
// fields are pointers to components, plus at most one EntityId field.
// Named component fields may carry the `ecs:"optional"` tag.
type viewLayout struct {
	fields   []viewField
	required []reflect.Type
}

func newViewLayout(t reflect.Type) *viewLayout {
	if t.Kind() != reflect.Struct {
		panic("ecs: query row type must be a struct, got " + t.String())
	}

	layout := &viewLayout{}
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Type == entityIdType {
			layout.fields = append(layout.fields, viewField{index: i})
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: query field " + field.Name + " must be a component pointer or EntityId")
		}

		optional := false
		if tag, ok := field.Tag.Lookup("ecs"); ok && !field.Anonymous {
			if tag != "optional" {
				panic("ecs: invalid ecs tag value \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		component := field.Type.Elem()
		layout.fields = append(layout.fields, viewField{index: i, component: component, optional: optional})
		if !optional {
			layout.required = append(layout.required, component)
		}
	}
	return layout
}

// matches reports whether every required component lives in the archetype.
func (l *viewLayout) matches(a *Archetype) bool {
	for _, t := range l.required {
		if !a.HasComponent(t) {
			return false
		}
	}
	return true
}

// columnsFor resolves each field to an archetype column index (-1 if absent).
func (l *viewLayout) columnsFor(a *Archetype) []int {
	cols := make([]int, len(l.fields))
	for i, f := range l.fields {
		cols[i] = -1
		if f.component != nil {
			cols[i] = a.columnIndex(f.component)
		}
	}
	return cols
}

// fill writes the entity's components into row. It returns false when a
// required component is missing.
func (l *viewLayout) fill(row reflect.Value, a *Archetype, cols []int, index int) bool {
	for i, f := range l.fields {
		dst := row.Field(f.index)
		if f.component == nil {
			dst.SetUint(uint64(NewEntityId(a.id, uint32(index))))
			continue
		}

		var comp any
		if cols[i] != -1 {
			comp = a.columns[cols[i]].at(index)
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			dst.SetZero()
			continue
		}
		dst.Set(reflect.ValueOf(comp))
	}
	return true
}
