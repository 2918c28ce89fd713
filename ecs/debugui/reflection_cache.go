package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field the inspector can show.
type FieldInfo struct {
	Name      string
	Type      reflect.Type // element type for pointer fields
	Index     int
	IsPointer bool
}

// Editable reports whether the inspector offers an input widget for the
// field.
func (f FieldInfo) Editable() bool {
	if f.Type == durationType {
		return false
	}
	switch f.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		return !f.IsPointer
	}
	return false
}

// ReflectionCache remembers the exported fields of struct types.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{fields: make(map[reflect.Type][]FieldInfo)}
}

// Fields returns t's exported fields in declaration order. Non-struct types
// have none.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			ft := field.Type
			isPointer := ft.Kind() == reflect.Pointer
			if isPointer {
				ft = ft.Elem()
			}
			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      ft,
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	rc.mu.Lock()
	rc.fields[t] = fields
	rc.mu.Unlock()
	return fields
}

var fieldCache = NewReflectionCache()
