package debugui

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/pong/ecs"
)

var durationType = reflect.TypeFor[time.Duration]()

// Inspector is a window listing every entity by archetype. Numeric and
// boolean component fields can be edited in place.
type Inspector struct {
	storage *ecs.Storage
	fields  *ReflectionCache
}

func NewInspector(storage *ecs.Storage) *Inspector {
	return &Inspector{storage: storage, fields: fieldCache}
}

func (in *Inspector) Render() {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, archetype := range in.storage.Archetypes() {
		if archetype.Len() == 0 {
			continue
		}
		names := make([]string, 0, len(archetype.Types()))
		for _, t := range archetype.Types() {
			names = append(names, t.String())
		}
		label := fmt.Sprintf("%s (%d)##arch%d", strings.Join(names, "+"), archetype.Len(), archetype.ID())
		if !imgui.TreeNodeStr(label) {
			continue
		}
		for id := range archetype.Iter() {
			in.renderEntity(archetype, id)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (in *Inspector) renderEntity(archetype *ecs.Archetype, id ecs.EntityId) {
	if !imgui.TreeNodeStr(fmt.Sprintf("Entity %d", id)) {
		return
	}
	for _, t := range archetype.Types() {
		component := in.storage.GetComponent(id, t)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(t.String()) {
			in.renderStruct(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
	imgui.TreePop()
}

func (in *Inspector) renderStruct(val reflect.Value) {
	for _, field := range in.fields.Fields(val.Type()) {
		fv := val.Field(field.Index)
		if field.IsPointer {
			if fv.IsNil() {
				imgui.Text(field.Name + ": nil")
				continue
			}
			fv = fv.Elem()
		}
		in.renderField(field.Name, fv, field.Editable() && fv.CanSet())
	}
}

func (in *Inspector) renderField(name string, val reflect.Value, editable bool) {
	id := "##" + name

	switch {
	case val.Type() == durationType:
		imgui.Text(fmt.Sprintf("%s: %s", name, time.Duration(val.Int())))
		return
	case val.Kind() == reflect.Struct:
		if imgui.TreeNodeStr(name) {
			in.renderStruct(val)
			imgui.TreePop()
		}
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := val.Int()
		if n < math.MinInt32 || n > math.MaxInt32 || !editable {
			imgui.Text(fmt.Sprintf("%s: %d", name, n))
			return
		}
		v := int32(n)
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && !val.OverflowInt(int64(v)) {
			val.SetInt(int64(v))
		}

	case reflect.Float32, reflect.Float64:
		if !editable {
			imgui.Text(fmt.Sprintf("%s: %.2f", name, val.Float()))
			return
		}
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if !editable {
			imgui.Text(fmt.Sprintf("%s: %t", name, v))
			return
		}
		if imgui.Checkbox(name, &v) {
			val.SetBool(v)
		}

	case reflect.String:
		imgui.Text(fmt.Sprintf("%s: %q", name, val.String()))

	case reflect.Slice, reflect.Map:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
