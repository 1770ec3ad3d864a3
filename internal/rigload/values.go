package rigload

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// dataValue converts an HCL literal into a value datatable.Table.SetValue
// accepts for def. Arrays become []any.
func dataValue(reg *registry.Registry, def datatable.EntryDefinition, v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be known")
	}
	if def.Container == datatable.ContainerScalar {
		return dataElement(reg, def, v)
	}

	if !v.CanIterateElements() || v.Type().IsMapType() || v.Type().IsObjectType() {
		return nil, fmt.Errorf("expected a list, got %s", v.Type().FriendlyName())
	}
	out := make([]any, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		elem, err := dataElement(reg, def, ev)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", len(out), err)
		}
		out = append(out, elem)
	}
	return out, nil
}

func dataElement(reg *registry.Registry, def datatable.EntryDefinition, v cty.Value) (any, error) {
	switch def.Type {
	case datatable.TypeName, datatable.TypeString, datatable.TypeEnum:
		s, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, err
		}
		if s.IsNull() {
			return "", nil
		}
		return s.AsString(), nil
	case datatable.TypeStruct:
		st := def.TypeObject.(*datatable.StructType)
		ptr := reflect.New(st.GoType())
		ptr.Elem().Set(reflect.ValueOf(st.Default()))
		if err := gocty.FromCtyValue(v, ptr.Interface()); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", st.TypeName(), err)
		}
		return ptr.Elem().Interface(), nil
	case datatable.TypeClass:
		s, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, err
		}
		if s.IsNull() {
			return datatable.ClassRef{}, nil
		}
		obj, ok := reg.LookupTypeObject(s.AsString())
		class, isClass := obj.(*datatable.ClassType)
		if !ok || !isClass {
			return nil, fmt.Errorf("no class named %q is registered", s.AsString())
		}
		if base, ok := def.TypeObject.(*datatable.ClassType); ok && !class.IsChildOf(base) {
			return nil, fmt.Errorf("class %s is not a %s", class.TypeName(), base.TypeName())
		}
		return datatable.ClassRef{Class: class}, nil
	case datatable.TypeObjectRef:
		return nil, fmt.Errorf("object references cannot have a default in a rig file")
	}
	return nil, fmt.Errorf("unsupported data type %s", def.Type)
}
