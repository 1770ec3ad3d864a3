package rigload

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/registry"
	"github.com/specialistvlad/camrig/internal/vartable"
	"github.com/zclconf/go-cty/cty"
)

// typeSpec is a parsed type expression: a kind keyword, the name of its type
// object for the constructor forms, and whether it was wrapped in list().
type typeSpec struct {
	Kind   string
	Object string
	List   bool
}

// parseTypeExpr reads a type expression written as a keyword (float), a
// quoted keyword ("float"), a constructor (enum("FramingMode")) or a list of
// any of these (list(object)).
func parseTypeExpr(expr hcl.Expression) (typeSpec, hcl.Diagnostics) {
	if kw := hcl.ExprAsKeyword(expr); kw != "" {
		return typeSpec{Kind: kw}, nil
	}

	if call, ok := expr.(*hclsyntax.FunctionCallExpr); ok {
		if len(call.Args) != 1 {
			return typeSpec{}, typeDiag(expr, fmt.Sprintf("The %s() type constructor requires exactly one argument, got %d.", call.Name, len(call.Args)))
		}
		if call.Name == "list" {
			inner, diags := parseTypeExpr(call.Args[0])
			if diags.HasErrors() {
				return typeSpec{}, diags
			}
			if inner.List {
				return typeSpec{}, typeDiag(expr, "Lists of lists are not supported.")
			}
			inner.List = true
			return inner, nil
		}
		name := hcl.ExprAsKeyword(call.Args[0])
		if name == "" {
			v, diags := call.Args[0].Value(nil)
			if diags.HasErrors() || v.Type() != cty.String || v.IsNull() {
				return typeSpec{}, typeDiag(expr, fmt.Sprintf("The argument to %s() must name a type.", call.Name))
			}
			name = v.AsString()
		}
		return typeSpec{Kind: call.Name, Object: name}, nil
	}

	v, diags := expr.Value(nil)
	if diags.HasErrors() || v.Type() != cty.String || v.IsNull() {
		return typeSpec{}, typeDiag(expr, "A type must be a keyword such as float, or a constructor such as enum(\"Name\").")
	}
	return typeSpec{Kind: v.AsString()}, nil
}

func typeDiag(expr hcl.Expression, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid type expression",
		Detail:   detail,
		Subject:  expr.Range().Ptr(),
	}}
}

// variableType resolves a blendable value kind. Blendable structs are written
// struct("Name").
func variableType(reg *registry.Registry, expr hcl.Expression) (vartable.Type, *datatable.StructType, hcl.Diagnostics) {
	spec, diags := parseTypeExpr(expr)
	if diags.HasErrors() {
		return 0, nil, diags
	}
	if spec.List {
		return 0, nil, typeDiag(expr, "Blendable values cannot be lists.")
	}
	if spec.Kind == "struct" {
		st, diags := lookupObject[*datatable.StructType](reg, expr, spec)
		if diags.HasErrors() {
			return 0, nil, diags
		}
		if !st.Inline() {
			return 0, nil, typeDiag(expr, fmt.Sprintf("Struct %s holds references and cannot be blended.", st.TypeName()))
		}
		return vartable.TypeBlendableStruct, st, nil
	}
	t, err := vartable.ParseType(spec.Kind)
	if err != nil || t == vartable.TypeBlendableStruct {
		return 0, nil, typeDiag(expr, fmt.Sprintf("Unknown blendable type %q.", spec.Kind))
	}
	return t, nil, nil
}

// dataType resolves a context data kind.
func dataType(reg *registry.Registry, expr hcl.Expression) (datatable.Type, datatable.ContainerType, datatable.TypeObject, hcl.Diagnostics) {
	spec, diags := parseTypeExpr(expr)
	if diags.HasErrors() {
		return 0, 0, nil, diags
	}
	container := datatable.ContainerScalar
	if spec.List {
		container = datatable.ContainerArray
	}

	t, err := datatable.ParseType(spec.Kind)
	if err != nil {
		return 0, 0, nil, typeDiag(expr, fmt.Sprintf("Unknown data type %q.", spec.Kind))
	}

	var obj datatable.TypeObject
	switch t {
	case datatable.TypeEnum:
		obj, diags = lookupObject[*datatable.EnumType](reg, expr, spec)
	case datatable.TypeStruct:
		obj, diags = lookupObject[*datatable.StructType](reg, expr, spec)
	case datatable.TypeClass:
		obj, diags = lookupObject[*datatable.ClassType](reg, expr, spec)
	default:
		if spec.Object != "" {
			diags = typeDiag(expr, fmt.Sprintf("Type %s does not take an argument.", spec.Kind))
		}
	}
	if diags.HasErrors() {
		return 0, 0, nil, diags
	}
	return t, container, obj, nil
}

func lookupObject[T datatable.TypeObject](reg *registry.Registry, expr hcl.Expression, spec typeSpec) (T, hcl.Diagnostics) {
	var zero T
	if spec.Object == "" {
		return zero, typeDiag(expr, fmt.Sprintf("Type %s must be written %s(\"Name\").", spec.Kind, spec.Kind))
	}
	obj, ok := reg.LookupTypeObject(spec.Object)
	if !ok {
		return zero, typeDiag(expr, fmt.Sprintf("No type named %q is registered.", spec.Object))
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, typeDiag(expr, fmt.Sprintf("Type %q is not a %s.", spec.Object, spec.Kind))
	}
	return typed, nil
}
