package params

import (
	"github.com/specialistvlad/camrig/internal/vartable"
	"github.com/zclconf/go-cty/cty"
)

// CustomParameters collects the parameters a CustomProvider synthesizes.
type CustomParameters struct {
	infos []Info
}

// Add appends a parameter. Info.Custom is set automatically.
func (c *CustomParameters) Add(info Info) {
	info.Custom = true
	c.infos = append(c.infos, info)
}

// Infos returns the parameters added so far.
func (c *CustomParameters) Infos() []Info {
	return c.infos
}

// CustomProvider is implemented by nodes whose parameters cannot be expressed
// as registered fields.
type CustomProvider interface {
	CustomParameters(out *CustomParameters)
}

// Discover lists the parameters of node: registered fields first, in
// registration order, followed by custom parameters.
func Discover(fields []Field, node any) []Info {
	infos := make([]Info, 0, len(fields))
	for _, f := range fields {
		slot := f.Access(node)
		infos = append(infos, Info{
			Name:         f.Name,
			Flavor:       f.Flavor,
			VariableType: f.VariableType,
			StructType:   f.StructType,
			DataType:     f.DataType,
			Container:    f.Container,
			TypeObject:   f.TypeObject,
			Default:      slot.DefaultValue(),
			OverrideID:   slot.DrivingID(),
			Variable:     slot.DrivingVariable(),
		})
	}
	if p, ok := node.(CustomProvider); ok {
		var custom CustomParameters
		p.CustomParameters(&custom)
		infos = append(infos, custom.infos...)
	}
	return infos
}

// Find returns the parameter with the given name. Custom parameters take
// precedence over registered fields.
func Find(infos []Info, name string) (Info, bool) {
	var fallback *Info
	for i := range infos {
		if infos[i].Name != name {
			continue
		}
		if infos[i].Custom {
			return infos[i], true
		}
		if fallback == nil {
			fallback = &infos[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Info{}, false
}

// CustomParameterSetter is implemented by custom providers that accept
// defaults and driving variables for their parameters from rig files.
type CustomParameterSetter interface {
	SetCustomParameter(name string, value cty.Value, variable *vartable.VariableAsset) error
}

// Driver is implemented by slots a user can drive with a variable.
type Driver interface {
	Drive(v *vartable.VariableAsset)
}
