package rigload

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes all top-level blocks of a rig file. Anything else is
// reported as unsupported.
type fileRoot struct {
	Variables []*variableBlock `hcl:"variable,block"`
	Rigs      []*rigBlock      `hcl:"rig,block"`
}

// variableBlock is a user variable that node properties can be driven by.
type variableBlock struct {
	Name      string         `hcl:"name,label"`
	GUID      string         `hcl:"guid"`
	Type      hcl.Expression `hcl:"type"`
	Default   hcl.Expression `hcl:"default,optional"`
	AutoReset bool           `hcl:"auto_reset,optional"`
	Input     bool           `hcl:"input,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

// rigBlock is one rig: its nodes and its interface.
type rigBlock struct {
	Name       string            `hcl:"name,label"`
	GUID       string            `hcl:"guid,optional"`
	Root       string            `hcl:"root,optional"`
	Nodes      []*nodeBlock      `hcl:"node,block"`
	Blendables []*blendableBlock `hcl:"blendable_parameter,block"`
	Data       []*dataBlock      `hcl:"data_parameter,block"`
	DeclRange  hcl.Range         `hcl:",def_range"`
}

// nodeBlock instantiates a registered node type.
type nodeBlock struct {
	Type      string        `hcl:"type,label"`
	Name      string        `hcl:"name,label"`
	GUID      string        `hcl:"guid,optional"`
	Children  []string      `hcl:"children,optional"`
	Rig       string        `hcl:"rig,optional"`
	Params    []*paramBlock `hcl:"param,block"`
	DeclRange hcl.Range     `hcl:",def_range"`
}

// paramBlock sets the default of a node property or drives it with a
// variable.
type paramBlock struct {
	Name      string         `hcl:"name,label"`
	Value     hcl.Expression `hcl:"value,optional"`
	Variable  string         `hcl:"variable,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

// blendableBlock is a blendable interface parameter.
type blendableBlock struct {
	Name      string         `hcl:"name,label"`
	GUID      string         `hcl:"guid"`
	Type      hcl.Expression `hcl:"type"`
	Target    string         `hcl:"target,optional"`
	Property  string         `hcl:"property,optional"`
	Default   hcl.Expression `hcl:"default,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

// dataBlock is a data interface parameter.
type dataBlock struct {
	Name      string         `hcl:"name,label"`
	GUID      string         `hcl:"guid"`
	Type      hcl.Expression `hcl:"type"`
	Target    string         `hcl:"target,optional"`
	Property  string         `hcl:"property,optional"`
	Default   hcl.Expression `hcl:"default,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}
