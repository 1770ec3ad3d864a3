// Package rigload reads rig files written in HCL and translates them into
// rig models ready to be built.
//
// A rig file declares variables, which users can drive node properties with,
// and rigs, each holding nodes and the interface parameters it exposes:
//
//	variable "Shoulder" {
//	  guid    = "8b0c3f0e-6f1f-4a8e-9d7a-2f1b7f4c9a11"
//	  type    = vector3d
//	  default = [0, 40, 10]
//	}
//
//	rig "third_person" {
//	  root = "array_blend.main"
//
//	  node "array_blend" "main" {
//	    children = ["offset.shoulder", "lens.main"]
//	  }
//	  node "offset" "shoulder" {
//	    param "TranslationOffset" {
//	      variable = "Shoulder"
//	    }
//	  }
//	  node "lens" "main" {}
//
//	  blendable_parameter "FieldOfView" {
//	    guid     = "0d7e3c55-3c9b-4a57-b3c4-6a0d7c2f8e21"
//	    type     = float
//	    target   = "lens.main"
//	    property = "FieldOfView"
//	    default  = 90
//	  }
//	}
//
// Value kinds are written as keywords. Data parameters may also use the type
// constructors enum("Name"), struct("Name"), class("Name") and list(type).
// Type objects are resolved through the node registry.
package rigload
