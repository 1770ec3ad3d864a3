// Package nodes contains the built-in camera node types. Module registers
// all of them, together with the enum, struct and class types their data
// parameters use.
package nodes
