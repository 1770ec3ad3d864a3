// Package registry maps the node type names used in rig files to the Go code
// that implements them: a constructor and the static list of parameter
// fields the builder discovers on each node.
//
// Node types are registered once at startup, usually in bundles through a
// Module. Registration validates every field so that a misdeclared node type
// fails fast instead of producing confusing build errors later.
package registry
