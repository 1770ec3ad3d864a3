/*
Package nodeid provides the structured form of the addresses rig files use to
refer to nodes, in the canonical format `type.name`, e.g. `offset.shoulder`.

All formatting and parsing of node addresses lives here so the loader and the
build log agree on how a node is named.
*/
package nodeid
