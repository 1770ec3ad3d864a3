// Package params discovers the parameters of a rig node.
//
// A node type declares its parameters once, as a static list of Field values
// built at registration time. Each Field pairs a parameter name and kind with
// an accessor returning the node's Slot for it. Nodes that synthesize
// parameters at build time (such as nested rigs) implement CustomProvider
// instead. Discover merges both sources into one list of Info values, and the
// rest of the builder treats them the same way.
package params
