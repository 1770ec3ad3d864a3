// Package rigbuild computes the allocation info of a rig.
//
// A build runs as a single synchronous pass over one rig. The Walker flattens
// the node tree depth-first and drives the nodes' PreBuild and Build hooks;
// the Binder wires each interface parameter to the node property it exposes,
// diffing against the previous build rather than patching it. Builder
// sequences the two and commits the result only when it changed.
//
// User data problems are reported to the build log and never abort a build,
// so one pass surfaces every problem at once.
package rigbuild
