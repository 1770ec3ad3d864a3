// Package rig is the model a camera rig is built from: a tree of nodes, the
// interface parameters the rig exposes, and the allocation info a build
// computes for the rig's evaluation tables.
//
// Nodes take part in a build through two hooks. PreBuild lets a node
// validate itself and report problems; Build lets it register the variables,
// context data and evaluator memory it needs through a BuildContext.
package rig
