// Package app contains the core application logic. It loads rig files, builds
// every rig in dependency order, instantiates the ones that built and prints a
// report, decoupled from any specific entrypoint like a CLI.
package app
