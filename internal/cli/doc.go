// Package cli turns command-line arguments into a validated app.Config and
// maps usage problems to process exit codes through ExitError.
package cli
