//go:build !shipping

package ensure

import "fmt"

// That panics when cond is false and otherwise returns true.
func That(cond bool, format string, args ...any) bool {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
	return true
}
