//go:build shipping

package ensure

// That returns cond.
func That(cond bool, format string, args ...any) bool {
	return cond
}
