// Package ensure implements the internal invariant checks of the runtime tables.
//
// In regular builds a failed check panics with a descriptive message, which
// surfaces logic bugs immediately. Builds tagged "shipping" degrade a failed
// check to a false return so that the calling operation becomes a no-op
// instead of corrupting table state.
package ensure
