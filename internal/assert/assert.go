// Package assert provides a single fatal-assertion helper used to guard
// internal structural invariants that must never be false in correct code.
// A failing assertion indicates an implementation bug, not a user error, so
// it panics rather than returning an error.
package assert

import "fmt"

// Assert panics with a formatted message if cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("bplustree: internal assertion failed: "+format, args...))
	}
}
