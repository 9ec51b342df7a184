// Package ir provides the compiled representation of jisho queries.
//
// This package contains type definitions only. The compiler builds
// these values; the engine and the search orchestrator consume them.
// ir imports only internal/kana, which keeps it the foundational layer
// with no circular dependencies.
//
// Key design constraints:
//   - Node, Fragment and Segment are sealed interfaces
//   - Trees are immutable once built
//   - Every failure is a *QueryError carrying an ErrorKind
//   - Lengths are counted in runes, never bytes
package ir
