// Package engine evaluates compiled queries against a dictionary.
//
// Single-slot queries are answered by Scan: the dictionary's indices
// narrow the candidates (Plan) and the Matcher tests each one.
//
// Multi-slot queries are prepared into a Problem and answered by a
// Solver, a depth-first backtracking search that assigns one word per
// slot while keeping shared variables A–Z consistent across slots.
//
// INVARIANTS:
//
// Results come out in dictionary order. For the Solver, the order is the
// order of the search: slots with more variables are assigned first and
// each slot visits its candidates in dictionary order.
//
// A Deadline is checked once per candidate. On expiry the caller gets a
// KindTimeout error and never a partial list.
package engine
