// Package format re-flows protobuf schema source text into a canonical
// layout without parsing it: lines are classified into categories, nesting
// depth is tracked by brace counting, spacing is normalized per category,
// and blank lines are re-inserted between top-level sections by a fixed
// adjacency policy.
//
// Format is deliberately decoupled from pkg/lint: it never depends on
// validation succeeding and produces a best-effort result for malformed
// input. Callers wanting "format then validate" compose the two calls.
package format
