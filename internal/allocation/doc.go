// Package allocation implements the merit-ordered faculty allocation core:
// capacity planning, rank-major greedy matching with a least-loaded fallback,
// and an independent preference tally used for reporting.
//
// All entry points are pure with respect to their inputs; every run builds its
// own load counters and assigned set, so callers may reuse parsed student
// slices across runs.
package allocation
