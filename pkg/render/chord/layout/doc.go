// Package layout computes the radial chord layout: one proportional arc per
// node and one ribbon per connected node pair.
//
// # Overview
//
// [Build] takes a node count and a list of [WeightedWord] values and returns a
// [Layout]. Every node starts with a small base weight so it always claims a
// visible arc, and each word adds 0.5 plus the magnitude of its (clamped)
// value to the node it lands on. The circle minus one pad angle per node is
// then divided in proportion to those weights, walking nodes in index order:
//
//	usable = 2π − N·pad
//	start[k] = before[k] / total · usable + k·pad
//	end[k]   = after[k]  / total · usable + k·pad
//
// so consecutive arcs are separated by exactly one pad and the spans add up to
// usable.
//
// # Ribbons
//
// Every unordered pair (i, j), i < j, gets a flow
//
//	flow(i, j) = w[i]·w[j] / (total² + 1) · scale
//
// and the unweighted mean of the two nodes' average values. Pairs whose flow
// is at or below epsilon, or where neither node carries any word, are left
// out. [Layout.MaxFlow] is the largest emitted flow, floored at 1, and exists
// only to normalize visual intensity downstream.
//
// # Totality
//
// Build never fails and never panics. Node counts below one are treated as
// one, node indices wrap modulo N, values are clamped to [-5, 5] (NaN counts
// as 0) and the total mass is guarded against zero. Invalid [Option] values
// fall back to the defaults.
//
// # Concurrency
//
// Build reads only its arguments and allocates its result; it is safe to call
// from any number of goroutines.
package layout
