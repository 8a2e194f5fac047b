// Package matrix provides the dense linear-algebra primitive backing the
// simplex tableau.
//
// Dense is a row-major float64 matrix with a flat backing slice for
// performance and cache friendliness. The public surface is safe: At and
// Set return errors instead of panicking on bad indices. Hot loops inside
// the solver use Row, a no-copy view of one row, and accept the usual Go
// slice aliasing rules in exchange for zero overhead.
//
// Determinism: fixed loop orders, no map iteration, no randomness. Cloning
// a Dense and replaying the same operations yields bit-for-bit identical
// contents.
package matrix
