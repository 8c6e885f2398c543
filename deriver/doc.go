// Package deriver applies DerivationSpecs to Tables. Each operation reads its input columns,
// applies a row function (or a split) to every row index in order, and writes the results
// back as new columns of a new Table. The input Table is never modified, and a failed
// derivation produces no Table at all.
package deriver
