// Package derive contains the core components of derive, an engine for deriving new columns in a
// tabular dataset from existing ones. This root package defines the Table contract, the row
// function types supplied by callers, and the DerivationSpec describing one derivation step, and
// is an excellent overview of the engine's key concepts.
package derive
