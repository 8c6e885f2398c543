package derive

// A Pipeline is an ordered sequence of DerivationSpecs applied to an initial Table.
// A step may read columns written by any earlier step.
type Pipeline interface {
	Steps() []*DerivationSpec         // Steps returns the DerivationSpecs of this Pipeline, in order
	Run(initial Table) (Table, error) // Run threads initial through every step, returning the final Table
	Stats() RunStatistics             // Stats returns statistics about the most recent Run
}
