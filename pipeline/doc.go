// Package pipeline threads a Table through an ordered sequence of DerivationSpecs. Steps run
// strictly in order by default, so a step may read columns written by any earlier step.
// RunParallel optionally evaluates independent steps concurrently with the same result.
package pipeline
