package derive

import "time"

// RunStatistics facilitates the retrieval of statistics about a Pipeline run
type RunStatistics interface {
	// GetStartTime returns the start time of the run
	GetStartTime() time.Time
	// GetRuntime returns the running time of the run
	GetRuntime() time.Duration
	// GetNumRowsProcessed returns the number of rows each step has processed
	GetNumRowsProcessed() []int64
	// GetStepRuntimes returns the runtime of each step
	GetStepRuntimes() []time.Duration
	// GetNumStepsCompleted returns the number of steps which finished successfully
	GetNumStepsCompleted() int
}
