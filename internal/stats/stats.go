package stats

import (
	"sync"
	"time"
)

// RunStatistics contains statistics about a running Pipeline. Steps
// running in parallel may report concurrently.
type RunStatistics struct {
	lock           sync.Mutex
	started        bool
	finished       bool
	startTime      time.Time
	totalRuntime   time.Duration
	rowsProcessed  []int64
	stepRuntimes   []time.Duration
	stepsCompleted int
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start(numSteps int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.rowsProcessed = make([]int64, numSteps)
		rs.stepRuntimes = make([]time.Duration, numSteps)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.totalRuntime = time.Since(rs.startTime)
	rs.finished = true
}

// EndStep tracks the successful completion of a step which began at start
func (rs *RunStatistics) EndStep(sidx int, start time.Time, numRows int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.stepRuntimes[sidx] = time.Since(start)
	rs.rowsProcessed[sidx] += int64(numRows)
	rs.stepsCompleted++
}

// GetStartTime returns the start time of the run
func (rs *RunStatistics) GetStartTime() time.Time {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.startTime
}

// GetRuntime returns the running time of the run
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.finished || !rs.started {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of rows which have been processed so far, counted by step
func (rs *RunStatistics) GetNumRowsProcessed() []int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	res := make([]int64, len(rs.rowsProcessed))
	copy(res, rs.rowsProcessed)
	return res
}

// GetStepRuntimes returns all recorded step runtimes
func (rs *RunStatistics) GetStepRuntimes() []time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	res := make([]time.Duration, len(rs.stepRuntimes))
	copy(res, rs.stepRuntimes)
	return res
}

// GetNumStepsCompleted returns the number of steps which finished successfully
func (rs *RunStatistics) GetNumStepsCompleted() int {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.stepsCompleted
}
