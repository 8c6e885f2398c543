package pipeline

import (
	"context"

	"github.com/go-sif/derive"
	"github.com/go-sif/derive/internal/stats"
	"github.com/go-sif/derive/table"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// RunParallel is equivalent to Run, but evaluates steps which do not depend on one
// another concurrently. Steps are grouped into waves; a step joins the first wave
// after every earlier step that it depends on. Outputs of a wave are merged in step
// order, so the final Table, and the StepError reported on failure, are the same as
// those of a sequential run.
func (p *Pipeline) RunParallel(ctx context.Context, initial derive.Table) (derive.Table, error) {
	logger := p.startRun()
	rs := p.resetStats()
	defer rs.Finish()

	waves := planWaves(p.steps)
	failed := len(p.steps) // index of the earliest failing step so far
	var firstErr error
	current := initial
	for w, wave := range waves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// only steps before the earliest failure could have run before it sequentially
		runnable := make([]int, 0, len(wave))
		for _, i := range wave {
			if i < failed {
				runnable = append(runnable, i)
			}
		}
		if len(runnable) == 0 {
			continue
		}
		logger.Debug().Int("wave", w).Ints("steps", runnable).Msg("wave started")
		results, errs := p.runWave(ctx, logger, rs, runnable, current)
		for k, i := range runnable {
			if errs[k] != nil && i < failed {
				failed = i
				firstErr = errs[k]
			}
		}
		// steps before the earliest failure succeeded, and later waves may read their outputs
		merged := make([]int, 0, len(runnable))
		mergedResults := make([]derive.Table, 0, len(runnable))
		for k, i := range runnable {
			if i < failed {
				merged = append(merged, i)
				mergedResults = append(mergedResults, results[k])
			}
		}
		next, err := mergeWave(current, p.steps, merged, mergedResults)
		if err != nil {
			return nil, err
		}
		current = next
	}
	if firstErr != nil {
		return nil, firstErr
	}
	result, err := reorderColumns(current, sequentialOrder(initial, p.steps))
	if err != nil {
		return nil, err
	}
	logger.Info().Int("waves", len(waves)).Msg("pipeline finished")
	return result, nil
}

// sequentialOrder returns the column order a sequential run produces: the initial
// columns, then each new output in step order. Overwrites keep their position.
func sequentialOrder(initial derive.Table, steps []*derive.DerivationSpec) []string {
	order := initial.ColumnNames()
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		seen[name] = true
	}
	for _, spec := range steps {
		if spec == nil {
			continue
		}
		for _, name := range spec.Outputs {
			if !seen[name] {
				seen[name] = true
				order = append(order, name)
			}
		}
	}
	return order
}

// reorderColumns rebuilds t with its columns in the given order
func reorderColumns(t derive.Table, order []string) (derive.Table, error) {
	if len(order) == 0 {
		return t, nil
	}
	columns := make([][]interface{}, len(order))
	for c, name := range order {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		columns[c] = col
	}
	return table.Empty().WithColumns(order, columns)
}

// runWave applies every step of a wave to the same input Table. Every step runs to
// completion, so that the earliest failing step can be determined.
func (p *Pipeline) runWave(ctx context.Context, logger zerolog.Logger, rs *stats.RunStatistics, wave []int, t derive.Table) ([]derive.Table, []error) {
	results := make([]derive.Table, len(wave))
	errs := make([]error, len(wave))
	limit := int64(len(wave))
	if p.conf.MaxConcurrency > 0 && int64(p.conf.MaxConcurrency) < limit {
		limit = int64(p.conf.MaxConcurrency)
	}
	stepLimit := semaphore.NewWeighted(limit)
	g, _ := errgroup.WithContext(ctx)
	for k, i := range wave {
		k, i := k, i
		if err := stepLimit.Acquire(ctx, 1); err != nil {
			errs[k] = err
			continue
		}
		g.Go(func() error {
			defer stepLimit.Release(1)
			results[k], errs[k] = p.applyStep(logger, rs, i, t)
			return errs[k]
		})
	}
	// errors are collected per step above
	_ = g.Wait()
	return results, errs
}

// mergeWave writes the outputs of every step of a wave into t, in step order
func mergeWave(t derive.Table, steps []*derive.DerivationSpec, wave []int, results []derive.Table) (derive.Table, error) {
	current := t
	for k, i := range wave {
		outputs := steps[i].Outputs
		columns := make([][]interface{}, len(outputs))
		for c, name := range outputs {
			col, err := results[k].Column(name)
			if err != nil {
				return nil, err
			}
			columns[c] = col
		}
		next, err := current.WithColumns(outputs, columns)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// planWaves groups step indices into waves which may be evaluated concurrently
func planWaves(steps []*derive.DerivationSpec) [][]int {
	level := make([]int, len(steps))
	var waves [][]int
	for j := range steps {
		for i := 0; i < j; i++ {
			if dependsOn(steps[j], steps[i]) && level[i]+1 > level[j] {
				level[j] = level[i] + 1
			}
		}
		for len(waves) <= level[j] {
			waves = append(waves, nil)
		}
		waves[level[j]] = append(waves[level[j]], j)
	}
	return waves
}

// dependsOn returns true iff later must run after earlier: it reads or overwrites a
// column earlier writes, or overwrites a column earlier reads. Nil steps depend on
// everything, so they are never reordered.
func dependsOn(later, earlier *derive.DerivationSpec) bool {
	if later == nil || earlier == nil {
		return true
	}
	for _, out := range earlier.Outputs {
		if later.Reads(out) || later.Writes(out) {
			return true
		}
	}
	for _, in := range earlier.Inputs {
		if later.Writes(in) {
			return true
		}
	}
	return false
}
