// Package testing provides helpers for exercising Pipelines in tests.
package testing

import (
	"context"
	"fmt"

	"github.com/go-sif/derive"
	"github.com/go-sif/derive/pipeline"
)

// LocalRunPipeline runs steps over initial both sequentially and in parallel, and returns the
// sequential result. It fails if the two runs disagree on their result or on which step failed.
func LocalRunPipeline(ctx context.Context, initial derive.Table, conf *pipeline.Conf, steps ...*derive.DerivationSpec) (result derive.Table, err error) {
	// handle panics
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = anErr
			} else {
				panic(r)
			}
		}
	}()

	sequentialConf := pipeline.Conf{}
	if conf != nil {
		sequentialConf = *conf
	}
	sequentialConf.Parallel = false
	parallelConf := sequentialConf
	parallelConf.Parallel = true

	sequential, seqErr := pipeline.New(&sequentialConf, steps...).Run(initial)
	parallel, parErr := pipeline.New(&parallelConf, steps...).RunParallel(ctx, initial)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if (seqErr == nil) != (parErr == nil) {
		return nil, fmt.Errorf("sequential error %v differs from parallel error %v", seqErr, parErr)
	}
	if seqErr != nil {
		if seqErr.Error() != parErr.Error() {
			return nil, fmt.Errorf("sequential error %q differs from parallel error %q", seqErr, parErr)
		}
		return nil, seqErr
	}
	if err := sequential.Equals(parallel); err != nil {
		return nil, fmt.Errorf("parallel result differs from sequential result: %w", err)
	}
	return sequential, nil
}
