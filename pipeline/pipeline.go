package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/go-sif/derive"
	"github.com/go-sif/derive/deriver"
	errors "github.com/go-sif/derive/errors"
	"github.com/go-sif/derive/internal/stats"
	"github.com/go-sif/derive/logging"
	uuid "github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

// Conf configures a Pipeline
type Conf struct {
	Logger         *zerolog.Logger // Logger receives step progress and failures. Defaults to a logger which discards everything.
	Parallel       bool            // iff true, Run evaluates independent steps concurrently. The result is identical to a sequential run.
	MaxConcurrency int             // The maximum number of steps RunParallel evaluates at once. Defaults to 0 (unlimited).
}

// Pipeline applies an ordered sequence of DerivationSpecs to a Table
type Pipeline struct {
	conf   *Conf
	steps  []*derive.DerivationSpec
	logger zerolog.Logger

	statsLock sync.Mutex
	stats     *stats.RunStatistics
}

var _ derive.Pipeline = (*Pipeline)(nil)

// New is a factory for Pipelines. A nil conf runs steps sequentially without logging.
func New(conf *Conf, steps ...*derive.DerivationSpec) *Pipeline {
	if conf == nil {
		conf = &Conf{}
	}
	logger := logging.Nop()
	if conf.Logger != nil {
		logger = *conf.Logger
	}
	copied := make([]*derive.DerivationSpec, len(steps))
	copy(copied, steps)
	return &Pipeline{
		conf:   conf,
		steps:  copied,
		logger: logger.With().Str(logging.FieldComponent, "pipeline").Logger(),
		stats:  &stats.RunStatistics{},
	}
}

// Run applies specs to initial in order, with the default configuration
func Run(initial derive.Table, specs ...*derive.DerivationSpec) (derive.Table, error) {
	return New(nil, specs...).Run(initial)
}

// Steps returns the DerivationSpecs of this Pipeline, in order
func (p *Pipeline) Steps() []*derive.DerivationSpec {
	steps := make([]*derive.DerivationSpec, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Stats returns statistics about the most recent run of this Pipeline
func (p *Pipeline) Stats() derive.RunStatistics {
	p.statsLock.Lock()
	defer p.statsLock.Unlock()
	return p.stats
}

// Run threads initial through every step of this Pipeline and returns the final Table.
// If a step fails, Run returns a StepError identifying it and no Table.
func (p *Pipeline) Run(initial derive.Table) (derive.Table, error) {
	if p.conf.Parallel {
		return p.RunParallel(context.Background(), initial)
	}
	logger := p.startRun()
	rs := p.resetStats()
	defer rs.Finish()

	current := initial
	for i := range p.steps {
		next, err := p.applyStep(logger, rs, i, current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	logger.Info().Int(logging.FieldRows, current.RowCount()).Msg("pipeline finished")
	return current, nil
}

// applyStep applies step i to t, recording statistics and wrapping failures in a StepError
func (p *Pipeline) applyStep(logger zerolog.Logger, rs *stats.RunStatistics, i int, t derive.Table) (derive.Table, error) {
	spec := p.steps[i]
	desc := describe(spec)
	mode := ""
	if spec != nil {
		mode = string(spec.Mode)
	}
	logger.Debug().Int(logging.FieldStep, i).Str(logging.FieldMode, mode).Str(logging.FieldSpec, desc).Msg("step started")
	start := time.Now()
	next, err := deriver.Apply(t, spec)
	if err != nil {
		logger.Error().Err(err).Int(logging.FieldStep, i).Str(logging.FieldSpec, desc).Msg("step failed")
		return nil, errors.StepError{Step: i, Spec: desc, Err: err}
	}
	rs.EndStep(i, start, t.RowCount())
	logger.Debug().Int(logging.FieldStep, i).Str(logging.FieldSpec, desc).Dur("runtime", time.Since(start)).Msg("step finished")
	return next, nil
}

// startRun assigns an id to a new run and returns a logger carrying it
func (p *Pipeline) startRun() zerolog.Logger {
	runID := "unknown"
	if id, err := uuid.NewV4(); err == nil {
		runID = id.String()
	}
	logger := p.logger.With().Str(logging.FieldRunID, runID).Logger()
	logger.Info().Int("steps", len(p.steps)).Bool("parallel", p.conf.Parallel).Msg("pipeline started")
	return logger
}

func (p *Pipeline) resetStats() *stats.RunStatistics {
	rs := &stats.RunStatistics{}
	rs.Start(len(p.steps))
	p.statsLock.Lock()
	p.stats = rs
	p.statsLock.Unlock()
	return rs
}

func describe(spec *derive.DerivationSpec) string {
	if spec == nil {
		return "<nil>"
	}
	return spec.String()
}
