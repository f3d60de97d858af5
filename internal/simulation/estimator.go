package simulation

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/angelajeffers/simulation-power-analysis/domain/design"
	"github.com/angelajeffers/simulation-power-analysis/domain/power"
	"github.com/angelajeffers/simulation-power-analysis/internal"
	"github.com/angelajeffers/simulation-power-analysis/internal/errors"
	"github.com/angelajeffers/simulation-power-analysis/ports"
)

const (
	// SignificanceLevel is the fixed rejection threshold applied to every
	// simulated trend test. Not configurable within the core.
	SignificanceLevel = 0.05

	// progressInterval is the iteration stride between progress notifications.
	progressInterval = 1000
)

// Estimator runs the Monte Carlo loop: generate a synthetic dataset, apply
// the trend test, tally the rejection, discard the dataset. Datasets are
// never retained across iterations.
type Estimator struct {
	rng      ports.RNGPort
	test     ports.TrendTest
	gen      *Generator
	logger   *internal.Logger
	progress ports.ProgressSink
}

// NewEstimator creates an estimator wired to an RNG source and a trend test.
func NewEstimator(rngPort ports.RNGPort, test ports.TrendTest) *Estimator {
	e := &Estimator{
		rng:    rngPort,
		test:   test,
		gen:    NewGenerator(),
		logger: internal.DefaultLogger,
	}
	e.progress = &logProgressSink{logger: e.logger}
	return e
}

// SetProgressSink replaces the default log-backed progress sink.
// Observability only: the sink cannot influence the computed result.
func (e *Estimator) SetProgressSink(sink ports.ProgressSink) {
	e.progress = sink
}

// EstimateAll validates the design and estimates power for every endpoint in
// declared order. Endpoints are independent: a failure aborts the batch but
// the returned Run still carries the results of endpoints that completed
// before the failure.
func (e *Estimator) EstimateAll(ctx context.Context, d design.Design) (*power.Run, error) {
	if err := d.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	run := &power.Run{
		ID:         uuid.NewString(),
		Scenario:   d.Scenario.Label,
		Seed:       d.Seed,
		Iterations: d.Iterations,
		StartedAt:  time.Now(),
	}
	// Reference behavior: one stream for the whole run, endpoints consumed
	// in declared order, so every draw is a fixed function of the seed.
	stream := e.rng.SeededStream("run", d.Seed)
	for _, ep := range d.Endpoints {
		result, err := e.estimateEndpoint(ctx, stream, d, ep)
		if err != nil {
			run.FinishedAt = time.Now()
			return run, err
		}
		e.logger.Info("endpoint %s: power %s (%d/%d rejections)",
			ep.Name, result.FormatPercent(), result.Rejections, result.Iterations)
		run.Results = append(run.Results, result)
	}
	run.FinishedAt = time.Now()
	return run, nil
}

// EstimatePower estimates power for a single endpoint of the design. A
// standalone call draws from the start of a fresh seeded stream.
func (e *Estimator) EstimatePower(ctx context.Context, d design.Design, ep design.EndpointSpec) (power.PowerResult, error) {
	if err := d.Validate(); err != nil {
		return power.PowerResult{}, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return e.estimateEndpoint(ctx, e.rng.SeededStream("run", d.Seed), d, ep)
}

func (e *Estimator) estimateEndpoint(ctx context.Context, stream *rand.Rand, d design.Design, ep design.EndpointSpec) (power.PowerResult, error) {
	if d.Workers > 1 {
		return e.estimateParallel(ctx, d, ep)
	}
	return e.estimateSequential(ctx, stream, d, ep)
}

// estimateSequential is the reference mode: a strict fold over iterations
// drawing from the shared run stream.
func (e *Estimator) estimateSequential(ctx context.Context, stream *rand.Rand, d design.Design, ep design.EndpointSpec) (power.PowerResult, error) {
	rejections := 0
	for iter := 1; iter <= d.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return power.PowerResult{}, errors.Wrapf(err, "estimation canceled at endpoint %q, iteration %d", ep.Name, iter)
		}
		outcome, err := e.runTrial(stream, d, ep, iter)
		if err != nil {
			return power.PowerResult{}, err
		}
		if outcome.Rejected {
			rejections++
		}
		if iter%progressInterval == 0 {
			e.progress.Progress(ep.Name, iter, d.Iterations)
		}
	}
	return power.PowerResult{Endpoint: ep.Name, Rejections: rejections, Iterations: d.Iterations}, nil
}

// estimateParallel runs iterations concurrently under a weighted semaphore.
// Each iteration draws from its own derived sub-stream, so worker scheduling
// cannot change the numbers drawn; outcomes are reduced only after every
// worker finishes.
func (e *Estimator) estimateParallel(ctx context.Context, d design.Design, ep design.EndpointSpec) (power.PowerResult, error) {
	sem := semaphore.NewWeighted(int64(d.Workers))
	var wg sync.WaitGroup
	var completed atomic.Int64

	outcomes := make([]power.TrialOutcome, d.Iterations)
	trialErrs := make([]error, d.Iterations)

	for iter := 1; iter <= d.Iterations; iter++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return power.PowerResult{}, errors.Wrapf(err, "estimation canceled at endpoint %q, iteration %d", ep.Name, iter)
		}
		wg.Add(1)
		go func(iter int) {
			defer wg.Done()
			defer sem.Release(1)
			stream := e.rng.IterationStream(ep.Name, d.Seed, iter)
			outcome, err := e.runTrial(stream, d, ep, iter)
			if err != nil {
				trialErrs[iter-1] = err
				return
			}
			outcomes[iter-1] = outcome
			if done := completed.Add(1); done%progressInterval == 0 {
				e.progress.Progress(ep.Name, int(done), d.Iterations)
			}
		}(iter)
	}
	wg.Wait()

	// Reduce after the map completes; the lowest failing iteration wins so
	// the reported error does not depend on scheduling.
	rejections := 0
	for i, outcome := range outcomes {
		if err := trialErrs[i]; err != nil {
			return power.PowerResult{}, err
		}
		if outcome.Rejected {
			rejections++
		}
	}
	return power.PowerResult{Endpoint: ep.Name, Rejections: rejections, Iterations: d.Iterations}, nil
}

// runTrial generates one dataset, tests it, and returns the outcome. The
// dataset goes out of scope immediately; only the outcome survives.
func (e *Estimator) runTrial(stream *rand.Rand, d design.Design, ep design.EndpointSpec, iter int) (power.TrialOutcome, error) {
	ds, err := e.gen.Generate(stream, d, ep, iter)
	if err != nil {
		return power.TrialOutcome{}, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	p, err := e.test.PValue(ds.DoseGroups())
	if err != nil {
		return power.TrialOutcome{}, errors.DegenerateDataset(ep.Name, iter, err)
	}
	return power.TrialOutcome{
		Endpoint:  ep.Name,
		Iteration: iter,
		PValue:    p,
		Rejected:  p < SignificanceLevel,
	}, nil
}

// logProgressSink reports progress through the leveled logger.
type logProgressSink struct {
	logger *internal.Logger
}

func (s *logProgressSink) Progress(endpoint string, completed, total int) {
	s.logger.Info("endpoint %s: %d/%d iterations", endpoint, completed, total)
}
