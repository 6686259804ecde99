package pipeline

import (
	"context"
	"fmt"
	"time"
)

// DefaultCeiling bounds the wall clock of one crew run.
const DefaultCeiling = 15 * time.Minute

// TimeoutError reports a run that exceeded its ceiling. Kept distinct from
// PipelineError so operators can tell hangs apart from logic failures.
type TimeoutError struct {
	Ceiling time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("pipeline run exceeded the %s ceiling", e.Ceiling)
}

// PipelineError wraps a failure raised during the run, message preserved.
type PipelineError struct {
	Err error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline run failed: %v", e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Guard bounds the wall-clock duration of a pipeline run. On timeout the
// worker's context is cancelled so the run does not keep consuming the
// model or writing artifacts after the caller has moved on.
type Guard struct {
	ceiling time.Duration
}

func NewGuard(ceiling time.Duration) *Guard {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	return &Guard{ceiling: ceiling}
}

// Run executes fn on its own goroutine and waits up to the ceiling.
// An in-time result or error is returned verbatim (errors wrapped as
// *PipelineError). On ceiling expiry the run context is cancelled and a
// *TimeoutError is returned without waiting for the worker to unwind.
func (g *Guard) Run(ctx context.Context, fn func(context.Context) (*RunResult, error)) (*RunResult, error) {
	runCtx, cancel := context.WithCancel(ctx)

	type outcome struct {
		result *RunResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("pipeline panicked: %v", r)}
			}
		}()
		result, err := fn(runCtx)
		done <- outcome{result: result, err: err}
	}()

	timer := time.NewTimer(g.ceiling)
	defer timer.Stop()

	select {
	case o := <-done:
		cancel()
		if o.err != nil {
			return nil, &PipelineError{Err: o.err}
		}
		return o.result, nil
	case <-timer.C:
		cancel()
		return nil, &TimeoutError{Ceiling: g.ceiling}
	case <-ctx.Done():
		cancel()
		return nil, ctx.Err()
	}
}
