// Package saga runs a multi-step operation spanning several independent
// writes. There is no distributed transaction available, so each executed
// step registers a compensation that is replayed, in reverse order, when a
// later step fails.
package saga

import (
	"context"
	"fmt"
	"log"
)

// Step is one (action, compensation) pair. Compensate may be nil for steps
// that leave nothing behind.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Runner executes steps sequentially and guarantees that every completed
// step's compensation runs if a later step fails. Compensation is itself
// best-effort: failures are logged and do not stop the remaining
// compensations.
type Runner struct {
	name string
	done []Step
}

// New returns a runner for one saga invocation. Runners are single-use.
func New(name string) *Runner {
	return &Runner{name: name}
}

// Execute runs the step. On failure it rolls back every previously completed
// step and returns the step's error; the runner must not be reused after
// that.
func (r *Runner) Execute(ctx context.Context, step Step) error {
	if err := step.Run(ctx); err != nil {
		r.rollback(ctx)
		return fmt.Errorf("%s: step %s failed: %w", r.name, step.Name, err)
	}
	if step.Compensate != nil {
		r.done = append(r.done, step)
	}
	return nil
}

// Abort rolls back all completed steps without running a new one. Used when
// a validation between steps fails.
func (r *Runner) Abort(ctx context.Context, cause error) error {
	r.rollback(ctx)
	return cause
}

func (r *Runner) rollback(ctx context.Context) {
	for i := len(r.done) - 1; i >= 0; i-- {
		step := r.done[i]
		if err := step.Compensate(ctx); err != nil {
			log.Printf("[Saga] %s: compensation for %s failed: %v", r.name, step.Name, err)
		}
	}
	r.done = nil
}
