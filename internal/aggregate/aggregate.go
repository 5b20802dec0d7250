// Package aggregate runs a fixed set of named reads concurrently and joins
// their results into one map.
//
// Every task runs under its own timeout derived from the caller's context.
// The first task to fail cancels the rest; in that case Run returns the error
// and no results at all.
package aggregate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a single task when Options.Timeout is not set
const DefaultTimeout = 5 * time.Second

// Task is one named read
type Task func(ctx context.Context) (any, error)

// Tasks maps result names to the reads that produce them
type Tasks map[string]Task

// Results maps each task name to the value it produced
type Results map[string]any

// Options configures a Runner
type Options struct {
	// Timeout bounds each task individually
	Timeout time.Duration
}

// Runner executes Tasks
type Runner struct {
	timeout time.Duration
}

// NewRunner creates a Runner
func NewRunner(opts Options) *Runner {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{timeout: timeout}
}

// Run starts every task and waits for all of them
func (r *Runner) Run(ctx context.Context, tasks Tasks) (Results, error) {
	var mu sync.Mutex
	results := make(Results, len(tasks))

	eg, egCtx := errgroup.WithContext(ctx)
	for name, task := range tasks {
		eg.Go(func() error {
			taskCtx, cancel := context.WithTimeout(egCtx, r.timeout)
			defer cancel()

			value, err := task(taskCtx)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			mu.Lock()
			results[name] = value
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Run executes tasks with the default options
func Run(ctx context.Context, tasks Tasks) (Results, error) {
	return NewRunner(Options{}).Run(ctx, tasks)
}

// Get returns the named result as T, or the zero value when it is missing or
// of another type
func Get[T any](results Results, name string) T {
	value, _ := results[name].(T)
	return value
}
