// Package settle runs independent fetches concurrently and waits for all of
// them, whatever their outcome. One task failing never cancels or hides the
// others.
package settle

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task is one named unit of work.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result is the outcome of one Task, in the same position as its Task.
type Result struct {
	Name string
	Err  error
}

// All runs every task concurrently and returns one Result per task once all
// have finished. A panicking task is reported as an error in its own slot.
func All(ctx context.Context, tasks ...Task) []Result {
	results := make([]Result, len(tasks))

	// A plain Group: errgroup.WithContext would cancel the siblings on the
	// first failure.
	var g errgroup.Group
	for i, t := range tasks {
		results[i].Name = t.Name
		g.Go(func() error {
			results[i].Err = run(ctx, t)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func run(ctx context.Context, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", t.Name, r)
		}
	}()
	if t.Run == nil {
		return nil
	}
	return t.Run(ctx)
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
