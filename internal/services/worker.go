package services

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// Worker fans a batch of independent jobs out over a fixed number of goroutines.
type Worker interface {
	Run(ctx context.Context, jobs int, process func(ctx context.Context, job int) error) []error
}

type worker struct {
	concurrency int
}

func NewWorker(concurrency int) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{concurrency: concurrency}
}

// Run calls process for every job index and returns one error slot per job.
// A failing job does not stop the others; a cancelled context does.
func (w *worker) Run(ctx context.Context, jobs int, process func(ctx context.Context, job int) error) []error {
	errs := make([]error, jobs)
	if jobs == 0 {
		return errs
	}

	log.Printf("🚀 Processing %d jobs with %d concurrent workers\n", jobs, w.concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for i := 0; i < jobs; i++ {
		job := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[job] = err
				return nil
			}
			if err := process(gctx, job); err != nil {
				log.Printf("❌ Job %d failed: %v\n", job+1, err)
				errs[job] = err
			}
			return nil
		})
	}

	// process errors are collected per job, never returned to the group.
	_ = g.Wait()

	return errs
}
