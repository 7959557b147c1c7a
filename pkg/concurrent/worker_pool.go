package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

type indexedJob[T any] struct {
	idx int
	job T
}

type indexedResult[G any] struct {
	idx int
	res G
}

// WorkerPool runs a job function over a fixed number of goroutines. results are
// tagged with the submission index so callers can restore input order.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan indexedJob[T]
	results    chan indexedResult[G]
	wg         sync.WaitGroup
	submitted  int
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan indexedJob[T], jobQueueSize),
		results:    make(chan indexedResult[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for j := range wp.jobQueue {
		wp.results <- indexedResult[G]{idx: j.idx, res: jobFunc(ctx, j.job)}
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// AddJob. must not be called concurrently with itself.
func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- indexedJob[T]{idx: wp.submitted, job: job}
	wp.submitted++
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

// CollectOrdered drains the results into submission order. call after Close.
func (wp *WorkerPool[T, G]) CollectOrdered() []G {
	out := make([]G, wp.submitted)
	for r := range wp.results {
		out[r.idx] = r.res
	}
	return out
}

// RunOrdered applies jobFunc to every job on numWorkers goroutines and returns the
// results in input order.
func RunOrdered[T any, G any](ctx context.Context, numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	wp.Start(ctx, jobFunc)
	for _, job := range jobs {
		wp.AddJob(job)
	}
	wp.Close()
	go wp.Wait()
	return wp.CollectOrdered()
}
