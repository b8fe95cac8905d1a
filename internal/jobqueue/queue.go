// Package jobqueue tracks asynchronous extraction jobs and executes them on
// a bounded worker pool. Jobs live only in process memory: the queue is
// deliberately ephemeral and records are kept for the process lifetime
// unless explicitly deleted.
package jobqueue

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skill-profiler/internal/types"
)

// Processor executes a job's payload and returns its result. Errors are
// captured into the job record, never surfaced to the CreateJob caller.
type Processor func(ctx context.Context, job *types.Job) (any, error)

const (
	// defaultWorkers bounds how many jobs run concurrently. The public
	// contract (CreateJob returns before processing starts) is unaffected
	// by the bound.
	defaultWorkers = 4

	// queueBuffer is the scheduling channel capacity. Overflow falls back
	// to an async handoff so CreateJob still never blocks.
	queueBuffer = 256

	// placeholderDelay simulates processing when no processor is
	// registered, preserving the original queue-only behavior.
	placeholderDelay = 100 * time.Millisecond
)

// placeholderResult is returned by jobs completed without a processor.
const placeholderResult = "queued for background processing"

// Queue accepts typed extraction requests and runs them asynchronously.
type Queue struct {
	mu        sync.RWMutex
	jobs      map[string]*types.Job
	processor Processor

	work chan string
	wg   sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a queue backed by workers goroutines (defaultWorkers if
// workers <= 0) and starts the pool immediately.
func New(workers int) *Queue {
	if workers <= 0 {
		workers = defaultWorkers
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		jobs:   make(map[string]*types.Job),
		work:   make(chan string, queueBuffer),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}

	return q
}

// SetProcessor registers the function that executes job payloads. The queue
// also works with none registered: such jobs complete with a placeholder
// result after a short simulated delay.
func (q *Queue) SetProcessor(fn Processor) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.processor = fn
}

// CreateJob stores a new pending job and schedules it for asynchronous
// processing. It always returns before processing starts and never blocks
// on a busy pool.
func (q *Queue) CreateJob(jobType types.JobType, payload any) string {
	now := time.Now()
	job := &types.Job{
		ID:        uuid.NewString(),
		Type:      jobType,
		Status:    types.JobStatusPending,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}

	q.mu.Lock()
	q.jobs[job.ID] = job
	q.mu.Unlock()

	select {
	case q.work <- job.ID:
	default:
		// Pool backlog is full; hand off asynchronously so the caller
		// still returns immediately.
		go func() {
			select {
			case q.work <- job.ID:
			case <-q.ctx.Done():
			}
		}()
	}

	return job.ID
}

// GetJob returns a copy of the job record. The second return value is false
// for unknown ids; lookups never fail loudly.
func (q *Queue) GetJob(id string) (types.Job, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	job, ok := q.jobs[id]
	if !ok {
		return types.Job{}, false
	}
	return *job, true
}

// DeleteJob removes a job record. Deletion is the only garbage collection
// the queue performs.
func (q *Queue) DeleteJob(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.jobs, id)
}

// Len returns the number of tracked jobs.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.jobs)
}

// Close stops the worker pool. In-flight jobs finish; queued jobs that have
// not started are abandoned in pending state.
func (q *Queue) Close() {
	q.cancel()
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case id := <-q.work:
			q.process(id)
		}
	}
}

// process runs one job, capturing any processor error (or panic) into the
// job record. Nothing propagates back to the CreateJob caller.
func (q *Queue) process(id string) {
	q.mu.Lock()
	job, ok := q.jobs[id]
	if !ok {
		// Deleted before a worker picked it up.
		q.mu.Unlock()
		return
	}
	job.Status = types.JobStatusProcessing
	job.UpdatedAt = time.Now()
	processor := q.processor
	snapshot := *job
	q.mu.Unlock()

	if processor == nil {
		time.Sleep(placeholderDelay)
		q.finish(id, placeholderResult, nil)
		return
	}

	result, err := q.run(processor, &snapshot)
	q.finish(id, result, err)
}

// run invokes the processor with panic containment.
func (q *Queue) run(processor Processor, job *types.Job) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job processor panicked: %v", r)
		}
	}()
	return processor(q.ctx, job)
}

func (q *Queue) finish(id string, result any, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.jobs[id]
	if !ok {
		return
	}

	job.UpdatedAt = time.Now()
	if err != nil {
		job.Status = types.JobStatusFailed
		job.Error = err.Error()
		log.Printf("[jobqueue] job %s (%s) failed: %v", id, job.Type, err)
		return
	}
	job.Status = types.JobStatusCompleted
	job.Result = result
}
