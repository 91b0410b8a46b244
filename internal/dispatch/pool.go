package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// Job is a unit of work submitted to a [Pool].
type Job struct {
	// Name identifies the job in logs and outcomes.
	Name string

	// Run performs the work. A non-nil error marks the job as failed.
	Run func(ctx context.Context) error
}

// Outcome is the result of a single [Job].
type Outcome struct {
	// Name is the job's name.
	Name string

	// Err is the error returned by the job, the context error if the job
	// never started, or a panic report.
	Err error

	// Panicked is true when the job panicked and was recovered.
	Panicked bool
}

// Pool executes jobs with at most maxConcurrency in flight.
type Pool struct {
	maxConcurrency int
	logger         *slog.Logger
}

// NewPool creates a [Pool]. Values below one are treated as one.
func NewPool(maxConcurrency int, logger *slog.Logger) *Pool {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{maxConcurrency: maxConcurrency, logger: logger}
}

// Run executes jobs and returns one Outcome per job, index aligned.
//
// Run does not stop on failure. Once ctx is cancelled, jobs that have not
// started are skipped and reported with ctx.Err().
func (p *Pool) Run(ctx context.Context, jobs []Job) []Outcome {
	outcomes := make([]Outcome, len(jobs))
	for i, job := range jobs {
		outcomes[i].Name = job.Name
	}

	if p.maxConcurrency == 1 || len(jobs) <= 1 {
		for i, job := range jobs {
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				continue
			}
			outcomes[i] = p.safeRun(ctx, job)
		}
		return outcomes
	}

	indexes := make(chan int, len(jobs))

	workers := p.maxConcurrency
	if workers > len(jobs) {
		workers = len(jobs)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if err := ctx.Err(); err != nil {
					outcomes[i].Err = err
					continue
				}
				outcomes[i] = p.safeRun(ctx, jobs[i])
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)

	wg.Wait()
	return outcomes
}

// safeRun runs a job with panic recovery. The stack is logged under a
// correlation ID which is also carried by the returned error.
func (p *Pool) safeRun(ctx context.Context, job Job) (out Outcome) {
	out.Name = job.Name
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			p.logger.Error("job panic",
				"job", job.Name,
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			out.Panicked = true
			out.Err = fmt.Errorf("panic while running %q (correlation_id: %s)", job.Name, correlationID)
		}
	}()
	out.Err = job.Run(ctx)
	return out
}
