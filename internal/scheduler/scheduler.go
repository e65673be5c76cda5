package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/pgfetch/internal/utils"
	"golang.org/x/sync/errgroup"
)

// Reporter receives the outcome of every task as it completes.
type Reporter interface {
	FileSucceeded(job utils.Job)
	FileFailed(job utils.Job, err error)
}

type Result struct {
	Files     int
	Threads   int
	Succeeded int
	Failed    int
	Peak      int // highest number of downloads observed in flight
	Elapsed   time.Duration
}

// TaskPanicError carries a panic recovered from a task. It is fatal for the run.
type TaskPanicError struct {
	JobID int
	Value any
	Stack []byte
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("task for file %d panicked: %v", e.JobID, e.Value)
}

// Run starts one task per job up front, lets at most threads of them download
// at the same time and waits for all of them. Per-file failures are counted
// and reported, never returned; the only error is a task panic.
func Run(ctx context.Context, jobs []utils.Job, threads int, downloader utils.Downloader, reporter Reporter) (Result, error) {
	gate := NewGate(threads)
	var counters Counters

	startTime := time.Now()
	var group errgroup.Group
	for _, job := range jobs {
		group.Go(func() error {
			return runTask(ctx, job, gate, downloader, reporter, &counters)
		})
	}
	err := group.Wait()
	elapsed := time.Since(startTime)

	succeeded, failed := counters.Snapshot()
	result := Result{
		Files:     len(jobs),
		Threads:   gate.Capacity(),
		Succeeded: succeeded,
		Failed:    failed,
		Peak:      gate.Peak(),
		Elapsed:   elapsed,
	}
	log.Debug().Str(utils.LogOpKey, "scheduler").Int("succeeded", succeeded).Int("failed", failed).Int("peak", result.Peak).Dur("elapsed", elapsed).Msg("all tasks joined")
	return result, err
}

func runTask(ctx context.Context, job utils.Job, gate *Gate, downloader utils.Downloader, reporter Reporter, counters *Counters) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TaskPanicError{JobID: job.ID, Value: r, Stack: debug.Stack()}
		}
	}()

	permit, err := gate.Acquire(ctx)
	if err != nil {
		counters.AddFailure()
		reporter.FileFailed(job, fmt.Errorf("error waiting for a download slot: %w", err))
		return nil
	}
	defer permit.Release()

	log.Debug().Str(utils.LogOpKey, "scheduler").Int("id", job.ID).Int("in_flight", gate.InFlight()).Msg("permit acquired")
	if err := downloader.Download(ctx, job); err != nil {
		counters.AddFailure()
		reporter.FileFailed(job, err)
		return nil
	}
	counters.AddSuccess()
	reporter.FileSucceeded(job)
	return nil
}
