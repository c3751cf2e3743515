// Package worker runs analyses off the caller's thread of control. Jobs
// arrive on a channel and each one gets a fresh analysis; no search
// state survives a job, so sequential requests cannot bleed into each
// other. This core owns no wire protocol, and whatever transport feeds
// the channel lives outside it.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/redclover/klondike/analysis"
	"github.com/redclover/klondike/config"
)

// Job pairs a request with the channel its report is delivered on.
type Job struct {
	ID      string
	Request *analysis.Request
	Reply   chan *JobResult
}

// JobResult is a report or an error, never both.
type JobResult struct {
	ID     string
	Report *analysis.Report
	Err    error
}

// Worker consumes jobs until its context is done.
type Worker struct {
	service           *analysis.Service
	jobs              <-chan *Job
	heartbeatInterval time.Duration
}

// New creates a worker reading from jobs.
func New(cfg *config.Config, jobs <-chan *Job) *Worker {
	return &Worker{
		service:           analysis.NewService(cfg),
		jobs:              jobs,
		heartbeatInterval: 30 * time.Second,
	}
}

// Run is the worker main loop. It returns when ctx is canceled or the
// jobs channel closes.
func (w *Worker) Run(ctx context.Context) error {
	log.Info().Dur("heartbeat-interval", w.heartbeatInterval).Msg("starting analysis worker")
	heartbeat := time.NewTicker(w.heartbeatInterval)
	defer heartbeat.Stop()

	processed := 0
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("processed", processed).Msg("worker shutting down")
			return ctx.Err()
		case <-heartbeat.C:
			log.Debug().Int("processed", processed).Msg("worker-heartbeat")
		case job, ok := <-w.jobs:
			if !ok {
				log.Info().Int("processed", processed).Msg("job channel closed")
				return nil
			}
			w.process(ctx, job)
			processed++
		}
	}
}

func (w *Worker) process(ctx context.Context, job *Job) {
	start := time.Now()
	report, err := w.service.Analyze(ctx, job.Request)
	if err != nil {
		log.Error().Err(err).Str("job-id", job.ID).Msg("failed to process job")
	} else {
		log.Info().
			Str("job-id", job.ID).
			Str("status", report.Status).
			Dur("elapsed", time.Since(start)).
			Msg("job complete")
	}
	if job.Reply != nil {
		select {
		case job.Reply <- &JobResult{ID: job.ID, Report: report, Err: err}:
		case <-ctx.Done():
		}
	}
}
