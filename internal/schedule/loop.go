package schedule

import (
	"context"
	"time"

	"sp500-advisor/internal/logger"
	"sp500-advisor/internal/runlog"
	"sp500-advisor/internal/types"
)

// JobFunc runs one complete job and reports its result.
type JobFunc func(ctx context.Context) types.JobResult

// Loop drives strictly serial job execution at the configured alert times.
// No two runs ever overlap; there is no cancellation of a run in flight.
type Loop struct {
	times []AlertTime
	loc   *time.Location
	job   JobFunc

	// pause after each run before recomputing the next slot, so a
	// near-zero wait cannot spin the loop
	settle time.Duration
}

// NewLoop builds a scheduler loop over the given alert times.
func NewLoop(times []AlertTime, loc *time.Location, job JobFunc) *Loop {
	return &Loop{times: times, loc: loc, job: job, settle: time.Second}
}

// Run blocks until ctx is cancelled, waking at each computed slot to run
// one job. A panic escaping a run is recovered and logged; the loop
// continues.
func (l *Loop) Run(ctx context.Context) {
	for {
		next := NextRun(time.Now().In(l.loc), l.times, l.loc)
		wait := time.Until(next)
		logger.Info(ctx, "Next run scheduled", "at", next.Format(time.RFC3339), "wait", wait.String())
		_ = runlog.Event("next run scheduled for %s", next.Format(time.RFC3339))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info(ctx, "Scheduler stopping")
			return
		case <-timer.C:
		}

		l.runOne(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.settle):
		}
	}
}

func (l *Loop) runOne(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "Job run panicked", "panic", r)
			_ = runlog.Event("job run panicked: %v", r)
		}
	}()

	res := l.job(ctx)
	if res.Error != "" {
		logger.Warn(ctx, "Job run finished with error", "error", res.Error)
		return
	}
	logger.Info(ctx, "Job run finished", "action", res.Action)
}
