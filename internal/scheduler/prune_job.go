package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/bodix/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// MinRetentionDays keeps every window the weekly history can ask for.
const MinRetentionDays = 8

var ErrRetentionTooShort = errors.New("sample retention too short")

// PruneJob removes pedometer samples older than the retention period.
type PruneJob struct {
	pruner        samplePruner
	retentionDays int
	loc           *time.Location
	now           func() time.Time
}

func NewPruneJob(pruner samplePruner, retentionDays int, loc *time.Location) (*PruneJob, error) {
	if retentionDays < MinRetentionDays {
		return nil, fmt.Errorf("%w: %d days, min %d", ErrRetentionTooShort, retentionDays, MinRetentionDays)
	}
	if loc == nil {
		loc = time.Local
	}
	return &PruneJob{
		pruner:        pruner,
		retentionDays: retentionDays,
		loc:           loc,
		now:           time.Now,
	}, nil
}

func (j *PruneJob) WithClock(now func() time.Time) *PruneJob {
	j.now = now
	return j
}

// Cutoff is the start of the oldest calendar day that is kept.
func (j *PruneJob) Cutoff() time.Time {
	now := j.now().In(j.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.loc)
	return day.AddDate(0, 0, -j.retentionDays)
}

func (j *PruneJob) RunOnce(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "scheduler.prune.run")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	cutoff := j.Cutoff()
	deleted, err := j.pruner.DeleteBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete samples before %s: %w", cutoff.Format(time.DateOnly), err)
	}
	log.Debugf("prune job: %d sample(s) before %s deleted", deleted, cutoff.Format(time.DateOnly))
	return nil
}
