package scheduler

import (
	"context"

	"github.com/2beens/bodix/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// StreakJob evaluates today's streak late in the day, so a day on which the
// goal was met still counts when no client opened the app.
type StreakJob struct {
	updater streakUpdater
}

func NewStreakJob(updater streakUpdater) *StreakJob {
	return &StreakJob{updater: updater}
}

func (j *StreakJob) RunOnce(ctx context.Context) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "scheduler.streak.run")
	defer span.End()

	todaySteps := j.updater.FetchTodaySteps(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	streak := j.updater.UpdateStreakIfNeeded(ctx, todaySteps)
	log.Debugf("streak job: today steps %d, streak %d", todaySteps, streak)
	return nil
}
