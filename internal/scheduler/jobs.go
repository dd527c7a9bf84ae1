package scheduler

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=scheduler_test

type streakUpdater interface {
	FetchTodaySteps(ctx context.Context) int
	UpdateStreakIfNeeded(ctx context.Context, todaySteps int) int
}

type samplePruner interface {
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
