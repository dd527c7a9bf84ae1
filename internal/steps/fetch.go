package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/bodix/internal/pedometer"
	"github.com/2beens/bodix/internal/telemetry/tracing"

	"golang.org/x/sync/errgroup"
)

const (
	weekDays      = 7
	HourlyBuckets = 12
	bucketWidth   = 2 * time.Hour
)

type Stats struct {
	Steps          int     `json:"steps"`
	DistanceMeters float64 `json:"distanceMeters"`
	Calories       float64 `json:"calories"`
}

// DailyRecord is the activity of one calendar day. Calories are derived.
type DailyRecord struct {
	Date           time.Time `json:"date"`
	Steps          int       `json:"steps"`
	DistanceMeters float64   `json:"distanceMeters"`
	Calories       float64   `json:"calories"`
}

func (a *Aggregator) statsFrom(data pedometer.Data, weightKg float64) Stats {
	return Stats{
		Steps:          data.Steps,
		DistanceMeters: data.DistanceMeters,
		Calories:       calories(data.DistanceMeters, weightKg),
	}
}

// FetchTodayStats returns activity over [start of today, now).
func (a *Aggregator) FetchTodayStats(ctx context.Context) Stats {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.steps.today")
	defer span.End()

	now := a.now()
	data := a.query(ctx, startOfDay(now, a.loc), now)
	return a.statsFrom(data, a.UserWeight(ctx))
}

func (a *Aggregator) FetchTodaySteps(ctx context.Context) int {
	return a.FetchTodayStats(ctx).Steps
}

// FetchYesterdaySteps returns the step count over [start of yesterday, start of today).
func (a *Aggregator) FetchYesterdaySteps(ctx context.Context) int {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.steps.yesterday")
	defer span.End()

	today := startOfDay(a.now(), a.loc)
	yesterday := today.AddDate(0, 0, -1)
	return a.query(ctx, yesterday, today).Steps
}

// FetchWeeklySteps returns the last 7 days, today included, oldest first.
// The 7 windows are queried concurrently; today's window ends now.
// The result is either complete or, if ctx is done, missing entirely.
func (a *Aggregator) FetchWeeklySteps(ctx context.Context) (_ []DailyRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.steps.weekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := a.now()
	today := startOfDay(now, a.loc)
	weight := a.UserWeight(ctx)

	records := make([]DailyRecord, weekDays)
	var g errgroup.Group
	for i := range records {
		day := today.AddDate(0, 0, i-(weekDays-1))
		end := day.AddDate(0, 0, 1)
		if end.After(now) {
			end = now
		}
		g.Go(func() error {
			data := a.query(ctx, day, end)
			records[i] = DailyRecord{
				Date:           day,
				Steps:          data.Steps,
				DistanceMeters: data.DistanceMeters,
				Calories:       calories(data.DistanceMeters, weight),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch weekly steps: %w", err)
	}
	return records, nil
}

// FetchHourlySteps returns today's steps in 12 two-hour buckets. Buckets
// starting in the future are 0 and not queried; the current one ends now.
func (a *Aggregator) FetchHourlySteps(ctx context.Context) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.steps.hourly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := a.now()
	dayStart := startOfDay(now, a.loc)
	buckets := make([]int, HourlyBuckets)

	if !a.subDayGranularity() {
		a.spreadOverBuckets(ctx, buckets, dayStart, now)
	} else {
		var g errgroup.Group
		for i := range buckets {
			start := bucketStart(dayStart, i, a.loc)
			if !start.Before(now) {
				continue
			}
			end := bucketStart(dayStart, i+1, a.loc)
			if end.After(now) {
				end = now
			}
			g.Go(func() error {
				buckets[i] = a.query(ctx, start, end).Steps
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch hourly steps: %w", err)
	}
	return buckets, nil
}

// spreadOverBuckets is the fallback for sources that only know daily totals:
// today's total divided evenly over the buckets started so far, the remainder
// going to the current one.
func (a *Aggregator) spreadOverBuckets(ctx context.Context, buckets []int, dayStart, now time.Time) {
	elapsed := 0
	for i := range buckets {
		if bucketStart(dayStart, i, a.loc).Before(now) {
			elapsed++
		}
	}
	if elapsed == 0 {
		return
	}

	total := a.query(ctx, dayStart, now).Steps
	per, remainder := total/elapsed, total%elapsed
	for i := 0; i < elapsed; i++ {
		buckets[i] = per
	}
	buckets[elapsed-1] += remainder
}
