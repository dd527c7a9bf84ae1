package steps

import (
	"context"

	"github.com/2beens/bodix/internal/telemetry/tracing"

	"golang.org/x/sync/errgroup"
)

type WeekSummary struct {
	TotalSteps          int     `json:"totalSteps"`
	TotalDistanceMeters float64 `json:"totalDistanceMeters"`
	TotalCalories       float64 `json:"totalCalories"`
	AverageSteps        int     `json:"averageSteps"`
	DaysGoalMet         int     `json:"daysGoalMet"`
}

func Summarize(records []DailyRecord, goal int) WeekSummary {
	summary := WeekSummary{}
	if len(records) == 0 {
		return summary
	}
	for _, r := range records {
		summary.TotalSteps += r.Steps
		summary.TotalDistanceMeters += r.DistanceMeters
		summary.TotalCalories += r.Calories
		if goal > 0 && r.Steps >= goal {
			summary.DaysGoalMet++
		}
	}
	summary.AverageSteps = summary.TotalSteps / len(records)
	return summary
}

// HomeSummary is everything the home screen shows in one response.
type HomeSummary struct {
	Today          Stats        `json:"today"`
	YesterdaySteps int          `json:"yesterdaySteps"`
	Difference     int          `json:"difference"`
	Hourly         []int        `json:"hourly"`
	Goal           int          `json:"goal"`
	Progress       float64      `json:"progress"`
	GoalReached    bool         `json:"goalReached"`
	Streak         int          `json:"streak"`
	DistanceUnit   DistanceUnit `json:"distanceUnit"`
	Distance       string       `json:"distance"`
}

// Summary collects today's numbers and evaluates the streak with them, so
// just opening the home screen on a qualifying day counts.
func (a *Aggregator) Summary(ctx context.Context) (_ *HomeSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.steps.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		today     Stats
		yesterday int
		hourly    []int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		today = a.FetchTodayStats(gCtx)
		return nil
	})
	g.Go(func() error {
		yesterday = a.FetchYesterdaySteps(gCtx)
		return nil
	})
	g.Go(func() error {
		var err error
		hourly, err = a.FetchHourlySteps(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	goal := a.DailyGoal(ctx)
	unit := a.DistanceUnit(ctx)
	return &HomeSummary{
		Today:          today,
		YesterdaySteps: yesterday,
		Difference:     today.Steps - yesterday,
		Hourly:         hourly,
		Goal:           goal,
		Progress:       Progress(today.Steps, goal),
		GoalReached:    today.Steps >= goal,
		Streak:         a.UpdateStreakIfNeeded(ctx, today.Steps),
		DistanceUnit:   unit,
		Distance:       unit.Format(today.DistanceMeters),
	}, nil
}
