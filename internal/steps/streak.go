package steps

import (
	"context"
	"strconv"
	"time"

	"github.com/2beens/bodix/internal/telemetry/metrics"
	"github.com/2beens/bodix/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	streakCountKey    = "stepsStreakCount"
	lastStreakDateKey = "lastStreakDate"
)

type StreakState struct {
	Count int `json:"count"`
	// LastQualifyingDate is midnight of the last day the goal was met, nil if never.
	LastQualifyingDate *time.Time `json:"lastQualifyingDate,omitempty"`
}

func (a *Aggregator) Streak(ctx context.Context) StreakState {
	state := StreakState{}

	rawCount, found, err := a.store.Get(ctx, streakCountKey)
	if err != nil {
		log.Errorf("read streak count: %s", err)
	} else if found {
		if count, err := strconv.Atoi(rawCount); err == nil && count >= 0 {
			state.Count = count
		} else {
			log.Warnf("stored streak count [%s] is invalid", rawCount)
		}
	}

	rawDate, found, err := a.store.Get(ctx, lastStreakDateKey)
	if err != nil {
		log.Errorf("read last streak date: %s", err)
	} else if found {
		if date, err := time.ParseInLocation(dateLayout, rawDate, a.loc); err == nil {
			state.LastQualifyingDate = &date
		} else {
			log.Warnf("stored last streak date [%s] is invalid", rawDate)
		}
	}

	return state
}

// UpdateStreakIfNeeded evaluates today against the daily goal and returns the
// current streak. Below the goal nothing is written. The first qualifying call
// of a day advances the streak (or restarts it at 1 after a gap); later calls
// on the same day return the same value.
func (a *Aggregator) UpdateStreakIfNeeded(ctx context.Context, todaySteps int) int {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.steps.update-streak")
	defer span.End()
	span.SetAttributes(attribute.Int("today_steps", todaySteps))

	a.mu.Lock()
	defer a.mu.Unlock()

	goal := a.DailyGoal(ctx)
	state := a.Streak(ctx)

	if todaySteps < goal {
		a.recordStreak(metrics.StreakBelowGoal, state.Count)
		return state.Count
	}

	now := a.now()
	today := dateKey(now, a.loc)
	var last string
	if state.LastQualifyingDate != nil {
		last = dateKey(*state.LastQualifyingDate, a.loc)
	}

	if last == today {
		a.recordStreak(metrics.StreakSameDay, state.Count)
		return state.Count
	}

	outcome := metrics.StreakReset
	newCount := 1
	yesterday := dateKey(startOfDay(now, a.loc).AddDate(0, 0, -1), a.loc)
	if last == yesterday {
		outcome = metrics.StreakIncremented
		newCount = state.Count + 1
	}

	// count and date are stored together or not at all
	if err := a.store.SetMany(ctx, map[string]string{
		streakCountKey:    strconv.Itoa(newCount),
		lastStreakDateKey: today,
	}); err != nil {
		log.Errorf("store streak: %s", err)
		return state.Count
	}

	log.Debugf("streak %s: %d -> %d (last qualifying date [%s])", outcome, state.Count, newCount, last)
	a.recordStreak(outcome, newCount)
	return newCount
}

func (a *Aggregator) recordStreak(outcome string, count int) {
	a.metrics.CounterStreakUpdates.WithLabelValues(outcome).Inc()
	a.metrics.GaugeStreak.Set(float64(count))
}
