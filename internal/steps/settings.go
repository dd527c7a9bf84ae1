package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const (
	goalKey         = "dailyStepsGoal"
	distanceUnitKey = "distanceUnit"
	weightKey       = "userWeight"

	DefaultDailyGoal = 10_000
	MinDailyGoal     = 1_000
	DefaultWeightKg  = 70.0
)

var (
	ErrInvalidGoal         = errors.New("daily goal must be at least 1000 steps")
	ErrInvalidWeight       = errors.New("weight must be positive")
	ErrInvalidDistanceUnit = errors.New("invalid distance unit")
)

type GoalChangeDirection string

const (
	GoalIncreased GoalChangeDirection = "increased"
	GoalDecreased GoalChangeDirection = "decreased"
)

type GoalChange struct {
	From      int                 `json:"from"`
	To        int                 `json:"to"`
	Direction GoalChangeDirection `json:"direction"`
}

type Settings struct {
	DailyGoal         int          `json:"dailyGoal"`
	DistanceUnit      DistanceUnit `json:"distanceUnit"`
	DistanceUnitTitle string       `json:"distanceUnitTitle"`
	UserWeightKg      float64      `json:"userWeightKg"`
}

func (a *Aggregator) Settings(ctx context.Context) Settings {
	unit := a.DistanceUnit(ctx)
	return Settings{
		DailyGoal:         a.DailyGoal(ctx),
		DistanceUnit:      unit,
		DistanceUnitTitle: unit.Title(),
		UserWeightKg:      a.UserWeight(ctx),
	}
}

// DailyGoal returns the stored goal, or the default when unset or unreadable.
func (a *Aggregator) DailyGoal(ctx context.Context) int {
	raw, found, err := a.store.Get(ctx, goalKey)
	if err != nil {
		log.Errorf("read daily goal: %s", err)
		return DefaultDailyGoal
	}
	if !found {
		return DefaultDailyGoal
	}
	goal, err := strconv.Atoi(raw)
	if err != nil || goal <= 0 {
		log.Warnf("stored daily goal [%s] is invalid, using default", raw)
		return DefaultDailyGoal
	}
	return goal
}

// SetDailyGoal persists n and broadcasts EventGoalChanged. Values below
// MinDailyGoal are rejected, never clamped.
func (a *Aggregator) SetDailyGoal(ctx context.Context, n int) error {
	if n < MinDailyGoal {
		return fmt.Errorf("%w: got %d", ErrInvalidGoal, n)
	}

	a.mu.Lock()
	oldGoal := a.DailyGoal(ctx)
	if err := a.store.Set(ctx, goalKey, strconv.Itoa(n)); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("store daily goal: %w", err)
	}
	direction := GoalDecreased
	if n > oldGoal {
		direction = GoalIncreased
	}
	a.goalChange = &GoalChange{
		From:      oldGoal,
		To:        n,
		Direction: direction,
	}
	a.mu.Unlock()

	a.metrics.CounterSettingsChanges.WithLabelValues("goal").Inc()
	log.Debugf("daily goal changed: %d -> %d", oldGoal, n)
	a.broadcaster.Publish(EventGoalChanged)
	return nil
}

// TakeGoalChange returns the last goal change not taken yet, and forgets it.
func (a *Aggregator) TakeGoalChange() (GoalChange, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.goalChange == nil {
		return GoalChange{}, false
	}
	change := *a.goalChange
	a.goalChange = nil
	return change, true
}

func (a *Aggregator) DistanceUnit(ctx context.Context) DistanceUnit {
	raw, found, err := a.store.Get(ctx, distanceUnitKey)
	if err != nil {
		log.Errorf("read distance unit: %s", err)
		return Kilometers
	}
	unit := DistanceUnit(raw)
	if !found || !unit.IsValid() {
		return Kilometers
	}
	return unit
}

func (a *Aggregator) SetDistanceUnit(ctx context.Context, unit DistanceUnit) error {
	if !unit.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidDistanceUnit, unit)
	}
	if err := a.store.Set(ctx, distanceUnitKey, string(unit)); err != nil {
		return fmt.Errorf("store distance unit: %w", err)
	}

	a.metrics.CounterSettingsChanges.WithLabelValues("distance_unit").Inc()
	a.broadcaster.Publish(EventDistanceUnitChanged)
	return nil
}

func (a *Aggregator) UserWeight(ctx context.Context) float64 {
	raw, found, err := a.store.Get(ctx, weightKey)
	if err != nil {
		log.Errorf("read user weight: %s", err)
		return DefaultWeightKg
	}
	if !found {
		return DefaultWeightKg
	}
	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil || weight <= 0 {
		log.Warnf("stored user weight [%s] is invalid, using default", raw)
		return DefaultWeightKg
	}
	return weight
}

// SetUserWeight persists the weight used for calorie estimates. No event is
// broadcast; calories are derived on every read.
func (a *Aggregator) SetUserWeight(ctx context.Context, kg float64) error {
	if kg <= 0 || math.IsNaN(kg) || math.IsInf(kg, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidWeight, kg)
	}
	if err := a.store.Set(ctx, weightKey, strconv.FormatFloat(kg, 'f', -1, 64)); err != nil {
		return fmt.Errorf("store user weight: %w", err)
	}
	a.metrics.CounterSettingsChanges.WithLabelValues("weight").Inc()
	return nil
}
