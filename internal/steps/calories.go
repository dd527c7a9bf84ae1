package steps

import (
	"context"
)

// kcal per kilometer per kilogram of body weight
const caloriesFactor = 0.9

// CalculateCalories estimates burned kcal from walked distance and the stored
// user weight. It is an approximation. Every surface showing calories goes
// through here so the numbers always agree.
func (a *Aggregator) CalculateCalories(ctx context.Context, steps int, distanceMeters float64) float64 {
	return calories(distanceMeters, a.UserWeight(ctx))
}

func calories(distanceMeters, weightKg float64) float64 {
	if distanceMeters <= 0 || weightKg <= 0 {
		return 0
	}
	return distanceMeters / 1000 * weightKg * caloriesFactor
}

// Progress is the share of goal reached, capped at 1.
func Progress(steps, goal int) float64 {
	if goal <= 0 || steps <= 0 {
		return 0
	}
	progress := float64(steps) / float64(goal)
	if progress > 1 {
		return 1
	}
	return progress
}
