//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/bodix/internal/pedometer"
	"github.com/2beens/bodix/internal/steps"

	"github.com/brianvoe/gofakeit/v6"
)

// todaySamples spreads n samples over the part of today that has passed.
func todaySamples(n int) []pedometer.Sample {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	elapsed := now.Sub(dayStart)

	samples := make([]pedometer.Sample, 0, n)
	for i := 1; i <= n; i++ {
		start := dayStart.Add(elapsed * time.Duration(i) / time.Duration(n+1))
		samples = append(samples, pedometer.Sample{
			Start:          start,
			End:            start.Add(time.Minute),
			Steps:          gofakeit.Number(300, 900),
			DistanceMeters: gofakeit.Float64Range(200, 700),
		})
	}
	return samples
}

func (s *IntegrationTestSuite) TestStepsFlow() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	t := s.T()

	// nothing is readable before the device grants access
	var authorization struct {
		Status pedometer.AuthorizationStatus `json:"status"`
	}
	resp := s.do(ctx, "GET", "/pedometer/authorization", nil, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &authorization)
	s.Equal(pedometer.StatusNotDetermined, authorization.Status)

	var today steps.Stats
	resp = s.do(ctx, "GET", "/steps/today", nil, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &today)
	s.Equal(0, today.Steps)

	resp = s.do(ctx, "PUT", "/pedometer/authorization", map[string]string{"status": "authorized"}, false)
	resp.Body.Close()
	s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(ctx, "PUT", "/pedometer/authorization", map[string]string{"status": "authorized"}, true)
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	samples := todaySamples(4)
	totalSteps := 0
	totalDistance := 0.0
	for _, sample := range samples {
		totalSteps += sample.Steps
		totalDistance += sample.DistanceMeters
	}

	var added []pedometer.Sample
	resp = s.do(ctx, "POST", "/pedometer/samples", samples, true)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.decode(resp, &added)
	s.Require().Len(added, len(samples))
	for _, sample := range added {
		s.NotZero(sample.ID)
	}

	var storedCount int
	s.Require().NoError(s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM step_sample").Scan(&storedCount))
	s.GreaterOrEqual(storedCount, len(samples))

	resp = s.do(ctx, "GET", "/steps/today", nil, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &today)
	s.Equal(totalSteps, today.Steps)
	s.InDelta(totalDistance, today.DistanceMeters, 0.01)

	var weight struct {
		UserWeightKg float64 `json:"userWeightKg"`
	}
	resp = s.do(ctx, "GET", "/settings/weight", nil, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &weight)
	s.InDelta(totalDistance/1000*weight.UserWeightKg*0.9, today.Calories, 0.01)

	var hourly struct {
		Buckets []int `json:"buckets"`
	}
	resp = s.do(ctx, "GET", "/steps/hourly", nil, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &hourly)
	s.Require().Len(hourly.Buckets, steps.HourlyBuckets)
	bucketsSum := 0
	for _, b := range hourly.Buckets {
		bucketsSum += b
	}
	s.Equal(totalSteps, bucketsSum)

	var weekly struct {
		Records []steps.DailyRecord `json:"records"`
		Summary steps.WeekSummary   `json:"summary"`
	}
	resp = s.do(ctx, "GET", "/steps/weekly", nil, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &weekly)
	s.Require().Len(weekly.Records, 7)
	s.Equal(totalSteps, weekly.Records[6].Steps)
	s.Equal(totalSteps, weekly.Summary.TotalSteps)

	// lower the goal under today's steps, the streak starts
	resp = s.do(ctx, "PUT", "/settings/goal", map[string]int{"dailyGoal": 1000}, true)
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var streakResp struct {
		Streak     int `json:"streak"`
		TodaySteps int `json:"todaySteps"`
	}
	resp = s.do(ctx, "POST", "/steps/streak", nil, true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &streakResp)
	s.Equal(totalSteps, streakResp.TodaySteps)
	s.Equal(1, streakResp.Streak)

	// same day, same streak
	resp = s.do(ctx, "POST", "/steps/streak", nil, true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &streakResp)
	s.Equal(1, streakResp.Streak)

	var summary steps.HomeSummary
	resp = s.do(ctx, "GET", "/steps/summary", nil, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &summary)
	s.Equal(totalSteps, summary.Today.Steps)
	s.True(summary.GoalReached)
	s.Equal(1, summary.Streak)
	s.InDelta(1.0, summary.Progress, 0.0001)

	t.Logf("steps flow done with %d steps over %d samples", totalSteps, len(samples))
}

func (s *IntegrationTestSuite) TestSettings() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	resp := s.do(ctx, "PUT", "/settings/goal", map[string]int{"dailyGoal": 999}, true)
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.do(ctx, "PUT", "/settings/weight", map[string]float64{"userWeightKg": 82.5}, false)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(ctx, "PUT", "/settings/weight", map[string]float64{"userWeightKg": 82.5}, true)
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(ctx, "PUT", "/settings/goal", map[string]int{"dailyGoal": 12_000}, true)
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var settings steps.Settings
	resp = s.do(ctx, "GET", "/settings", nil, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &settings)
	s.Equal(12_000, settings.DailyGoal)
	s.InDelta(82.5, settings.UserWeightKg, 0.0001)

	var change struct {
		Changed bool              `json:"changed"`
		Change  *steps.GoalChange `json:"change"`
	}
	resp = s.do(ctx, "GET", "/settings/goal/change", nil, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &change)
	s.Require().True(change.Changed)
	s.Equal(12_000, change.Change.To)

	// reported once
	resp = s.do(ctx, "GET", "/settings/goal/change", nil, false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &change)
	s.False(change.Changed)
}
