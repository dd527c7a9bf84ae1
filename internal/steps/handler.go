package steps

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/bodix/internal/middleware"
	"github.com/2beens/bodix/internal/telemetry/metrics"
	"github.com/2beens/bodix/internal/telemetry/tracing"
	"github.com/2beens/bodix/pkg"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	aggregator   *Aggregator
	metrics      *metrics.Manager
	liveInterval time.Duration
	upgrader     websocket.Upgrader
}

func NewHandler(
	aggregator *Aggregator,
	metricsManager *metrics.Manager,
	liveInterval time.Duration,
	allowedOrigins []string,
) *Handler {
	if liveInterval <= 0 {
		liveInterval = 5 * time.Second
	}
	return &Handler{
		aggregator:   aggregator,
		metrics:      metricsManager,
		liveInterval: liveInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	settingsAllowedPerMin int,
) {
	mainRouter.HandleFunc("/steps/today", h.HandleToday).Methods("GET", "OPTIONS").Name("steps-today")
	mainRouter.HandleFunc("/steps/yesterday", h.HandleYesterday).Methods("GET", "OPTIONS").Name("steps-yesterday")
	mainRouter.HandleFunc("/steps/weekly", h.HandleWeekly).Methods("GET", "OPTIONS").Name("steps-weekly")
	mainRouter.HandleFunc("/steps/hourly", h.HandleHourly).Methods("GET", "OPTIONS").Name("steps-hourly")
	mainRouter.HandleFunc("/steps/summary", h.HandleSummary).Methods("GET", "OPTIONS").Name("steps-summary")
	mainRouter.HandleFunc("/steps/streak", h.HandleGetStreak).Methods("GET", "OPTIONS").Name("get-streak")
	mainRouter.HandleFunc("/steps/streak", h.HandleUpdateStreak).Methods("POST", "OPTIONS").Name("update-streak")
	mainRouter.HandleFunc("/steps/events", h.HandleEvents).Methods("GET").Name("steps-events")
	mainRouter.HandleFunc("/steps/live", h.HandleLive).Methods("GET").Name("steps-live")

	mainRouter.HandleFunc("/settings", h.HandleGetSettings).Methods("GET", "OPTIONS").Name("get-settings")
	mainRouter.HandleFunc("/settings/goal", h.HandleGetGoal).Methods("GET", "OPTIONS").Name("get-goal")
	mainRouter.HandleFunc("/settings/goal/change", h.HandleTakeGoalChange).Methods("GET", "OPTIONS").Name("take-goal-change")
	mainRouter.HandleFunc("/settings/unit", h.HandleGetDistanceUnit).Methods("GET", "OPTIONS").Name("get-unit")
	mainRouter.HandleFunc("/settings/weight", h.HandleGetWeight).Methods("GET", "OPTIONS").Name("get-weight")

	settingsSubrouter := mainRouter.PathPrefix("/settings").Subrouter()
	settingsSubrouter.HandleFunc("/goal", h.HandleSetGoal).Methods("PUT", "OPTIONS").Name("set-goal")
	settingsSubrouter.HandleFunc("/unit", h.HandleSetDistanceUnit).Methods("PUT", "OPTIONS").Name("set-unit")
	settingsSubrouter.HandleFunc("/weight", h.HandleSetWeight).Methods("PUT", "OPTIONS").Name("set-weight")
	if rateLimiter != nil {
		settingsSubrouter.Use(middleware.RateLimit(rateLimiter, "settings", settingsAllowedPerMin, h.metrics))
	}
}

type todayResponse struct {
	Stats
	Goal        int     `json:"goal"`
	Progress    float64 `json:"progress"`
	GoalReached bool    `json:"goalReached"`
	Distance    string  `json:"distance"`
}

func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.steps.today")
	defer span.End()

	stats := h.aggregator.FetchTodayStats(ctx)
	goal := h.aggregator.DailyGoal(ctx)
	pkg.WriteJSON(w, todayResponse{
		Stats:       stats,
		Goal:        goal,
		Progress:    Progress(stats.Steps, goal),
		GoalReached: stats.Steps >= goal,
		Distance:    h.aggregator.DistanceUnit(ctx).Format(stats.DistanceMeters),
	}, http.StatusOK)
}

func (h *Handler) HandleYesterday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.steps.yesterday")
	defer span.End()

	pkg.WriteJSON(w, map[string]int{
		"steps": h.aggregator.FetchYesterdaySteps(ctx),
	}, http.StatusOK)
}

type weeklyResponse struct {
	Records []DailyRecord `json:"records"`
	Summary WeekSummary   `json:"summary"`
	Goal    int           `json:"goal"`
}

func (h *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.steps.weekly")
	defer span.End()

	records, err := h.aggregator.FetchWeeklySteps(ctx)
	if err != nil {
		log.Warnf("fetch weekly steps: %s", err)
		http.Error(w, "fetch weekly steps failed", http.StatusServiceUnavailable)
		return
	}

	goal := h.aggregator.DailyGoal(ctx)
	pkg.WriteJSON(w, weeklyResponse{
		Records: records,
		Summary: Summarize(records, goal),
		Goal:    goal,
	}, http.StatusOK)
}

type hourlyResponse struct {
	Buckets          []int `json:"buckets"`
	BucketWidthHours int   `json:"bucketWidthHours"`
}

func (h *Handler) HandleHourly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.steps.hourly")
	defer span.End()

	buckets, err := h.aggregator.FetchHourlySteps(ctx)
	if err != nil {
		log.Warnf("fetch hourly steps: %s", err)
		http.Error(w, "fetch hourly steps failed", http.StatusServiceUnavailable)
		return
	}

	pkg.WriteJSON(w, hourlyResponse{
		Buckets:          buckets,
		BucketWidthHours: int(bucketWidth / time.Hour),
	}, http.StatusOK)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.steps.summary")
	defer span.End()

	summary, err := h.aggregator.Summary(ctx)
	if err != nil {
		log.Warnf("steps summary: %s", err)
		http.Error(w, "steps summary failed", http.StatusServiceUnavailable)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) HandleGetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.steps.streak.get")
	defer span.End()

	pkg.WriteJSON(w, h.aggregator.Streak(ctx), http.StatusOK)
}

type updateStreakRequest struct {
	// TodaySteps defaults to the steps counted so far today.
	TodaySteps *int `json:"todaySteps"`
}

func (h *Handler) HandleUpdateStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.steps.streak.update")
	defer span.End()

	var req updateStreakRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Errorf("update streak, unmarshal json: %s", err)
			http.Error(w, "update streak failed", http.StatusBadRequest)
			return
		}
	}

	var todaySteps int
	if req.TodaySteps != nil {
		todaySteps = *req.TodaySteps
	} else {
		todaySteps = h.aggregator.FetchTodaySteps(ctx)
	}
	if todaySteps < 0 {
		http.Error(w, "today steps must not be negative", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, map[string]int{
		"streak":     h.aggregator.UpdateStreakIfNeeded(ctx, todaySteps),
		"todaySteps": todaySteps,
	}, http.StatusOK)
}

func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.get")
	defer span.End()

	pkg.WriteJSON(w, h.aggregator.Settings(ctx), http.StatusOK)
}

type goalPayload struct {
	DailyGoal int `json:"dailyGoal"`
}

func (h *Handler) HandleGetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.goal.get")
	defer span.End()

	pkg.WriteJSON(w, goalPayload{DailyGoal: h.aggregator.DailyGoal(ctx)}, http.StatusOK)
}

func (h *Handler) HandleSetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.goal.set")
	defer span.End()

	var payload goalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("set goal, unmarshal json: %s", err)
		http.Error(w, "set goal failed", http.StatusBadRequest)
		return
	}

	if err := h.aggregator.SetDailyGoal(ctx, payload.DailyGoal); err != nil {
		if errors.Is(err, ErrInvalidGoal) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("set goal: %s", err)
		http.Error(w, "set goal failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, payload, http.StatusOK)
}

type goalChangeResponse struct {
	Changed bool        `json:"changed"`
	Change  *GoalChange `json:"change,omitempty"`
}

// HandleTakeGoalChange reports the last goal change once; the next call
// reports no change until the goal is set again.
func (h *Handler) HandleTakeGoalChange(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.goal.change")
	defer span.End()

	resp := goalChangeResponse{}
	if change, ok := h.aggregator.TakeGoalChange(); ok {
		resp.Changed = true
		resp.Change = &change
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}

type distanceUnitPayload struct {
	DistanceUnit DistanceUnit `json:"distanceUnit"`
	Title        string       `json:"title,omitempty"`
}

func (h *Handler) HandleGetDistanceUnit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.unit.get")
	defer span.End()

	unit := h.aggregator.DistanceUnit(ctx)
	pkg.WriteJSON(w, distanceUnitPayload{DistanceUnit: unit, Title: unit.Title()}, http.StatusOK)
}

func (h *Handler) HandleSetDistanceUnit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.unit.set")
	defer span.End()

	var payload distanceUnitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("set distance unit, unmarshal json: %s", err)
		http.Error(w, "set distance unit failed", http.StatusBadRequest)
		return
	}

	if err := h.aggregator.SetDistanceUnit(ctx, payload.DistanceUnit); err != nil {
		if errors.Is(err, ErrInvalidDistanceUnit) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("set distance unit: %s", err)
		http.Error(w, "set distance unit failed", http.StatusInternalServerError)
		return
	}

	payload.Title = payload.DistanceUnit.Title()
	pkg.WriteJSON(w, payload, http.StatusOK)
}

type weightPayload struct {
	UserWeightKg float64 `json:"userWeightKg"`
}

func (h *Handler) HandleGetWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.weight.get")
	defer span.End()

	pkg.WriteJSON(w, weightPayload{UserWeightKg: h.aggregator.UserWeight(ctx)}, http.StatusOK)
}

func (h *Handler) HandleSetWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.weight.set")
	defer span.End()

	var payload weightPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("set weight, unmarshal json: %s", err)
		http.Error(w, "set weight failed", http.StatusBadRequest)
		return
	}

	if err := h.aggregator.SetUserWeight(ctx, payload.UserWeightKg); err != nil {
		if errors.Is(err, ErrInvalidWeight) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("set weight: %s", err)
		http.Error(w, "set weight failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, payload, http.StatusOK)
}
