package steps

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/2beens/bodix/internal/pedometer"
	"github.com/2beens/bodix/internal/telemetry/metrics"
	"github.com/2beens/bodix/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=steps_test

const defaultQueryTimeout = 3 * time.Second

type kvStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
}

type stepsSource interface {
	Query(ctx context.Context, from, to time.Time) (pedometer.Data, error)
}

// optional source capabilities

type granularityReporter interface {
	SubDayGranularity() bool
}

type updatesStreamer interface {
	Updates(ctx context.Context, from time.Time, every time.Duration) <-chan pedometer.Data
}

// Aggregator is the single source of truth for step, goal and streak state.
// Every presentation surface gets the same instance.
//
// Data source absence (unavailable, no data, timeout) never surfaces as an
// error; it reads as zero activity.
type Aggregator struct {
	store        kvStore
	source       stepsSource
	metrics      *metrics.Manager
	broadcaster  *Broadcaster
	loc          *time.Location
	queryTimeout time.Duration
	now          func() time.Time

	// guards the goal and streak read-modify-write paths
	mu         sync.Mutex
	goalChange *GoalChange
}

func NewAggregator(
	store kvStore,
	source stepsSource,
	metricsManager *metrics.Manager,
	loc *time.Location,
	queryTimeout time.Duration,
) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &Aggregator{
		store:        store,
		source:       source,
		metrics:      metricsManager,
		broadcaster:  NewBroadcaster(),
		loc:          loc,
		queryTimeout: queryTimeout,
		now:          time.Now,
	}
}

func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// Subscribe registers listener for change events; see Broadcaster.Subscribe.
func (a *Aggregator) Subscribe(listener Listener, events ...Event) (unsubscribe func()) {
	return a.broadcaster.Subscribe(listener, events...)
}

// query asks the source for [from, to), bounded by the query timeout.
// Every failure reads as zero activity.
func (a *Aggregator) query(ctx context.Context, from, to time.Time) pedometer.Data {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.steps.query")
	defer span.End()
	span.SetAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	)

	queryCtx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()

	start := time.Now()
	data, err := a.source.Query(queryCtx, from, to)
	a.metrics.HistSourceQueryDuration.Observe(time.Since(start).Seconds())

	result := metrics.SourceQueryOK
	switch {
	case err == nil:
	case errors.Is(err, pedometer.ErrUnavailable):
		result = metrics.SourceQueryUnavailable
		log.Debugf("steps query [%s, %s): %s", from, to, err)
	case errors.Is(err, pedometer.ErrNoData):
		result = metrics.SourceQueryNoData
	case errors.Is(err, context.DeadlineExceeded):
		result = metrics.SourceQueryTimeout
		log.Warnf("steps query [%s, %s) timed out after %s", from, to, a.queryTimeout)
	default:
		result = metrics.SourceQueryError
		log.Warnf("steps query [%s, %s): %s", from, to, err)
	}
	a.metrics.CounterSourceQueries.WithLabelValues(result).Inc()
	span.SetAttributes(attribute.String("result", result))

	if err != nil {
		return pedometer.Data{From: from, To: to}
	}
	return data
}

func (a *Aggregator) subDayGranularity() bool {
	if reporter, ok := a.source.(granularityReporter); ok {
		return reporter.SubDayGranularity()
	}
	return true
}
