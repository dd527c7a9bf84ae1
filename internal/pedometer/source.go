package pedometer

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/bodix/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=pedometer_test

type samplesRepo interface {
	Sum(ctx context.Context, from, to time.Time) (WindowSum, error)
}

// Source answers "how many steps and how far over [from, to)" from the
// samples the device pushed. Reads are refused unless the device reported
// an authorized motion permission.
type Source struct {
	repo          samplesRepo
	authorization *AuthorizationTracker
	now           func() time.Time
}

func NewSource(repo samplesRepo, authorization *AuthorizationTracker) *Source {
	return &Source{
		repo:          repo,
		authorization: authorization,
		now:           time.Now,
	}
}

// WithClock replaces the wall clock used by Updates.
func (s *Source) WithClock(now func() time.Time) *Source {
	s.now = now
	return s
}

// Status is the motion permission last reported by the device.
func (s *Source) Status(ctx context.Context) AuthorizationStatus {
	return s.authorization.Status(ctx)
}

func (s *Source) SetStatus(ctx context.Context, status AuthorizationStatus) error {
	return s.authorization.SetStatus(ctx, status)
}

func (s *Source) Query(ctx context.Context, from, to time.Time) (_ Data, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "source.pedometer.query")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	)

	if status := s.authorization.Status(ctx); status != StatusAuthorized {
		return Data{}, fmt.Errorf("%w: status %s", ErrUnavailable, status)
	}
	if !to.After(from) {
		return Data{}, fmt.Errorf("%w: empty window", ErrNoData)
	}

	sum, err := s.repo.Sum(ctx, from, to)
	if err != nil {
		return Data{}, fmt.Errorf("query window: %w", err)
	}
	if sum.Samples == 0 {
		return Data{}, ErrNoData
	}

	return Data{
		From:           from,
		To:             to,
		Steps:          sum.Steps,
		DistanceMeters: sum.DistanceMeters,
	}, nil
}

// Updates streams the cumulative activity since from, re-read every interval.
// A value is sent only when it differs from the previously sent one.
// The channel is closed once ctx is done.
func (s *Source) Updates(ctx context.Context, from time.Time, every time.Duration) <-chan Data {
	updates := make(chan Data)

	go func() {
		defer close(updates)

		ticker := time.NewTicker(every)
		defer ticker.Stop()

		var last *Data
		for {
			data, err := s.Query(ctx, from, s.now())
			if err != nil {
				log.Tracef("pedometer updates: %s", err)
			} else if last == nil || last.Steps != data.Steps || last.DistanceMeters != data.DistanceMeters {
				select {
				case updates <- data:
					last = &data
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates
}

// SubDayGranularity reports whether windows shorter than a day can be answered
// precisely. Samples carry their own timestamps, so they can.
func (s *Source) SubDayGranularity() bool {
	return true
}
