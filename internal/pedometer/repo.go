package pedometer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/bodix/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const Schema = `
CREATE TABLE IF NOT EXISTS step_sample
(
    id              SERIAL PRIMARY KEY,
    start_at        TIMESTAMPTZ      NOT NULL,
    end_at          TIMESTAMPTZ      NOT NULL,
    steps           INTEGER          NOT NULL CHECK (steps >= 0),
    distance_meters DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (distance_meters >= 0),
    created_at      TIMESTAMPTZ      NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS ix_step_sample_start_at ON step_sample USING btree (start_at);
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Migrate creates the step_sample table if it does not exist yet.
func (r *Repo) Migrate(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pedometer.migrate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create step_sample schema: %w", err)
	}
	return nil
}

func (r *Repo) Add(ctx context.Context, sample Sample) (*Sample, error) {
	added, err := r.AddBatch(ctx, []Sample{sample})
	if err != nil {
		return nil, err
	}
	return &added[0], nil
}

// AddBatch stores all samples in a single transaction; either all of them
// are stored, or none.
func (r *Repo) AddBatch(ctx context.Context, samples []Sample) (_ []Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pedometer.addbatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("samples", len(samples)))

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidSample)
	}
	for _, s := range samples {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	added := make([]Sample, 0, len(samples))
	for _, s := range samples {
		err = tx.QueryRow(ctx, `
			INSERT INTO step_sample (start_at, end_at, steps, distance_meters)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`,
			s.Start, s.End, s.Steps, s.DistanceMeters,
		).Scan(&s.ID)
		if err != nil {
			return nil, fmt.Errorf("insert sample: %w", err)
		}
		added = append(added, s)
	}

	return added, nil
}

// Sum aggregates samples whose start lies within [from, to).
func (r *Repo) Sum(ctx context.Context, from, to time.Time) (_ WindowSum, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pedometer.sum")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	)

	var sum WindowSum
	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(steps), 0), COALESCE(SUM(distance_meters), 0), COUNT(*)
		FROM step_sample
		WHERE start_at >= $1 AND start_at < $2
	`, from, to).Scan(&sum.Steps, &sum.DistanceMeters, &sum.Samples)
	if err != nil {
		return WindowSum{}, fmt.Errorf("sum samples: %w", err)
	}
	return sum, nil
}

func (r *Repo) List(ctx context.Context, from, to time.Time) (_ []Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pedometer.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, start_at, end_at, steps, distance_meters
		FROM step_sample
		WHERE start_at >= $1 AND start_at < $2
		ORDER BY start_at ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	samples := make([]Sample, 0)
	for rows.Next() {
		var s Sample
		if err := rows.Scan(&s.ID, &s.Start, &s.End, &s.Steps, &s.DistanceMeters); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// DeleteBefore removes samples that started before the given time.
func (r *Repo) DeleteBefore(ctx context.Context, before time.Time) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pedometer.delete-before")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("before", before.String()))

	tag, err := r.db.Exec(ctx, `DELETE FROM step_sample WHERE start_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("delete samples: %w", err)
	}
	span.SetAttributes(attribute.Int64("deleted", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}
