package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/papertrails/papertrails/internal/domain/sequence"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/postgres"
)

type sequenceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSequenceRepository(db *postgres.DB, logger *logger.Logger) sequence.Repository {
	return &sequenceRepository{db: db, logger: logger}
}

func (r *sequenceRepository) IncrementAndGet(ctx context.Context, key sequence.ScopeKey) (int64, error) {
	if _, ok := postgres.GetTx(ctx); !ok {
		return 0, ierr.NewError("sequence increment outside transaction").
			WithHint("Counter allocation must run inside a transaction").
			WithReportableDetails(map[string]any{"scope_key": key.String()}).
			Mark(ierr.ErrSystem)
	}

	// The upsert takes the row lock and holds it until the caller's
	// transaction commits or rolls back.
	query := `
		INSERT INTO sequence_counters (scope_key, last_number, created_at, updated_at)
		VALUES ($1, 1, $2, $2)
		ON CONFLICT (scope_key) DO UPDATE
		SET last_number = sequence_counters.last_number + 1,
			updated_at = EXCLUDED.updated_at
		RETURNING last_number`

	var next int64
	err := r.db.GetQuerier(ctx).QueryRowContext(ctx, query, key.String(), time.Now().UTC()).Scan(&next)
	if err != nil {
		r.logger.Errorw("failed to increment sequence counter",
			"scope_key", key.String(),
			"error", err,
		)
		return 0, postgres.MapError(err, "increment sequence counter")
	}

	r.logger.Debugw("allocated sequence number",
		"scope_key", key.String(),
		"sequence", next,
	)
	return next, nil
}

func (r *sequenceRepository) PeekNext(ctx context.Context, key sequence.ScopeKey) (int64, error) {
	query := `SELECT COALESCE(MAX(last_number), 0) + 1 FROM sequence_counters WHERE scope_key = $1`

	var next int64
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &next, query, key.String()); err != nil {
		return 0, postgres.MapError(err, "peek sequence counter")
	}
	return next, nil
}

func (r *sequenceRepository) Get(ctx context.Context, key sequence.ScopeKey) (*sequence.Counter, error) {
	query := `SELECT scope_key, last_number, created_at, updated_at FROM sequence_counters WHERE scope_key = $1`

	var counter sequence.Counter
	err := r.db.GetQuerier(ctx).GetContext(ctx, &counter, query, key.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewError("sequence counter not found").
			WithHintf("No numbers have been allocated for %s yet", key.String()).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, postgres.MapError(err, "get sequence counter")
	}
	return &counter, nil
}
