// Package run persists pipeline run records.
package run

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/nihongo-dataset/internal/adapter/postgres"
	"github.com/heartmarshall/nihongo-dataset/internal/domain"
)

const table = "pipeline_runs"

var columns = []string{
	"id", "provider", "started_at", "finished_at",
	"vocabulary_count", "kanji_count", "enriched_count", "enrich_failed_count",
}

// Repo provides pipeline run persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new run repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a run at its start. Counts are stored as given.
func (r *Repo) Create(ctx context.Context, run domain.PipelineRun) error {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(run.ID, run.Provider, run.StartedAt, run.FinishedAt,
			run.VocabularyCount, run.KanjiCount, run.EnrichedCount, run.EnrichFailedCount).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "pipeline_run", run.ID.String())
	}
	return nil
}

// Finish stores the final counts and finish time of a run.
// Returns domain.ErrNotFound if the run was never created.
func (r *Repo) Finish(ctx context.Context, run domain.PipelineRun) error {
	query, args, err := postgres.Builder().
		Update(table).
		Set("finished_at", run.FinishedAt).
		Set("vocabulary_count", run.VocabularyCount).
		Set("kanji_count", run.KanjiCount).
		Set("enriched_count", run.EnrichedCount).
		Set("enrich_failed_count", run.EnrichFailedCount).
		Where(squirrel.Eq{"id": run.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "pipeline_run", run.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pipeline_run %s: %w", run.ID, domain.ErrNotFound)
	}
	return nil
}

// GetByID returns a run. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PipelineRun, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var run domain.PipelineRun
	q := postgres.QuerierFromCtx(ctx, r.pool)
	err = q.QueryRow(ctx, query, args...).Scan(
		&run.ID, &run.Provider, &run.StartedAt, &run.FinishedAt,
		&run.VocabularyCount, &run.KanjiCount, &run.EnrichedCount, &run.EnrichFailedCount,
	)
	if err != nil {
		return nil, postgres.MapError(err, "pipeline_run", id.String())
	}
	return &run, nil
}
