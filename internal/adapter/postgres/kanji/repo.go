// Package kanji persists the enriched kanji table and serves previously
// enriched kanji back to the pipeline.
package kanji

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/nihongo-dataset/internal/adapter/postgres"
	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/provider"
)

// lookupChunk bounds the IN list of a single GetEnriched query.
const lookupChunk = 500

// Repo provides kanji persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new kanji repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ReplaceAll deletes the current table contents and inserts records using
// pgx.Batch. Call it inside TxManager.RunInTx. Returns the number of
// inserted rows.
func (r *Repo) ReplaceAll(ctx context.Context, runID uuid.UUID, records []domain.KanjiRecord) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `DELETE FROM kanji`); err != nil {
		return 0, postgres.MapError(err, "kanji", "all")
	}
	if len(records) == 0 {
		return 0, nil
	}

	var run *uuid.UUID
	if runID != uuid.Nil {
		run = &runID
	}

	batch := &pgx.Batch{}
	for i, k := range records {
		batch.Queue(
			`INSERT INTO kanji (kanji, position, count, enriched, strokes, meanings, kun_readings, on_readings,
			                    translation, kun_display, on_display, kun_romaji, on_romaji,
			                    radical_basis, radical_meaning, run_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			k.Character, i, k.Count, k.Enriched, k.Strokes,
			orEmpty(k.Meanings), orEmpty(k.KunReadings), orEmpty(k.OnReadings),
			k.Translation, k.KunDisplay, k.OnDisplay, k.KunRomaji, k.OnRomaji,
			k.RadicalBasis, k.RadicalMeaning, run,
		)
	}

	n, err := postgres.SendBatchExec(ctx, q, batch)
	if err != nil {
		return n, postgres.MapError(err, "kanji", "batch")
	}
	return n, nil
}

// GetEnriched returns stored lookup data for those of chars that an earlier
// run enriched successfully. Characters without data are absent from the map.
func (r *Repo) GetEnriched(ctx context.Context, chars []string) (map[string]provider.KanjiResult, error) {
	out := make(map[string]provider.KanjiResult, len(chars))
	q := postgres.QuerierFromCtx(ctx, r.pool)

	for i := 0; i < len(chars); i += lookupChunk {
		end := min(i+lookupChunk, len(chars))

		query, args, err := postgres.Builder().
			Select("kanji", "strokes", "meanings", "kun_readings", "on_readings", "radical_basis", "radical_meaning").
			From("kanji").
			Where(squirrel.Eq{"kanji": chars[i:end]}).
			Where(squirrel.Eq{"enriched": true}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build select: %w", err)
		}

		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return nil, postgres.MapError(err, "kanji", "lookup")
		}
		for rows.Next() {
			var res provider.KanjiResult
			if err := rows.Scan(&res.Kanji, &res.Strokes, &res.Meanings, &res.KunReadings, &res.OnReadings,
				&res.RadicalBasis, &res.RadicalMeaning); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan kanji: %w", err)
			}
			out[res.Kanji] = res
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, postgres.MapError(err, "kanji", "lookup")
		}
	}

	return out, nil
}

// List returns all rows in the order they were written.
func (r *Repo) List(ctx context.Context) ([]domain.KanjiRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT kanji, count, enriched, strokes, meanings, kun_readings, on_readings,
		        translation, kun_display, on_display, kun_romaji, on_romaji, radical_basis, radical_meaning
		 FROM kanji ORDER BY position`)
	if err != nil {
		return nil, postgres.MapError(err, "kanji", "all")
	}
	defer rows.Close()

	var out []domain.KanjiRecord
	for rows.Next() {
		var k domain.KanjiRecord
		if err := rows.Scan(&k.Character, &k.Count, &k.Enriched, &k.Strokes,
			&k.Meanings, &k.KunReadings, &k.OnReadings,
			&k.Translation, &k.KunDisplay, &k.OnDisplay, &k.KunRomaji, &k.OnRomaji,
			&k.RadicalBasis, &k.RadicalMeaning); err != nil {
			return nil, fmt.Errorf("scan kanji: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "kanji", "all")
	}
	return out, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
