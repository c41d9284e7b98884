// Package vocabulary persists the cleaned JLPT vocabulary table.
package vocabulary

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/nihongo-dataset/internal/adapter/postgres"
	"github.com/heartmarshall/nihongo-dataset/internal/domain"
)

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vocabulary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ReplaceAll deletes the current table contents and inserts entries using
// pgx.Batch. Call it inside TxManager.RunInTx so readers never see an
// empty table. Returns the number of inserted rows.
func (r *Repo) ReplaceAll(ctx context.Context, runID uuid.UUID, entries []domain.VocabularyEntry) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `DELETE FROM jlpt_vocabulary`); err != nil {
		return 0, postgres.MapError(err, "jlpt_vocabulary", "all")
	}
	if len(entries) == 0 {
		return 0, nil
	}

	var run *uuid.UUID
	if runID != uuid.Nil {
		run = &runID
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		var level *string
		if e.JLPTLevel != "" {
			l := e.JLPTLevel.String()
			level = &l
		}
		batch.Queue(
			`INSERT INTO jlpt_vocabulary (word, furigana, translation, jlpt_level, romaji, num_characters, stroke_count, run_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			validText(e.Word), validText(e.Furigana), validText(e.Translation),
			level, validTextPtr(e.Romaji), e.NumCharacters, e.StrokeCount, run,
		)
	}

	n, err := postgres.SendBatchExec(ctx, q, batch)
	if err != nil {
		return n, postgres.MapError(err, "jlpt_vocabulary", "batch")
	}
	return n, nil
}

// List returns all rows in insertion order.
func (r *Repo) List(ctx context.Context) ([]domain.VocabularyEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT word, furigana, translation, COALESCE(jlpt_level, ''), romaji, num_characters, stroke_count
		 FROM jlpt_vocabulary ORDER BY id`)
	if err != nil {
		return nil, postgres.MapError(err, "jlpt_vocabulary", "all")
	}
	defer rows.Close()

	var out []domain.VocabularyEntry
	for rows.Next() {
		var (
			e     domain.VocabularyEntry
			level string
		)
		if err := rows.Scan(&e.Word, &e.Furigana, &e.Translation, &level, &e.Romaji, &e.NumCharacters, &e.StrokeCount); err != nil {
			return nil, fmt.Errorf("scan jlpt_vocabulary: %w", err)
		}
		e.JLPTLevel = domain.JLPTLevel(level)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "jlpt_vocabulary", "all")
	}
	return out, nil
}

// validText replaces invalid UTF-8, which PostgreSQL text columns reject.
// Readings that failed to decode are kept raw in the CSV output only.
func validText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

func validTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := validText(*s)
	return &v
}
