package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/provider"
)

// VocabularyRepo stores the derived vocabulary table.
// Implemented by vocabulary.Repo.
type VocabularyRepo interface {
	ReplaceAll(ctx context.Context, runID uuid.UUID, entries []domain.VocabularyEntry) (int, error)
}

// KanjiRepo stores the kanji table and serves earlier enrichment results.
// Implemented by kanji.Repo.
type KanjiRepo interface {
	ReplaceAll(ctx context.Context, runID uuid.UUID, records []domain.KanjiRecord) (int, error)
	GetEnriched(ctx context.Context, kanji []string) (map[string]provider.KanjiResult, error)
}

// RunRepo records pipeline runs. Implemented by run.Repo.
type RunRepo interface {
	Create(ctx context.Context, run domain.PipelineRun) error
	Finish(ctx context.Context, run domain.PipelineRun) error
}

// TxManager runs fn in a single database transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
