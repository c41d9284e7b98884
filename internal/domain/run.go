package domain

import (
	"time"

	"github.com/google/uuid"
)

// PipelineRun records one execution of the dataset pipeline.
type PipelineRun struct {
	ID                uuid.UUID
	StartedAt         time.Time
	FinishedAt        *time.Time
	VocabularyCount   int
	KanjiCount        int
	EnrichedCount     int
	EnrichFailedCount int
	Provider          string
}
