package resume

import (
	"context"
	"sync"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// GenerationLog keeps the audit trail of generation calls per job
type GenerationLog interface {
	RecordGeneration(ctx context.Context, rec models.GenerationRecord) error
	GetGenerationHistory(ctx context.Context, jobID int64) ([]models.GenerationRecord, error)
}

// MemoryGenerationLog is the in-process GenerationLog used without Redis
type MemoryGenerationLog struct {
	mu      sync.Mutex
	limit   int
	records map[int64][]models.GenerationRecord
}

func NewMemoryGenerationLog(limit int) *MemoryGenerationLog {
	if limit <= 0 {
		limit = 20
	}
	return &MemoryGenerationLog{limit: limit, records: make(map[int64][]models.GenerationRecord)}
}

func (m *MemoryGenerationLog) RecordGeneration(ctx context.Context, rec models.GenerationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := append([]models.GenerationRecord{rec}, m.records[rec.JobID]...)
	if len(list) > m.limit {
		list = list[:m.limit]
	}
	m.records[rec.JobID] = list
	return nil
}

// GetGenerationHistory returns records newest first
func (m *MemoryGenerationLog) GetGenerationHistory(ctx context.Context, jobID int64) ([]models.GenerationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.GenerationRecord, len(m.records[jobID]))
	copy(out, m.records[jobID])
	return out, nil
}
