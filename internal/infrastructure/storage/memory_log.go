package storage

import (
	"context"
	"sync"

	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/domain/repository"
)

type memoryLogRepository struct {
	mu      sync.RWMutex
	entries []entity.LogEntry
	maxSize int
}

// NewMemoryLogRepository in-memory log journal yaratish
func NewMemoryLogRepository(maxSize int) repository.LogRepository {
	return &memoryLogRepository{
		entries: []entity.LogEntry{},
		maxSize: maxSize,
	}
}

// Append yozuvni saqlash
func (m *memoryLogRepository) Append(ctx context.Context, entry entity.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)

	// Maksimal hajmni nazorat qilish
	if m.maxSize > 0 && len(m.entries) > m.maxSize {
		m.entries = m.entries[len(m.entries)-m.maxSize:]
	}

	return nil
}

// Recent oxirgi yozuvlarni olish
func (m *memoryLogRepository) Recent(ctx context.Context, limit int) ([]entity.LogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := 0
	if limit > 0 && len(m.entries) > limit {
		start = len(m.entries) - limit
	}

	out := make([]entity.LogEntry, len(m.entries)-start)
	copy(out, m.entries[start:])
	return out, nil
}
