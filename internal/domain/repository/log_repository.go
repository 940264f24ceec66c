package repository

import (
	"context"

	"github.com/yourusername/walkthrough/internal/domain/entity"
)

// LogRepository log yozuvlarini saqlash uchun interface
type LogRepository interface {
	// Append adds one entry and never rewrites earlier ones.
	Append(ctx context.Context, entry entity.LogEntry) error

	// Recent returns up to limit newest entries, oldest first. limit <= 0 means all.
	Recent(ctx context.Context, limit int) ([]entity.LogEntry, error)
}
