package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/domain/repository"
)

// SQLiteLogRepository is a LogRepository that owns a database handle.
type SQLiteLogRepository interface {
	repository.LogRepository
	Close() error
}

type sqliteLogRepository struct {
	db      *sql.DB
	maxSize int
}

// NewSQLiteLogRepository SQLite asosidagi log journal
func NewSQLiteLogRepository(dbPath string, maxSize int) (SQLiteLogRepository, error) {
	if dbPath == "" {
		return nil, errors.New("db path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if err := createLogSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteLogRepository{db: db, maxSize: maxSize}, nil
}

func createLogSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS log_entries (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	message TEXT NOT NULL,
	ts TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_log_entries_ts ON log_entries (ts, id);
`
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Append yozuvni saqlash
func (s *sqliteLogRepository) Append(ctx context.Context, entry entity.LogEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO log_entries (id, run_id, message, ts) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.RunID, entry.Message, entry.Timestamp)
	if err != nil {
		tx.Rollback()
		return err
	}

	// Eski yozuvlarni kesish
	if s.maxSize > 0 {
		_, err = tx.ExecContext(ctx, `
DELETE FROM log_entries
WHERE id IN (
  SELECT id FROM log_entries
  ORDER BY ts DESC, id DESC
  LIMIT -1 OFFSET ?
)`, s.maxSize)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// Recent oxirgi yozuvlarni olish
func (s *sqliteLogRepository) Recent(ctx context.Context, limit int) ([]entity.LogEntry, error) {
	query := `SELECT id, run_id, message, ts FROM log_entries ORDER BY ts DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tmp []entity.LogEntry
	for rows.Next() {
		var e entity.LogEntry
		var ts time.Time
		if err := rows.Scan(&e.ID, &e.RunID, &e.Message, &ts); err != nil {
			return nil, err
		}
		e.Timestamp = ts
		tmp = append(tmp, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// eski->yangi tartib
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}

	return tmp, nil
}

// Close bazani yopish
func (s *sqliteLogRepository) Close() error {
	return s.db.Close()
}
