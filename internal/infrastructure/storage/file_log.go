package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/domain/repository"
	"github.com/yourusername/walkthrough/internal/infrastructure/fileio"
)

// DefaultLogFile is used when no path is given.
const DefaultLogFile = "app.log"

type fileLogRepository struct {
	path string
	loc  *time.Location
}

// NewFileLogRepository writes entries as "[YYYY-MM-DD HH:MM:SS] message"
// lines appended to path. Timestamps are parsed back in loc.
func NewFileLogRepository(path string, loc *time.Location) repository.LogRepository {
	if path == "" {
		path = DefaultLogFile
	}
	if loc == nil {
		loc = time.Local
	}
	return &fileLogRepository{path: path, loc: loc}
}

// Append log qatorini faylga qo'shish
func (r *fileLogRepository) Append(ctx context.Context, entry entity.LogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// one entry is one line
	msg := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(entry.Message)
	entry.Message = msg

	if err := fileio.AppendText(r.path, entry.Line()+"\n"); err != nil {
		return fmt.Errorf("failed to write log: %w", err)
	}
	return nil
}

// Recent reads the file back. Lines that do not have the timestamp prefix are
// skipped.
func (r *fileLogRepository) Recent(ctx context.Context, limit int) ([]entity.LogEntry, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open log %s: %w", r.path, err)
	}
	defer f.Close()

	var entries []entity.LogEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if entry, ok := parseLogLine(sc.Text(), r.loc); ok {
			entries = append(entries, entry)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log %s: %w", r.path, err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func parseLogLine(line string, loc *time.Location) (entity.LogEntry, bool) {
	const stampLen = len(entity.LogTimestampLayout)
	if len(line) < stampLen+3 || line[0] != '[' || line[stampLen+1] != ']' || line[stampLen+2] != ' ' {
		return entity.LogEntry{}, false
	}
	ts, err := time.ParseInLocation(entity.LogTimestampLayout, line[1:stampLen+1], loc)
	if err != nil {
		return entity.LogEntry{}, false
	}
	return entity.LogEntry{Message: line[stampLen+3:], Timestamp: ts}, true
}
