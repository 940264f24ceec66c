package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/domain/repository"
	"github.com/yourusername/walkthrough/internal/infrastructure/fileio"
)

// ArchiveStampLayout is the timestamp suffix of archive file names.
const ArchiveStampLayout = "20060102150405"

// one entry is one line, in the file and in the journal
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// LogUseCase log yozish bilan bog'liq business logic
type LogUseCase interface {
	// Write appends "[timestamp] message" to the log file and records the
	// entry in the journal.
	Write(ctx context.Context, message string) (entity.LogEntry, error)

	// History returns the newest entries, oldest first. The log file answers
	// when the journal is missing, failing or empty, since a journal kept in
	// memory starts empty on every run.
	History(ctx context.Context, limit int) ([]entity.LogEntry, error)

	// Archive writes a zstd copy of the log file and returns its path.
	Archive(ctx context.Context) (string, int64, error)
}

// LogOptions configures a LogUseCase.
type LogOptions struct {
	LogPath string
	RunID   string
	Now     func() time.Time
}

type logUseCase struct {
	fileRepo    repository.LogRepository
	journalRepo repository.LogRepository
	opts        LogOptions
	logger      *slog.Logger
}

// NewLogUseCase yangi LogUseCase yaratish. journalRepo may be nil.
func NewLogUseCase(
	fileRepo repository.LogRepository,
	journalRepo repository.LogRepository,
	opts LogOptions,
	logger *slog.Logger,
) LogUseCase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.LogPath == "" {
		opts.LogPath = "app.log"
	}
	return &logUseCase{
		fileRepo:    fileRepo,
		journalRepo: journalRepo,
		opts:        opts,
		logger:      logger,
	}
}

// Write log xabarini yozish
func (u *logUseCase) Write(ctx context.Context, message string) (entity.LogEntry, error) {
	ts := u.opts.Now()
	entry := entity.LogEntry{
		ID:        ulid.MustNew(ulid.Timestamp(ts), ulid.DefaultEntropy()).String(),
		RunID:     u.opts.RunID,
		Message:   lineBreaks.Replace(message),
		Timestamp: ts,
	}

	if err := u.fileRepo.Append(ctx, entry); err != nil {
		return entity.LogEntry{}, err
	}

	// The file is the record; a journal failure is reported and dropped.
	if u.journalRepo != nil {
		if err := u.journalRepo.Append(ctx, entry); err != nil {
			u.logger.Warn("failed to journal log entry",
				slog.String("id", entry.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return entry, nil
}

// History oxirgi log yozuvlarini olish
func (u *logUseCase) History(ctx context.Context, limit int) ([]entity.LogEntry, error) {
	if u.journalRepo != nil {
		entries, err := u.journalRepo.Recent(ctx, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			u.logger.Warn("failed to read journal, reading log file", slog.String("error", err.Error()))
		}
	}
	return u.fileRepo.Recent(ctx, limit)
}

// Archive log faylini siqib saqlash
func (u *logUseCase) Archive(ctx context.Context) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	dst := fmt.Sprintf("%s.%s.zst", u.opts.LogPath, u.opts.Now().Format(ArchiveStampLayout))

	n, err := fileio.ArchiveZstd(u.opts.LogPath, dst)
	if err != nil {
		return "", 0, err
	}

	u.logger.Info("log archived", slog.String("src", u.opts.LogPath), slog.String("dst", dst), slog.Int64("bytes", n))
	return dst, n, nil
}
