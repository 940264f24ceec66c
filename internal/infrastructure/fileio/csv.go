package fileio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/yourusername/walkthrough/internal/domain/entity"
)

// WriteRows truncates path and writes rows as CSV.
func WriteRows(path string, rows [][]string) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return openErr(path, err)
	}
	defer closeWith(f, &err)

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv %s: %w", path, err)
	}
	return nil
}

// AppendRow appends row to path. The header goes first only when path did not
// exist before the call; an existing empty file gets no header.
func AppendRow(path string, header, row []string) (wroteHeader bool, err error) {
	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	if err := ensureDir(path); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, openErr(path, err)
	}
	defer closeWith(f, &err)

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(header); err != nil {
			return false, fmt.Errorf("failed to write csv header %s: %w", path, err)
		}
	}
	if err := w.Write(row); err != nil {
		return false, fmt.Errorf("failed to write csv row %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, fmt.Errorf("failed to flush csv %s: %w", path, err)
	}
	return isNew, nil
}

// ReadRows returns every row of path, header included.
func ReadRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openErr(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}
	return rows, nil
}

// ReadRecords reads path as a header row followed by data rows and returns one
// Record per data row, keyed by the header. Short rows get empty values for
// the missing columns; cells beyond the header are dropped.
func ReadRecords(path string) ([]entity.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openErr(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []entity.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header %s: %w", path, err)
	}

	records := []entity.Record{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
		}

		rec := make(entity.Record, len(header))
		for i, name := range header {
			rec[i].Name = name
			if i < len(row) {
				rec[i].Value = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
