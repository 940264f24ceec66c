package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/domain/repository"
	"github.com/yourusername/walkthrough/internal/infrastructure/fileio"
	"github.com/yourusername/walkthrough/internal/infrastructure/parser"
	"github.com/yourusername/walkthrough/internal/infrastructure/storage"
	"github.com/yourusername/walkthrough/internal/pkg/validation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileUseCase_RoundTrips(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	u := NewFileUseCase(dir)

	text, err := u.TextRoundTrip(ctx)
	if err != nil {
		t.Fatalf("TextRoundTrip: %v", err)
	}
	if text != "Hello, Python developers!\nWelcome to file I/O operations." {
		t.Fatalf("unexpected text %q", text)
	}

	rows, err := u.PeopleRoundTrip(ctx)
	if err != nil {
		t.Fatalf("PeopleRoundTrip: %v", err)
	}
	if !reflect.DeepEqual(rows, ExamplePeopleRows) {
		t.Fatalf("unexpected rows %v", rows)
	}

	person, err := u.PersonRoundTrip(ctx)
	if err != nil {
		t.Fatalf("PersonRoundTrip: %v", err)
	}
	if person != ExamplePerson {
		t.Fatalf("unexpected person %+v", person)
	}

	users, err := u.UsersRoundTrip(ctx)
	if err != nil {
		t.Fatalf("UsersRoundTrip: %v", err)
	}
	if !reflect.DeepEqual(users, ExampleUsers) {
		t.Fatalf("unexpected users %+v", users)
	}

	for _, name := range []string{ExampleTextFile, ExampleCSVFile, PersonJSONFile, UsersJSONFile} {
		if !fileio.Exists(filepath.Join(dir, name)) {
			t.Errorf("expected %s to exist", name)
		}
	}
}

func newCatalog(t *testing.T) (CatalogUseCase, CatalogPaths) {
	t.Helper()
	dir := t.TempDir()
	paths := CatalogPaths{
		CSV:  filepath.Join(dir, "products.csv"),
		JSON: filepath.Join(dir, "products.json"),
	}
	logger := discardLogger()
	u := NewCatalogUseCase(
		storage.NewCSVProductRepository(paths.CSV, logger),
		parser.NewExcelParser(logger),
		validation.New(),
		paths,
		logger,
	)
	return u, paths
}

func TestCatalogUseCase_AddAndSync(t *testing.T) {
	ctx := context.Background()
	u, paths := newCatalog(t)

	tablet := entity.Product{ProductID: "P004", Name: "Tablet", Price: 299.99, Stock: 25}
	if err := u.AddProduct(ctx, tablet); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	n, err := u.SyncJSON(ctx)
	if err != nil {
		t.Fatalf("SyncJSON: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 record, got %d", n)
	}

	var mirrored []map[string]string
	if err := fileio.ReadJSON(paths.JSON, &mirrored); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	want := []map[string]string{{"ProductID": "P004", "Name": "Tablet", "Price": "299.99", "Stock": "25"}}
	if !reflect.DeepEqual(mirrored, want) {
		t.Fatalf("expected %v, got %v", want, mirrored)
	}

	all, err := u.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 || all[0] != tablet {
		t.Fatalf("unexpected catalog %v", all)
	}
}

func TestCatalogUseCase_RejectsInvalidProduct(t *testing.T) {
	u, paths := newCatalog(t)

	err := u.AddProduct(context.Background(), entity.Product{Name: "NoID", Price: -1})
	var verr validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr["ProductID"]; !ok {
		t.Fatalf("expected ProductID error, got %v", verr)
	}
	if _, ok := verr["Price"]; !ok {
		t.Fatalf("expected Price error, got %v", verr)
	}
	if fileio.Exists(paths.CSV) {
		t.Fatal("invalid product must not create the csv")
	}
}

func TestCatalogUseCase_SyncMissingCSV(t *testing.T) {
	u, _ := newCatalog(t)

	_, err := u.SyncJSON(context.Background())
	if !errors.Is(err, fileio.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestCatalogUseCase_SpreadsheetRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newCatalog(t)
	for _, p := range []entity.Product{
		{ProductID: "P001", Name: "Laptop", Price: 999, Stock: 10},
		{ProductID: "P002", Name: "Smartphone", Price: 699, Stock: 25},
	} {
		if err := src.AddProduct(ctx, p); err != nil {
			t.Fatalf("AddProduct: %v", err)
		}
	}

	xlsx := filepath.Join(t.TempDir(), "catalog.xlsx")
	n, err := src.ExportSpreadsheet(ctx, xlsx)
	if err != nil {
		t.Fatalf("ExportSpreadsheet: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 exported, got %d", n)
	}

	dst, dstPaths := newCatalog(t)
	catalog, err := dst.ImportSpreadsheet(ctx, xlsx)
	if err != nil {
		t.Fatalf("ImportSpreadsheet: %v", err)
	}
	if len(catalog.Products) != 2 || catalog.Source != xlsx {
		t.Fatalf("unexpected catalog %+v", catalog)
	}

	want, _ := src.GetAll(ctx)
	got, _ := dst.GetAll(ctx)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !fileio.Exists(dstPaths.JSON) {
		t.Fatal("expected import to mirror json")
	}
}

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func TestLogUseCase_WriteAndHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.log")
	start := time.Date(2024, time.June, 14, 8, 0, 0, 0, time.UTC)

	journal := storage.NewMemoryLogRepository(10)
	u := NewLogUseCase(
		storage.NewFileLogRepository(path, time.UTC),
		journal,
		LogOptions{LogPath: path, RunID: "run-42", Now: fixedClock(start)},
		discardLogger(),
	)

	msgs := []string{
		"Application started.",
		"An error occurred: Unable to connect to the database.",
		"Application closed.",
	}
	for _, m := range msgs {
		entry, err := u.Write(ctx, m)
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
		if entry.ID == "" || entry.RunID != "run-42" {
			t.Fatalf("unexpected entry %+v", entry)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "[2024-06-14 08:00:00] Application started.\n" +
		"[2024-06-14 08:00:01] An error occurred: Unable to connect to the database.\n" +
		"[2024-06-14 08:00:02] Application closed.\n"
	if string(raw) != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, raw)
	}

	history, err := u.History(ctx, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[1].Message != "Application closed." {
		t.Fatalf("unexpected history %+v", history)
	}
}

type failingJournal struct{}

func (failingJournal) Append(context.Context, entity.LogEntry) error {
	return errors.New("journal down")
}

func (failingJournal) Recent(context.Context, int) ([]entity.LogEntry, error) {
	return nil, errors.New("journal down")
}

func TestLogUseCase_JournalFailureDoesNotBlockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	u := NewLogUseCase(
		storage.NewFileLogRepository(path, time.UTC),
		failingJournal{},
		LogOptions{LogPath: path},
		discardLogger(),
	)

	if _, err := u.Write(context.Background(), "still written"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(raw), "] still written\n") {
		t.Fatalf("unexpected log content %q", raw)
	}
}

func TestLogUseCase_HistoryFallsBackToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.log")
	u := NewLogUseCase(
		storage.NewFileLogRepository(path, time.UTC),
		nil,
		LogOptions{LogPath: path, Now: fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		discardLogger(),
	)

	if _, err := u.Write(ctx, "hello"); err != nil {
		t.Fatal(err)
	}
	history, err := u.History(ctx, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].Message != "hello" {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestLogUseCase_Archive(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.log")
	u := NewLogUseCase(
		storage.NewFileLogRepository(path, time.UTC),
		nil,
		LogOptions{LogPath: path, Now: fixedClock(time.Date(2024, 6, 14, 8, 0, 0, 0, time.UTC))},
		discardLogger(),
	)

	if _, _, err := u.Archive(ctx); !errors.Is(err, fileio.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound before any write, got %v", err)
	}

	if _, err := u.Write(ctx, "archived line"); err != nil {
		t.Fatal(err)
	}
	dst, n, err := u.Archive(ctx)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if dst != path+".20240614080002.zst" {
		t.Fatalf("unexpected archive path %s", dst)
	}
	if n != int64(len("[2024-06-14 08:00:01] archived line\n")) {
		t.Fatalf("unexpected byte count %d", n)
	}
	if !fileio.Exists(path) {
		t.Fatal("archiving must keep the log file")
	}
}

func TestLogUseCase_HistoryReadsLogFromEarlierRun(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("[2024-06-14 12:00:00] Application started.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// a fresh process starts with an empty in-memory journal
	u := NewLogUseCase(
		storage.NewFileLogRepository(path, time.UTC),
		storage.NewMemoryLogRepository(1000),
		LogOptions{LogPath: path},
		discardLogger(),
	)

	history, err := u.History(ctx, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].Message != "Application started." {
		t.Fatalf("expected the line from app.log, got %+v", history)
	}
	want := time.Date(2024, time.June, 14, 12, 0, 0, 0, time.UTC)
	if !history[0].Timestamp.Equal(want) {
		t.Fatalf("expected timestamp %s, got %s", want, history[0].Timestamp)
	}
}

func TestLogUseCase_HistoryFallsBackWhenJournalFails(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.log")
	u := NewLogUseCase(
		storage.NewFileLogRepository(path, time.UTC),
		failingJournal{},
		LogOptions{LogPath: path, Now: fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
		discardLogger(),
	)

	if _, err := u.Write(ctx, "kept"); err != nil {
		t.Fatal(err)
	}
	history, err := u.History(ctx, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].Message != "kept" {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestLogUseCase_MultiLineMessageIsOneLineEverywhere(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.log")
	journal := storage.NewMemoryLogRepository(10)
	u := NewLogUseCase(
		storage.NewFileLogRepository(path, time.UTC),
		journal,
		LogOptions{LogPath: path, Now: fixedClock(time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC))},
		discardLogger(),
	)

	entry, err := u.Write(ctx, "a\nb\r\nc")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if entry.Message != "a b c" {
		t.Fatalf("unexpected entry message %q", entry.Message)
	}

	raw, _ := os.ReadFile(path)
	if string(raw) != "[2024-06-14 12:00:00] a b c\n" {
		t.Fatalf("unexpected file content %q", raw)
	}

	journaled, err := journal.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(journaled) != 1 || journaled[0].Line()+"\n" != string(raw) {
		t.Fatalf("journal and file disagree: %+v vs %q", journaled, raw)
	}
}

// failOnAdd lets the first ok adds through to the wrapped repository.
type failOnAdd struct {
	repository.ProductRepository
	ok    int
	calls int
}

func (r *failOnAdd) Add(ctx context.Context, p entity.Product) error {
	r.calls++
	if r.calls > r.ok {
		return errors.New("disk full")
	}
	return r.ProductRepository.Add(ctx, p)
}

func TestCatalogUseCase_ImportFailureKeepsJSONInStep(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	dir := t.TempDir()

	xlsx := filepath.Join(dir, "catalog.xlsx")
	spreadsheet := parser.NewExcelParser(logger)
	if err := spreadsheet.ExportProducts(ctx, xlsx, []entity.Product{
		{ProductID: "P001", Name: "Laptop", Price: 999, Stock: 10},
		{ProductID: "P002", Name: "Smartphone", Price: 699, Stock: 25},
		{ProductID: "P003", Name: "Tablet", Price: 299, Stock: 30},
	}); err != nil {
		t.Fatalf("ExportProducts: %v", err)
	}

	paths := CatalogPaths{
		CSV:  filepath.Join(dir, "products.csv"),
		JSON: filepath.Join(dir, "products.json"),
	}
	repo := &failOnAdd{ProductRepository: storage.NewCSVProductRepository(paths.CSV, logger), ok: 1}
	u := NewCatalogUseCase(repo, spreadsheet, validation.New(), paths, logger)

	_, err := u.ImportSpreadsheet(ctx, xlsx)
	if err == nil || !strings.Contains(err.Error(), "after 1 of 3") {
		t.Fatalf("expected partial import error, got %v", err)
	}

	var mirrored []map[string]string
	if err := fileio.ReadJSON(paths.JSON, &mirrored); err != nil {
		t.Fatalf("expected json mirror after partial import: %v", err)
	}
	if len(mirrored) != 1 || mirrored[0]["ProductID"] != "P001" {
		t.Fatalf("expected json to match the csv, got %v", mirrored)
	}
}
