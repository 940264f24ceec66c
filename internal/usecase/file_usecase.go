package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/infrastructure/fileio"
)

// Example file names inside the data directory.
const (
	ExampleTextFile = "example.txt"
	ExampleCSVFile  = "example.csv"
	PersonJSONFile  = "data.json"
	UsersJSONFile   = "users.json"
)

// ExampleTextLines are written to the text example, in order.
var ExampleTextLines = []string{
	"Hello, Python developers!\n",
	"Welcome to file I/O operations.",
}

// ExamplePeopleRows are written to the CSV example, header first.
var ExamplePeopleRows = [][]string{
	{"Name", "Age", "City"},
	{"Alice", "28", "New York"},
	{"Bob", "22", "Los Angeles"},
	{"Carol", "24", "Chicago"},
}

// ExamplePerson is written to the JSON object example.
var ExamplePerson = entity.Person{Name: "Alice", Age: 30, City: "New York"}

// ExampleUsers are written to the JSON array example.
var ExampleUsers = []entity.User{
	{Name: "Alice", Age: 25, Email: "alice@example.com"},
	{Name: "Bob", Age: 30, Email: "bob@example.com"},
}

// FileUseCase fayl darsining misollari: each method writes one example file
// and returns what was read back from it.
type FileUseCase interface {
	TextRoundTrip(ctx context.Context) (string, error)
	PeopleRoundTrip(ctx context.Context) ([][]string, error)
	PersonRoundTrip(ctx context.Context) (entity.Person, error)
	UsersRoundTrip(ctx context.Context) ([]entity.User, error)

	// ConvertCSVToJSON mirrors any header-keyed CSV file into a JSON array.
	ConvertCSVToJSON(ctx context.Context, src, dst string) (int, error)
}

type fileUseCase struct {
	dataDir string
}

// NewFileUseCase yangi FileUseCase yaratish
func NewFileUseCase(dataDir string) FileUseCase {
	return &fileUseCase{dataDir: dataDir}
}

func (u *fileUseCase) path(name string) string {
	return filepath.Join(u.dataDir, name)
}

// TextRoundTrip matn faylini yozish va o'qish
func (u *fileUseCase) TextRoundTrip(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := u.path(ExampleTextFile)
	if err := fileio.WriteText(path, ExampleTextLines...); err != nil {
		return "", fmt.Errorf("failed to write text example: %w", err)
	}
	return fileio.ReadText(path)
}

// PeopleRoundTrip CSV faylini yozish va o'qish
func (u *fileUseCase) PeopleRoundTrip(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := u.path(ExampleCSVFile)
	if err := fileio.WriteRows(path, ExamplePeopleRows); err != nil {
		return nil, fmt.Errorf("failed to write csv example: %w", err)
	}
	return fileio.ReadRows(path)
}

// PersonRoundTrip JSON obyektini yozish va o'qish
func (u *fileUseCase) PersonRoundTrip(ctx context.Context) (entity.Person, error) {
	if err := ctx.Err(); err != nil {
		return entity.Person{}, err
	}
	path := u.path(PersonJSONFile)
	if err := fileio.WriteJSON(path, ExamplePerson, ""); err != nil {
		return entity.Person{}, fmt.Errorf("failed to write json example: %w", err)
	}

	var person entity.Person
	if err := fileio.ReadJSON(path, &person); err != nil {
		return entity.Person{}, err
	}
	return person, nil
}

// UsersRoundTrip foydalanuvchilar ro'yxatini yozish va o'qish
func (u *fileUseCase) UsersRoundTrip(ctx context.Context) ([]entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := u.path(UsersJSONFile)
	if err := fileio.WriteJSON(path, ExampleUsers, ""); err != nil {
		return nil, fmt.Errorf("failed to write users example: %w", err)
	}
	return fileio.ReadUsers(path)
}

// ConvertCSVToJSON CSV faylni JSON ga aylantirish
func (u *fileUseCase) ConvertCSVToJSON(ctx context.Context, src, dst string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return fileio.CSVToJSON(src, dst)
}
