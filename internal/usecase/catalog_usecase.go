package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/domain/repository"
	"github.com/yourusername/walkthrough/internal/infrastructure/fileio"
	"github.com/yourusername/walkthrough/internal/pkg/validation"
)

// CatalogUseCase mahsulot katalogi bilan bog'liq business logic
type CatalogUseCase interface {
	// AddProduct validates and appends one product to the CSV catalog.
	AddProduct(ctx context.Context, product entity.Product) error

	// SyncJSON mirrors the CSV catalog into the JSON file.
	SyncJSON(ctx context.Context) (int, error)

	// GetAll barcha mahsulotlarni olish
	GetAll(ctx context.Context) ([]entity.Product, error)

	// ExportSpreadsheet writes the catalog to an xlsx workbook.
	ExportSpreadsheet(ctx context.Context, path string) (int, error)

	// ImportSpreadsheet appends every product of an xlsx workbook, then syncs JSON.
	// Validation runs before any write. A write failure leaves the rows added
	// so far in the CSV, and the JSON mirror is re-synced to match them.
	ImportSpreadsheet(ctx context.Context, path string) (*entity.ProductCatalog, error)
}

// CatalogPaths are the files the catalog is kept in.
type CatalogPaths struct {
	CSV  string
	JSON string
}

type catalogUseCase struct {
	productRepo repository.ProductRepository
	spreadsheet repository.SpreadsheetParser
	validator   *validation.PlaygroundValidator
	paths       CatalogPaths
	logger      *slog.Logger
}

// NewCatalogUseCase yangi CatalogUseCase yaratish
func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	spreadsheet repository.SpreadsheetParser,
	validator *validation.PlaygroundValidator,
	paths CatalogPaths,
	logger *slog.Logger,
) CatalogUseCase {
	return &catalogUseCase{
		productRepo: productRepo,
		spreadsheet: spreadsheet,
		validator:   validator,
		paths:       paths,
		logger:      logger,
	}
}

// AddProduct mahsulotni katalogga qo'shish
func (u *catalogUseCase) AddProduct(ctx context.Context, product entity.Product) error {
	if err := u.validator.Struct(product); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}
	if err := u.productRepo.Add(ctx, product); err != nil {
		return err
	}

	u.logger.Info("product added", slog.String("product_id", product.ProductID), slog.String("csv", u.paths.CSV))
	return nil
}

// SyncJSON CSV katalogni JSON faylga ko'chirish
func (u *catalogUseCase) SyncJSON(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := fileio.CSVToJSON(u.paths.CSV, u.paths.JSON)
	if err != nil {
		return 0, err
	}

	u.logger.Info("catalog mirrored", slog.String("csv", u.paths.CSV), slog.String("json", u.paths.JSON), slog.Int("records", n))
	return n, nil
}

// GetAll barcha mahsulotlarni olish
func (u *catalogUseCase) GetAll(ctx context.Context) ([]entity.Product, error) {
	return u.productRepo.GetAll(ctx)
}

// ExportSpreadsheet katalogni Excel faylga eksport qilish
func (u *catalogUseCase) ExportSpreadsheet(ctx context.Context, path string) (int, error) {
	products, err := u.productRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog: %w", err)
	}
	if err := u.spreadsheet.ExportProducts(ctx, path, products); err != nil {
		return 0, err
	}

	u.logger.Info("catalog exported", slog.String("xlsx", path), slog.Int("products", len(products)))
	return len(products), nil
}

// ImportSpreadsheet Excel fayldan katalogni yuklash
func (u *catalogUseCase) ImportSpreadsheet(ctx context.Context, path string) (*entity.ProductCatalog, error) {
	products, err := u.spreadsheet.ParseProducts(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse excel: %w", err)
	}

	// validate everything first so a bad row leaves the CSV untouched
	for _, p := range products {
		if err := u.validator.Struct(p); err != nil {
			return nil, fmt.Errorf("invalid product %s: %w", p.ProductID, err)
		}
	}
	for i, p := range products {
		if err := u.productRepo.Add(ctx, p); err != nil {
			// rows before i are already in the CSV; keep the JSON mirror in step
			if i > 0 {
				if _, syncErr := u.SyncJSON(context.WithoutCancel(ctx)); syncErr != nil {
					u.logger.Warn("failed to mirror partial import", slog.String("error", syncErr.Error()))
				}
			}
			return nil, fmt.Errorf("import stopped after %d of %d products: %w", i, len(products), err)
		}
	}

	if _, err := u.SyncJSON(ctx); err != nil {
		return nil, err
	}

	catalog := &entity.ProductCatalog{
		Products:  products,
		UpdatedAt: time.Now(),
		Source:    path,
	}

	u.logger.Info("catalog imported", slog.String("xlsx", path), slog.Int("products", len(products)))
	return catalog, nil
}
