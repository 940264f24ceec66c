package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/domain/repository"
	"github.com/yourusername/walkthrough/internal/infrastructure/fileio"
)

type csvProductRepository struct {
	path   string
	logger *slog.Logger
}

// NewCSVProductRepository CSV fayl asosidagi product repository yaratish
func NewCSVProductRepository(path string, logger *slog.Logger) repository.ProductRepository {
	return &csvProductRepository{path: path, logger: logger}
}

// Add mahsulotni CSV faylga qo'shish
func (r *csvProductRepository) Add(ctx context.Context, product entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	wroteHeader, err := fileio.AppendRow(r.path, entity.ProductHeader, product.Row())
	if err != nil {
		return fmt.Errorf("failed to add product %s: %w", product.ProductID, err)
	}

	r.logger.Debug("product appended",
		slog.String("path", r.path),
		slog.String("product_id", product.ProductID),
		slog.Bool("header_written", wroteHeader),
	)
	return nil
}

// GetAll barcha mahsulotlarni olish
func (r *csvProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := fileio.ReadRecords(r.path)
	if err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(records))
	for i, rec := range records {
		p, err := productFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", r.path, i+2, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func productFromRecord(rec entity.Record) (entity.Product, error) {
	var p entity.Product
	p.ProductID, _ = rec.Get("ProductID")
	p.Name, _ = rec.Get("Name")

	if raw, _ := rec.Get("Price"); strings.TrimSpace(raw) != "" {
		price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return p, fmt.Errorf("invalid price %q: %w", raw, err)
		}
		p.Price = price
	}
	if raw, _ := rec.Get("Stock"); strings.TrimSpace(raw) != "" {
		stock, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return p, fmt.Errorf("invalid stock %q: %w", raw, err)
		}
		p.Stock = stock
	}
	return p, nil
}
