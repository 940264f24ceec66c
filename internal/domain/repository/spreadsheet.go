package repository

import (
	"context"

	"github.com/yourusername/walkthrough/internal/domain/entity"
)

// SpreadsheetParser xlsx fayllar bilan ishlash uchun interface
type SpreadsheetParser interface {
	// ParseProducts xlsx fayldan mahsulotlarni o'qish
	ParseProducts(ctx context.Context, filePath string) ([]entity.Product, error)

	// ExportProducts writes products to a new workbook at filePath.
	ExportProducts(ctx context.Context, filePath string, products []entity.Product) error
}
