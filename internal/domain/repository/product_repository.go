package repository

import (
	"context"

	"github.com/yourusername/walkthrough/internal/domain/entity"
)

// ProductRepository mahsulotlar bilan ishlash uchun interface
type ProductRepository interface {
	// Add appends one product. A store that has a header writes it only when
	// the store did not exist before the call.
	Add(ctx context.Context, product entity.Product) error

	// GetAll barcha mahsulotlarni olish, in insertion order
	GetAll(ctx context.Context) ([]entity.Product, error)
}
