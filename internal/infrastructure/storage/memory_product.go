package storage

import (
	"context"
	"sync"

	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/domain/repository"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	products []entity.Product
}

// NewMemoryProductRepository in-memory product repository yaratish
func NewMemoryProductRepository() repository.ProductRepository {
	return &memoryProductRepository{}
}

// Add mahsulotni saqlash
func (m *memoryProductRepository) Add(ctx context.Context, product entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = append(m.products, product)
	return nil
}

// GetAll barcha mahsulotlarni olish
func (m *memoryProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]entity.Product, len(m.products))
	copy(products, m.products)
	return products, nil
}
