package entity

import (
	"strconv"
	"time"
)

// ProductHeader products CSV faylining ustunlari, shu tartibda yoziladi
var ProductHeader = []string{"ProductID", "Name", "Price", "Stock"}

// Product catalog row
type Product struct {
	ProductID string  `json:"ProductID" validate:"required"`
	Name      string  `json:"Name" validate:"required"`
	Price     float64 `json:"Price" validate:"gte=0"`
	Stock     int     `json:"Stock" validate:"gte=0"`
}

// Row returns the product as CSV fields in ProductHeader order.
func (p Product) Row() []string {
	return []string{
		p.ProductID,
		p.Name,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		strconv.Itoa(p.Stock),
	}
}

// ProductCatalog a batch of products loaded from one source file
type ProductCatalog struct {
	Products  []Product
	UpdatedAt time.Time
	Source    string
}
