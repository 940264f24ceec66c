package parser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/domain/repository"
)

// ProductsSheet is the sheet written by ExportProducts.
const ProductsSheet = "Products"

type excelParser struct {
	logger *slog.Logger
}

// NewExcelParser yangi Excel parser yaratish
func NewExcelParser(logger *slog.Logger) repository.SpreadsheetParser {
	return &excelParser{logger: logger}
}

// ParseProducts Excel fayldan mahsulotlarni o'qish
func (e *excelParser) ParseProducts(ctx context.Context, filePath string) ([]entity.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(ctx, f)
}

// ExportProducts mahsulotlarni Excel faylga yozish
func (e *excelParser) ExportProducts(ctx context.Context, filePath string, products []entity.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProductsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(entity.ProductHeader))
	for i, h := range entity.ProductHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(ProductsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range products {
		if err := ctx.Err(); err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.ProductID, p.Name, p.Price, p.Stock}
		if err := f.SetSheetRow(ProductsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.ProductID, err)
		}
	}

	if dir := filepath.Dir(filePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save excel file: %w", err)
	}

	e.logger.Debug("workbook exported", slog.String("path", filePath), slog.Int("products", len(products)))
	return nil
}

// parseExcelFile Excel faylni parse qilish
func (e *excelParser) parseExcelFile(ctx context.Context, f *excelize.File) ([]entity.Product, error) {
	// Birinchi sheet ni olish
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("excel file has no data")
	}

	columnMap := e.mapColumns(rows[0])
	for _, field := range []string{"id", "name"} {
		if _, ok := columnMap[field]; !ok {
			return nil, fmt.Errorf("excel header has no %s column: %v", field, rows[0])
		}
	}

	var products []entity.Product
	for i := 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := rows[i]

		// Bo'sh qatorlarni skip qilish
		if isEmptyRow(row) {
			continue
		}

		product := entity.Product{
			ProductID: cellAt(row, columnMap, "id"),
			Name:      cellAt(row, columnMap, "name"),
		}
		if product.ProductID == "" || product.Name == "" {
			e.logger.Warn("row without id or name skipped", slog.Int("row", i+1))
			continue
		}

		if raw := cellAt(row, columnMap, "price"); raw != "" {
			price, err := parsePrice(raw)
			if err != nil {
				e.logger.Warn("invalid price, row skipped", slog.Int("row", i+1), slog.String("price", raw))
				continue
			}
			product.Price = price
		}

		if raw := cellAt(row, columnMap, "stock"); raw != "" {
			stock, err := parseStock(raw)
			if err != nil {
				e.logger.Warn("invalid stock, row skipped", slog.Int("row", i+1), slog.String("stock", raw))
				continue
			}
			product.Stock = stock
		}

		products = append(products, product)
	}

	e.logger.Debug("workbook parsed", slog.Int("rows", len(rows)-1), slog.Int("products", len(products)))

	if len(products) == 0 {
		return nil, fmt.Errorf("no valid products found in excel file (parsed %d rows, but all were invalid)", len(rows)-1)
	}

	return products, nil
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, columnMap map[string]int, field string) string {
	idx, ok := columnMap[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// mapColumns header qatoridan column mapping yaratish. The first matching
// column wins.
func (e *excelParser) mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)

	for i, col := range header {
		colName := strings.ToLower(strings.TrimSpace(col))

		var field string
		switch {
		case contains(colName, "productid", "product id", "product_id", "sku", "code") || colName == "id":
			field = "id"
		case contains(colName, "name", "nom", "product", "title"):
			field = "name"
		case contains(colName, "price", "narx", "cost", "$", "usd"):
			field = "price"
		case contains(colName, "stock", "soni", "qty", "quantity"):
			field = "stock"
		default:
			continue
		}

		if _, taken := columnMap[field]; !taken {
			columnMap[field] = i
		}
	}

	e.logger.Debug("column mapping from header", slog.Any("columns", columnMap))
	return columnMap
}

// contains tekshirish uchun helper
func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}

// parsePrice narxni parse qilish
func parsePrice(priceStr string) (float64, error) {
	priceStr = strings.ToLower(strings.TrimSpace(priceStr))
	if priceStr == "" {
		return 0, fmt.Errorf("empty price")
	}

	// Tozalash
	for _, junk := range []string{",", " ", "$", "€", "£", "usd", "eur"} {
		priceStr = strings.ReplaceAll(priceStr, junk, "")
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price format: %s", priceStr)
	}

	return price, nil
}

// parseStock soni butun son bo'lishi kerak; "10.9" is rejected, not truncated.
func parseStock(stockStr string) (int, error) {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(strings.TrimSpace(stockStr))
	if cleaned == "" {
		return 0, fmt.Errorf("empty stock")
	}

	stock, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid stock format: %s", stockStr)
	}

	return stock, nil
}
