package parser

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/walkthrough/internal/domain/entity"
)

func newTestParser() *excelParser {
	return &excelParser{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestExportThenParse(t *testing.T) {
	ctx := context.Background()
	p := newTestParser()
	path := filepath.Join(t.TempDir(), "out", "products.xlsx")

	products := []entity.Product{
		{ProductID: "P001", Name: "Laptop", Price: 999, Stock: 10},
		{ProductID: "P004", Name: "Tablet", Price: 299.99, Stock: 25},
	}
	if err := p.ExportProducts(ctx, path, products); err != nil {
		t.Fatalf("ExportProducts: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	sheets := f.GetSheetList()
	f.Close()
	if len(sheets) != 1 || sheets[0] != ProductsSheet {
		t.Fatalf("expected a single %s sheet, got %v", ProductsSheet, sheets)
	}

	got, err := p.ParseProducts(ctx, path)
	if err != nil {
		t.Fatalf("ParseProducts: %v", err)
	}
	if !reflect.DeepEqual(got, products) {
		t.Fatalf("expected %v, got %v", products, got)
	}
}

func TestParseProducts_HeaderSynonymsAndBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"SKU", "Product Name", "Price (USD)", "Qty"},
		{"P010", "Monitor", "$1,299.50", "3"},
		{"", "", "", ""},
		{"P011", "Keyboard", "cheap", "5"},
		{"", "Mouse", "20", "1"},
		{"P012", "Headset", "", ""},
		{"P013", "Cable", "5", "10.9"},
	})

	got, err := newTestParser().ParseProducts(context.Background(), path)
	if err != nil {
		t.Fatalf("ParseProducts: %v", err)
	}

	want := []entity.Product{
		{ProductID: "P010", Name: "Monitor", Price: 1299.5, Stock: 3},
		{ProductID: "P012", Name: "Headset"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseProducts_Errors(t *testing.T) {
	dir := t.TempDir()

	noID := filepath.Join(dir, "noid.xlsx")
	writeWorkbook(t, noID, [][]interface{}{
		{"Name", "Price"},
		{"Laptop", "999"},
	})

	headerOnly := filepath.Join(dir, "header.xlsx")
	writeWorkbook(t, headerOnly, [][]interface{}{
		{"ProductID", "Name"},
	})

	allBad := filepath.Join(dir, "bad.xlsx")
	writeWorkbook(t, allBad, [][]interface{}{
		{"ProductID", "Name", "Price"},
		{"P1", "Laptop", "free"},
	})

	tests := []struct {
		name string
		path string
		msg  string
	}{
		{"missing file", filepath.Join(dir, "missing.xlsx"), "failed to open"},
		{"no id column", noID, "no id column"},
		{"header only", headerOnly, "no data"},
		{"all rows invalid", allBad, "no valid products"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser().ParseProducts(context.Background(), tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("expected error containing %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"299.99", 299.99, false},
		{"$1,000", 1000, false},
		{" 12 usd ", 12, false},
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePrice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePrice(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseStock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"25", 25, false},
		{" 1,200 ", 1200, false},
		{"0", 0, false},
		{"10.9", 0, true},
		{"10.0", 0, true},
		{"", 0, true},
		{"many", 0, true},
	}

	for _, tt := range tests {
		got, err := parseStock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseStock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseStock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
