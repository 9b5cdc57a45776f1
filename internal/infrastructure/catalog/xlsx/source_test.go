package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, products [][]any, reviews [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(productsSheet); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if _, err := f.NewSheet(reviewsSheet); err != nil {
		t.Fatalf("new sheet: %v", err)
	}

	header := []any{"id", "title", "description", "category", "price", "stock"}
	if err := f.SetSheetRow(productsSheet, "A1", &header); err != nil {
		t.Fatalf("set header: %v", err)
	}
	for i, row := range products {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(productsSheet, cell, &row); err != nil {
			t.Fatalf("set product row: %v", err)
		}
	}

	reviewHeader := []any{"product_id", "review_text", "rating"}
	if err := f.SetSheetRow(reviewsSheet, "A1", &reviewHeader); err != nil {
		t.Fatalf("set header: %v", err)
	}
	for i, row := range reviews {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(reviewsSheet, cell, &row); err != nil {
			t.Fatalf("set review row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t,
		[][]any{
			{"P001", "Gaming Laptop Pro 15", "High-performance laptop", "Laptops", 1299.99, 15},
			{"P006", "Budget Smartphone", "Affordable smartphone", "Phones", 299.99, 0},
		},
		[][]any{
			{"P001", "Amazing laptop!", 5},
			{"P001", "Gets hot under load.", 4},
		},
	)

	source, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	products, err := source.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("products = %d, want 2", len(products))
	}
	if products[0].Price != 1299.99 || products[0].Stock != 15 {
		t.Errorf("first product = %+v", products[0])
	}

	reviews, err := source.ListReviews(context.Background(), "P001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 2 {
		t.Errorf("reviews = %d, want 2", len(reviews))
	}
}

func TestLoad_SkipsMalformedRows(t *testing.T) {
	path := writeWorkbook(t,
		[][]any{
			{"P001", "Gaming Laptop Pro 15", "desc", "Laptops", 1299.99, 15},
			{"P002", "Broken Row", "desc", "Laptops", "not-a-price", 5},
			{"", "Missing ID", "desc", "Laptops", 10.0, 5},
		},
		[][]any{
			{"P001", "Fine review", 5},
			{"P001", "Bad rating", "five"},
		},
	)

	source, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	products, _ := source.ListProducts(context.Background())
	if len(products) != 1 {
		t.Errorf("products = %d, want only the well-formed one", len(products))
	}
	reviews, _ := source.ListReviews(context.Background(), "P001")
	if len(reviews) != 1 {
		t.Errorf("reviews = %d, want only the well-formed one", len(reviews))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Fatal("expected an error for a missing workbook")
	}
}
