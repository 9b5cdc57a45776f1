package xlsx

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/product-advisor/internal/core/domain"
	"github.com/kirillkom/product-advisor/internal/infrastructure/catalog/memory"
)

const (
	productsSheet = "Products"
	reviewsSheet  = "Reviews"
)

// Load reads a catalog workbook into an in-memory source. The workbook
// needs a Products sheet (id, title, description, category, price,
// stock) and a Reviews sheet (product_id, review_text, rating), each
// with a header row. Malformed rows are skipped, not fatal.
func Load(path string) (*memory.Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog workbook: %w", err)
	}
	defer f.Close()

	products, err := readProducts(f)
	if err != nil {
		return nil, err
	}
	reviews, err := readReviews(f)
	if err != nil {
		return nil, err
	}

	slog.Info("catalog_workbook_loaded", "path", path, "products", len(products), "reviews", len(reviews))
	return memory.NewSource(products, reviews), nil
}

func readProducts(f *excelize.File) ([]domain.Product, error) {
	rows, err := f.GetRows(productsSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", productsSheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s sheet has no data rows", productsSheet)
	}

	var products []domain.Product
	skipped := 0
	for _, row := range rows[1:] {
		product, ok := parseProductRow(row)
		if !ok {
			skipped++
			continue
		}
		products = append(products, product)
	}
	if skipped > 0 {
		slog.Warn("product_rows_skipped", "skipped", skipped)
	}
	return products, nil
}

func parseProductRow(row []string) (domain.Product, bool) {
	if len(row) < 6 {
		return domain.Product{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil {
		return domain.Product{}, false
	}
	stock, err := strconv.Atoi(strings.TrimSpace(row[5]))
	if err != nil {
		return domain.Product{}, false
	}
	id := strings.TrimSpace(row[0])
	title := strings.TrimSpace(row[1])
	if id == "" || title == "" {
		return domain.Product{}, false
	}
	return domain.Product{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(row[2]),
		Category:    strings.TrimSpace(row[3]),
		Price:       price,
		Stock:       stock,
	}, true
}

func readReviews(f *excelize.File) ([]domain.Review, error) {
	rows, err := f.GetRows(reviewsSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", reviewsSheet, err)
	}

	var reviews []domain.Review
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 3 {
			skipped++
			continue
		}
		rating, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			skipped++
			continue
		}
		reviews = append(reviews, domain.Review{
			ProductID: strings.TrimSpace(row[0]),
			Body:      row[1],
			Rating:    rating,
		})
	}
	if skipped > 0 {
		slog.Warn("review_rows_skipped", "skipped", skipped)
	}
	return reviews, nil
}
