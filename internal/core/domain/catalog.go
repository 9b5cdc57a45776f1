package domain

const (
	StockLabelInStock    = "In Stock"
	StockLabelOutOfStock = "Out of Stock"
)

type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

func (p Product) StockLabel() string {
	if p.Stock > 0 {
		return StockLabelInStock
	}
	return StockLabelOutOfStock
}

type Review struct {
	ProductID string `json:"product_id"`
	Body      string `json:"body"`
	Rating    int    `json:"rating"`
}

// Valid reports whether the review may enter aggregation.
// Out-of-range ratings and blank bodies corrupt averages silently,
// so sources must drop them at ingestion.
func (r Review) Valid() bool {
	if r.Rating < 1 || r.Rating > 5 {
		return false
	}
	return trimmedNonEmpty(r.Body)
}

// RankedProduct is a catalog product enriched with query relevance.
// Created fresh per search, never persisted.
type RankedProduct struct {
	Product
	Score       float64 `json:"relevance_score"`
	StockStatus string  `json:"stock_status"`
}

type CatalogStats struct {
	TotalProducts int      `json:"total_products"`
	Categories    []string `json:"categories"`
	InStock       int      `json:"in_stock"`
	OutOfStock    int      `json:"out_of_stock"`
}

func trimmedNonEmpty(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
