package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kirillkom/product-advisor/internal/bootstrap"
	"github.com/kirillkom/product-advisor/internal/config"
	"github.com/kirillkom/product-advisor/internal/core/domain"
)

// Console demo: runs a few canned questions against the catalog and
// prints the full pipeline output for each. Pass your own questions as
// arguments to override the canned set.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, "advisor")
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	queries := os.Args[1:]
	if len(queries) == 0 {
		queries = []string{
			"Is this laptop good for video editing?",
			"I need a phone for gaming",
			"What's a good budget laptop for office work?",
		}
	}

	for i, query := range queries {
		if ctx.Err() != nil {
			return
		}
		result, err := app.Processor.Process(ctx, query)
		if err != nil {
			fmt.Printf("query %q failed: %v\n", query, err)
			continue
		}
		printResult(result)

		if i < len(queries)-1 {
			time.Sleep(2 * time.Second)
		}
	}
}

func printResult(result *domain.QueryResult) {
	divider := strings.Repeat("=", 60)

	fmt.Println(divider)
	fmt.Printf("Query: %s\n", result.Query)
	fmt.Println(divider)

	product := result.Product
	fmt.Printf("Product:   %s\n", product.Title)
	fmt.Printf("Category:  %s\n", product.Category)
	fmt.Printf("Price:     $%.2f\n", product.Price)
	fmt.Printf("Stock:     %s (%d units)\n", product.StockStatus, product.Stock)
	fmt.Printf("Relevance: %.1f\n", product.Score)

	digest := result.Digest
	fmt.Println("\nReview analysis:")
	fmt.Printf("  %d reviews | %.1f/5 stars\n", digest.TotalReviews, digest.AvgRating)
	fmt.Printf("  %.1f%% positive / %.1f%% negative / %.1f%% neutral\n",
		digest.PositivePercent, digest.NegativePercent, digest.NeutralPercent)
	fmt.Printf("  Overall: %s\n", digest.Overall)
	if len(digest.Pros) > 0 {
		fmt.Println("  Pros:")
		for _, pro := range digest.Pros {
			fmt.Printf("    - %s\n", pro)
		}
	}
	if len(digest.Cons) > 0 {
		fmt.Println("  Cons:")
		for _, con := range digest.Cons {
			fmt.Printf("    - %s\n", con)
		}
	}

	fmt.Printf("\nAnswer: %s\n", result.Answer)

	rec := result.Recommendation
	fmt.Printf("\nRecommendation [%s]: %s\n", rec.Outcome, rec.Message)
	if rec.Alternative != nil {
		fmt.Printf("Alternative: %s ($%.2f)\n", rec.Alternative.Title, rec.Alternative.Price)
	}
	fmt.Println()
}
