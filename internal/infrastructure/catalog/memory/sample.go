package memory

import "github.com/kirillkom/product-advisor/internal/core/domain"

// NewSampleSource builds the built-in demo catalog. Used when no
// database or spreadsheet backend is configured.
func NewSampleSource() *Source {
	return NewSource(sampleProducts(), sampleReviews())
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "P001", Title: "Gaming Laptop Pro 15", Description: "High-performance laptop with RTX 4060, 16GB RAM, perfect for gaming and video editing", Category: "Laptops", Price: 1299.99, Stock: 15},
		{ID: "P002", Title: "Budget Office Laptop", Description: "Affordable laptop for basic tasks, web browsing, and office work", Category: "Laptops", Price: 449.99, Stock: 25},
		{ID: "P003", Title: "Gaming Phone X1", Description: "Flagship phone with Snapdragon 8 Gen 3, 120Hz display, excellent for mobile gaming", Category: "Phones", Price: 899.99, Stock: 30},
		{ID: "P004", Title: "Professional Video Camera", Description: "4K video camera with advanced stabilization, perfect for content creators", Category: "Cameras", Price: 1599.99, Stock: 8},
		{ID: "P005", Title: "MacBook Pro M3", Description: "Professional laptop with M3 chip, excellent for video editing and creative work", Category: "Laptops", Price: 1999.99, Stock: 12},
		{ID: "P006", Title: "Budget Smartphone", Description: "Affordable smartphone for everyday use, decent camera and battery life", Category: "Phones", Price: 299.99, Stock: 0},
	}
}

func sampleReviews() []domain.Review {
	return []domain.Review{
		{ProductID: "P001", Body: "Amazing laptop! Runs all games smoothly. Great for video editing too.", Rating: 5},
		{ProductID: "P001", Body: "Good performance but gets hot during intensive tasks.", Rating: 4},
		{ProductID: "P001", Body: "Best laptop I've owned. Worth every penny!", Rating: 5},
		{ProductID: "P001", Body: "A bit expensive but the quality justifies it.", Rating: 4},

		{ProductID: "P002", Body: "Perfect for basic tasks but slow for gaming or heavy software.", Rating: 3},
		{ProductID: "P002", Body: "Great value for money for office work.", Rating: 4},
		{ProductID: "P002", Body: "Does what it says. Good budget option.", Rating: 4},
		{ProductID: "P002", Body: "Screen quality could be better.", Rating: 3},

		{ProductID: "P003", Body: "Excellent gaming performance! Screen is stunning.", Rating: 5},
		{ProductID: "P003", Body: "Battery drains fast during gaming sessions.", Rating: 3},
		{ProductID: "P003", Body: "Best phone for mobile gaming hands down.", Rating: 5},
		{ProductID: "P003", Body: "Great display and smooth performance.", Rating: 5},

		{ProductID: "P004", Body: "Professional quality video. Amazing stabilization.", Rating: 5},
		{ProductID: "P004", Body: "Pricey but worth it for content creation.", Rating: 4},
		{ProductID: "P004", Body: "Best camera I've used for vlogging.", Rating: 5},

		{ProductID: "P005", Body: "Incredible performance for video editing. Fast render times.", Rating: 5},
		{ProductID: "P005", Body: "Expensive but the M3 chip is a game changer.", Rating: 5},
		{ProductID: "P005", Body: "Best laptop for creative professionals.", Rating: 5},

		{ProductID: "P006", Body: "Decent for the price but camera is mediocre.", Rating: 3},
		{ProductID: "P006", Body: "Battery life is poor. Disappointing.", Rating: 2},
	}
}
