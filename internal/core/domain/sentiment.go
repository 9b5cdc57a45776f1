package domain

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

const (
	OverallPositive  = "Positive"
	OverallNegative  = "Negative"
	OverallMixed     = "Mixed"
	OverallNoReviews = "No reviews"
)

// ReviewDigest is the per-product review aggregate. Percentages sum
// to ~100 when TotalReviews > 0 and are all zero otherwise.
type ReviewDigest struct {
	TotalReviews    int      `json:"total_reviews"`
	AvgRating       float64  `json:"avg_rating"`
	PositivePercent float64  `json:"positive_percent"`
	NegativePercent float64  `json:"negative_percent"`
	NeutralPercent  float64  `json:"neutral_percent"`
	Overall         string   `json:"sentiment"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
}

func NoReviewsDigest() ReviewDigest {
	return ReviewDigest{
		Overall: OverallNoReviews,
		Pros:    []string{},
		Cons:    []string{},
	}
}

// FallbackSentiment derives a sentiment label from the numeric rating.
// Used when the summarization call yields fewer labels than reviews.
func FallbackSentiment(rating int) string {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating <= 2:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
