package domain

type RecommendationOutcome string

const (
	// OutcomeKeep confirms the current product, no alternative needed.
	OutcomeKeep RecommendationOutcome = "keep"
	// OutcomeAlternative carries a suggested replacement product.
	OutcomeAlternative RecommendationOutcome = "alternative"
	// OutcomeNoAlternative means a replacement is warranted but none exists.
	OutcomeNoAlternative RecommendationOutcome = "no_alternative"
	// OutcomeInsufficientData means the quality rule had no reviews to judge by.
	OutcomeInsufficientData RecommendationOutcome = "insufficient_data"
)

type RecommendationReason string

const (
	ReasonOutOfStock RecommendationReason = "out_of_stock"
	ReasonLowRating  RecommendationReason = "low_rating"
)

// Recommendation is a closed outcome: Alternative is non-nil if and
// only if Outcome is OutcomeAlternative, Reason is set only for the
// alternative/no-alternative outcomes.
type Recommendation struct {
	Outcome     RecommendationOutcome `json:"outcome"`
	Reason      RecommendationReason  `json:"reason,omitempty"`
	Alternative *Product              `json:"alternative,omitempty"`
	Message     string                `json:"message"`
}

func (r Recommendation) NeedsAlternative() bool {
	return r.Outcome == OutcomeAlternative || r.Outcome == OutcomeNoAlternative
}
