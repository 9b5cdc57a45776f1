package domain

// QueryResult merges the outputs of all pipeline stages for one query.
// Terminal output, not retained after being handed to the caller.
type QueryResult struct {
	RunID          string         `json:"run_id"`
	Query          string         `json:"query"`
	Product        RankedProduct  `json:"product"`
	Digest         ReviewDigest   `json:"sentiment_analysis"`
	Answer         string         `json:"answer"`
	Recommendation Recommendation `json:"recommendation"`
}
