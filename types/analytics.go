package types

// Analytics read models computed by the external analysis service and
// consumed by the dashboard. The backend proxies them; it never computes
// sentiment or keyword statistics itself.

// KeyValuePair is a generic labelled count in an analysis result.
type KeyValuePair struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// FeedbackAnalysis is the aggregate analysis across all feedback.
type FeedbackAnalysis struct {
	AverageRating      float64        `json:"averageRating"`
	TotalFeedback      int            `json:"totalFeedback"`
	FeedbackTypeCounts []KeyValuePair `json:"feedbackTypeCounts"`
	SentimentCounts    []KeyValuePair `json:"sentimentCounts"`
}

// SentimentBreakdown counts feedback messages per sentiment class.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// ServiceAnalysis is the per-service analysis.
type ServiceAnalysis struct {
	Service            string             `json:"service"`
	TotalFeedback      int                `json:"totalFeedback"`
	AverageRating      float64            `json:"averageRating"`
	AverageSentiment   float64            `json:"averageSentiment"`
	SentimentBreakdown SentimentBreakdown `json:"sentimentBreakdown"`
	TopKeywords        []string           `json:"topKeywords"`
}
