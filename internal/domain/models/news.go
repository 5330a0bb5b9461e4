package models

import "time"

// NewsArticle is a headline attributed to a symbol.
type NewsArticle struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// SentimentScore is a per-headline classification from the model service.
type SentimentScore struct {
	Label string  `json:"label"` // "positive", "negative", "neutral"
	Score float64 `json:"score"` // signed, [-1, 1]
}

// ScoredArticle pairs an article with its sentiment.
type ScoredArticle struct {
	Article   NewsArticle    `json:"article"`
	Sentiment SentimentScore `json:"sentiment"`
}

// AggregateSentiment summarizes sentiment over recent headlines.
type AggregateSentiment struct {
	Symbol    string          `json:"symbol"`
	Timestamp time.Time       `json:"timestamp"`
	Score     float64         `json:"score"` // weighted mean, [-1, 1]
	Label     string          `json:"label"`
	Counts    map[string]int  `json:"counts"`
	Articles  []ScoredArticle `json:"articles"`
}
