package models

// Comment is a single social-platform comment after reply flattening.
type Comment struct {
	Text        string `json:"text"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
	Sentiment   string `json:"sentiment,omitempty"`
}

// SentimentDistribution counts canonical labels across a comment set.
type SentimentDistribution struct {
	Positive int `json:"Positive"`
	Negative int `json:"Negative"`
	Neutral  int `json:"Neutral"`
}

// CommentAnalysis is the response body for the social analyze endpoints.
type CommentAnalysis struct {
	Comments              []Comment             `json:"comments"`
	SentimentDistribution SentimentDistribution `json:"sentimentDistribution"`
	TotalComments         int                   `json:"totalComments"`
}
