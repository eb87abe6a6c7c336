package models

// Article is the unit flowing through the aggregation pipeline. Adapters
// populate the fetch fields only; the four derived fields are attached by the
// pipeline after fetch, all at once per record.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Language    string `json:"language"`
	Source      string `json:"source"`

	SentimentLabel   string  `json:"sentiment_label,omitempty" dynamodbav:"sentiment_label,omitempty"`
	SentimentDisplay string  `json:"sentiment_display,omitempty" dynamodbav:"sentiment_display,omitempty"`
	SentimentScore   float64 `json:"sentiment_score,omitempty" dynamodbav:"sentiment_score,omitempty"`
	EmojiSentiment   string  `json:"emoji_sentiment,omitempty" dynamodbav:"emoji_sentiment,omitempty"`
	FakeNewsLabel    string  `json:"fake_news_label,omitempty" dynamodbav:"fake_news_label,omitempty"`
}

// DateRange is an inclusive publication-date window, both ends formatted as
// YYYY-MM-DD.
type DateRange struct {
	Start string
	End   string
}

// Contains reports whether the date portion of a publish timestamp falls
// inside the range. Upstream APIs have been seen ignoring their own date
// filters, so adapters re-check on the client side.
func (r DateRange) Contains(publishedAt string) bool {
	if len(publishedAt) < 10 {
		return false
	}
	day := publishedAt[:10]
	return r.Start <= day && day <= r.End
}
