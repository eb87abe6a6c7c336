package clients

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/newslens/newslens/internal/metrics"
	"github.com/newslens/newslens/internal/models"
	"github.com/newslens/newslens/internal/normalize"
)

// RSS_FEEDS maps "category_language" keys onto curated feed URLs. RSS is the
// preferred article source; the NewsAPI search only runs when a feed yields
// nothing.
var RSS_FEEDS = map[string]string{
	"finance_en":    "https://rss.cnn.com/rss/money_news_international.rss",
	"finance_hi":    "https://www.bbc.com/hindi/index.xml",
	"healthcare_en": "https://www.who.int/rss-feeds/news-english.xml",
	"healthcare_hi": "https://www.bbc.com/hindi/science-and-environment/index.xml",
	"education_en":  "https://www.theguardian.com/education/rss",
	"education_hi":  "https://www.bbc.com/hindi/india/index.xml",
}

const RSS_CACHE_TTL_SECONDS = 300

// RSSClient fetches curated category feeds, optionally caching parsed
// payloads in Valkey for RSS_CACHE_TTL_SECONDS.
type RSSClient struct {
	Parser *gofeed.Parser
	Feeds  map[string]string
	Cache  *ValkeyClient
}

// NewRSSClient builds a client over the curated registry. cache may be nil.
func NewRSSClient(cache *ValkeyClient) *RSSClient {
	parser := gofeed.NewParser()
	parser.UserAgent = USER_AGENT
	return &RSSClient{Parser: parser, Feeds: RSS_FEEDS, Cache: cache}
}

// FetchCategoryFeed returns up to MAX_ARTICLES_PER_FETCH articles for one
// category and language. Unknown category/language pairs and upstream
// failures both come back as an empty slice: the caller falls through to the
// search adapter either way.
func (r *RSSClient) FetchCategoryFeed(ctx context.Context, category, language string) ([]models.Article, error) {
	feedURL, ok := r.Feeds[category+"_"+language]
	if !ok {
		slog.Warn("[RSSClient] No feed registered",
			slog.String("category", category),
			slog.String("language", language))
		return nil, nil
	}

	metrics.FetchRequests.WithLabelValues("rss").Inc()

	cacheKey := "rss:payload:" + feedURL
	if payload, ok := r.Cache.GetCachedPayload(ctx, cacheKey); ok {
		var cached []models.Article
		if err := json.Unmarshal(payload, &cached); err == nil {
			slog.Info("[RSSClient] Serving cached feed",
				slog.String("category", category),
				slog.String("language", language))
			return cached, nil
		}
	}

	start := time.Now()
	feed, err := r.Parser.ParseURLWithContext(feedURL, ctx)
	metrics.FetchDuration.WithLabelValues("rss").Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Warn("[RSSClient] Feed fetch failed",
			slog.String("url", feedURL),
			slog.String("error", err.Error()))
		metrics.FetchErrors.WithLabelValues("rss").Inc()
		return nil, nil
	}

	var articles []models.Article
	for _, item := range feed.Items {
		if len(articles) >= MAX_ARTICLES_PER_FETCH {
			break
		}
		published := item.Published
		if published == "" {
			published = "Unknown"
		}
		articles = append(articles, models.Article{
			Title:       strings.TrimSpace(item.Title),
			Description: normalizeDescription(item.Description),
			URL:         item.Link,
			PublishedAt: published,
			Language:    language,
			Source:      "rss",
		})
	}

	if len(articles) > 0 {
		if payload, err := json.Marshal(articles); err == nil {
			if err := r.Cache.CachePayload(ctx, cacheKey, payload, RSS_CACHE_TTL_SECONDS); err != nil {
				slog.Warn("[RSSClient] Failed to cache feed payload",
					slog.String("error", err.Error()))
			}
		}
	}

	slog.Info("[RSSClient] Feed fetch complete",
		slog.String("category", category),
		slog.String("language", language),
		slog.Int("articles", len(articles)))
	return articles, nil
}

// normalizeDescription flattens markup out of a summary, substitutes a
// fallback for empty ones, and truncates long ones at 200 characters with an
// ellipsis. Truncation counts runes so multibyte text never splits.
func normalizeDescription(raw string) string {
	text := strings.TrimSpace(normalize.HTMLToText(raw))
	if text == "" {
		return "No description"
	}
	runes := []rune(text)
	if len(runes) > 200 {
		return string(runes[:200]) + "..."
	}
	return text
}
