package pipeline

import (
	"context"
	"log/slog"

	"github.com/newslens/newslens/internal/models"
	"github.com/newslens/newslens/internal/sentiment"
)

// Languages the aggregation covers when the caller does not narrow it.
var SupportedLanguages = []string{"en", "hi"}

// FeedFetcher is the preferred per-category article source.
type FeedFetcher interface {
	FetchCategoryFeed(ctx context.Context, category, language string) ([]models.Article, error)
}

// SearchFetcher is the fallback article source for categories whose feed
// came back empty.
type SearchFetcher interface {
	FetchEverything(ctx context.Context, category, language string, window models.DateRange) ([]models.Article, error)
}

// Classifier labels a headline Real, Fake or Unknown.
type Classifier interface {
	Classify(text string) string
}

// Aggregator runs the per-language fetch-then-enrich sequence: curated feed
// first, search fallback on empty, then the derived sentiment and
// authenticity fields on every record that survived.
type Aggregator struct {
	feeds    FeedFetcher
	search   SearchFetcher
	scorer   *sentiment.Scorer
	fakeNews Classifier
}

func NewAggregator(feeds FeedFetcher, search SearchFetcher, scorer *sentiment.Scorer, fakeNews Classifier) *Aggregator {
	return &Aggregator{feeds: feeds, search: search, scorer: scorer, fakeNews: fakeNews}
}

// Aggregate collects and enriches articles for one category across the given
// languages (all supported ones when languages is empty). Languages are
// processed in order and their results concatenated, so a fixed input always
// yields a fixed ordering. Source failures shrink the result, never abort it.
func (a *Aggregator) Aggregate(ctx context.Context, category string, window models.DateRange, languages []string) []models.Article {
	if len(languages) == 0 {
		languages = SupportedLanguages
	}

	enriched := []models.Article{}
	for _, language := range languages {
		articles, err := a.feeds.FetchCategoryFeed(ctx, category, language)
		if err != nil {
			slog.Warn("[Aggregator] Feed fetch failed",
				slog.String("category", category),
				slog.String("language", language),
				slog.String("error", err.Error()))
			articles = nil
		}

		if len(articles) == 0 {
			articles, err = a.search.FetchEverything(ctx, category, language, window)
			if err != nil {
				slog.Warn("[Aggregator] Search fallback failed",
					slog.String("category", category),
					slog.String("language", language),
					slog.String("error", err.Error()))
				articles = nil
			}
		}

		for _, article := range articles {
			enriched = append(enriched, a.enrich(article, language))
		}
	}

	slog.Info("[Aggregator] Aggregation complete",
		slog.String("category", category),
		slog.Int("articles", len(enriched)))
	return enriched
}

// enrich attaches the four derived fields to a record. A record either gets
// all of them or is returned untouched upstream; there is no partial state,
// because every scorer failure already degrades to a concrete label.
func (a *Aggregator) enrich(article models.Article, language string) models.Article {
	result := a.scorer.Score(article.Title, language)
	article.SentimentLabel = result.Label
	article.SentimentDisplay = result.Display
	article.SentimentScore = result.Score
	article.EmojiSentiment = sentiment.EmojiSentiment(article.Title)
	article.FakeNewsLabel = a.fakeNews.Classify(article.Title)
	return article
}
