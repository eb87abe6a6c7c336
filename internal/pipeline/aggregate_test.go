package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/newslens/newslens/internal/fakenews"
	"github.com/newslens/newslens/internal/models"
	"github.com/newslens/newslens/internal/sentiment"
)

type stubFeeds struct {
	byLanguage map[string][]models.Article
	err        error
	calls      []string
}

func (s *stubFeeds) FetchCategoryFeed(ctx context.Context, category, language string) ([]models.Article, error) {
	s.calls = append(s.calls, language)
	if s.err != nil {
		return nil, s.err
	}
	return s.byLanguage[language], nil
}

type stubSearch struct {
	byLanguage map[string][]models.Article
	err        error
	calls      []string
}

func (s *stubSearch) FetchEverything(ctx context.Context, category, language string, window models.DateRange) ([]models.Article, error) {
	s.calls = append(s.calls, language)
	if s.err != nil {
		return nil, s.err
	}
	return s.byLanguage[language], nil
}

type stubClassifier struct{ label string }

func (s stubClassifier) Classify(text string) string { return s.label }

func feedArticle(title, language string) models.Article {
	return models.Article{Title: title, Language: language, Source: "rss", URL: "https://example.com/" + title}
}

func newTestAggregator(feeds *stubFeeds, search *stubSearch) *Aggregator {
	return NewAggregator(feeds, search, sentiment.NewScorer(nil), stubClassifier{label: fakenews.LabelUnknown})
}

func TestAggregatePrefersFeedOverSearch(t *testing.T) {
	feeds := &stubFeeds{byLanguage: map[string][]models.Article{
		"en": {feedArticle("great news today", "en")},
	}}
	search := &stubSearch{byLanguage: map[string][]models.Article{
		"en": {feedArticle("search result", "en")},
	}}

	got := newTestAggregator(feeds, search).Aggregate(context.Background(), "finance", models.DateRange{Start: "2026-08-01", End: "2026-08-07"}, []string{"en"})

	if len(got) != 1 || got[0].Title != "great news today" {
		t.Fatalf("got %+v, want the feed article only", got)
	}
	if len(search.calls) != 0 {
		t.Errorf("search was consulted despite feed results: %v", search.calls)
	}
}

func TestAggregateFallsBackToSearchOnEmptyFeed(t *testing.T) {
	feeds := &stubFeeds{byLanguage: map[string][]models.Article{}}
	search := &stubSearch{byLanguage: map[string][]models.Article{
		"en": {feedArticle("fallback article", "en")},
	}}

	got := newTestAggregator(feeds, search).Aggregate(context.Background(), "finance", models.DateRange{Start: "2026-08-01", End: "2026-08-07"}, []string{"en"})

	if len(got) != 1 || got[0].Title != "fallback article" {
		t.Fatalf("got %+v, want the search article", got)
	}
	if len(search.calls) != 1 {
		t.Errorf("search calls = %v", search.calls)
	}
}

func TestAggregateCoversBothLanguagesInOrder(t *testing.T) {
	feeds := &stubFeeds{byLanguage: map[string][]models.Article{
		"en": {feedArticle("english story", "en")},
		"hi": {feedArticle("hindi story", "hi")},
	}}
	search := &stubSearch{}

	got := newTestAggregator(feeds, search).Aggregate(context.Background(), "finance", models.DateRange{Start: "2026-08-01", End: "2026-08-07"}, nil)

	if len(got) != 2 {
		t.Fatalf("got %d articles, want 2", len(got))
	}
	if got[0].Language != "en" || got[1].Language != "hi" {
		t.Errorf("language order was %q then %q", got[0].Language, got[1].Language)
	}
}

func TestAggregateEnrichesEveryRecord(t *testing.T) {
	feeds := &stubFeeds{byLanguage: map[string][]models.Article{
		"en": {feedArticle("markets rally on wonderful earnings", "en")},
	}}
	agg := NewAggregator(feeds, &stubSearch{}, sentiment.NewScorer(nil), stubClassifier{label: fakenews.LabelReal})

	got := agg.Aggregate(context.Background(), "finance", models.DateRange{Start: "2026-08-01", End: "2026-08-07"}, []string{"en"})

	if len(got) != 1 {
		t.Fatalf("got %d articles", len(got))
	}
	a := got[0]
	if a.SentimentLabel == "" || a.SentimentDisplay == "" || a.EmojiSentiment == "" || a.FakeNewsLabel != fakenews.LabelReal {
		t.Errorf("incomplete enrichment: %+v", a)
	}
}

func TestAggregateSurvivesSourceFailures(t *testing.T) {
	feeds := &stubFeeds{err: errors.New("feed down")}
	search := &stubSearch{err: errors.New("search down")}

	got := newTestAggregator(feeds, search).Aggregate(context.Background(), "finance", models.DateRange{Start: "2026-08-01", End: "2026-08-07"}, nil)

	if len(got) != 0 {
		t.Fatalf("got %d articles from failing sources", len(got))
	}
}
