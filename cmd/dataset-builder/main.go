package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/newslens/newslens/config"
	"github.com/newslens/newslens/internal/clients"
	"github.com/newslens/newslens/internal/logging"
	"github.com/newslens/newslens/internal/sentiment"
)

// dataset-builder walks the curated feed registry and writes a labeled CSV
// corpus, one row per article, using the same scorer the service runs. The
// output feeds offline model training and evaluation.
func main() {
	out := flag.String("out", "news_dataset.csv", "output CSV path")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx := context.Background()
	scorer := buildScorer()
	rss := clients.NewRSSClient(nil)

	file, err := os.Create(*out)
	if err != nil {
		slog.Error("[DatasetBuilder] Failed to create output file",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	if err := writer.Write([]string{"title", "description", "category", "language", "label"}); err != nil {
		slog.Error("[DatasetBuilder] Failed to write header", slog.String("error", err.Error()))
		os.Exit(1)
	}

	keys := make([]string, 0, len(clients.RSS_FEEDS))
	for key := range clients.RSS_FEEDS {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	total := 0
	for _, key := range keys {
		sep := strings.LastIndex(key, "_")
		if sep < 0 {
			continue
		}
		category, language := key[:sep], key[sep+1:]

		articles, err := rss.FetchCategoryFeed(ctx, category, language)
		if err != nil || len(articles) == 0 {
			slog.Warn("[DatasetBuilder] Skipping empty feed",
				slog.String("category", category),
				slog.String("language", language))
			continue
		}

		for _, article := range articles {
			result := scorer.Score(article.Title, language)
			row := []string{article.Title, article.Description, category, language, result.Label}
			if err := writer.Write(row); err != nil {
				slog.Error("[DatasetBuilder] Failed to write row", slog.String("error", err.Error()))
				os.Exit(1)
			}
			total++
		}
	}

	slog.Info("[DatasetBuilder] Corpus written",
		slog.String("path", *out),
		slog.Int("rows", total))
}

func buildScorer() *sentiment.Scorer {
	multilingual, err := sentiment.NewMultilingualScorer(os.Getenv("SENTIMENT_MODEL_DIR"))
	if err != nil {
		slog.Warn("[DatasetBuilder] Multilingual model unavailable, non-English rows label Neutral",
			slog.String("error", err.Error()))
		return sentiment.NewScorer(nil)
	}
	return sentiment.NewScorer(multilingual)
}
