package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newslens/newslens/config"
	"github.com/newslens/newslens/internal/api"
	"github.com/newslens/newslens/internal/clients"
	"github.com/newslens/newslens/internal/db"
	"github.com/newslens/newslens/internal/fakenews"
	"github.com/newslens/newslens/internal/logging"
	"github.com/newslens/newslens/internal/pipeline"
	"github.com/newslens/newslens/internal/sentiment"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx := context.Background()

	scorer := buildScorer()

	fakeNews := fakenews.Load(
		os.Getenv("FAKE_NEWS_MODEL_PATH"),
		os.Getenv("FAKE_NEWS_VOCAB_PATH"),
	)

	var cache *clients.ValkeyClient
	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		var err error
		cache, err = clients.NewValkeyClient()
		if err != nil {
			slog.Warn("Valkey unavailable, feed caching disabled",
				slog.String("error", err.Error()))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	rssClient := clients.NewRSSClient(cache)
	newsAPI := clients.NewNewsAPIClient()
	aggregator := pipeline.NewAggregator(rssClient, newsAPI, scorer, fakeNews)

	server := &api.Server{
		Aggregator: aggregator,
		Search:     newsAPI,
		Scorer:     scorer,
		Reddit:     clients.NewRedditClient(),
	}

	if apiKey := os.Getenv("YOUTUBE_API_KEY"); apiKey != "" {
		youtubeClient, err := clients.NewYouTubeClient(ctx, apiKey)
		if err != nil {
			slog.Warn("YouTube client unavailable",
				slog.String("error", err.Error()))
		} else {
			server.YouTube = youtubeClient
		}
	}

	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		publisher, err := clients.NewKafkaPublisher(broker)
		if err != nil {
			slog.Warn("Kafka unavailable, result streaming disabled",
				slog.String("error", err.Error()))
		} else {
			defer publisher.Close()
			server.Publisher = publisher
		}
	}

	if os.Getenv("ARCHIVE_RESULTS") == "true" {
		dynamoClient, err := clients.NewDynamoDBClient(ctx)
		if err != nil {
			slog.Warn("DynamoDB unavailable, archiving disabled",
				slog.String("error", err.Error()))
		} else {
			server.Archive = db.NewArchiveStore(dynamoClient)
		}
	}

	addr := ":" + port()
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", slog.String("error", err.Error()))
	}
}

// buildScorer assembles the sentiment scorer, degrading to VADER-only when
// the multilingual model cannot load.
func buildScorer() *sentiment.Scorer {
	multilingual, err := sentiment.NewMultilingualScorer(os.Getenv("SENTIMENT_MODEL_DIR"))
	if err != nil {
		slog.Warn("Multilingual model unavailable, non-English text scores Neutral",
			slog.String("error", err.Error()))
		return sentiment.NewScorer(nil)
	}
	return sentiment.NewScorer(multilingual)
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8000"
}
