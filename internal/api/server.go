package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/newslens/newslens/internal/models"
	"github.com/newslens/newslens/internal/sentiment"
)

// Aggregator is the category pipeline behind the news endpoints.
type Aggregator interface {
	Aggregate(ctx context.Context, category string, window models.DateRange, languages []string) []models.Article
}

// SearchFetcher backs the raw fetch-news endpoint.
type SearchFetcher interface {
	FetchEverything(ctx context.Context, category, language string, window models.DateRange) ([]models.Article, error)
}

// CommentFetcher fetches a video's flattened comment threads.
type CommentFetcher interface {
	FetchVideoComments(ctx context.Context, videoID string) ([]models.Comment, error)
}

// RedditFetcher fetches a post's flattened comment tree.
type RedditFetcher interface {
	FetchPostComments(ctx context.Context, postID string) ([]models.Comment, error)
}

// ResultPublisher streams enriched batches to a broker.
type ResultPublisher interface {
	PublishResults(category string, articles []models.Article) error
}

// ResultArchiver persists enriched batches.
type ResultArchiver interface {
	BatchInsertArticles(ctx context.Context, category string, articles []models.Article) error
}

// Server wires the HTTP surface to its collaborators. Optional fields
// (YouTube, Reddit, Publisher, Archive) stay nil when their backing service
// is not configured; the affected endpoints answer accordingly.
type Server struct {
	Aggregator Aggregator
	Search     SearchFetcher
	Scorer     *sentiment.Scorer
	YouTube    CommentFetcher
	Reddit     RedditFetcher
	Publisher  ResultPublisher
	Archive    ResultArchiver

	startTime time.Time
}

// Routes builds the router. All responses are JSON except /metrics.
func (s *Server) Routes() *mux.Router {
	s.startTime = time.Now()

	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/fetch-news", s.handleFetchNews).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/fetch-news-with-sentiment", s.handleFetchNewsWithSentiment).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/predict-sentiment", s.handlePredictSentiment).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/youtube/analyze", s.handleYouTubeAnalyze).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/reddit/analyze", s.handleRedditAnalyze).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/healthcheck", s.handleHealthcheck).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// The dashboard is served from a different origin in development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}
