package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/newslens/newslens/internal/models"
)

const DEFAULT_WINDOW_DAYS = 7

// parseWindow reads from/to query params, defaulting to the last
// DEFAULT_WINDOW_DAYS days. Dates are YYYY-MM-DD.
func parseWindow(r *http.Request) (models.DateRange, error) {
	now := time.Now().UTC()
	window := models.DateRange{
		Start: now.AddDate(0, 0, -DEFAULT_WINDOW_DAYS).Format("2006-01-02"),
		End:   now.Format("2006-01-02"),
	}

	if from := r.URL.Query().Get("from"); from != "" {
		if _, err := time.Parse("2006-01-02", from); err != nil {
			return window, err
		}
		window.Start = from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if _, err := time.Parse("2006-01-02", to); err != nil {
			return window, err
		}
		window.End = to
	}
	return window, nil
}

// handleFetchNews serves raw search results for one category without any
// derived fields.
func (s *Server) handleFetchNews(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		respondWithError(w, http.StatusBadRequest, "category is required")
		return
	}
	language := r.URL.Query().Get("language")
	if language == "" {
		language = "en"
	}
	window, err := parseWindow(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "dates must be formatted YYYY-MM-DD")
		return
	}

	articles, err := s.Search.FetchEverything(r.Context(), category, language, window)
	if err != nil {
		slog.Error("[API] fetch-news failed",
			slog.String("category", category),
			slog.String("error", err.Error()))
		respondWithError(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	respondWithJSON(w, http.StatusOK, articles)
}

// handleFetchNewsWithSentiment runs the full aggregation pipeline for one
// category and returns enriched records. When configured, the enriched batch
// is also streamed to Kafka and archived, both best-effort.
func (s *Server) handleFetchNewsWithSentiment(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		respondWithError(w, http.StatusBadRequest, "category is required")
		return
	}
	window, err := parseWindow(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "dates must be formatted YYYY-MM-DD")
		return
	}

	var languages []string
	if language := r.URL.Query().Get("language"); language != "" {
		languages = []string{language}
	}

	articles := s.Aggregator.Aggregate(r.Context(), category, window, languages)

	if s.Publisher != nil {
		if err := s.Publisher.PublishResults(category, articles); err != nil {
			slog.Warn("[API] Failed to publish enriched batch",
				slog.String("error", err.Error()))
		}
	}
	if s.Archive != nil {
		if err := s.Archive.BatchInsertArticles(r.Context(), category, articles); err != nil {
			slog.Warn("[API] Failed to archive enriched batch",
				slog.String("error", err.Error()))
		}
	}

	respondWithJSON(w, http.StatusOK, articles)
}
