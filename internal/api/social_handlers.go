package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/newslens/newslens/internal/clients"
	"github.com/newslens/newslens/internal/models"
	"github.com/newslens/newslens/internal/sentiment"
)

type youtubeAnalyzeRequest struct {
	VideoID string `json:"videoId"`
}

type redditAnalyzeRequest struct {
	PostURL string `json:"postUrl"`
}

// handleYouTubeAnalyze scores every comment of one video and returns the
// comments with their labels plus the label distribution.
func (s *Server) handleYouTubeAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.YouTube == nil {
		respondWithError(w, http.StatusServiceUnavailable, "YouTube analysis is not configured")
		return
	}

	var req youtubeAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VideoID == "" {
		respondWithError(w, http.StatusBadRequest, "videoId is required")
		return
	}

	comments, err := s.YouTube.FetchVideoComments(r.Context(), req.VideoID)
	if err != nil {
		s.respondFetchError(w, "youtube", err)
		return
	}
	respondWithJSON(w, http.StatusOK, s.analyzeComments(comments))
}

// handleRedditAnalyze does the same for a Reddit post, addressed by full URL
// or bare post ID.
func (s *Server) handleRedditAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.Reddit == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Reddit analysis is not configured")
		return
	}

	var req redditAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostURL == "" {
		respondWithError(w, http.StatusBadRequest, "postUrl is required")
		return
	}

	postID, err := clients.ExtractPostID(req.PostURL)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "postUrl is not a valid Reddit post reference")
		return
	}

	comments, err := s.Reddit.FetchPostComments(r.Context(), postID)
	if err != nil {
		s.respondFetchError(w, "reddit", err)
		return
	}
	respondWithJSON(w, http.StatusOK, s.analyzeComments(comments))
}

func (s *Server) respondFetchError(w http.ResponseWriter, platform string, err error) {
	switch {
	case errors.Is(err, clients.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "target not found")
	case errors.Is(err, clients.ErrAuthorization):
		respondWithError(w, http.StatusBadGateway, "upstream authorization failed")
	default:
		slog.Error("[API] Comment fetch failed",
			slog.String("platform", platform),
			slog.String("error", err.Error()))
		respondWithError(w, http.StatusBadGateway, "upstream fetch failed")
	}
}

// analyzeComments labels each comment and tallies the canonical
// distribution. Comments are scored as English text; the VADER lexicon
// degrades gracefully to Neutral on text it cannot read.
func (s *Server) analyzeComments(comments []models.Comment) models.CommentAnalysis {
	analysis := models.CommentAnalysis{Comments: []models.Comment{}}
	for _, comment := range comments {
		result := s.Scorer.Score(comment.Text, "en")
		comment.Sentiment = result.Label
		switch result.Label {
		case sentiment.LabelPositive:
			analysis.SentimentDistribution.Positive++
		case sentiment.LabelNegative:
			analysis.SentimentDistribution.Negative++
		default:
			analysis.SentimentDistribution.Neutral++
		}
		analysis.Comments = append(analysis.Comments, comment)
	}
	analysis.TotalComments = len(analysis.Comments)
	return analysis
}
