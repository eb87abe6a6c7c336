package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/newslens/newslens/internal/metrics"
	"github.com/newslens/newslens/internal/models"
)

// YouTubeClient fetches video comment threads through the Data API v3.
type YouTubeClient struct {
	service *youtube.Service
}

func NewYouTubeClient(ctx context.Context, apiKey string) (*YouTubeClient, error) {
	if apiKey == "" {
		return nil, errors.New("[YouTubeClient] API key is missing")
	}
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("[YouTubeClient] failed to create service: %w", err)
	}
	return &YouTubeClient{service: service}, nil
}

// FetchVideoComments pages through a video's comment threads until
// MAX_COMMENTS_PER_FETCH comments are collected or the pages run out.
// Replies directly follow their top-level comment. Failures propagate: the
// caller named one specific video.
func (yc *YouTubeClient) FetchVideoComments(ctx context.Context, videoID string) ([]models.Comment, error) {
	metrics.FetchRequests.WithLabelValues("youtube").Inc()
	start := time.Now()
	defer func() {
		metrics.FetchDuration.WithLabelValues("youtube").Observe(time.Since(start).Seconds())
	}()

	var comments []models.Comment
	pageToken := ""
	for len(comments) < MAX_COMMENTS_PER_FETCH {
		call := yc.service.CommentThreads.List([]string{"snippet", "replies"}).
			Context(ctx).
			VideoId(videoID).
			MaxResults(100).
			TextFormat("plainText")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			metrics.FetchErrors.WithLabelValues("youtube").Inc()
			return nil, yc.mapError(err, videoID)
		}

		for _, thread := range resp.Items {
			if thread.Snippet == nil {
				continue
			}
			comments = appendYouTubeComment(comments, thread.Snippet.TopLevelComment)
			if thread.Replies != nil {
				for _, reply := range thread.Replies.Comments {
					comments = appendYouTubeComment(comments, reply)
				}
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	if len(comments) > MAX_COMMENTS_PER_FETCH {
		comments = comments[:MAX_COMMENTS_PER_FETCH]
	}
	slog.Info("[YouTubeClient] Comments fetched",
		slog.String("videoId", videoID),
		slog.Int("comments", len(comments)))
	return comments, nil
}

func (yc *YouTubeClient) mapError(err error, videoID string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("[YouTubeClient] %w: video %q", ErrNotFound, videoID)
		case http.StatusForbidden, http.StatusUnauthorized:
			return fmt.Errorf("[YouTubeClient] %w: %s", ErrAuthorization, gerr.Message)
		}
	}
	return fmt.Errorf("[YouTubeClient] comment fetch failed: %w", err)
}

func appendYouTubeComment(acc []models.Comment, c *youtube.Comment) []models.Comment {
	if c == nil || c.Snippet == nil {
		return acc
	}
	return append(acc, models.Comment{
		Text:        c.Snippet.TextDisplay,
		Author:      c.Snippet.AuthorDisplayName,
		PublishedAt: c.Snippet.PublishedAt,
	})
}
