package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/newslens/newslens/internal/metrics"
	"github.com/newslens/newslens/internal/models"
	"github.com/newslens/newslens/internal/normalize"
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"
)

// RedditClient fetches post comment trees over the OAuth API using
// application-only client credentials.
type RedditClient struct {
	BaseURL string
	Client  *http.Client
}

func NewRedditClient() *RedditClient {
	oauthConf := &clientcredentials.Config{
		ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		TokenURL:     REDDIT_AUTH_URL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	return &RedditClient{
		BaseURL: REDDIT_API_URL,
		Client:  oauthConf.Client(context.Background()),
	}
}

// ExtractPostID pulls the base36 post ID out of a full post URL
// (…/comments/<id>/…) or accepts a bare ID as-is.
func ExtractPostID(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("empty post reference")
	}

	if strings.Contains(trimmed, "/") {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return "", fmt.Errorf("unparseable post URL %q", input)
		}
		segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		for i, segment := range segments {
			if segment == "comments" && i+1 < len(segments) && segments[i+1] != "" {
				return segments[i+1], nil
			}
		}
		return "", fmt.Errorf("no post ID in URL %q", input)
	}

	for _, r := range trimmed {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "", fmt.Errorf("invalid post ID %q", input)
		}
	}
	return trimmed, nil
}

// FetchPostComments returns up to MAX_COMMENTS_PER_FETCH comments for a post,
// flattened depth-first so replies directly follow their parents. Markdown in
// comment bodies is rendered down to plain text.
//
// Unlike the article adapters this one propagates failures: the caller asked
// about one specific post, and an auth failure or missing post is an answer
// the user needs to see.
func (rc *RedditClient) FetchPostComments(ctx context.Context, postID string) ([]models.Comment, error) {
	metrics.FetchRequests.WithLabelValues("reddit").Inc()

	endpoint := fmt.Sprintf("%s/comments/%s?limit=%d&raw_json=1", rc.BaseURL, postID, MAX_COMMENTS_PER_FETCH)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	start := time.Now()
	resp, err := rc.Client.Do(req)
	metrics.FetchDuration.WithLabelValues("reddit").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchErrors.WithLabelValues("reddit").Inc()
		return nil, fmt.Errorf("[RedditClient] request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		metrics.FetchErrors.WithLabelValues("reddit").Inc()
		return nil, fmt.Errorf("[RedditClient] %w: check REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET", ErrAuthorization)
	case http.StatusNotFound:
		metrics.FetchErrors.WithLabelValues("reddit").Inc()
		return nil, fmt.Errorf("[RedditClient] %w: post %q", ErrNotFound, postID)
	default:
		metrics.FetchErrors.WithLabelValues("reddit").Inc()
		return nil, fmt.Errorf("[RedditClient] unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] failed to read response: %w", err)
	}

	// The endpoint answers with [post listing, comment listing].
	var listings []models.RedditListing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("[RedditClient] failed to parse response: %w", err)
	}
	if len(listings) < 2 {
		return nil, fmt.Errorf("[RedditClient] response missing comment listing")
	}

	comments := flattenComments(listings[1].Data.Children, nil)
	slog.Info("[RedditClient] Comments fetched",
		slog.String("postId", postID),
		slog.Int("comments", len(comments)))
	return comments, nil
}

// flattenComments walks the comment tree depth-first, appending onto acc
// until the per-fetch cap is reached. Non-comment children ("more" stubs)
// are skipped; leaf Replies hold "" instead of a listing object.
func flattenComments(children []models.RedditChild, acc []models.Comment) []models.Comment {
	for _, child := range children {
		if len(acc) >= MAX_COMMENTS_PER_FETCH {
			break
		}
		if child.Kind != "t1" {
			continue
		}

		if text := normalize.MarkdownToText(child.Data.Body); text != "" {
			acc = append(acc, models.Comment{
				Text:        text,
				Author:      child.Data.Author,
				PublishedAt: time.Unix(int64(child.Data.CreatedUTC), 0).UTC().Format(time.RFC3339),
			})
		}

		if replies, ok := decodeReplies(child.Data.Replies); ok {
			acc = flattenComments(replies.Data.Children, acc)
		}
	}
	return acc
}

func decodeReplies(raw json.RawMessage) (models.RedditListing, bool) {
	var listing models.RedditListing
	if len(raw) == 0 || raw[0] != '{' {
		return listing, false
	}
	if err := json.Unmarshal(raw, &listing); err != nil {
		return listing, false
	}
	return listing, true
}
