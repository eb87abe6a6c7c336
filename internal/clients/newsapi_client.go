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
	"time"

	"github.com/newslens/newslens/internal/metrics"
	"github.com/newslens/newslens/internal/models"
)

const NEWS_API_ENDPOINT = "https://newsapi.org/v2/everything"

// NewsAPIClient searches the NewsAPI everything endpoint. It is the fallback
// article source when a category's RSS feed comes back empty.
type NewsAPIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string

	// Backoff seeds the retry delay; zero means INITIAL_BACKOFF.
	Backoff time.Duration
}

func NewNewsAPIClient() *NewsAPIClient {
	return &NewsAPIClient{
		BaseURL: NEWS_API_ENDPOINT,
		Client:  &http.Client{Timeout: 15 * time.Second},
		APIKey:  os.Getenv("NEWS_API_KEY"),
	}
}

// FetchEverything searches articles for a category keyword in one language
// inside an inclusive date window. Rate limits and server errors are retried
// with exponential backoff up to MAX_RETRIES; everything that still fails
// degrades to an empty result rather than an error, because this feeds a
// browse surface and a category with nothing to show is not a failed
// request.
//
// Results are re-checked against the window on this side because the API has
// been seen returning articles outside its own from/to filter, then capped
// at MAX_ARTICLES_PER_FETCH.
func (n *NewsAPIClient) FetchEverything(ctx context.Context, category, language string, window models.DateRange) ([]models.Article, error) {
	metrics.FetchRequests.WithLabelValues("newsapi").Inc()

	if n.APIKey == "" {
		slog.Warn("[NewsAPIClient] API key is missing, skipping search")
		metrics.FetchErrors.WithLabelValues("newsapi").Inc()
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", category)
	params.Set("language", language)
	params.Set("from", window.Start+"T00:00:00")
	params.Set("to", window.End+"T23:59:59")
	params.Set("sortBy", "publishedAt")
	params.Set("apiKey", n.APIKey)
	requestURL := n.BaseURL + "?" + params.Encode()

	backoff := n.Backoff
	if backoff <= 0 {
		backoff = INITIAL_BACKOFF
	}

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("[NewsAPIClient] failed to build request: %w", err)
		}
		req.Header.Set("User-Agent", USER_AGENT)

		start := time.Now()
		res, err := n.Client.Do(req)
		metrics.FetchDuration.WithLabelValues("newsapi").Observe(time.Since(start).Seconds())
		if err != nil {
			slog.Warn("[NewsAPIClient] Request failed",
				slog.String("category", category),
				slog.String("error", err.Error()))
			break
		}

		switch {
		case res.StatusCode == http.StatusOK:
			articles, err := n.decodeArticles(res.Body, language, window)
			res.Body.Close()
			if err != nil {
				slog.Warn("[NewsAPIClient] Failed to parse JSON response",
					slog.String("error", err.Error()))
				metrics.FetchErrors.WithLabelValues("newsapi").Inc()
				return nil, nil
			}
			slog.Info("[NewsAPIClient] Search complete",
				slog.String("category", category),
				slog.String("language", language),
				slog.Int("articles", len(articles)))
			return articles, nil

		case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError:
			io.Copy(io.Discard, res.Body)
			res.Body.Close()
			if attempt == MAX_RETRIES {
				break
			}
			slog.Warn("[NewsAPIClient] Transient upstream error, retrying...",
				slog.Int("statusCode", res.StatusCode),
				slog.Int("attempt", attempt),
				slog.Duration("backoff", backoff))
			time.Sleep(backoff)
			backoff *= 2
			if backoff > MAX_BACKOFF {
				backoff = MAX_BACKOFF
			}
			continue

		default:
			slog.Warn("[NewsAPIClient] Unexpected status, returning no articles",
				slog.Int("statusCode", res.StatusCode),
				slog.String("category", category))
			io.Copy(io.Discard, res.Body)
			res.Body.Close()
			metrics.FetchErrors.WithLabelValues("newsapi").Inc()
			return nil, nil
		}
		break
	}

	slog.Warn("[NewsAPIClient] Giving up after retries, returning no articles",
		slog.String("category", category))
	metrics.FetchErrors.WithLabelValues("newsapi").Inc()
	return nil, nil
}

func (n *NewsAPIClient) decodeArticles(body io.Reader, language string, window models.DateRange) ([]models.Article, error) {
	var response models.NewsAPIEverythingResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, err
	}

	var articles []models.Article
	for _, raw := range response.Articles {
		if len(articles) >= MAX_ARTICLES_PER_FETCH {
			break
		}
		if !window.Contains(raw.PublishedAt) {
			continue
		}
		articles = append(articles, models.Article{
			Title:       raw.Title,
			Description: normalizeDescription(raw.Description),
			URL:         raw.URL,
			PublishedAt: raw.PublishedAt,
			Language:    language,
			Source:      "newsapi",
		})
	}
	return articles, nil
}
