package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/newslens/newslens/internal/models"
)

const (
	SENTIMENT_ARCHIVE_TABLE_NAME = "NewsSentiment"

	// Archived batches expire after a week; the archive backs trend views,
	// not long-term storage.
	ARCHIVE_TTL = 7 * 24 * time.Hour
)

// ArchiveStore persists enriched aggregation batches to DynamoDB. It is
// optional infrastructure and strictly best-effort from the pipeline's view.
type ArchiveStore struct {
	client *dynamodb.Client
}

func NewArchiveStore(client *dynamodb.Client) *ArchiveStore {
	return &ArchiveStore{client: client}
}

// BatchInsertArticles writes one enriched batch, 25 items per request with
// unprocessed-item retries. Items are keyed by a content hash of URL and
// title so re-archiving the same batch overwrites rather than duplicates.
func (s *ArchiveStore) BatchInsertArticles(ctx context.Context, category string, articles []models.Article) error {
	if s == nil || len(articles) == 0 {
		return nil
	}

	expiresAt := time.Now().Add(ARCHIVE_TTL).Unix()

	const maxBatchSize = 25
	for i := 0; i < len(articles); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(articles) {
			end = len(articles)
		}

		writeRequests := make([]types.WriteRequest, 0, end-i)
		for _, article := range articles[i:end] {
			item, err := articleToItem(category, article, expiresAt)
			if err != nil {
				slog.Warn("[DynamoDB] Skipping unmarshalable article",
					slog.String("url", article.URL),
					slog.String("error", err.Error()))
				continue
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(writeRequests) == 0 {
			continue
		}

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				SENTIMENT_ARCHIVE_TABLE_NAME: writeRequests,
			},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to batch write articles: %w", err)
		}

		retryCount := 0
		backoff := 500 * time.Millisecond
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			time.Sleep(backoff)
			backoff *= 2
			slog.Warn("[DynamoDB] Retrying unprocessed items...",
				slog.Int("attempt", retryCount+1),
				slog.Int("remaining", len(out.UnprocessedItems[SENTIMENT_ARCHIVE_TABLE_NAME])))

			out, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Retry error: %w", err)
			}
			retryCount++
		}
		if len(out.UnprocessedItems) > 0 {
			slog.Error("[DynamoDB] Some items were not written even after retries",
				slog.Int("remaining", len(out.UnprocessedItems[SENTIMENT_ARCHIVE_TABLE_NAME])))
		}
	}

	slog.Info("[DynamoDB] Archived enriched batch",
		slog.String("category", category),
		slog.Int("articles", len(articles)))
	return nil
}

func articleToItem(category string, article models.Article, expiresAt int64) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(article)
	if err != nil {
		return nil, err
	}
	item["id"] = &types.AttributeValueMemberS{Value: contentID(article)}
	item["category"] = &types.AttributeValueMemberS{Value: category}
	item["created_at"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())}
	item["expires_at"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expiresAt)}
	return item, nil
}

func contentID(article models.Article) string {
	sum := sha256.Sum256([]byte(article.URL + "|" + article.Title))
	return hex.EncodeToString(sum[:])
}
