package clients

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/newslens/newslens/internal/models"
)

// Topic carrying enriched aggregation results for downstream consumers.
const KAFKA_TOPIC_SENTIMENT_RESULTS = "news-sentiment-results"

// KafkaPublisher streams enriched article batches to Kafka. It is optional
// infrastructure; the HTTP surface works identically without it.
type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(broker string) (*KafkaPublisher, error) {
	slog.Info("[KafkaPublisher] Connecting to Kafka", slog.String("broker", broker))
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   broker,
		"api.version.request": "true",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaPublisher] failed to create producer: %w", err)
	}
	slog.Info("[KafkaPublisher] Producer initialized")
	return &KafkaPublisher{producer: producer}, nil
}

// PublishResults sends one enriched batch as a single message keyed by
// category. Delivery is fire-and-forget.
func (kp *KafkaPublisher) PublishResults(category string, articles []models.Article) error {
	if kp == nil || len(articles) == 0 {
		return nil
	}

	payload, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("[KafkaPublisher] failed to serialize batch: %w", err)
	}

	topic := KAFKA_TOPIC_SENTIMENT_RESULTS
	err = kp.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(category),
		Value:          payload,
	}, nil)
	if err != nil {
		return fmt.Errorf("[KafkaPublisher] failed to publish batch: %w", err)
	}

	slog.Info("[KafkaPublisher] Published enriched batch",
		slog.String("category", category),
		slog.Int("articles", len(articles)))
	return nil
}

func (kp *KafkaPublisher) Close() {
	if kp != nil && kp.producer != nil {
		kp.producer.Flush(5000)
		kp.producer.Close()
		slog.Info("[KafkaPublisher] Producer shut down")
	}
}
