package repository

import (
	"context"
	"fmt"

	"Stock100/internal/domain/models"
	"Stock100/pkg/kafka"
)

// KafkaSink publishes each fresh prediction result to a Kafka topic,
// keyed by date so reruns within a day compact to the newest result.
type KafkaSink struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaSink(producer *kafka.Producer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Publish(ctx context.Context, result models.PredictionResult) error {
	if err := s.producer.Publish(ctx, s.topic, []byte(result.Date), result); err != nil {
		return fmt.Errorf("publish to %s: %w", s.topic, err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
