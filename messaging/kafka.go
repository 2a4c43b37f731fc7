package messaging

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"toolcrib/config"
)

type kafkaPublisher struct {
	writer  *kafka.Writer
	brokers []string
	timeout time.Duration
}

func newKafkaPublisher(cfg *config.KafkaConfig, timeout time.Duration) *kafkaPublisher {
	return &kafkaPublisher{brokers: cfg.Brokers, timeout: timeout}
}

func (p *kafkaPublisher) Connect() error {
	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(p.brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           p.timeout,
	}
	return nil
}

func (p *kafkaPublisher) IsConnected() bool {
	return p.writer != nil
}

func (p *kafkaPublisher) Publish(topic string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	// Kafka topic names cannot contain slashes.
	topic = strings.ReplaceAll(topic, "/", ".")
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: payload,
	})
}

func (p *kafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
