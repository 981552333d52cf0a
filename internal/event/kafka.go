package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const paymentTopic = "payment-events"

type KafkaPublisher struct {
	producer sarama.SyncProducer
	logger   *zap.Logger
}

func NewKafkaPublisher(broker string, logger *zap.Logger) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer([]string{broker}, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	logger.Info("kafka producer initialized", zap.String("broker", broker))
	return &KafkaPublisher{producer: producer, logger: logger}, nil
}

func (p *KafkaPublisher) PublishPaymentSettled(ctx context.Context, evt PaymentSettled) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: paymentTopic,
		Key:   sarama.StringEncoder(evt.OrderID.String()),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.Info("event published",
		zap.String("topic", paymentTopic),
		zap.String("payment_id", evt.PaymentID.String()),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
