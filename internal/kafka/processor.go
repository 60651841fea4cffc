// Package kafka runs the optional event processor that consumes vulnerability
// summaries and publishes extraction results.
package kafka

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/ortelius/pdvd-llm-parser/config"
	"github.com/ortelius/pdvd-llm-parser/events/modules/summaries"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

const (
	connectAttempts = 3
	connectDelay    = 2 * time.Second
	dialTimeout     = 10 * time.Second
)

// RunEventProcessor checks the broker is reachable and starts the consumer
// loop in the background. The loop stops when ctx is cancelled.
func RunEventProcessor(ctx context.Context, cfg config.KafkaConfig, extractor summaries.Extractor, logger *zap.Logger) error {
	dialer, transport := connection(cfg)

	var err error
	for i := 1; i <= connectAttempts; i++ {
		logger.Info("Kafka connection attempt", zap.Int("attempt", i), zap.Int("of", connectAttempts))
		var conn *kafka.Conn
		conn, err = dialer.DialContext(ctx, "tcp", cfg.Brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < connectAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(connectDelay):
			}
		}
	}
	if err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.InputTopic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})
	producer := summaries.NewExtractionProducer(cfg.Brokers, cfg.OutputTopic, transport)

	go func() {
		defer reader.Close()
		defer producer.Close()

		logger.Info("Kafka Event Processor started. Listening for vulnerability summaries...",
			zap.String("topic", cfg.InputTopic))

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logger.Warn("Failed to read message", zap.Error(err))
					continue
				}
				if err := summaries.HandleSummaryReceivedWithService(ctx, msg.Value, extractor, producer, logger); err != nil {
					logger.Error("Failed to handle message",
						zap.Int64("offset", msg.Offset),
						zap.Error(err))
				}
			}
		}
	}()

	return nil
}

// connection builds the reader dialer and writer transport. SASL/PLAIN over
// TLS is used only when credentials are configured.
func connection(cfg config.KafkaConfig) (*kafka.Dialer, *kafka.Transport) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return &kafka.Dialer{
			Timeout:   dialTimeout,
			DualStack: true,
		}, nil
	}

	mechanism := plain.Mechanism{
		Username: cfg.APIKey,
		Password: cfg.APISecret,
	}
	// Confluent Cloud requires TLS
	tlsConfig := &tls.Config{}

	dialer := &kafka.Dialer{
		Timeout:       dialTimeout,
		DualStack:     true,
		SASLMechanism: mechanism,
		TLS:           tlsConfig,
	}
	transport := &kafka.Transport{
		SASL: mechanism,
		TLS:  tlsConfig,
	}
	return dialer, transport
}
