// Package summaries handles Kafka event production for extraction results.
package summaries

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// ExtractionProducer handles sending extraction results to Kafka
type ExtractionProducer struct {
	Writer *kafka.Writer
}

// NewExtractionProducer initializes a new Kafka writer for extraction events.
// transport may be nil for an unauthenticated local broker.
func NewExtractionProducer(brokers []string, topic string, transport *kafka.Transport) *ExtractionProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	if transport != nil {
		writer.Transport = transport
	}
	return &ExtractionProducer{Writer: writer}
}

// PublishExtractionCompleted stamps the event envelope and sends it to the Kafka topic
func (p *ExtractionProducer) PublishExtractionCompleted(ctx context.Context, event VulnerabilityExtractionCompletedEvent) error {
	payload, err := json.Marshal(stamp(event))
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.VulnerabilityID),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *ExtractionProducer) Close() error {
	return p.Writer.Close()
}

func stamp(event VulnerabilityExtractionCompletedEvent) VulnerabilityExtractionCompletedEvent {
	event.EventType = EventTypeExtractionCompleted
	event.EventID = uuid.New().String()
	event.EventTime = time.Now().UTC()
	event.SchemaVersion = SchemaVersion
	return event
}

var _ Publisher = (*ExtractionProducer)(nil)
