// Package events publishes lifecycle events for downstream consumers. All
// publishing is best-effort from the caller's point of view.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"

	"github.com/arturpasiut/poke-sky-api/pkg/metrics"
	"github.com/arturpasiut/poke-sky-api/pkg/tracing"
)

const (
	TypeChainResolved = "evolution.chain_resolved"
)

// Config holds Kafka configuration
type Config struct {
	Brokers []string
	Topic   string
}

// ParseBrokers parses a comma-separated broker string
func ParseBrokers(brokers string) []string {
	brokerList := strings.Split(brokers, ",")
	for i := range brokerList {
		brokerList[i] = strings.TrimSpace(brokerList[i])
	}
	return brokerList
}

// Producer handles producing lifecycle events to Kafka
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg Config, logger ectologger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		// Allow Kafka to auto-create the topic in dev environments when it
		// doesn't exist yet.
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// ChainResolvedMessage is emitted after a chain resolution completes and its
// unfiltered DTO has been handed to the cache.
type ChainResolvedMessage struct {
	Type          string    `json:"type"`
	ChainID       string    `json:"chain_id"`
	LeadPokemonID int64     `json:"lead_pokemon_id"`
	LeadName      string    `json:"lead_name"`
	StageCount    int       `json:"stage_count"`
	BranchCount   int       `json:"branch_count"`
	Cached        bool      `json:"cached"`
	Timestamp     time.Time `json:"timestamp"`

	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`
}

// PublishChainResolved publishes a chain-resolved event. Failures are returned
// for logging; callers treat them as non-fatal.
func (p *Producer) PublishChainResolved(ctx context.Context, msg *ChainResolvedMessage) error {
	if msg == nil {
		return fmt.Errorf("chain resolved message is nil")
	}

	ctx, span := tracing.StartSpan(ctx, "Events.PublishChainResolved")
	defer span.End()

	span.SetAttributes(
		attribute.String("messaging.system", "kafka"),
		attribute.String("messaging.destination", p.topic),
		attribute.String("chain_id", msg.ChainID),
	)

	msg.Type = TypeChainResolved
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	msg.TraceID = tracing.GetTraceID(ctx)
	msg.SpanID = tracing.GetSpanID(ctx)

	data, err := json.Marshal(msg)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(TypeChainResolved, "error").Inc()
		return fmt.Errorf("failed to marshal chain resolved event: %w", err)
	}

	headers := []kafka.Header{
		{Key: "type", Value: []byte(TypeChainResolved)},
		{Key: "chain_id", Value: []byte(msg.ChainID)},
	}
	if traceparent := tracing.GetTraceParent(ctx); traceparent != "" {
		headers = append(headers, kafka.Header{Key: "traceparent", Value: []byte(traceparent)})
	}
	if tracestate := tracing.GetTraceState(ctx); tracestate != "" {
		headers = append(headers, kafka.Header{Key: "tracestate", Value: []byte(tracestate)})
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(msg.ChainID),
		Value:   data,
		Headers: headers,
	}); err != nil {
		metrics.EventsPublished.WithLabelValues(TypeChainResolved, "error").Inc()
		p.logger.WithContext(ctx).WithError(err).Errorf("Failed to publish chain resolved event to Kafka topic %s", p.topic)
		return err
	}

	metrics.EventsPublished.WithLabelValues(TypeChainResolved, "success").Inc()
	return nil
}
