package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/air-quality-comparison/internal/config"
	"github.com/couchcryptid/air-quality-comparison/internal/domain"
	"github.com/couchcryptid/air-quality-comparison/internal/observability"
)

// Writer produces one message per table row to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger}
}

// Publish serializes every row of t and writes them in a single WriteMessages call.
func (w *Writer) Publish(ctx context.Context, t domain.Table) error {
	if len(t.Rows) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(t.Rows))
	for i := range t.Rows {
		msg, err := serializeToMessage(t.RunID, t.Rows[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write messages: %w", err)
	}
	w.metrics.MessagesProduced.Add(float64(len(msgs)))
	w.logger.Info("rows published", "topic", w.writer.Topic, "run_id", t.RunID, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// rowMessage is the JSON value of a published row.
type rowMessage struct {
	RunID      string             `json:"run_id"`
	Location   string             `json:"location"`
	Lat        float64            `json:"lat"`
	Lon        float64            `json:"lon"`
	FetchedAt  time.Time          `json:"fetched_at"`
	Failed     bool               `json:"failed"`
	Reason     string             `json:"reason,omitempty"`
	Unit       string             `json:"unit"`
	Components map[string]float64 `json:"components"`
}

// serializeToMessage marshals a row into a Kafka message keyed by location name.
func serializeToMessage(runID string, row domain.Row) (kafkago.Message, error) {
	data, err := json.Marshal(rowMessage{
		RunID:      runID,
		Location:   row.Location.Name,
		Lat:        row.Location.Lat,
		Lon:        row.Location.Lon,
		FetchedAt:  row.FetchedAt,
		Failed:     row.Failed,
		Reason:     row.Reason,
		Unit:       domain.Unit,
		Components: row.Values.Map(),
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize row: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(row.Location.Name),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "run_id", Value: []byte(runID)},
			{Key: "fetched_at", Value: []byte(row.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
