package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/encomendas/tracking-service/internal/config"
	"github.com/encomendas/tracking-service/internal/entities"
	"github.com/encomendas/tracking-service/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

// TrackingEvent is the message shape courier scanners publish: an order
// id and the address it was seen at.
type TrackingEvent struct {
	IDEncomenda string `json:"id_encomenda" validate:"required"`
	Endereco    string `json:"endereco" validate:"required"`
}

type TrackingRecorder interface {
	CreateLocation(ctx context.Context, address, orderID string) (entities.Location, error)
}

type kafkaHandler struct {
	dlq      *kafka.Writer
	reader   *kafka.Reader
	logger   *slog.Logger
	validate *validator.Validate
	recorder TrackingRecorder
	retry    utils.RetryConfig
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, recorder TrackingRecorder) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.Topic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate: validator.New(),
		recorder: recorder,
		retry: utils.RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 100 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2,
		},
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		if err := h.handleTrackingEvent(ctx, m); err != nil {
			eventsFailed.Inc()
			h.logger.Error("failed to handle message", slog.Any("error", err))

			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				continue
			}
			eventsDLQ.Inc()
		} else {
			eventsProcessed.Inc()
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *kafkaHandler) handleTrackingEvent(ctx context.Context, m kafka.Message) error {
	start := time.Now()
	defer func() {
		eventProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	var event TrackingEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal tracking event: %w", err)
	}

	if err := h.validate.Struct(event); err != nil {
		return fmt.Errorf("invalid tracking event: %w", err)
	}

	// An unknown order never becomes known by retrying.
	return utils.Retry(h.retry, func() error {
		_, err := h.recorder.CreateLocation(ctx, event.Endereco, event.IDEncomenda)
		return err
	}, entities.ErrOrderNotFound)
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
