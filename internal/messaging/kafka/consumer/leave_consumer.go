package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-attendance/internal/events"
	"go-attendance/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

const notifyAttempts = 3

var notifyBackoff = time.Second

// ConsumeLeaveEvents reads leave lifecycle events until ctx is cancelled and
// forwards them to notifier. Undecodable messages are committed and dropped.
// A notification is retried in place; once attempts run out the consumer
// stops without committing, so the group resumes from that message on the
// next start.
func ConsumeLeaveEvents(
	ctx context.Context,
	reader MessageReader,
	notifier notification.Notifier,
	logger *zap.Logger,
) error {
	log := logger.Named("kafka.consumer.leave")
	log.Info("leave consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave consumer stopped")
				return nil
			}
			log.Error("fetch leave message failed", zap.Error(err))
			continue
		}

		if err := dispatchWithRetry(ctx, msg, notifier, log); err != nil {
			var decodeErr *decodeError
			if !errors.As(err, &decodeErr) {
				if ctx.Err() != nil {
					log.Info("leave consumer stopped")
					return nil
				}
				log.Error("notify leave event failed, stopping consumer",
					zap.String("topic", msg.Topic),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
				return fmt.Errorf("notify %s offset %d: %w", msg.Topic, msg.Offset, err)
			}
			log.Error("decode leave event failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave message failed", zap.Error(err))
			continue
		}
	}
}

func dispatchWithRetry(ctx context.Context, msg kafkago.Message, notifier notification.Notifier, log *zap.Logger) error {
	var err error
	for attempt := 1; attempt <= notifyAttempts; attempt++ {
		err = dispatch(ctx, msg, notifier)
		var decodeErr *decodeError
		if err == nil || errors.As(err, &decodeErr) || attempt == notifyAttempts {
			return err
		}

		log.Warn("notify leave event retrying",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(notifyBackoff * time.Duration(attempt)):
		}
	}
	return err
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func dispatch(ctx context.Context, msg kafkago.Message, notifier notification.Notifier) error {
	switch eventType(msg) {
	case events.LeaveAppliedType:
		var event events.LeaveAppliedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return &decodeError{err: err}
		}
		return notifier.LeaveApplied(ctx, event)
	case events.LeaveStatusChangedType:
		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return &decodeError{err: err}
		}
		return notifier.LeaveDecided(ctx, event)
	default:
		return &decodeError{err: fmt.Errorf("unknown leave event type %q", eventType(msg))}
	}
}

// eventType prefers the header and falls back to the payload.
func eventType(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}

	var envelope struct {
		EventType string `json:"event_type"`
	}
	_ = json.Unmarshal(msg.Value, &envelope)
	return envelope.EventType
}
