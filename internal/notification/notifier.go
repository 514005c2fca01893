package notification

import (
	"context"

	"go-attendance/internal/events"

	"go.uber.org/zap"
)

// Notifier tells people about leave decisions that concern them.
type Notifier interface {
	LeaveApplied(ctx context.Context, event events.LeaveAppliedEvent) error
	LeaveDecided(ctx context.Context, event events.LeaveStatusChangedEvent) error
}

// LogNotifier writes notifications to the log. It stands in until a mail or
// chat channel exists.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger ...*zap.Logger) *LogNotifier {
	l := zap.L().Named("notification")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification")
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) LeaveApplied(ctx context.Context, event events.LeaveAppliedEvent) error {
	if event.ManagerID == "" {
		n.logger.Debug("leave applied without a manager to notify", zap.String("leave_id", event.LeaveID))
		return nil
	}

	n.logger.Info("notify manager of leave request",
		zap.String("manager_id", event.ManagerID),
		zap.String("user_id", event.UserID),
		zap.String("leave_id", event.LeaveID),
		zap.String("start_date", event.StartDate),
		zap.String("end_date", event.EndDate),
		zap.String("request_id", event.RequestID),
	)
	return nil
}

func (n *LogNotifier) LeaveDecided(ctx context.Context, event events.LeaveStatusChangedEvent) error {
	fields := []zap.Field{
		zap.String("user_id", event.UserID),
		zap.String("leave_id", event.LeaveID),
		zap.String("status", event.Status),
		zap.String("previous_status", event.PreviousStatus),
		zap.String("request_id", event.RequestID),
	}
	if event.Feedback != nil {
		fields = append(fields, zap.String("feedback", *event.Feedback))
	}

	n.logger.Info("notify employee of leave decision", fields...)
	return nil
}
