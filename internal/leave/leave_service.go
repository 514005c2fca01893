package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-attendance/internal/events"
	leaveerrors "go-attendance/internal/leave/errors"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	Apply(ctx context.Context, userID string, req ApplyLeaveRequest) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, leaveID string, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	MyLeaves(ctx context.Context, userID string) ([]LeaveResponse, error)
	PendingForManager(ctx context.Context, managerID string) ([]LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

// NewService wires the workflow. outbox may be nil, in which case no lifecycle
// events are recorded.
func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Apply(ctx context.Context, userID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	owner, err := qtx.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrUserNotFound
		}
		l.Error("apply leave user lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if req.Status != "" && !strings.EqualFold(req.Status, StatusPending) {
		l.Debug("apply leave ignoring caller status", zap.String("status", req.Status))
	}

	leave := &LeaveRequest{
		ID:        uuid.New(),
		UserID:    uid,
		User:      owner,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	if err := qtx.Create(ctx, leave); err != nil {
		l.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	event := events.LeaveAppliedEvent{
		EventType:  events.LeaveAppliedType,
		RequestID:  rid,
		LeaveID:    leave.ID.String(),
		UserID:     userID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		OccurredAt: time.Now().UTC(),
	}
	if owner.ManagerID != nil {
		event.ManagerID = owner.ManagerID.String()
	}
	if err := s.enqueue(ctx, tx, leave.ID.String(), event.EventType, events.LeaveAppliedTopic, rid, event); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Info("leave applied",
		zap.String("leave_id", leave.ID.String()),
		zap.String("user_id", userID),
	)
	return mapToResponse(*leave), nil
}

func (s *service) UpdateStatus(ctx context.Context, leaveID string, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(leaveID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("update leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	leave, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		l.Error("update leave status lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	previous := leave.Status
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if previous != StatusPending {
		// Re-deciding is allowed; keep a trail of it.
		l.Warn("leave decided again",
			zap.String("leave_id", leaveID),
			zap.String("from", previous),
			zap.String("to", status),
		)
	}

	leave.Status = status
	if req.Feedback != nil && strings.TrimSpace(*req.Feedback) != "" {
		feedback := *req.Feedback
		leave.Feedback = &feedback
	}

	if err := qtx.Update(ctx, leave); err != nil {
		l.Error("update leave status persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	event := events.LeaveStatusChangedEvent{
		EventType:      events.LeaveStatusChangedType,
		RequestID:      rid,
		LeaveID:        leaveID,
		UserID:         leave.UserID.String(),
		PreviousStatus: previous,
		Status:         status,
		Feedback:       leave.Feedback,
		OccurredAt:     time.Now().UTC(),
	}
	if err := s.enqueue(ctx, tx, leaveID, event.EventType, events.LeaveStatusChangedTopic, rid, event); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error("update leave status commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Info("leave status updated",
		zap.String("leave_id", leaveID),
		zap.String("status", status),
	)
	return mapToResponse(*leave), nil
}

func (s *service) MyLeaves(ctx context.Context, userID string) ([]LeaveResponse, error) {
	if err := s.ensureUser(ctx, userID, leaveerrors.ErrUserNotFound); err != nil {
		return nil, err
	}

	leaves, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list user leaves failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) PendingForManager(ctx context.Context, managerID string) ([]LeaveResponse, error) {
	if err := s.ensureUser(ctx, managerID, leaveerrors.ErrManagerNotFound); err != nil {
		return nil, err
	}

	leaves, err := s.repo.FindPendingByManager(ctx, managerID)
	if err != nil {
		s.logger.Error("list pending leaves failed", zap.String("manager_id", managerID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ensureUser(ctx context.Context, userID string, notFound error) error {
	if _, err := uuid.Parse(userID); err != nil {
		return leaveerrors.ErrInvalidUserID
	}
	if _, err := s.repo.FindUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return err
	}
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, leaveID, eventType, topic, rid string, payload any) error {
	if s.outbox == nil {
		return nil
	}

	event, err := kafka.NewOutboxEvent("leave", leaveID, eventType, topic, rid, payload)
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.String("event_type", eventType), zap.Error(err))
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", leaveID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		StartDate: l.StartDate.Format(dateLayout),
		EndDate:   l.EndDate.Format(dateLayout),
		Reason:    l.Reason,
		Status:    l.Status,
		Feedback:  l.Feedback,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
	if l.User != nil {
		resp.User = &LeaveUser{
			ID:    l.User.ID.String(),
			Name:  l.User.Name,
			Email: l.User.Email,
		}
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
