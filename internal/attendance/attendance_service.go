package attendance

import (
	"context"
	"strings"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Swipe(ctx context.Context, userID, swipeType string) (AttendanceResponse, error)
	TotalHours(ctx context.Context, userID string) (TotalHoursResponse, error)
	History(ctx context.Context, userID string) ([]AttendanceResponse, error)
	ExportXLSX(ctx context.Context, userID string) ([]byte, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (s *service) Swipe(ctx context.Context, userID, swipeType string) (AttendanceResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	uid, err := s.ensureUser(ctx, userID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	t := strings.ToUpper(strings.TrimSpace(swipeType))
	if t != SwipeIn && t != SwipeOut {
		l.Warn("swipe rejected", zap.String("user_id", userID), zap.String("type", swipeType))
		return AttendanceResponse{}, attendanceerrors.ErrInvalidSwipeType
	}

	row := &Attendance{
		ID:        uuid.New(),
		UserID:    uid,
		Type:      t,
		Timestamp: s.now(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		l.Error("swipe persist failed", zap.String("user_id", userID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	l.Info("swipe recorded",
		zap.String("user_id", userID),
		zap.String("type", t),
		zap.Time("timestamp", row.Timestamp),
	)
	return mapToResponse(*row), nil
}

func (s *service) TotalHours(ctx context.Context, userID string) (TotalHoursResponse, error) {
	rows, err := s.loadSwipes(ctx, userID)
	if err != nil {
		return TotalHoursResponse{}, err
	}
	return TotalHoursResponse{UserID: userID, TotalHours: CalculateHours(rows)}, nil
}

func (s *service) History(ctx context.Context, userID string) ([]AttendanceResponse, error) {
	rows, err := s.loadSwipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) ExportXLSX(ctx context.Context, userID string) ([]byte, error) {
	rows, err := s.loadSwipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := buildWorkbook(rows)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("attendance export failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, attendanceerrors.ErrExportFailed.WithCause(err)
	}
	return data, nil
}

func (s *service) ensureUser(ctx context.Context, userID string) (uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, attendanceerrors.ErrInvalidUserID
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if !exists {
		return uuid.Nil, attendanceerrors.ErrUserNotFound
	}
	return uid, nil
}

func (s *service) loadSwipes(ctx context.Context, userID string) ([]Attendance, error) {
	if _, err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("load swipes failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		Type:      a.Type,
		Timestamp: a.Timestamp.UTC().Format(time.RFC3339),
	}
}
