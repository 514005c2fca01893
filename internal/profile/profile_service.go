package profile

import (
	"context"
	"errors"

	profileerrors "go-attendance/internal/profile/errors"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Service resolves the single profile of a user. The bool result is false
// when the user does not exist; that is not an error.
type Service interface {
	GetOrCreate(ctx context.Context, userID string) (ProfileResponse, bool, error)
	Update(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, bool, error)
}

type service struct {
	repo   Repository
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetOrCreate(ctx context.Context, userID string) (ProfileResponse, bool, error) {
	p, found, err := s.resolve(ctx, userID)
	if err != nil || !found {
		return ProfileResponse{}, found, err
	}
	return mapToResponse(p), true, nil
}

func (s *service) Update(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, bool, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	p, found, err := s.resolve(ctx, userID)
	if err != nil || !found {
		return ProfileResponse{}, found, err
	}

	p.Phone = req.Phone
	p.Address = req.Address
	p.DateOfBirth = req.DateOfBirth
	p.JoinDate = req.JoinDate
	p.Department = req.Department
	p.Position = req.Position
	p.EmergencyContact = req.EmergencyContact
	p.EmergencyPhone = req.EmergencyPhone

	if err := s.repo.Save(ctx, &p); err != nil {
		l.Error("profile save failed", zap.String("user_id", userID), zap.Error(err))
		return ProfileResponse{}, false, err
	}

	l.Info("profile updated", zap.String("user_id", userID), zap.String("profile_id", p.ID.String()))
	return mapToResponse(p), true, nil
}

// resolve returns the stored profile, creating an empty one for a known user.
// Concurrent callers for the same user share one lookup; a writer that loses
// the insert race in another process re-reads the winner's row.
func (s *service) resolve(ctx context.Context, userID string) (Profile, bool, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Profile{}, false, profileerrors.ErrInvalidUserID
	}

	type result struct {
		profile Profile
		found   bool
	}

	v, err, _ := s.group.Do(uid.String(), func() (any, error) {
		p, found, err := s.findOrCreate(ctx, uid)
		return result{profile: p, found: found}, err
	})
	if err != nil {
		return Profile{}, false, err
	}
	r := v.(result)
	return r.profile, r.found, nil
}

func (s *service) findOrCreate(ctx context.Context, uid uuid.UUID) (Profile, bool, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	userID := uid.String()

	existing, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return *existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		return Profile{}, false, err
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		l.Error("profile user lookup failed", zap.String("user_id", userID), zap.Error(err))
		return Profile{}, false, err
	}
	if !exists {
		return Profile{}, false, nil
	}

	p := Profile{ID: uuid.New(), UserID: uid}
	if err := s.repo.Create(ctx, &p); err != nil {
		if !isDuplicateProfile(err) {
			l.Error("profile create failed", zap.String("user_id", userID), zap.Error(err))
			return Profile{}, false, err
		}

		winner, err := s.repo.FindByUserID(ctx, userID)
		if err != nil {
			l.Error("profile re-read after conflict failed", zap.String("user_id", userID), zap.Error(err))
			return Profile{}, false, err
		}
		return *winner, true, nil
	}

	l.Info("profile created", zap.String("user_id", userID), zap.String("profile_id", p.ID.String()))
	return p, true, nil
}

func mapToResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:               p.ID.String(),
		UserID:           p.UserID.String(),
		Phone:            p.Phone,
		Address:          p.Address,
		DateOfBirth:      p.DateOfBirth,
		JoinDate:         p.JoinDate,
		Department:       p.Department,
		Position:         p.Position,
		EmergencyContact: p.EmergencyContact,
		EmergencyPhone:   p.EmergencyPhone,
	}
}
