package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-attendance/internal/shared/contextutil"
	usererrors "go-attendance/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	ManagersCacheKey = "users:managers"
	managersCacheTTL = time.Hour
)

type Service interface {
	Register(ctx context.Context, req RegisterUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetManagers(ctx context.Context) ([]UserResponse, error)
	GetEmployeesOfManager(ctx context.Context, managerID string) ([]UserResponse, error)
}

type Options struct {
	// StorePlaintextPasswords keeps the legacy behaviour of saving the
	// submitted password verbatim. Known defect, only for migrations.
	StorePlaintextPasswords bool
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	opts   Options
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	if opts.StorePlaintextPasswords {
		l.Warn("STORE_PLAINTEXT_PASSWORDS is enabled: passwords are persisted without hashing")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		opts:   opts,
		logger: l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Role) == "" {
		return UserResponse{}, usererrors.ErrMissingRequiredFields
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register lookup by email failed", zap.Error(err))
		return UserResponse{}, err
	}
	if existing != nil {
		l.Warn("register duplicate email", zap.String("email", req.Email))
		return UserResponse{}, usererrors.ErrUserAlreadyExists
	}

	u := &User{
		ID:    uuid.New(),
		Name:  req.Name,
		Email: req.Email,
		Role:  strings.ToUpper(strings.TrimSpace(req.Role)),
	}

	switch u.Role {
	case RoleEmployee:
		manager, err := s.resolveManager(ctx, req.Manager)
		if err != nil {
			return UserResponse{}, err
		}
		u.ManagerID = &manager.ID
		u.Manager = manager
	case RoleManager:
		u.ManagerID = nil
		u.Manager = nil
	default:
		if req.Manager != nil && strings.TrimSpace(req.Manager.ID) != "" {
			manager, err := s.findManagerRef(ctx, req.Manager.ID)
			if err != nil {
				return UserResponse{}, err
			}
			u.ManagerID = &manager.ID
			u.Manager = manager
		}
	}

	password, err := s.encodePassword(req.Password)
	if err != nil {
		l.Error("register hash password failed", zap.Error(err))
		return UserResponse{}, err
	}
	u.Password = password

	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("register persist failed", zap.String("email", u.Email), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if u.Role == RoleManager {
		s.invalidateManagers(ctx)
	}

	l.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return mapToResponse(*u), nil
}

func (s *service) resolveManager(ctx context.Context, ref *ManagerRef) (*User, error) {
	if ref == nil || strings.TrimSpace(ref.ID) == "" {
		return nil, usererrors.ErrManagerRequired
	}

	manager, err := s.findManagerRef(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if manager.Role != RoleManager {
		return nil, usererrors.ErrInvalidManager
	}
	return manager, nil
}

// findManagerRef loads the referenced user without checking its role.
func (s *service) findManagerRef(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidManager
	}

	manager, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrInvalidManager
		}
		return nil, err
	}
	return manager, nil
}

func (s *service) encodePassword(raw string) (string, error) {
	if s.opts.StorePlaintextPasswords || raw == "" {
		return raw, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(users), nil
}

// GetManagers is read on every registration form, so it is cached in Redis and
// concurrent misses share one query.
func (s *service) GetManagers(ctx context.Context) ([]UserResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ManagersCacheKey).Result(); err == nil {
			var resp []UserResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ManagersCacheKey, func() (interface{}, error) {
		managers, err := s.repo.FindByRole(ctx, RoleManager)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(managers)
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, ManagersCacheKey, payload, managersCacheTTL).Err(); err != nil {
					s.logger.Warn("cache managers failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get managers failed", zap.Error(err))
		return nil, err
	}

	return v.([]UserResponse), nil
}

func (s *service) GetEmployeesOfManager(ctx context.Context, managerID string) ([]UserResponse, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindByID(ctx, managerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrManagerNotFound
		}
		return nil, err
	}

	employees, err := s.repo.FindEmployeesOf(ctx, managerID)
	if err != nil {
		s.logger.Error("get employees of manager failed",
			zap.String("manager_id", managerID),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(employees), nil
}

func (s *service) invalidateManagers(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ManagersCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate managers cache",
			zap.String("key", ManagersCacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.Manager != nil {
		resp.Manager = &UserSummary{
			ID:    u.Manager.ID.String(),
			Name:  u.Manager.Name,
			Email: u.Manager.Email,
			Role:  u.Manager.Role,
		}
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
