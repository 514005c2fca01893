package profile_test

import (
	"context"
	"errors"
	"testing"

	"go-attendance/internal/profile"
	profileerrors "go-attendance/internal/profile/errors"
	mock_profile "go-attendance/internal/profile/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) (*mock_profile.MockRepository, profile.Service) {
	ctrl := gomock.NewController(t)
	repo := mock_profile.NewMockRepository(ctrl)
	return repo, profile.NewService(repo)
}

func TestProfileService_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("existing profile", func(t *testing.T) {
		repo, svc := setupServiceTest(t)
		stored := &profile.Profile{ID: uuid.New(), UserID: userID, Phone: "555"}

		repo.EXPECT().FindByUserID(ctx, userID.String()).Return(stored, nil)

		resp, found, err := svc.GetOrCreate(ctx, userID.String())

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, stored.ID.String(), resp.ID)
		assert.Equal(t, "555", resp.Phone)
	})

	t.Run("creates an empty profile for a known user", func(t *testing.T) {
		repo, svc := setupServiceTest(t)

		repo.EXPECT().FindByUserID(ctx, userID.String()).Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().UserExists(ctx, userID.String()).Return(true, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *profile.Profile) error {
			assert.Equal(t, userID, p.UserID)
			assert.NotEqual(t, uuid.Nil, p.ID)
			assert.Empty(t, p.Phone)
			return nil
		})

		resp, found, err := svc.GetOrCreate(ctx, userID.String())

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, userID.String(), resp.UserID)
	})

	t.Run("unknown user is absent, not an error", func(t *testing.T) {
		repo, svc := setupServiceTest(t)

		repo.EXPECT().FindByUserID(ctx, userID.String()).Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().UserExists(ctx, userID.String()).Return(false, nil)

		_, found, err := svc.GetOrCreate(ctx, userID.String())

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("lost insert race re-reads the winner", func(t *testing.T) {
		repo, svc := setupServiceTest(t)
		winner := &profile.Profile{ID: uuid.New(), UserID: userID}

		gomock.InOrder(
			repo.EXPECT().FindByUserID(ctx, userID.String()).Return(nil, gorm.ErrRecordNotFound),
			repo.EXPECT().UserExists(ctx, userID.String()).Return(true, nil),
			repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_profiles_user_id"}),
			repo.EXPECT().FindByUserID(ctx, userID.String()).Return(winner, nil),
		)

		resp, found, err := svc.GetOrCreate(ctx, userID.String())

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, winner.ID.String(), resp.ID)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo, svc := setupServiceTest(t)
		boom := errors.New("connection reset")

		repo.EXPECT().FindByUserID(ctx, userID.String()).Return(nil, boom)

		_, _, err := svc.GetOrCreate(ctx, userID.String())

		assert.ErrorIs(t, err, boom)
	})

	t.Run("malformed user id", func(t *testing.T) {
		_, svc := setupServiceTest(t)

		_, _, err := svc.GetOrCreate(ctx, "abc")

		assert.ErrorIs(t, err, profileerrors.ErrInvalidUserID)
	})
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("replaces every field, blanks included", func(t *testing.T) {
		repo, svc := setupServiceTest(t)
		stored := &profile.Profile{
			ID:         uuid.New(),
			UserID:     userID,
			Phone:      "555",
			Address:    "Old street",
			Department: "Ops",
		}
		req := profile.UpdateProfileRequest{
			Phone:          "777",
			Department:     "Engineering",
			EmergencyPhone: "911",
		}

		repo.EXPECT().FindByUserID(ctx, userID.String()).Return(stored, nil)
		repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *profile.Profile) error {
			assert.Equal(t, stored.ID, p.ID)
			assert.Equal(t, "777", p.Phone)
			assert.Empty(t, p.Address)
			assert.Equal(t, "Engineering", p.Department)
			return nil
		})

		resp, found, err := svc.Update(ctx, userID.String(), req)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, profile.ProfileResponse{
			ID:             stored.ID.String(),
			UserID:         userID.String(),
			Phone:          "777",
			Department:     "Engineering",
			EmergencyPhone: "911",
		}, resp)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo, svc := setupServiceTest(t)

		repo.EXPECT().FindByUserID(ctx, userID.String()).Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().UserExists(ctx, userID.String()).Return(false, nil)

		_, found, err := svc.Update(ctx, userID.String(), profile.UpdateProfileRequest{Phone: "1"})

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("save failure", func(t *testing.T) {
		repo, svc := setupServiceTest(t)
		boom := errors.New("disk full")

		repo.EXPECT().FindByUserID(ctx, userID.String()).Return(&profile.Profile{ID: uuid.New(), UserID: userID}, nil)
		repo.EXPECT().Save(ctx, gomock.Any()).Return(boom)

		_, _, err := svc.Update(ctx, userID.String(), profile.UpdateProfileRequest{})

		assert.ErrorIs(t, err, boom)
	})
}
