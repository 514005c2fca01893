package leave

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&UserRef{}, &LeaveRequest{}), "failed to migrate tables")
	return db
}

func seedLeave(t *testing.T, repo Repository, owner *UserRef, status string) *LeaveRequest {
	t.Helper()
	l := &LeaveRequest{
		ID:        uuid.New(),
		UserID:    owner.ID,
		StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		Reason:    "rest",
		Status:    status,
	}
	require.NoError(t, repo.Create(context.Background(), l))
	time.Sleep(2 * time.Millisecond)
	return l
}

func TestRepository_PendingForManager(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRepository(db)

	boss := &UserRef{ID: uuid.New(), Name: "Boss", Email: "boss@example.com", Role: "MANAGER"}
	other := &UserRef{ID: uuid.New(), Name: "Other", Email: "other@example.com", Role: "MANAGER"}
	eli := &UserRef{ID: uuid.New(), Name: "Eli", Email: "eli@example.com", Role: "EMPLOYEE", ManagerID: &boss.ID}
	sam := &UserRef{ID: uuid.New(), Name: "Sam", Email: "sam@example.com", Role: "EMPLOYEE", ManagerID: &other.ID}
	require.NoError(t, db.Create([]*UserRef{boss, other, eli, sam}).Error)

	pending := seedLeave(t, repo, eli, StatusPending)
	seedLeave(t, repo, eli, StatusApproved)
	seedLeave(t, repo, sam, StatusPending)

	got, err := repo.FindPendingByManager(ctx, boss.ID.String())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)
	require.NotNil(t, got[0].User)
	assert.Equal(t, "eli@example.com", got[0].User.Email)

	mine, err := repo.FindAllByUser(ctx, eli.ID.String())
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, pending.ID, mine[0].ID)
}

func TestRepository_UpdateAndFind(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRepository(db)

	eli := &UserRef{ID: uuid.New(), Name: "Eli", Email: "eli@example.com"}
	require.NoError(t, db.Create(eli).Error)
	l := seedLeave(t, repo, eli, StatusPending)

	feedback := "ok"
	l.Status = StatusApproved
	l.Feedback = &feedback
	require.NoError(t, repo.Update(ctx, l))

	got, err := repo.FindByID(ctx, l.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got.Status)
	require.NotNil(t, got.Feedback)
	assert.Equal(t, "ok", *got.Feedback)

	_, err = repo.FindByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindUser(ctx, uuid.New().String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_WithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRepository(db)

	eli := &UserRef{ID: uuid.New(), Name: "Eli", Email: "eli@example.com"}
	require.NoError(t, db.Create(eli).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	tx, err := sqlDB.BeginTx(ctx, nil)
	require.NoError(t, err)
	l := seedLeave(t, repo.WithTx(tx), eli, StatusPending)
	require.NoError(t, tx.Rollback())

	_, err = repo.FindByID(ctx, l.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
