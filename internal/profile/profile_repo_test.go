package profile

import (
	"context"
	"sync"
	"testing"

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

	require.NoError(t, db.Exec("CREATE TABLE users (id TEXT PRIMARY KEY)").Error)
	require.NoError(t, db.AutoMigrate(&Profile{}), "failed to migrate profiles")
	return db
}

func seedUserID(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec("INSERT INTO users (id) VALUES (?)", id.String()).Error)
	return id
}

func TestRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRepository(db)
	userID := seedUserID(t, db)

	exists, err := repo.UserExists(ctx, userID.String())
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UserExists(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByUserID(ctx, userID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	p := &Profile{ID: uuid.New(), UserID: userID, Phone: "555"}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.FindByUserID(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "555", got.Phone)

	dup := &Profile{ID: uuid.New(), UserID: userID}
	err = repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, isDuplicateProfile(err))
}

func TestService_UpdateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	userID := seedUserID(t, db)

	req := UpdateProfileRequest{
		Phone:            "555-0101",
		Address:          "1 Main St",
		DateOfBirth:      "1990-04-01",
		JoinDate:         "2024-01-15",
		Department:       "Engineering",
		Position:         "Developer",
		EmergencyContact: "Ana",
		EmergencyPhone:   "555-0199",
	}

	first, found, err := svc.Update(ctx, userID.String(), req)
	require.NoError(t, err)
	require.True(t, found)

	second, found, err := svc.Update(ctx, userID.String(), req)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, db.Model(&Profile{}).Where("user_id = ?", userID.String()).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	cleared, _, err := svc.Update(ctx, userID.String(), UpdateProfileRequest{Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, cleared.ID)
	assert.Empty(t, cleared.Address)
}

func TestService_ConcurrentGetOrCreateKeepsOneProfile(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	userID := seedUserID(t, db)

	const callers = 8
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, found, err := svc.GetOrCreate(ctx, userID.String())
			assert.NoError(t, err)
			assert.True(t, found)
			ids[i] = resp.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	var count int64
	require.NoError(t, db.Model(&Profile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestService_UnknownUserIsAbsent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	_, found, err := svc.GetOrCreate(context.Background(), uuid.NewString())

	require.NoError(t, err)
	assert.False(t, found)

	var count int64
	require.NoError(t, db.Model(&Profile{}).Count(&count).Error)
	assert.Zero(t, count)
}
