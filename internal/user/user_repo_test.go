package user

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
	// every new connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}), "failed to migrate table")
	return db
}

func seedUser(t *testing.T, repo Repository, email, role string, manager *User) *User {
	t.Helper()
	u := &User{ID: uuid.New(), Name: email, Email: email, Role: role}
	if manager != nil {
		u.ManagerID = &manager.ID
	}
	require.NoError(t, repo.Create(context.Background(), u))
	// distinct created_at values keep listing order stable
	time.Sleep(2 * time.Millisecond)
	return u
}

func TestRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	boss := seedUser(t, repo, "boss@example.com", RoleManager, nil)
	eli := seedUser(t, repo, "eli@example.com", RoleEmployee, boss)

	t.Run("find by id preloads manager", func(t *testing.T) {
		got, err := repo.FindByID(ctx, eli.ID.String())
		require.NoError(t, err)
		require.NotNil(t, got.Manager)
		assert.Equal(t, boss.ID, got.Manager.ID)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("find by email is exact", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "eli@example.com")
		require.NoError(t, err)
		assert.Equal(t, eli.ID, got.ID)

		_, err = repo.FindByEmail(ctx, "ELI@example.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Nil(t, got)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &User{ID: uuid.New(), Email: "eli@example.com", Role: RoleManager})
		require.Error(t, err)
		assert.Equal(t, "User with the same email already exists", mapRepositoryError(err).Error())
	})
}

func TestRepository_Listings(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	boss := seedUser(t, repo, "boss@example.com", RoleManager, nil)
	other := seedUser(t, repo, "other@example.com", RoleManager, nil)
	eli := seedUser(t, repo, "eli@example.com", RoleEmployee, boss)
	seedUser(t, repo, "sam@example.com", RoleEmployee, other)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	managers, err := repo.FindByRole(ctx, RoleManager)
	require.NoError(t, err)
	require.Len(t, managers, 2)
	assert.Equal(t, boss.ID, managers[0].ID)

	employees, err := repo.FindEmployeesOf(ctx, boss.ID.String())
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, eli.ID, employees[0].ID)

	none, err := repo.FindEmployeesOf(ctx, eli.ID.String())
	require.NoError(t, err)
	assert.Empty(t, none)
}
