package attendance

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, a *Attendance) error
	FindAllByUser(ctx context.Context, userID string) ([]Attendance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindAllByUser returns swipes oldest first; the hours scan depends on it.
func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("swiped_at ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}
