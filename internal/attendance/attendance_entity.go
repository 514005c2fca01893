package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	SwipeIn  = "IN"
	SwipeOut = "OUT"
)

// Attendance is one swipe. Rows are only ever inserted.
type Attendance struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_attendances_user_ts,priority:1"`
	Type      string    `gorm:"column:type;type:varchar(10);not null"`
	Timestamp time.Time `gorm:"column:swiped_at;not null;index:idx_attendances_user_ts,priority:2"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Attendance) TableName() string {
	return "attendances"
}
