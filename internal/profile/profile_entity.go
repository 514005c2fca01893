package profile

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_profiles_user_id"`
	Phone            string    `gorm:"column:phone;type:varchar(50)"`
	Address          string    `gorm:"column:address;type:text"`
	DateOfBirth      string    `gorm:"column:date_of_birth;type:varchar(20)"`
	JoinDate         string    `gorm:"column:join_date;type:varchar(20)"`
	Department       string    `gorm:"column:department;type:varchar(255)"`
	Position         string    `gorm:"column:position;type:varchar(255)"`
	EmergencyContact string    `gorm:"column:emergency_contact;type:varchar(255)"`
	EmergencyPhone   string    `gorm:"column:emergency_phone;type:varchar(50)"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
