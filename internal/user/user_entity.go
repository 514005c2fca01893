package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
)

type User struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name      string     `gorm:"column:name;type:varchar(255);not null"`
	Email     string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password  string     `gorm:"column:password;type:text"`
	Role      string     `gorm:"column:role;type:varchar(20);not null;index"`
	ManagerID *uuid.UUID `gorm:"column:manager_id;type:uuid;index"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Manager *User `gorm:"foreignKey:ManagerID;references:ID"`
	// Deleting a manager removes their employees as well.
	Employees []User `gorm:"foreignKey:ManagerID;references:ID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
