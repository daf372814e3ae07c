package entity

import "time"

// UserRole 用户角色
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleFieldStaff = "field_staff"
)

// User 系统用户
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:200;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:100;not null"`
	Image        string    `json:"image" gorm:"size:500;default:''"`
	Role         string    `json:"role" gorm:"size:20;not null;default:field_staff"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
