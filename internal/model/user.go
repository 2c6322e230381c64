package model

import (
	"time"
)

// 用户角色
const (
	RoleAdmin    = "ADMIN"
	RoleTraveler = "TRAVELER"
)

// 用户状态
const (
	UserStatusActive  = "ACTIVE"
	UserStatusBlocked = "BLOCKED"
)

// User 认证账号（与 Traveler 资料分离）
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;default:TRAVELER;not null" json:"role"` // ADMIN, TRAVELER
	Status       string    `gorm:"size:20;default:ACTIVE;index" json:"status"`    // ACTIVE, BLOCKED
	IsDeleted    bool      `gorm:"default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
