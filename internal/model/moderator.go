package model

import "time"

// RoleAdmin is the role required by the moderation routes.
const RoleAdmin = "ADMIN"

// Moderator is an account allowed to log in and work the moderation queue.
type Moderator struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName  string    `gorm:"type:varchar(255)" json:"display_name"`
	Role         string    `gorm:"type:varchar(16);not null" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Moderator) TableName() string {
	return "moderators"
}
