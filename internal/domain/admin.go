package domain

import (
	"time"

	"github.com/google/uuid"
)

type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:140;uniqueIndex"`
	PasswordHash string    `gorm:"size:100"`
	Name         string    `gorm:"size:140"`
	CreatedAt    time.Time
}

// AdminGrant marks a user as administrator. The table is the allowlist.
type AdminGrant struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

func (AdminGrant) TableName() string { return "admins" }

// AdminSession is the persisted admin flag for a browser session.
type AdminSession struct {
	Authenticated bool   `json:"isAuthenticated"`
	AdminEmail    string `json:"adminEmail"`
}
