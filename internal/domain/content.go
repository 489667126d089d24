package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:140;not null" json:"name"`
	Slug      string    `gorm:"size:140;uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type FAQ struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	SortOrder int       `gorm:"column:sort_order;default:0;index" json:"order"`
	Visible   bool      `gorm:"not null" json:"visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LogoShape string

const (
	LogoSquare LogoShape = "square"
	LogoCircle LogoShape = "circle"
)

type LogoPosition struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// Settings is the single store-wide row used as display context.
type Settings struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	StoreName    string            `gorm:"size:140" json:"store_name"`
	LogoURL      string            `gorm:"size:255" json:"logo_url"`
	LogoShape    LogoShape         `gorm:"type:varchar(10);default:'square'" json:"logo_shape"`
	LogoPosition LogoPosition      `gorm:"type:jsonb;serializer:json" json:"logo_position"`
	Address      string            `gorm:"size:255" json:"address"`
	Phone        string            `gorm:"size:60" json:"phone"`
	Email        string            `gorm:"size:140" json:"email"`
	SocialLinks  map[string]string `gorm:"type:jsonb;serializer:json" json:"social_links"`
	MapLocation  string            `gorm:"type:text" json:"map_location"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// DefaultSettings is served when no settings row has been persisted yet.
func DefaultSettings() Settings {
	return Settings{
		StoreName:    "الأسك كروب",
		LogoShape:    LogoSquare,
		LogoPosition: LogoPosition{X: 0, Y: 0, Scale: 1},
		Address:      "بغداد، العراق",
		Phone:        "+964 770 000 0000",
		Email:        "info@store.com",
		SocialLinks:  map[string]string{},
	}
}
