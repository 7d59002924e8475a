package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an in-app notification row targeted at a single user.
// Metadata carries event context such as the form and term it refers to.
type Notification struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"index;not null" json:"user_id"`
	Type      string            `gorm:"size:64" json:"type"`
	Message   string            `gorm:"type:text" json:"message"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	Read      bool              `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
