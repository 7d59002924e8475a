package models

import "time"

// Student is the academic profile completed by a user with the student role.
type Student struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Program     string    `gorm:"size:255;not null" json:"program"`
	Degree      string    `gorm:"size:64;not null" json:"degree"`
	YearOfStudy int       `gorm:"not null" json:"year_of_study"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
}
