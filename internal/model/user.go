package model

import "time"

// User represents a store identity. The first user ever registered is
// granted the admin flag.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"type:varchar(255)"`
	Email          string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone          *string   `json:"phone,omitempty" gorm:"type:varchar(30);uniqueIndex"`
	HashedPassword string    `json:"-" gorm:"type:varchar(255)"`
	IsAdmin        bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
