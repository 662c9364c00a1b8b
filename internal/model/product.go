package model

import "time"

// Product represents a catalog entry. DiscountPrice is the effective unit
// price; it is either supplied directly or derived from MRP and
// DiscountPercentage (see service.DerivedDiscountPrice).
//
// Deletion is permanent. Historical order items keep their frozen price but
// lose the product association once it is removed.
type Product struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"type:varchar(255);index;not null"`
	Description        string    `json:"description" gorm:"type:text"`
	Color              *string   `json:"color,omitempty" gorm:"type:varchar(50)"`
	Fabric             *string   `json:"fabric,omitempty" gorm:"type:varchar(50)"`
	Rating             float64   `json:"rating" gorm:"default:0"`
	Category           string    `json:"category" gorm:"type:varchar(100);index"`
	Tags               string    `json:"tags" gorm:"type:varchar(255);index"`
	MRP                float64   `json:"mrp" gorm:"default:0"`
	DiscountPercentage float64   `json:"discount_percentage" gorm:"default:0"`
	DiscountPrice      float64   `json:"discount_price"`
	Photos             []string  `json:"photos" gorm:"serializer:json"`
	Stock              int       `json:"stock" gorm:"default:0"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
