package models

import "time"

// Product represents a product in the catalog.
// RecordID is the store's internal primary key; ID is the externally-visible
// identifier assigned by the service at creation time and never reassigned.
type Product struct {
	RecordID    uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	ID          string    `json:"id" gorm:"uniqueIndex;type:varchar(36);not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"index;not null"`
	InStock     bool      `json:"inStock" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductInput is the request payload for creating or updating a product.
// Price and InStock are pointers so that an absent field can be told apart
// from a zero value.
type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	InStock     *bool    `json:"inStock"`
}

// CategoryCount is one row of the per-category product statistics.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
