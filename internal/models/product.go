package models

import "time"

type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Category  string    `json:"category" gorm:"not null"`
	Price     float64   `json:"price" gorm:"not null"`
	Status    bool      `json:"status" gorm:"default:true"` // true = in stock
	Image     string    `json:"image"` // absolute URL or /uploads/<file>
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Product) Validate() error {
	if p.Title == "" {
		return NewValidationError("title is required")
	}
	if p.Category == "" {
		return NewValidationError("category is required")
	}
	if p.Price < 0 {
		return NewValidationError("price must be non-negative")
	}
	return nil
}
