package models

// OrderItem is a snapshot of a product at order-creation time. Title, price
// and image are copied so later catalog edits or deletions never change a
// historical order.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   uint    `json:"-" gorm:"index;not null"`
	ProductID uint    `json:"productId,omitempty"`
	Title     string  `json:"title" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Image     string  `json:"image,omitempty"`
}

func (it *OrderItem) Validate() error {
	if it.Title == "" {
		return NewValidationError("item title is required")
	}
	if it.Quantity < 1 {
		return NewValidationError("item quantity must be at least 1")
	}
	if it.Price < 0 {
		return NewValidationError("item price must be non-negative")
	}
	return nil
}
