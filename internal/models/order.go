package models

import "time"

type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal      float64     `json:"subtotal" gorm:"not null"`
	Tax           float64     `json:"tax" gorm:"not null;default:0"`
	DeliveryFee   float64     `json:"deliveryFee" gorm:"not null;default:0"`
	TotalAmount   float64     `json:"totalAmount" gorm:"not null"`
	Status        string      `json:"status" gorm:"default:'pending'"` // pending, confirmed, delivered, cancelled
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone string      `json:"customerPhone"`
	Address       string      `json:"address"`
	Pincode       string      `json:"pincode"`
	PaymentMethod string      `json:"paymentMethod" gorm:"default:'cod'"` // cod, card, upi
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

// ValidateOrderStatus accepts any known status value. Transitions are not
// restricted: an order may move between any two statuses.
func ValidateOrderStatus(status string) error {
	switch OrderStatus(status) {
	case OrderPending, OrderConfirmed, OrderDelivered, OrderCancelled:
		return nil
	}
	return NewValidationError("unknown order status: " + status)
}

func ValidatePaymentMethod(method string) error {
	switch PaymentMethod(method) {
	case PaymentCOD, PaymentCard, PaymentUPI:
		return nil
	}
	return NewValidationError("unknown payment method: " + method)
}

func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return NewValidationError("items required")
	}
	for i := range o.Items {
		if err := o.Items[i].Validate(); err != nil {
			return err
		}
	}
	if err := ValidateOrderStatus(o.Status); err != nil {
		return err
	}
	return ValidatePaymentMethod(o.PaymentMethod)
}
