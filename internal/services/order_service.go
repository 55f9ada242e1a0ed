package services

import (
	"fmt"
	"math"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repository"
)

const (
	defaultTaxRate     = 0.08
	defaultDeliveryFee = 2.99
)

type OrderItemInput struct {
	ProductID uint    `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type CreateOrderInput struct {
	Items         []OrderItemInput `json:"items"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`
	CustomerPhone string           `json:"customerPhone"`
	Address       string           `json:"address"`
	Pincode       string           `json:"pincode"`
	PaymentMethod string           `json:"paymentMethod"`
	Tax           *float64         `json:"tax"`
	DeliveryFee   *float64         `json:"deliveryFee"`
}

type OrderService interface {
	List() ([]models.Order, error)
	Create(input CreateOrderInput) (*models.Order, error)
	UpdateStatus(id uint, status string) (*models.Order, error)
	Delete(id uint) error
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) List() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

func (s *orderService) Create(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, models.NewValidationError("items required")
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	subtotal := 0.0
	for _, it := range input.Items {
		quantity := it.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Quantity:  quantity,
			Image:     it.Image,
		})
		subtotal += it.Price * float64(quantity)
	}
	subtotal = round2(subtotal)

	tax := round2(subtotal * defaultTaxRate)
	if input.Tax != nil {
		tax = *input.Tax
	}
	deliveryFee := defaultDeliveryFee
	if input.DeliveryFee != nil {
		deliveryFee = *input.DeliveryFee
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = string(models.PaymentCOD)
	}

	order := &models.Order{
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		DeliveryFee:   deliveryFee,
		TotalAmount:   round2(subtotal + tax + deliveryFee),
		Status:        string(models.OrderPending),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Address:       input.Address,
		Pincode:       input.Pincode,
		PaymentMethod: paymentMethod,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// UpdateStatus checks the value against the known status set but places no
// restriction on the transition itself.
func (s *orderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	if err := models.ValidateOrderStatus(status); err != nil {
		return nil, err
	}
	return s.orderRepo.UpdateStatus(id, status)
}

func (s *orderService) Delete(id uint) error {
	return s.orderRepo.Delete(id)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
