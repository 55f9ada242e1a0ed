package services

import (
	"restaurant_backend/internal/models"
	"time"

	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  []*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for i := len(r.users) - 1; i >= 0; i-- {
		out = append(out, *r.users[i])
	}
	return out, nil
}

type fakeProductRepo struct {
	products []*models.Product
	nextID   uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{nextID: 1}
}

func (r *fakeProductRepo) Create(product *models.Product) error {
	product.ID = r.nextID
	r.nextID++
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	copied := *product
	r.products = append(r.products, &copied)
	return nil
}

func (r *fakeProductRepo) GetByID(id uint) (*models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// GetAll mimics the newest-first ordering of the real repository.
func (r *fakeProductRepo) GetAll() ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.products))
	for i := len(r.products) - 1; i >= 0; i-- {
		out = append(out, *r.products[i])
	}
	return out, nil
}

func (r *fakeProductRepo) Update(product *models.Product) error {
	for i, p := range r.products {
		if p.ID == product.ID {
			copied := *product
			copied.UpdatedAt = time.Now()
			r.products[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) Delete(id uint) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders []*models.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1}
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	order.ID = r.nextID
	r.nextID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = order.CreatedAt
	copied := *order
	copied.Items = append([]models.OrderItem(nil), order.Items...)
	r.orders = append(r.orders, &copied)
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			copied := *o
			copied.Items = append([]models.OrderItem(nil), o.Items...)
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetAll() ([]models.Order, error) {
	out := make([]models.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		copied := *r.orders[i]
		copied.Items = append([]models.OrderItem(nil), r.orders[i].Items...)
		out = append(out, copied)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id uint, status string) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			o.UpdatedAt = time.Now()
			return r.GetByID(id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) Delete(id uint) error {
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}
