package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Minimal in-memory repositories so the routes run against real services.

type memUserRepo struct {
	users  []*models.User
	nextID uint
}

func (r *memUserRepo) Create(user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *memUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetAll() ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type memProductRepo struct {
	products []*models.Product
	nextID   uint
}

func (r *memProductRepo) Create(p *models.Product) error {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	copied := *p
	r.products = append(r.products, &copied)
	return nil
}

func (r *memProductRepo) GetByID(id uint) (*models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memProductRepo) GetAll() ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.products))
	for i := len(r.products) - 1; i >= 0; i-- {
		out = append(out, *r.products[i])
	}
	return out, nil
}

func (r *memProductRepo) Update(p *models.Product) error {
	for i, existing := range r.products {
		if existing.ID == p.ID {
			copied := *p
			r.products[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memProductRepo) Delete(id uint) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			break
		}
	}
	return nil
}

type memOrderRepo struct {
	orders []*models.Order
	nextID uint
}

func (r *memOrderRepo) Create(o *models.Order) error {
	r.nextID++
	o.ID = r.nextID
	o.CreatedAt = time.Now()
	copied := *o
	r.orders = append(r.orders, &copied)
	return nil
}

func (r *memOrderRepo) GetByID(id uint) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			copied := *o
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memOrderRepo) GetAll() ([]models.Order, error) {
	out := make([]models.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, *r.orders[i])
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(id uint, status string) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			return r.GetByID(id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memOrderRepo) Delete(id uint) error {
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}

type testEnv struct {
	router *gin.Engine
	auth   services.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel) // Reduce noise in tests

	userRepo := &memUserRepo{}
	productRepo := &memProductRepo{}
	orderRepo := &memOrderRepo{}

	authService := services.NewAuthService(userRepo, "test-secret", time.Hour, "letmein")
	orderService := services.NewOrderService(orderRepo)
	dashboardService := services.NewDashboardService(productRepo, orderRepo, userRepo, nil, time.Minute, logger)

	authHandler := NewAuthHandler(authService, logger)
	orderHandler := NewOrderHandler(orderService, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)

	router := gin.New()
	router.Use(NoCache())

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", Auth(authService), authHandler.Me)
	}

	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/stats", dashboardHandler.Stats)
		dashboard.GET("/users", Auth(authService), RequireAdmin(), dashboardHandler.Users)
	}

	orders := router.Group("/api/orders")
	{
		orders.GET("", orderHandler.List)
		orders.POST("", orderHandler.Create)
		orders.PUT("/:id", orderHandler.UpdateStatus)
		orders.DELETE("/:id", orderHandler.Delete)
	}

	return &testEnv{router: router, auth: authService}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, input services.RegisterInput) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", input, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Token
}

func TestRegisterLoginAndMe(t *testing.T) {
	env := newTestEnv(t)

	token := env.register(t, services.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "hunter2"})

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		User map[string]interface{} `json:"user"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.User["email"] != "ada@example.com" {
		t.Errorf("me user = %v", resp.User)
	}
	if _, leaked := resp.User["password"]; leaked {
		t.Error("me response serializes a password field")
	}
}

func TestMeRejectsMissingAndBadTokens(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(t, http.MethodGet, "/api/auth/me", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/auth/me", nil, "garbage.token.here"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: got %d, want 401", w.Code)
	}
}

func TestRegisterConflictAndAdminSecret(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, services.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "pw"})

	w := env.do(t, http.MethodPost, "/api/auth/register",
		services.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "pw"}, "")
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate email: got %d, want 409", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/auth/register",
		services.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "pw", Role: "admin", AdminSecret: "wrong"}, "")
	if w.Code != http.StatusForbidden {
		t.Errorf("wrong admin secret: got %d, want 403", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, services.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "pw"})

	w := env.do(t, http.MethodPost, "/api/auth/login",
		services.LoginInput{Email: "ada@example.com", Password: "nope"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: got %d, want 401", w.Code)
	}
}

func TestDashboardUsersRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	userToken := env.register(t, services.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	adminToken := env.register(t, services.RegisterInput{Name: "Root", Email: "root@example.com", Password: "pw", Role: "admin", AdminSecret: "letmein"})

	if w := env.do(t, http.MethodGet, "/api/dashboard/users", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/dashboard/users", nil, userToken); w.Code != http.StatusForbidden {
		t.Errorf("user token: got %d, want 403", w.Code)
	}

	w := env.do(t, http.MethodGet, "/api/dashboard/users", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("admin token: got %d, want 200", w.Code)
	}
	var users []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &users)
	if len(users) != 2 {
		t.Errorf("got %d users, want 2", len(users))
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"title": "Burger", "price": 10, "quantity": 2},
			{"title": "Fries", "price": 5, "quantity": 1},
		},
		"customerName": "Ada",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create order returned %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	json.Unmarshal(w.Body.Bytes(), &order)
	if order.Subtotal != 25 || order.Tax != 2.00 || order.DeliveryFee != 2.99 || order.TotalAmount != 29.99 {
		t.Errorf("totals = %v/%v/%v/%v, want 25/2.00/2.99/29.99",
			order.Subtotal, order.Tax, order.DeliveryFee, order.TotalAmount)
	}
	if order.Status != "pending" {
		t.Errorf("status = %q, want pending", order.Status)
	}
}

func TestCreateOrderWithoutItems(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{"customerName": "Ada"}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", w.Code)
	}
}

func TestOrderStatusUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{{"title": "Burger", "price": 10, "quantity": 1}},
	}, "")
	var order models.Order
	json.Unmarshal(w.Body.Bytes(), &order)

	w = env.do(t, http.MethodPut, "/api/orders/1", map[string]string{"status": "delivered"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", w.Code, w.Body.String())
	}
	var updated models.Order
	json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Status != "delivered" {
		t.Errorf("status = %q, want delivered", updated.Status)
	}

	if w = env.do(t, http.MethodPut, "/api/orders/1", map[string]string{"status": "vanished"}, ""); w.Code != http.StatusBadRequest {
		t.Errorf("unknown status: got %d, want 400", w.Code)
	}

	w = env.do(t, http.MethodDelete, "/api/orders/1", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete returned %d", w.Code)
	}
	var deleted map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &deleted)
	if deleted["success"] != true {
		t.Errorf("delete body = %v, want success true", deleted)
	}

	if w = env.do(t, http.MethodGet, "/api/orders", nil, ""); w.Body.String() == "" {
		t.Error("list returned empty body")
	}
}

func TestNoCacheHeadersOnAPIRoutes(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/dashboard/stats", nil, "")
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}
