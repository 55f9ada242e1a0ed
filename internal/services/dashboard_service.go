package services

import (
	"fmt"
	"math"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repository"
	"time"

	"github.com/sirupsen/logrus"
)

type DashboardStats struct {
	TotalProducts     int     `json:"totalProducts"`
	InStock           int     `json:"inStock"`
	InStockPercentage int     `json:"inStockPercentage"`
	TotalOrders       int     `json:"totalOrders"`
	TodayOrders       int     `json:"todayOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// StatsCache holds recent dashboard aggregates. Backed by Redis in
// production; nil disables caching entirely.
type StatsCache interface {
	GetStats(dest interface{}) (bool, error)
	SetStats(value interface{}, ttl time.Duration) error
}

type DashboardService interface {
	Stats() (*DashboardStats, error)
	ListUsers() ([]models.UserSummary, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	cache       StatsCache
	cacheTTL    time.Duration
	logger      *logrus.Logger
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	cache StatsCache,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Stats aggregates over the full products and orders tables. Fine at this
// scale; cached briefly so a busy dashboard does not rescan on every poll.
func (s *dashboardService) Stats() (*DashboardStats, error) {
	if s.cache != nil {
		var cached DashboardStats
		hit, err := s.cache.GetStats(&cached)
		if err != nil {
			s.logger.WithError(err).Warn("Stats cache read failed, recomputing")
		} else if hit {
			return &cached, nil
		}
	}

	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	stats := &DashboardStats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
	}
	for _, p := range products {
		if p.Status {
			stats.InStock++
		}
	}
	if stats.TotalProducts > 0 {
		stats.InStockPercentage = int(math.Round(float64(stats.InStock) / float64(stats.TotalProducts) * 100))
	}

	// "Today" is the server-local calendar date
	today := time.Now().Format("2006-01-02")
	for _, o := range orders {
		if o.CreatedAt.Local().Format("2006-01-02") == today {
			stats.TodayOrders++
		}
		stats.TotalRevenue += o.TotalAmount
	}

	if s.cache != nil {
		if err := s.cache.SetStats(stats, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Stats cache write failed")
		}
	}
	return stats, nil
}

func (s *dashboardService) ListUsers() ([]models.UserSummary, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}
