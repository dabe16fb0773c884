package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/repwear/app/repositories"
	"github.com/shashiranjanraj/repwear/pkg/cache"
	"github.com/shashiranjanraj/repwear/pkg/logger"
	"github.com/shashiranjanraj/repwear/pkg/metrics"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 15 * time.Minute
	dashboardWindow   = 30 * 24 * time.Hour
)

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	Revenue       float64                    `json:"revenue"`
	OrdersByState []repositories.StatusCount `json:"ordersByStatus"`
	TopProducts   []repositories.TopProduct  `json:"topProducts"`
	Customers     repositories.CustomerSplit `json:"customers"`
	WindowDays    int                        `json:"windowDays"`
	GeneratedAt   time.Time                  `json:"generatedAt"`
}

// DashboardService aggregates order data for the admin dashboard,
// fronted by a Redis cache.
type DashboardService struct {
	repo repositories.DashboardRepository
}

func NewDashboardService(repo repositories.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Stats returns the dashboard numbers, served from cache when warm.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if cache.Get(dashboardCacheKey, &cached) {
		metrics.CacheHits.WithLabelValues(dashboardCacheKey).Inc()
		return &cached, nil
	}
	metrics.CacheMisses.WithLabelValues(dashboardCacheKey).Inc()

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.Set(dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
		logger.Warn("dashboard: cache write failed", "error", err)
	}
	return stats, nil
}

// RefreshDashboardCache recomputes the stats and replaces the cached
// copy. The scheduler calls this periodically so admins rarely hit a
// cold cache.
func (s *DashboardService) RefreshDashboardCache(ctx context.Context) error {
	stats, err := s.compute(ctx)
	if err != nil {
		return err
	}
	if err := cache.Set(dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
		return err
	}
	logger.Info("dashboard: cache refreshed", "revenue", stats.Revenue)
	return nil
}

func (s *DashboardService) compute(ctx context.Context) (*DashboardStats, error) {
	since := time.Now().Add(-dashboardWindow)

	revenue, err := s.repo.RevenueSince(ctx, since)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.OrdersByStatus(ctx, since)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopProducts(ctx, since, 10)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.CustomerSplit(ctx, since)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Revenue:       revenue,
		OrdersByState: byStatus,
		TopProducts:   top,
		Customers:     customers,
		WindowDays:    int(dashboardWindow.Hours() / 24),
		GeneratedAt:   time.Now(),
	}, nil
}
