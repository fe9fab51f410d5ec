package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"clienttrack/internal/cache"
	"clienttrack/internal/model"
	"clienttrack/internal/repository"
)

const revenueCacheTTL = 5 * time.Minute

func revenueCacheKey(userID uint) string {
	return fmt.Sprintf("revenue:%d", userID)
}

// DashboardService computes the aggregate views shown on the dashboard.
type DashboardService interface {
	TotalRevenue(ctx context.Context, userID uint) (decimal.Decimal, error)
	Projects(ctx context.Context, userID uint, sortKey string) ([]model.ProjectSummary, error)
}

type dashboardService struct {
	projectRepo repository.ProjectRepository
	cache       *cache.Client
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(projectRepo repository.ProjectRepository, cache *cache.Client) DashboardService {
	return &dashboardService{
		projectRepo: projectRepo,
		cache:       cache,
	}
}

// TotalRevenue sums project values across the user's clients, zero when the
// user owns no projects. Cached per user; writes invalidate the entry.
func (s *dashboardService) TotalRevenue(ctx context.Context, userID uint) (decimal.Decimal, error) {
	key := revenueCacheKey(userID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		if cached, err := decimal.NewFromString(string(data)); err == nil {
			return cached, nil
		}
	}

	total, err := s.projectRepo.SumValueByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum project values: %w", err)
	}

	_ = s.cache.Set(ctx, key, []byte(total.String()), revenueCacheTTL)
	return total, nil
}

// Projects lists the user's projects with client names under the given sort
// key. Unrecognized keys fall back to the deadline ordering.
func (s *dashboardService) Projects(ctx context.Context, userID uint, sortKey string) ([]model.ProjectSummary, error) {
	switch sortKey {
	case repository.SortImportance, repository.SortClient, repository.SortValue:
	default:
		sortKey = repository.SortDeadline
	}
	return s.projectRepo.ListByUser(ctx, userID, sortKey)
}
