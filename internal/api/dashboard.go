package api

import (
	"context"
	"net/http"

	"sms-campaign-client/internal/cache"
	"sms-campaign-client/pkg/models"
)

type DashboardService struct {
	c *Client
}

func (s *DashboardService) dashboardQuery(ctx context.Context, endpoint, path string) (models.DashboardStats, error) {
	key := cache.Key(endpoint, nil)
	return runQuery(ctx, s.c, key, func(ctx context.Context) (models.DashboardStats, []cache.Tag, error) {
		var stats models.DashboardStats
		err := s.c.gw.DoJSON(ctx, http.MethodGet, path, nil, nil, &stats)
		if err != nil {
			return models.DashboardStats{}, nil, err
		}
		return stats, []cache.Tag{cache.ListTag(cache.KindDashboard)}, nil
	})
}

// Stats is the tenant-scoped dashboard.
func (s *DashboardService) Stats(ctx context.Context) (models.DashboardStats, error) {
	return s.dashboardQuery(ctx, "getDashboard", "/api/dashboard")
}

// AdminStats is the system-admin dashboard.
func (s *DashboardService) AdminStats(ctx context.Context) (models.DashboardStats, error) {
	return s.dashboardQuery(ctx, "getAdminDashboard", "/api/dashboard/admin")
}

// Overview is the combined landing view.
func (s *DashboardService) Overview(ctx context.Context) (models.DashboardStats, error) {
	return s.dashboardQuery(ctx, "getDashboardOverview", "/api/dashboard/overview")
}
