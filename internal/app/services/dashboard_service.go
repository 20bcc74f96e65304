package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
)

const (
	recentUsersLimit = 5
	growthMonths     = 12
)

// DashboardService assembles the admin dashboard summaries
type DashboardService struct {
	dashRepo DashboardStore
	logger   zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(dashRepo DashboardStore, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		dashRepo: dashRepo,
		logger:   logger,
	}
}

// UserStats summarizes the user base
func (s *DashboardService) UserStats(ctx context.Context) (*dto.UserStatsResponse, error) {
	total, err := s.dashRepo.CountRows(ctx, "users")
	if err != nil {
		return nil, err
	}

	roles, err := s.dashRepo.CountByColumn(ctx, "users", "role")
	if err != nil {
		return nil, err
	}

	recent, err := s.dashRepo.RecentUsers(ctx, recentUsersLimit)
	if err != nil {
		return nil, err
	}

	growth, err := s.dashRepo.MonthlyUserGrowth(ctx, growthMonths)
	if err != nil {
		return nil, err
	}

	return &dto.UserStatsResponse{
		Total:            total,
		RoleDistribution: roles,
		RecentUsers:      recent,
		UserGrowth:       growth,
	}, nil
}

// SchoolStats summarizes the school directory
func (s *DashboardService) SchoolStats(ctx context.Context) (*dto.SchoolStatsResponse, error) {
	total, err := s.dashRepo.CountRows(ctx, "schools")
	if err != nil {
		return nil, err
	}

	resp := &dto.SchoolStatsResponse{Total: total}

	if resp.TypeDistribution, err = s.dashRepo.CountByColumn(ctx, "schools", "type"); err != nil {
		return nil, err
	}
	if resp.CategoryDistribution, err = s.dashRepo.CountByColumn(ctx, "schools", "category"); err != nil {
		return nil, err
	}
	if resp.RegionDistribution, err = s.dashRepo.CountByColumn(ctx, "schools", "region"); err != nil {
		return nil, err
	}
	if resp.SubscriptionTiers, err = s.dashRepo.CountByColumn(ctx, "schools", "subscription_tier"); err != nil {
		return nil, err
	}

	return resp, nil
}

// ApplicationStats summarizes applications and payments
func (s *DashboardService) ApplicationStats(ctx context.Context) (*dto.ApplicationStatsResponse, error) {
	total, err := s.dashRepo.CountRows(ctx, "applications")
	if err != nil {
		return nil, err
	}

	resp := &dto.ApplicationStatsResponse{Total: total}

	if resp.StatusDistribution, err = s.dashRepo.CountByColumn(ctx, "applications", "application_status"); err != nil {
		return nil, err
	}
	if resp.MonthlyApplications, err = s.dashRepo.MonthlyApplications(ctx, growthMonths); err != nil {
		return nil, err
	}
	if resp.PaymentStats, err = s.dashRepo.PaymentStats(ctx); err != nil {
		return nil, err
	}
	if resp.PaymentMethods, err = s.dashRepo.PaymentMethodStats(ctx); err != nil {
		return nil, err
	}

	return resp, nil
}

// CombinedStats builds the single-call dashboard overview
func (s *DashboardService) CombinedStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	users, err := s.UserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error building user stats: %w", err)
	}
	schools, err := s.SchoolStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error building school stats: %w", err)
	}
	apps, err := s.ApplicationStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error building application stats: %w", err)
	}

	var resp dto.DashboardStatsResponse
	resp.UserStats.Total = users.Total
	resp.UserStats.RoleDistribution = users.RoleDistribution
	resp.UserStats.RecentUsers = users.RecentUsers
	resp.SchoolStats.Total = schools.Total
	resp.SchoolStats.TypeDistribution = schools.TypeDistribution
	resp.SchoolStats.CategoryDistribution = schools.CategoryDistribution
	resp.ApplicationStats.Total = apps.Total
	resp.ApplicationStats.StatusDistribution = apps.StatusDistribution
	resp.ApplicationStats.PaymentStats = apps.PaymentStats

	return &resp, nil
}
