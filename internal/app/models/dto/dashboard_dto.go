package dto

import "github.com/steampunk99/school-locator/internal/app/models"

// CountByKey is a generic bucketed count, e.g. users per role
type CountByKey struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// MonthlyCount buckets a count by calendar month
type MonthlyCount struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Status string `json:"status,omitempty"`
	Count  int64  `json:"count"`
}

// AmountByKey is a bucketed count with an amount sum, e.g. payments per method
type AmountByKey struct {
	Key         string  `json:"key"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// UserStatsResponse summarizes the user base
type UserStatsResponse struct {
	Total            int64          `json:"total"`
	RoleDistribution []CountByKey   `json:"roleDistribution"`
	RecentUsers      []models.User  `json:"recentUsers"`
	UserGrowth       []MonthlyCount `json:"userGrowth"`
}

// SchoolStatsResponse summarizes the school directory
type SchoolStatsResponse struct {
	Total                int64        `json:"total"`
	TypeDistribution     []CountByKey `json:"typeDistribution"`
	CategoryDistribution []CountByKey `json:"categoryDistribution"`
	RegionDistribution   []CountByKey `json:"regionDistribution"`
	SubscriptionTiers    []CountByKey `json:"subscriptionTiers"`
}

// ApplicationStatsResponse summarizes admission applications and payments
type ApplicationStatsResponse struct {
	Total               int64          `json:"total"`
	StatusDistribution  []CountByKey   `json:"statusDistribution"`
	MonthlyApplications []MonthlyCount `json:"monthlyApplications"`
	PaymentStats        []AmountByKey  `json:"paymentStats"`
	PaymentMethods      []AmountByKey  `json:"paymentMethods"`
}

// DashboardStatsResponse is the combined dashboard summary
type DashboardStatsResponse struct {
	UserStats struct {
		Total            int64         `json:"total"`
		RoleDistribution []CountByKey  `json:"roleDistribution"`
		RecentUsers      []models.User `json:"recentUsers"`
	} `json:"userStats"`
	SchoolStats struct {
		Total                int64        `json:"total"`
		TypeDistribution     []CountByKey `json:"typeDistribution"`
		CategoryDistribution []CountByKey `json:"categoryDistribution"`
	} `json:"schoolStats"`
	ApplicationStats struct {
		Total              int64         `json:"total"`
		StatusDistribution []CountByKey  `json:"statusDistribution"`
		PaymentStats       []AmountByKey `json:"paymentStats"`
	} `json:"applicationStats"`
}
