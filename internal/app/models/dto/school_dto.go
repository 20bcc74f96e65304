package dto

import "github.com/steampunk99/school-locator/internal/app/models"

// SearchSchoolsRequest carries the /schools/search query parameters
type SearchSchoolsRequest struct {
	Query       string  `form:"query"`
	District    string  `form:"district"`
	Region      string  `form:"region"`
	Type        string  `form:"type"`
	Category    string  `form:"category"`
	Curriculum  string  `form:"curriculum"`
	MaxTuition  float64 `form:"maxTuition"`
	HasBoarding bool    `form:"hasBoarding"`
	SortBy      string  `form:"sortBy,default=name"`
	SortOrder   string  `form:"sortOrder,default=asc"`
	Limit       int     `form:"limit,default=10"`
	Page        int     `form:"page,default=1"`
}

// SchoolSearchResponse is one page of search results
type SchoolSearchResponse struct {
	Data       []models.School `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// AddSchoolRequest carries the multipart fields for creating a school.
// Requirements arrive as a comma-separated list.
type AddSchoolRequest struct {
	Name                string  `form:"name" binding:"required"`
	Description         string  `form:"description"`
	District            string  `form:"district" binding:"required"`
	Region              string  `form:"region" binding:"required"`
	Address             string  `form:"address" binding:"required"`
	Type                string  `form:"type" binding:"required,oneof=Day Boarding Mixed"`
	Category            string  `form:"category" binding:"required,oneof=Government Private Religious International"`
	AdmissionFee        float64 `form:"admissionFee" binding:"required"`
	TuitionDay          float64 `form:"tuitionDay"`
	TuitionBoarding     float64 `form:"tuitionBoarding"`
	Curriculum          string  `form:"curriculum"` // comma-separated
	ContactEmail        string  `form:"contactEmail"`
	ContactPhone        string  `form:"contactPhone" binding:"required"`
	Website             string  `form:"website"`
	ApplicationDeadline string  `form:"applicationDeadline" binding:"required"` // RFC 3339 or 2006-01-02
	DaySpots            int     `form:"daySpots"`
	BoardingSpots       int     `form:"boardingSpots"`
	Requirements        string  `form:"requirements"` // comma-separated
}

// UpdateSchoolRequest carries the multipart fields for updating a school.
// All fields are optional; the logo file is taken from the multipart form.
type UpdateSchoolRequest struct {
	Name                *string  `form:"name"`
	Description         *string  `form:"description"`
	District            *string  `form:"district"`
	Region              *string  `form:"region"`
	Address             *string  `form:"address"`
	Type                *string  `form:"type"`
	Category            *string  `form:"category"`
	AdmissionFee        *float64 `form:"admissionFee"`
	TuitionDay          *float64 `form:"tuitionDay"`
	TuitionBoarding     *float64 `form:"tuitionBoarding"`
	Curriculum          *string  `form:"curriculum"`
	ContactEmail        *string  `form:"contactEmail"`
	ContactPhone        *string  `form:"contactPhone"`
	Website             *string  `form:"website"`
	ApplicationDeadline *string  `form:"applicationDeadline"`
	DaySpots            *int     `form:"daySpots"`
	BoardingSpots       *int     `form:"boardingSpots"`
	Requirements        *string  `form:"requirements"`
	IsActive            *bool    `form:"isActive"`
	IsVerified          *bool    `form:"isVerified"`
	SubscriptionTier    *string  `form:"subscriptionTier"`
}

// SimilarSchoolsRequest carries the /schools/similar query parameters
type SimilarSchoolsRequest struct {
	SchoolID int64  `form:"schoolId"`
	Category string `form:"category"`
	Region   string `form:"region"`
	Type     string `form:"type"`
}

// SchoolSummary is the trimmed projection used for similar-school listings
type SchoolSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Region   string `json:"region"`
}
