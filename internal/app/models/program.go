package models

// Program is an academic program a school offers
type Program struct {
	ID          int64   `json:"id" db:"id"`
	SchoolID    int64   `json:"schoolId" db:"school_id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description,omitempty" db:"description"`
	Duration    string  `json:"duration,omitempty" db:"duration"`
	Fees        float64 `json:"fees,omitempty" db:"fees"`
}
