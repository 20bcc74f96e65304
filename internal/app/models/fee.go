package models

import "time"

// Fee is a chargeable item a school defines, such as a development fee
type Fee struct {
	ID          int64      `json:"id" db:"id"`
	SchoolID    int64      `json:"schoolId" db:"school_id"`
	Name        string     `json:"name" db:"name"`
	Amount      float64    `json:"amount" db:"amount"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	Description string     `json:"description,omitempty" db:"description"`
}
