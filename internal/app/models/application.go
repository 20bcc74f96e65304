package models

import "time"

// PersonalInfo is the applicant's personal section of an application
type PersonalInfo struct {
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      string    `json:"gender"`
	Address     string    `json:"address"`
}

// AcademicInfo is the applicant's academic background
type AcademicInfo struct {
	PreviousSchool string `json:"previousSchool"`
	Grades         string `json:"grades"`
}

// Payment is the admission-fee payment attached to an application
type Payment struct {
	Status        PaymentStatus `json:"status" db:"payment_status"`
	Amount        float64       `json:"amount" db:"payment_amount"`
	TransactionID string        `json:"transactionId,omitempty" db:"transaction_id"`
	Method        PaymentMethod `json:"paymentMethod,omitempty" db:"payment_method"`
}

// Application defines the admission application model based on the
// 'applications' table. At most one Pending/Approved application may exist
// per (user, school) pair; the partial unique index
// applications_active_user_school_key enforces it.
type Application struct {
	ID           int64             `json:"id" db:"id"`
	UserID       int64             `json:"userId" db:"user_id"`
	SchoolID     int64             `json:"schoolId" db:"school_id"`
	Status       ApplicationStatus `json:"applicationStatus" db:"application_status"`
	PersonalInfo PersonalInfo      `json:"personalInfo"`
	AcademicInfo AcademicInfo      `json:"academicInfo"`
	EssayAnswer  string            `json:"essayAnswer,omitempty" db:"essay_answer"`
	Payment      Payment           `json:"payment"`
	CreatedAt    time.Time         `json:"createdAt" db:"created_at"`

	// Joined fields, populated on listing queries
	Applicant  *User  `json:"applicant,omitempty"`
	SchoolName string `json:"schoolName,omitempty"`
}
