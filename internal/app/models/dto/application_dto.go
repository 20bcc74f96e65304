package dto

import "github.com/steampunk99/school-locator/internal/app/models"

// SubmitApplicationRequest carries an admission application submission
type SubmitApplicationRequest struct {
	SchoolID     int64               `json:"schoolId" binding:"required"`
	PersonalInfo models.PersonalInfo `json:"personalInfo" binding:"required"`
	AcademicInfo models.AcademicInfo `json:"academicInfo" binding:"required"`
	EssayAnswer  string              `json:"essayAnswer"`
}

// SubmitApplicationResponse confirms a submission and quotes the fee
type SubmitApplicationResponse struct {
	Message       string  `json:"message"`
	ApplicationID int64   `json:"applicationId"`
	PaymentAmount float64 `json:"paymentAmount"`
}

// ProcessPaymentRequest initiates a mobile-money payment
type ProcessPaymentRequest struct {
	ApplicationID int64  `json:"applicationId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PhoneNumber   string `json:"phoneNumber" binding:"required"`
}

// ProcessPaymentResponse reports the initiated transaction
type ProcessPaymentResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

// UpdateApplicationStatusRequest overwrites an application's review status
type UpdateApplicationStatusRequest struct {
	ApplicationStatus string `json:"applicationStatus" binding:"required,oneof=Pending Approved Rejected"`
}
